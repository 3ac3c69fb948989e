package cli

import (
	"fmt"
	"log/slog"

	"github.com/aretw0/circuit/internal/logging"
)

// Options contains the configuration shared by every command.
type Options struct {
	ScenePath string
	LogLevel  string
	LogFormat string
	MaxDepth  int
	Debug     bool
}

// NewLogger builds the application logger from the --log-level and
// --log-format flags. --debug forces the debug level.
func NewLogger(opts Options) (*slog.Logger, error) {
	if opts.LogLevel == "" && !opts.Debug {
		return logging.NewNop(), nil
	}
	level := slog.LevelDebug
	if !opts.Debug {
		var err error
		if level, err = logging.ParseLevel(opts.LogLevel); err != nil {
			return nil, err
		}
	}
	format, err := logging.ParseFormat(opts.LogFormat)
	if err != nil {
		return nil, err
	}
	return logging.New(level, format), nil
}

// validateOptions rejects flag combinations before any file is read.
func validateOptions(opts Options) error {
	if opts.ScenePath == "" {
		return fmt.Errorf("a scene file is required (--scene or first argument)")
	}
	if opts.MaxDepth < 0 {
		return fmt.Errorf("--max-depth must not be negative")
	}
	return nil
}
