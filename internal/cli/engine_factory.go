package cli

import (
	"fmt"
	"log/slog"

	"github.com/aretw0/circuit"
	"github.com/aretw0/circuit/pkg/domain"
	"github.com/aretw0/circuit/pkg/observability"
)

// createCircuit initializes a circuit with standard CLI conventions: the
// given logger, event logging in debug mode and any extra hook sets.
func createCircuit(opts Options, logger *slog.Logger, hooks ...domain.LifecycleHooks) (*circuit.Circuit, error) {
	if err := validateOptions(opts); err != nil {
		return nil, err
	}

	if opts.Debug {
		hooks = append([]domain.LifecycleHooks{observability.LogHooks(logger)}, hooks...)
	}

	c, err := circuit.New(opts.ScenePath,
		circuit.WithLogger(logger),
		circuit.WithLifecycleHooks(observability.Chain(hooks...)),
		circuit.WithMaxDepth(opts.MaxDepth),
	)
	if err != nil {
		return nil, fmt.Errorf("error initializing circuit: %w", err)
	}
	return c, nil
}

// NewCircuit is createCircuit for callers outside the package.
func NewCircuit(opts Options, logger *slog.Logger, hooks ...domain.LifecycleHooks) (*circuit.Circuit, error) {
	return createCircuit(opts, logger, hooks...)
}
