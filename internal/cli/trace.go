package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/aretw0/circuit"
	"github.com/aretw0/circuit/internal/presentation/tui"
	"github.com/muesli/termenv"
)

// TraceOptions configures the one-shot trace command.
type TraceOptions struct {
	Options
	Ops     []string
	JSON    bool
	Profile termenv.Profile
}

// RunTrace loads the scene, applies each operation in order, traces once
// if no operation did, and prints the resulting state. The first invalid
// operation aborts with an error.
func RunTrace(ctx context.Context, opts TraceOptions, out io.Writer) error {
	logger, err := NewLogger(opts.Options)
	if err != nil {
		return err
	}
	c, err := createCircuit(opts.Options, logger)
	if err != nil {
		return err
	}

	for _, op := range opts.Ops {
		cmd, err := circuit.ParseCommand(op)
		if err != nil {
			return err
		}
		if _, err := cmd.Apply(ctx, c); err != nil {
			return fmt.Errorf("%s: %w", cmd, err)
		}
		logger.Debug("applied operation", "op", cmd.String(), "classification", c.Snapshot().Classification)
	}
	if c.Snapshot().Traces == 0 {
		c.Test(ctx)
	}

	snap := c.Snapshot()
	if opts.JSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	}

	fmt.Fprintf(out, "%s %s\n", tui.Badge(opts.Profile, snap.Classification), c.Name)
	if len(snap.Resistors) > 0 {
		fmt.Fprintf(out, "resistors: %v\n", snap.Resistors)
	}
	if len(snap.Active) > 0 {
		fmt.Fprintf(out, "active:    %v\n", snap.Active)
	}
	if snap.Malformed {
		fmt.Fprintln(out, "warning: malformed topology")
	}
	return nil
}
