package ports

import (
	"context"

	"github.com/aretw0/circuit/pkg/domain"
)

// Engine is the surface adapters (HTTP, MCP, CLI) drive. Every call runs to
// completion, including the trace it triggers, before returning.
type Engine interface {
	// Connect links source to destination, tearing down any link either already has.
	Connect(ctx context.Context, source, destination domain.TerminalID) (domain.Classification, error)

	// Disconnect removes the outgoing link of terminal.
	Disconnect(ctx context.Context, terminal domain.TerminalID) (domain.Classification, error)

	// SetSwitch moves a switch; origin is echoed back to position listeners.
	SetSwitch(ctx context.Context, id string, up bool, origin any) (domain.Classification, error)

	// Toggle flips a switch.
	Toggle(ctx context.Context, id string, origin any) (domain.Classification, error)

	// Test re-evaluates the circuit without changing it.
	Test(ctx context.Context) domain.Classification

	// Snapshot returns the state left by the most recent trace.
	Snapshot() domain.Snapshot

	// Inspect returns the current topology.
	Inspect() domain.Scene
}
