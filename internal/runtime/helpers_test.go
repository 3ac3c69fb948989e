package runtime

import (
	"context"
	"testing"

	"github.com/aretw0/circuit/pkg/domain"
)

// recorder captures every hook invocation in order.
type recorder struct {
	traces      []domain.TraceEvent
	activations []domain.ActivationEvent
	switches    []domain.SwitchEvent
	shorts      []bool
}

func (r *recorder) hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTrace: func(_ context.Context, e *domain.TraceEvent) {
			r.traces = append(r.traces, *e)
		},
		OnActivate: func(_ context.Context, e *domain.ActivationEvent) {
			r.activations = append(r.activations, *e)
		},
		OnSwitchPosition: func(_ context.Context, e *domain.SwitchEvent) {
			r.switches = append(r.switches, *e)
		},
		OnShortCircuit: func(_ context.Context, e *domain.ShortCircuitEvent) {
			r.shorts = append(r.shorts, e.Active)
		},
	}
}

// lastActivation returns the most recent activate() value per component.
func (r *recorder) lastActivation() map[string]bool {
	out := make(map[string]bool)
	for _, a := range r.activations {
		out[a.ComponentID] = a.Active
	}
	return out
}

func comp(id string, kind domain.Kind) domain.Component {
	return domain.Component{ID: id, Kind: kind}
}

func link(from, to domain.TerminalID) domain.Link {
	return domain.Link{From: from, To: to}
}

// seriesScene is live -> R1 -> R2 -> neutral.
func seriesScene() domain.Scene {
	return domain.Scene{
		Name: "series",
		Components: []domain.Component{
			comp("src", domain.KindPowerSource),
			comp("R1", domain.KindResistor),
			comp("R2", domain.KindResistor),
		},
		Links: []domain.Link{
			link("src.live", "R1.a"),
			link("R1.b", "R2.a"),
			link("R2.b", "src.neutral"),
		},
	}
}

// switchScene is live -> R1 -> SW.common, SW.l2 -> neutral, SW.l1 -> R2 (dangling).
func switchScene() domain.Scene {
	return domain.Scene{
		Name: "switch",
		Components: []domain.Component{
			comp("src", domain.KindPowerSource),
			comp("R1", domain.KindResistor),
			comp("R2", domain.KindResistor),
			comp("SW", domain.KindSwitch),
		},
		Links: []domain.Link{
			link("src.live", "R1.a"),
			link("R1.b", "SW.common"),
			link("SW.l2", "src.neutral"),
			link("SW.l1", "R2.a"),
		},
	}
}

func newTestEngine(t *testing.T, scene domain.Scene, opts ...EngineOption) (*Engine, *recorder) {
	t.Helper()
	rec := &recorder{}
	opts = append([]EngineOption{WithLifecycleHooks(rec.hooks())}, opts...)
	return NewEngine(scene, opts...), rec
}

// checkInvariant fails the test if any terminal is both initiator and receiver.
func checkInvariant(t *testing.T, e *Engine) {
	t.Helper()
	for _, c := range e.order {
		for _, term := range c.terminals {
			if e.links.outgoing(term) != nil && e.links.incoming(term) != nil {
				t.Fatalf("terminal %s has both outgoing and incoming links", term.id)
			}
		}
	}
}
