package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/circuit/pkg/domain"
)

// Chain merges hook sets. Each callback runs the non-nil callbacks of every
// set, in argument order.
func Chain(sets ...domain.LifecycleHooks) domain.LifecycleHooks {
	var out domain.LifecycleHooks
	for _, h := range sets {
		if h.OnTrace != nil {
			out.OnTrace = chain(out.OnTrace, h.OnTrace)
		}
		if h.OnActivate != nil {
			out.OnActivate = chain(out.OnActivate, h.OnActivate)
		}
		if h.OnSwitchPosition != nil {
			out.OnSwitchPosition = chain(out.OnSwitchPosition, h.OnSwitchPosition)
		}
		if h.OnShortCircuit != nil {
			out.OnShortCircuit = chain(out.OnShortCircuit, h.OnShortCircuit)
		}
	}
	return out
}

func chain[E any](first, next func(context.Context, *E)) func(context.Context, *E) {
	if first == nil {
		return next
	}
	return func(ctx context.Context, e *E) {
		first(ctx, e)
		next(ctx, e)
	}
}

// LogHooks records engine events on logger. Traces log at Info, a short
// circuit at Warn and the rest at Debug.
func LogHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTrace: func(ctx context.Context, e *domain.TraceEvent) {
			logger.InfoContext(ctx, "trace",
				"classification", e.Classification,
				"reason", e.Reason,
				"resistors", e.Resistors,
				"sequence", e.Sequence,
			)
		},
		OnActivate: func(ctx context.Context, e *domain.ActivationEvent) {
			logger.DebugContext(ctx, "activate", "component", e.ComponentID, "active", e.Active)
		},
		OnSwitchPosition: func(ctx context.Context, e *domain.SwitchEvent) {
			logger.DebugContext(ctx, "switch_position",
				"component", e.ComponentID,
				"previous", e.Previous,
				"up", e.Up,
			)
		},
		OnShortCircuit: func(ctx context.Context, e *domain.ShortCircuitEvent) {
			if e.Active {
				logger.WarnContext(ctx, "short circuit")
			}
		},
	}
}
