package runtime

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/circuit/pkg/domain"
)

const (
	// DefaultMaxDepth bounds a single walk. Hand-built scenes have tens of terminals.
	DefaultMaxDepth = 256

	// maxDeferredPasses bounds how many traces hooks may chain onto one request.
	maxDeferredPasses = 16
)

// Graph walks the circuit from its power source and keeps the result of the
// most recent trace.
type Graph struct {
	source *Component
	links  *linkTable

	resistors      []*Component
	classification domain.Classification
	short          bool
	malformed      bool
	lastReason     domain.Reason
	traces         int

	// Re-entrancy guard: traces requested from hooks run after the current pass.
	tracing       bool
	pending       bool
	pendingReason domain.Reason

	maxDepth int
	hooks    domain.LifecycleHooks
	logger   *slog.Logger
	now      func() time.Time
}

func newGraph(source *Component, links *linkTable) *Graph {
	if source == nil || source.kind != domain.KindPowerSource {
		panic("circuit: graph requires a power source")
	}
	return &Graph{
		source:         source,
		links:          links,
		classification: domain.ClassificationIncomplete,
		maxDepth:       DefaultMaxDepth,
		logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:            time.Now,
	}
}

// Classification returns the result of the most recent trace.
func (g *Graph) Classification() domain.Classification { return g.classification }

// Resistors returns the resistors collected by the most recent trace, in order.
func (g *Graph) Resistors() []*Component {
	out := make([]*Component, len(g.resistors))
	copy(out, g.resistors)
	return out
}

// ShortCircuit reports the short-circuit indicator.
func (g *Graph) ShortCircuit() bool { return g.short }

// Trace re-evaluates the circuit. A call made while a trace is already
// running (from inside a hook) is deferred until the running pass finishes
// and returns ClassificationIncomplete, since no result exists for it yet.
func (g *Graph) Trace(ctx context.Context, reason domain.Reason) domain.Classification {
	if g.tracing {
		g.pending = true
		g.pendingReason = reason
		g.logger.Debug("trace deferred", "reason", reason)
		return domain.ClassificationIncomplete
	}

	g.tracing = true
	defer func() { g.tracing = false }()

	g.pass(ctx, reason)
	for passes := 1; g.pending; passes++ {
		if passes > maxDeferredPasses {
			g.logger.Warn("dropping deferred trace: hooks keep requesting traces", "passes", passes)
			g.pending = false
			break
		}
		reason := g.pendingReason
		g.pending = false
		g.pass(ctx, reason)
	}
	return g.classification
}

func (g *Graph) pass(ctx context.Context, reason domain.Reason) {
	// 1. Reset the previous result.
	for _, r := range g.resistors {
		g.setActive(ctx, r, false)
	}
	g.resistors = nil
	g.classification = domain.ClassificationOpen

	// 2-3. Walk.
	class, collected, malformed := g.walk()
	g.resistors = collected
	g.classification = class
	g.malformed = malformed
	if malformed {
		g.logger.Warn("malformed topology: walk revisited a terminal or exceeded max depth",
			"reason", reason, "max_depth", g.maxDepth)
	}

	// 4. Activate.
	closed := class == domain.ClassificationClosed
	for _, r := range collected {
		g.setActive(ctx, r, closed)
	}

	// 5. Short indicator.
	g.short = class == domain.ClassificationShort
	if g.hooks.OnShortCircuit != nil {
		g.hooks.OnShortCircuit(ctx, &domain.ShortCircuitEvent{
			EventBase: g.base(domain.EventShortCircuit),
			Active:    g.short,
		})
	}

	g.traces++
	g.lastReason = reason
	ids := componentIDs(collected)
	g.logger.Debug("trace complete",
		"reason", reason,
		"classification", class,
		"resistors", ids,
		"sequence", g.traces,
	)

	// 6. Notify.
	if g.hooks.OnTrace != nil {
		g.hooks.OnTrace(ctx, &domain.TraceEvent{
			EventBase:      g.base(domain.EventTrace),
			Classification: class,
			Reason:         reason,
			Resistors:      ids,
			Malformed:      malformed,
			Sequence:       g.traces,
		})
	}
}

// walk follows next-terminal rules from the live terminal.
func (g *Graph) walk() (domain.Classification, []*Component, bool) {
	var collected []*Component
	current := g.source.Terminal(domain.TerminalLive)
	visited := map[*Terminal]bool{current: true}

	for depth := 0; ; depth++ {
		if depth >= g.maxDepth {
			return domain.ClassificationOpen, collected, true
		}
		owner := current.owner
		if owner.kind.IsResistive() {
			collected = append(collected, owner)
		}

		next := owner.resolveNext(g.links, current)
		switch {
		case next == nil:
			return domain.ClassificationOpen, collected, false
		case next.owner == g.source:
			if len(collected) == 0 {
				return domain.ClassificationShort, collected, false
			}
			return domain.ClassificationClosed, collected, false
		case visited[next]:
			return domain.ClassificationOpen, collected, true
		}
		visited[next] = true
		current = next
	}
}

func (g *Graph) setActive(ctx context.Context, r *Component, on bool) {
	r.activate(on)
	if g.hooks.OnActivate != nil {
		g.hooks.OnActivate(ctx, &domain.ActivationEvent{
			EventBase:   g.base(domain.EventActivate),
			ComponentID: r.id,
			Kind:        r.kind,
			Active:      on,
		})
	}
}

func (g *Graph) base(t domain.EventType) domain.EventBase {
	return domain.EventBase{Timestamp: g.now(), Type: t}
}

func componentIDs(cs []*Component) []string {
	ids := make([]string, len(cs))
	for i, c := range cs {
		ids[i] = c.id
	}
	return ids
}
