package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/circuit/pkg/domain"
)

// Engine owns the components of one scene, the links between their
// terminals and the graph that classifies them. It is not safe for
// concurrent use: every operation runs to completion, including the trace
// and all hooks, before returning.
type Engine struct {
	components map[string]*Component
	order      []*Component
	links      *linkTable
	graph      *Graph
	logger     *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithLifecycleHooks registers the callbacks fired after traces and switch changes.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.graph.hooks = hooks
	}
}

// WithLogger sets the structured logger. A nil logger keeps the default.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
			e.graph.logger = logger
		}
	}
}

// WithMaxDepth caps the number of steps in one walk.
func WithMaxDepth(n int) EngineOption {
	return func(e *Engine) {
		if n > 0 {
			e.graph.maxDepth = n
		}
	}
}

// WithClock overrides the event timestamp source.
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) {
		if now != nil {
			e.graph.now = now
		}
	}
}

// NewEngine builds the components and initial links of scene. The scene must
// be valid; an invalid scene is a construction bug and panics. Callers that
// accept untrusted scenes run scene.Validate first.
//
// No trace runs here: the classification stays Incomplete until the first
// trace is requested.
func NewEngine(scene domain.Scene, opts ...EngineOption) *Engine {
	if err := scene.Validate(); err != nil {
		panic(fmt.Sprintf("circuit: %v", err))
	}

	e := &Engine{
		components: make(map[string]*Component, len(scene.Components)),
		links:      newLinkTable(),
	}
	var source *Component
	for _, def := range scene.Components {
		c := newComponent(def)
		e.components[c.id] = c
		e.order = append(e.order, c)
		if c.kind == domain.KindPowerSource {
			source = c
		}
	}
	for _, l := range scene.Links {
		from, err := e.terminal(l.From)
		if err != nil {
			panic(fmt.Sprintf("circuit: %v", err))
		}
		to, err := e.terminal(l.To)
		if err != nil {
			panic(fmt.Sprintf("circuit: %v", err))
		}
		e.links.link(from, to)
	}

	e.graph = newGraph(source, e.links)
	e.logger = e.graph.logger
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Connect links source to destination. Any link already touching either
// terminal is torn down first. Connecting a terminal to itself is ignored;
// reconnecting an existing link changes nothing but still retraces.
//
// Called from inside a hook, Connect, Disconnect and SetSwitch apply the
// change at once but defer the trace, and return ClassificationIncomplete.
func (e *Engine) Connect(ctx context.Context, source, destination domain.TerminalID) (domain.Classification, error) {
	src, err := e.terminal(source)
	if err != nil {
		return e.graph.classification, err
	}
	dst, err := e.terminal(destination)
	if err != nil {
		return e.graph.classification, err
	}

	if src == dst {
		e.logger.Debug("ignoring self connection", "terminal", source)
		return e.graph.classification, nil
	}

	if e.links.outgoing(src) == dst {
		e.logger.Debug("connection already present", "from", source, "to", destination)
	} else {
		if e.links.detach(src) {
			e.logger.Debug("tore down existing link", "terminal", source)
		}
		if e.links.detach(dst) {
			e.logger.Debug("tore down existing link", "terminal", destination)
		}
		e.links.link(src, dst)
		e.logger.Debug("connected", "from", source, "to", destination)
	}

	return e.graph.Trace(ctx, domain.ReasonRewire), nil
}

// Disconnect removes the outgoing link of terminal and the back-link on the
// terminal it pointed to. A terminal that only receives a link keeps it.
// Either way the circuit retraces.
func (e *Engine) Disconnect(ctx context.Context, terminal domain.TerminalID) (domain.Classification, error) {
	t, err := e.terminal(terminal)
	if err != nil {
		return e.graph.classification, err
	}
	if e.links.outgoing(t) != nil && e.links.detach(t) {
		e.logger.Debug("disconnected", "terminal", terminal)
	}
	return e.graph.Trace(ctx, domain.ReasonRewire), nil
}

// SetSwitch moves a switch to L1 (up) or L2 (down), notifies position
// listeners with origin, and always retraces once, even when the position
// did not change.
func (e *Engine) SetSwitch(ctx context.Context, id string, up bool, origin any) (domain.Classification, error) {
	c, err := e.component(id)
	if err != nil {
		return e.graph.classification, err
	}
	if c.kind != domain.KindSwitch {
		return e.graph.classification, fmt.Errorf("%w: %s is a %s", domain.ErrNotASwitch, id, c.kind)
	}

	previous := c.up
	c.up = up
	e.logger.Debug("switch moved", "switch", id, "previous", previous, "up", up)

	if hook := e.graph.hooks.OnSwitchPosition; hook != nil {
		hook(ctx, &domain.SwitchEvent{
			EventBase:   e.graph.base(domain.EventSwitchPosition),
			ComponentID: id,
			Previous:    previous,
			Up:          up,
			Origin:      origin,
		})
	}

	return e.graph.Trace(ctx, domain.ReasonSwitch), nil
}

// Toggle flips a switch. See SetSwitch.
func (e *Engine) Toggle(ctx context.Context, id string, origin any) (domain.Classification, error) {
	c, err := e.component(id)
	if err != nil {
		return e.graph.classification, err
	}
	return e.SetSwitch(ctx, id, !c.up, origin)
}

// Test forces a re-evaluation without any topology change.
func (e *Engine) Test(ctx context.Context) domain.Classification {
	return e.graph.Trace(ctx, domain.ReasonTest)
}

// Graph returns the circuit graph.
func (e *Engine) Graph() *Graph { return e.graph }

// Component returns a component by ID.
func (e *Engine) Component(id string) (*Component, error) { return e.component(id) }

// Components returns all components in scene order.
func (e *Engine) Components() []*Component {
	out := make([]*Component, len(e.order))
	copy(out, e.order)
	return out
}

// Outgoing returns the terminal that t links to, if t initiated its link.
func (e *Engine) Outgoing(t domain.TerminalID) (domain.TerminalID, bool, error) {
	term, err := e.terminal(t)
	if err != nil {
		return "", false, err
	}
	if out := e.links.outgoing(term); out != nil {
		return out.id, true, nil
	}
	return "", false, nil
}

// Incoming returns the terminal linking to t, if t received its link.
func (e *Engine) Incoming(t domain.TerminalID) (domain.TerminalID, bool, error) {
	term, err := e.terminal(t)
	if err != nil {
		return "", false, err
	}
	if in := e.links.incoming(term); in != nil {
		return in.id, true, nil
	}
	return "", false, nil
}

// Next returns the terminal a walk would move to after arriving at t.
func (e *Engine) Next(t domain.TerminalID) (domain.TerminalID, bool, error) {
	term, err := e.terminal(t)
	if err != nil {
		return "", false, err
	}
	if next := term.owner.resolveNext(e.links, term); next != nil {
		return next.id, true, nil
	}
	return "", false, nil
}

// Snapshot returns the state left by the most recent trace.
func (e *Engine) Snapshot() domain.Snapshot {
	g := e.graph
	snap := domain.Snapshot{
		Classification: g.classification,
		Resistors:      componentIDs(g.resistors),
		Active:         []string{},
		ShortCircuit:   g.short,
		Malformed:      g.malformed,
		LastReason:     g.lastReason,
		Traces:         g.traces,
		Links:          e.links.links(),
		Switches:       make(map[string]bool),
	}
	for _, c := range e.order {
		switch {
		case c.kind == domain.KindSwitch:
			snap.Switches[c.id] = c.up
		case c.kind.IsResistive() && c.active:
			snap.Active = append(snap.Active, c.id)
		}
	}
	return snap
}

// Scene returns the current topology as a scene definition.
func (e *Engine) Scene() domain.Scene {
	scene := domain.Scene{Links: e.links.links()}
	for _, c := range e.order {
		scene.Components = append(scene.Components, domain.Component{
			ID:    c.id,
			Kind:  c.kind,
			Label: c.label,
			Up:    c.up,
		})
	}
	return scene
}

func (e *Engine) component(id string) (*Component, error) {
	c, ok := e.components[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownComponent, id)
	}
	return c, nil
}

func (e *Engine) terminal(id domain.TerminalID) (*Terminal, error) {
	compID, name, err := id.Split()
	if err != nil {
		return nil, err
	}
	c, err := e.component(compID)
	if err != nil {
		return nil, err
	}
	t := c.Terminal(name)
	if t == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownTerminal, id)
	}
	return t, nil
}
