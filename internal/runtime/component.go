package runtime

import (
	"github.com/aretw0/circuit/pkg/domain"
)

// Component is a circuit element. The routing rule is selected by kind;
// only link state, switch position and activation change after creation.
type Component struct {
	id        string
	kind      domain.Kind
	label     string
	terminals []*Terminal

	up     bool // Switch: L1 selected when true
	active bool // Resistor/Light
	lit    bool // Light
}

func newComponent(def domain.Component) *Component {
	c := &Component{
		id:    def.ID,
		kind:  def.Kind,
		label: def.Label,
		up:    def.Up,
	}
	for _, name := range def.Kind.Terminals() {
		c.terminals = append(c.terminals, &Terminal{
			id:    domain.NewTerminalID(def.ID, name),
			name:  name,
			owner: c,
		})
	}
	return c
}

func (c *Component) ID() string        { return c.id }
func (c *Component) Kind() domain.Kind { return c.kind }
func (c *Component) Label() string     { return c.label }

// Up reports the switch position. Always false for other kinds.
func (c *Component) Up() bool { return c.up }

// Active reports whether the last trace energized this resistor.
func (c *Component) Active() bool { return c.active }

// Lit reports the visual state of a light.
func (c *Component) Lit() bool { return c.lit }

// Terminals returns the component's terminals in declaration order.
func (c *Component) Terminals() []*Terminal {
	out := make([]*Terminal, len(c.terminals))
	copy(out, c.terminals)
	return out
}

// Terminal returns the named terminal, or nil.
func (c *Component) Terminal(name string) *Terminal {
	for _, t := range c.terminals {
		if t.name == name {
			return t
		}
	}
	return nil
}

// selectedThrow returns the switch throw currently connected to common.
func (c *Component) selectedThrow() *Terminal {
	if c.up {
		return c.Terminal(domain.TerminalL1)
	}
	return c.Terminal(domain.TerminalL2)
}

// resolveNext returns the terminal traversal moves to after arriving at
// arrival, or nil for a dead end.
func (c *Component) resolveNext(links *linkTable, arrival *Terminal) *Terminal {
	switch c.kind {
	case domain.KindPowerSource:
		return links.peer(arrival)

	case domain.KindResistor, domain.KindLight:
		switch arrival.name {
		case domain.TerminalA:
			return links.peer(c.Terminal(domain.TerminalB))
		case domain.TerminalB:
			return links.peer(c.Terminal(domain.TerminalA))
		}

	case domain.KindSwitch:
		throw := c.selectedThrow()
		switch arrival {
		case c.Terminal(domain.TerminalCommon):
			return links.peer(throw)
		case throw:
			return links.peer(c.Terminal(domain.TerminalCommon))
		}
		// The unselected throw is not traversable.
	}
	return nil
}

// activate records the trace outcome for a resistor. Lights follow it with
// their lit state.
func (c *Component) activate(on bool) {
	c.active = on
	if c.kind == domain.KindLight {
		c.lit = on
	}
}
