package dsl

import "github.com/aretw0/circuit/pkg/domain"

// ComponentBuilder provides a fluent API for configuring a component and
// naming its terminals.
type ComponentBuilder struct {
	component domain.Component
}

// Label sets the display label.
func (c *ComponentBuilder) Label(label string) *ComponentBuilder {
	c.component.Label = label
	return c
}

// Up sets the initial switch position to L1. It has no effect on other kinds.
func (c *ComponentBuilder) Up() *ComponentBuilder {
	c.component.Up = true
	return c
}

// Down sets the initial switch position to L2.
func (c *ComponentBuilder) Down() *ComponentBuilder {
	c.component.Up = false
	return c
}

// T returns the ID of the named terminal.
func (c *ComponentBuilder) T(name string) domain.TerminalID {
	return domain.NewTerminalID(c.component.ID, name)
}

func (c *ComponentBuilder) Live() domain.TerminalID    { return c.T(domain.TerminalLive) }
func (c *ComponentBuilder) Neutral() domain.TerminalID { return c.T(domain.TerminalNeutral) }
func (c *ComponentBuilder) A() domain.TerminalID       { return c.T(domain.TerminalA) }
func (c *ComponentBuilder) B() domain.TerminalID       { return c.T(domain.TerminalB) }
func (c *ComponentBuilder) Common() domain.TerminalID  { return c.T(domain.TerminalCommon) }
func (c *ComponentBuilder) L1() domain.TerminalID      { return c.T(domain.TerminalL1) }
func (c *ComponentBuilder) L2() domain.TerminalID      { return c.T(domain.TerminalL2) }

// Build returns the underlying domain.Component.
func (c *ComponentBuilder) Build() domain.Component {
	return c.component
}
