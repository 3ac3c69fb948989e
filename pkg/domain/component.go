package domain

import (
	"fmt"
	"strings"
)

// Kind selects the routing rule of a component.
type Kind string

const (
	// KindPowerSource is the traversal origin and its loop-closure condition.
	KindPowerSource Kind = "power_source"
	// KindResistor passes traversal straight through (a <-> b).
	KindResistor Kind = "resistor"
	// KindLight is a resistor that also toggles a lit/unlit visual.
	KindLight Kind = "light"
	// KindSwitch routes common to the selected throw only.
	KindSwitch Kind = "switch"
)

// Terminal names per kind.
const (
	TerminalLive    = "live"
	TerminalNeutral = "neutral"
	TerminalA       = "a"
	TerminalB       = "b"
	TerminalCommon  = "common"
	TerminalL1      = "l1"
	TerminalL2      = "l2"
)

// Terminals returns the fixed terminal names owned by a component of kind k.
// It returns nil for unknown kinds.
func (k Kind) Terminals() []string {
	switch k {
	case KindPowerSource:
		return []string{TerminalLive, TerminalNeutral}
	case KindResistor, KindLight:
		return []string{TerminalA, TerminalB}
	case KindSwitch:
		return []string{TerminalCommon, TerminalL1, TerminalL2}
	}
	return nil
}

// IsResistive reports whether components of kind k are collected by a trace.
func (k Kind) IsResistive() bool {
	return k == KindResistor || k == KindLight
}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	return k.Terminals() != nil
}

// TerminalID addresses one terminal as "<component>.<terminal>".
type TerminalID string

// NewTerminalID joins a component ID and a terminal name.
func NewTerminalID(component, terminal string) TerminalID {
	return TerminalID(component + "." + terminal)
}

// Split returns the component ID and terminal name.
// Component IDs may contain dots; the terminal name is the last segment.
func (t TerminalID) Split() (component, terminal string, err error) {
	i := strings.LastIndex(string(t), ".")
	if i <= 0 || i == len(t)-1 {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidTerminalID, string(t))
	}
	return string(t[:i]), string(t[i+1:]), nil
}

func (t TerminalID) String() string { return string(t) }

// Component declares one circuit element of a scene.
type Component struct {
	ID    string `json:"id" yaml:"id" mapstructure:"id"`
	Kind  Kind   `json:"kind" yaml:"kind" mapstructure:"kind"`
	Label string `json:"label,omitempty" yaml:"label,omitempty" mapstructure:"label"`

	// Up is the initial switch position (L1 when true). Ignored for other kinds.
	Up bool `json:"up,omitempty" yaml:"up,omitempty" mapstructure:"up"`
}

// Link is a directed connection; From is the initiating terminal.
type Link struct {
	From TerminalID `json:"from" yaml:"from" mapstructure:"from"`
	To   TerminalID `json:"to" yaml:"to" mapstructure:"to"`
}
