package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventTrace          EventType = "trace"
	EventActivate       EventType = "activate"
	EventSwitchPosition EventType = "switch_position"
	EventShortCircuit   EventType = "short_circuit"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// TraceEvent is emitted once per completed trace.
type TraceEvent struct {
	EventBase
	Classification Classification `json:"classification"`
	Reason         Reason         `json:"reason"`
	Resistors      []string       `json:"resistors"`
	Malformed      bool           `json:"malformed,omitempty"`
	Sequence       int            `json:"sequence"`
}

// ActivationEvent is emitted for every resistor activation call.
type ActivationEvent struct {
	EventBase
	ComponentID string `json:"component_id"`
	Kind        Kind   `json:"kind"`
	Active      bool   `json:"active"`
}

// SwitchEvent reports a switch position change request.
// Origin is whatever the caller passed to SetSwitch, returned untouched so an
// actuator can tell its own changes from logic-driven ones.
type SwitchEvent struct {
	EventBase
	ComponentID string `json:"component_id"`
	Previous    bool   `json:"previous"`
	Up          bool   `json:"up"`
	Origin      any    `json:"-"`
}

// ShortCircuitEvent carries the short-circuit indicator state after a trace.
type ShortCircuitEvent struct {
	EventBase
	Active bool `json:"active"`
}

// LifecycleHooks defines callbacks for the visual and actuator layers.
// Hooks run synchronously inside the operation that caused them.
type LifecycleHooks struct {
	OnTrace          func(context.Context, *TraceEvent)
	OnActivate       func(context.Context, *ActivationEvent)
	OnSwitchPosition func(context.Context, *SwitchEvent)
	OnShortCircuit   func(context.Context, *ShortCircuitEvent)
}
