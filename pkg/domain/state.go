package domain

// Classification is the qualitative state of the circuit after a trace.
type Classification string

const (
	ClassificationOpen       Classification = "open"       // No path back to the source
	ClassificationClosed     Classification = "closed"     // Loop through at least one resistor
	ClassificationShort      Classification = "short"      // Loop with no resistor in it
	ClassificationIncomplete Classification = "incomplete" // Not traced yet, or trace deferred
)

// Reason identifies what requested a trace.
type Reason string

const (
	ReasonTest   Reason = "test"
	ReasonSwitch Reason = "switch"
	ReasonRewire Reason = "rewire"
)

// Snapshot is a read-only view of the circuit as of the most recent trace.
type Snapshot struct {
	Classification Classification `json:"classification"`

	// Resistors lists the resistor IDs collected by the last trace, in traversal order.
	Resistors []string `json:"resistors"`

	// Active lists the resistors currently energized.
	Active []string `json:"active"`

	ShortCircuit bool `json:"short_circuit"`

	// Malformed is set when the last walk revisited a terminal or hit the depth cap.
	Malformed bool `json:"malformed,omitempty"`

	LastReason Reason `json:"last_reason,omitempty"`
	Traces     int    `json:"traces"`

	Links    []Link          `json:"links"`
	Switches map[string]bool `json:"switches,omitempty"`
}

// IsActive reports whether the given resistor is energized in the snapshot.
func (s *Snapshot) IsActive(id string) bool {
	for _, a := range s.Active {
		if a == id {
			return true
		}
	}
	return false
}
