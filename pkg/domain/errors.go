package domain

import "errors"

// ErrInvalidTerminalID is returned when a terminal address is not "<component>.<terminal>".
var ErrInvalidTerminalID = errors.New("invalid terminal id")

// ErrUnknownComponent is returned when a component ID is not part of the circuit.
var ErrUnknownComponent = errors.New("unknown component")

// ErrUnknownTerminal is returned when a component does not own the named terminal.
var ErrUnknownTerminal = errors.New("unknown terminal")

// ErrNotASwitch is returned when a switch operation targets another kind.
var ErrNotASwitch = errors.New("component is not a switch")

// ErrInvalidScene is returned when a scene definition fails validation.
var ErrInvalidScene = errors.New("invalid scene")
