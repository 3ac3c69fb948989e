package circuit

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aretw0/circuit/pkg/domain"
)

// ErrUnknownCommand is returned by ParseCommand for input it cannot read.
var ErrUnknownCommand = errors.New("unknown command")

// CommandVerb names one operation a text command performs.
type CommandVerb string

const (
	VerbConnect    CommandVerb = "connect"
	VerbDisconnect CommandVerb = "disconnect"
	VerbSwitch     CommandVerb = "switch"
	VerbToggle     CommandVerb = "toggle"
	VerbTest       CommandVerb = "test"
	VerbStatus     CommandVerb = "status"
)

// Command is one parsed line of the text protocol used by the runner and
// by `circuit trace --op`.
type Command struct {
	Verb     CommandVerb
	From, To domain.TerminalID
	Switch   string
	Up       bool
}

// ParseCommand reads one of:
//
//	connect <from> <to>    (or: <from> -> <to>)
//	disconnect <terminal>
//	switch <id> up|down
//	toggle <id>
//	test
//	status
func ParseCommand(line string) (Command, error) {
	if from, to, ok := strings.Cut(line, "->"); ok {
		from, to = strings.TrimSpace(from), strings.TrimSpace(to)
		if from == "" || to == "" || strings.ContainsAny(from+to, " \t") {
			return Command{}, fmt.Errorf("%w: %q", ErrUnknownCommand, line)
		}
		return Command{Verb: VerbConnect, From: domain.TerminalID(from), To: domain.TerminalID(to)}, nil
	}

	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{}, fmt.Errorf("%w: empty input", ErrUnknownCommand)
	}

	verb := CommandVerb(strings.ToLower(fields[0]))
	args := fields[1:]
	switch {
	case verb == VerbConnect && len(args) == 2:
		return Command{Verb: verb, From: domain.TerminalID(args[0]), To: domain.TerminalID(args[1])}, nil
	case verb == VerbDisconnect && len(args) == 1:
		return Command{Verb: verb, From: domain.TerminalID(args[0])}, nil
	case verb == VerbSwitch && len(args) == 2:
		switch strings.ToLower(args[1]) {
		case "up", "l1":
			return Command{Verb: verb, Switch: args[0], Up: true}, nil
		case "down", "l2":
			return Command{Verb: verb, Switch: args[0], Up: false}, nil
		}
	case verb == VerbToggle && len(args) == 1:
		return Command{Verb: verb, Switch: args[0]}, nil
	case (verb == VerbTest || verb == VerbStatus) && len(args) == 0:
		return Command{Verb: verb}, nil
	}
	return Command{}, fmt.Errorf("%w: %q", ErrUnknownCommand, line)
}

// Apply runs the command against e. Status reads the last result without tracing.
func (cmd Command) Apply(ctx context.Context, e *Circuit) (domain.Classification, error) {
	switch cmd.Verb {
	case VerbConnect:
		return e.Connect(ctx, cmd.From, cmd.To)
	case VerbDisconnect:
		return e.Disconnect(ctx, cmd.From)
	case VerbSwitch:
		return e.SetSwitch(ctx, cmd.Switch, cmd.Up, cmd)
	case VerbToggle:
		return e.Toggle(ctx, cmd.Switch, cmd)
	case VerbTest:
		return e.Test(ctx), nil
	case VerbStatus:
		return e.Snapshot().Classification, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownCommand, cmd.Verb)
}

func (cmd Command) String() string {
	switch cmd.Verb {
	case VerbConnect:
		return fmt.Sprintf("connect %s %s", cmd.From, cmd.To)
	case VerbDisconnect:
		return fmt.Sprintf("disconnect %s", cmd.From)
	case VerbSwitch:
		pos := "down"
		if cmd.Up {
			pos = "up"
		}
		return fmt.Sprintf("switch %s %s", cmd.Switch, pos)
	case VerbToggle:
		return fmt.Sprintf("toggle %s", cmd.Switch)
	}
	return string(cmd.Verb)
}
