package domain

import (
	"fmt"
	"strings"
)

// Scene is the declarative description of one circuit: its components,
// the initial links between their terminals and the initial switch positions.
type Scene struct {
	Name       string      `json:"name,omitempty" yaml:"name,omitempty" mapstructure:"name"`
	Components []Component `json:"components" yaml:"components" mapstructure:"components"`
	Links      []Link      `json:"links,omitempty" yaml:"links,omitempty" mapstructure:"links"`
}

// PowerSource returns the single power source of the scene, if any.
func (s *Scene) PowerSource() (Component, bool) {
	for _, c := range s.Components {
		if c.Kind == KindPowerSource {
			return c, true
		}
	}
	return Component{}, false
}

// Validate checks the scene for construction bugs: duplicate or empty IDs,
// unknown kinds, a missing or repeated power source, links naming terminals
// that do not exist, self links and terminals used by more than one link.
func (s *Scene) Validate() error {
	var errs []string

	kinds := make(map[string]Kind, len(s.Components))
	sources := 0
	for _, c := range s.Components {
		switch {
		case c.ID == "":
			errs = append(errs, "component with empty id")
			continue
		case strings.ContainsAny(c.ID, " \t"):
			errs = append(errs, fmt.Sprintf("component %q: id contains whitespace", c.ID))
		}
		if _, dup := kinds[c.ID]; dup {
			errs = append(errs, fmt.Sprintf("duplicate component %q", c.ID))
			continue
		}
		if !c.Kind.Valid() {
			errs = append(errs, fmt.Sprintf("component %q: unknown kind %q", c.ID, c.Kind))
		}
		if c.Kind == KindPowerSource {
			sources++
		}
		kinds[c.ID] = c.Kind
	}

	switch sources {
	case 0:
		errs = append(errs, "scene has no power source")
	case 1:
	default:
		errs = append(errs, fmt.Sprintf("scene has %d power sources, want 1", sources))
	}

	used := make(map[TerminalID]bool)
	for i, l := range s.Links {
		if l.From == l.To {
			errs = append(errs, fmt.Sprintf("link %d: %s connects to itself", i, l.From))
			continue
		}
		for _, t := range []TerminalID{l.From, l.To} {
			if err := checkTerminal(kinds, t); err != nil {
				errs = append(errs, fmt.Sprintf("link %d: %v", i, err))
				continue
			}
			if used[t] {
				errs = append(errs, fmt.Sprintf("link %d: terminal %s already linked", i, t))
			}
			used[t] = true
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: found %d errors:\n- %s", ErrInvalidScene, len(errs), strings.Join(errs, "\n- "))
	}
	return nil
}

func checkTerminal(kinds map[string]Kind, t TerminalID) error {
	comp, name, err := t.Split()
	if err != nil {
		return err
	}
	kind, ok := kinds[comp]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownComponent, comp)
	}
	for _, n := range kind.Terminals() {
		if n == name {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrUnknownTerminal, t)
}
