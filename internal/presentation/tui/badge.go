package tui

import (
	"os"
	"strings"

	"github.com/aretw0/circuit/pkg/domain"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

var badgeColors = map[domain.Classification]string{
	domain.ClassificationClosed:     "#22c55e",
	domain.ClassificationOpen:       "#94a3b8",
	domain.ClassificationShort:      "#ef4444",
	domain.ClassificationIncomplete: "#a78bfa",
}

// Badge renders a classification as a colored label for profile p.
// With termenv.Ascii it returns the plain upper-case name.
func Badge(p termenv.Profile, c domain.Classification) string {
	label := " " + strings.ToUpper(string(c)) + " "
	color, ok := badgeColors[c]
	if !ok || p == termenv.Ascii {
		return strings.TrimSpace(label)
	}
	s := termenv.String(label).Foreground(p.Color("#000000")).Background(p.Color(color)).Bold()
	if c == domain.ClassificationShort {
		s = s.Blink()
	}
	return s.String()
}

// IsInteractive reports whether f is a terminal. Reports and badges fall back
// to plain text when output is piped.
func IsInteractive(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Profile returns the color profile to use for f.
func Profile(f *os.File) termenv.Profile {
	if !IsInteractive(f) {
		return termenv.Ascii
	}
	return termenv.NewOutput(f).Profile
}
