package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the ASCII art banner with the version.
func PrintBanner(w io.Writer, version string) {
	p := termenv.ColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{"      _                _ _   ", "#facc15"},
		{"  ___(_)_ __ ___ _   _(_) |_ ", "#fbbf24"},
		{" / __| | '__/ __| | | | | __|", "#f59e0b"},
		{"| (__| | | | (__| |_| | | |_ ", "#f97316"},
		{" \\___|_|_|  \\___|\\__,_|_|\\__|", "#ef4444"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintf(w, "  %s\n\n", termenv.String("v"+strings.TrimSpace(version)).Faint())
}
