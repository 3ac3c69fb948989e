package circuit

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/circuit/pkg/domain"
)

// FormatReport renders a snapshot as Markdown.
func FormatReport(name string, snap domain.Snapshot) string {
	var sb strings.Builder

	title := name
	if title == "" {
		title = "circuit"
	}
	fmt.Fprintf(&sb, "# %s: %s\n\n", title, strings.ToUpper(string(snap.Classification)))

	if snap.ShortCircuit {
		sb.WriteString("> **Short circuit!** Live reaches neutral without passing a resistor.\n\n")
	}
	if snap.Malformed {
		sb.WriteString("> The last walk revisited a terminal or hit the depth cap.\n\n")
	}

	if len(snap.Resistors) > 0 {
		sb.WriteString("| Resistor | Active |\n|---|---|\n")
		for _, id := range snap.Resistors {
			mark := "no"
			if snap.IsActive(id) {
				mark = "yes"
			}
			fmt.Fprintf(&sb, "| %s | %s |\n", id, mark)
		}
		sb.WriteString("\n")
	}

	if len(snap.Switches) > 0 {
		ids := make([]string, 0, len(snap.Switches))
		for id := range snap.Switches {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		sb.WriteString("**Switches:**")
		for _, id := range ids {
			pos := "L2"
			if snap.Switches[id] {
				pos = "L1"
			}
			fmt.Fprintf(&sb, " `%s=%s`", id, pos)
		}
		sb.WriteString("\n\n")
	}

	fmt.Fprintf(&sb, "_%d links, %d traces", len(snap.Links), snap.Traces)
	if snap.LastReason != "" {
		fmt.Fprintf(&sb, ", last by %s", snap.LastReason)
	}
	sb.WriteString("_\n")
	return sb.String()
}
