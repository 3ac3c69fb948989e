package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/circuit/pkg/domain"
)

// GraphOverlay contains trace results to visualize on the graph.
type GraphOverlay struct {
	Active       []string
	ShortCircuit bool
}

// OverlayFromSnapshot builds an overlay from the last trace.
func OverlayFromSnapshot(s domain.Snapshot) *GraphOverlay {
	return &GraphOverlay{Active: s.Active, ShortCircuit: s.ShortCircuit}
}

// GenerateMermaid produces a Mermaid flowchart syntax string from a scene.
// It applies semantic styling:
// - Power source: ((Circle))
// - Switch: {{Hexagon}}, labeled with its position
// - Light: ([Stadium])
// - Resistor: [Rectangle]
// Each link is an edge labeled with the terminal names it joins.
// It also applies overlay styles (Active/Short) if provided.
func GenerateMermaid(scene domain.Scene, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	var source string
	for _, c := range scene.Components {
		safeID := sanitizeMermaidID(c.ID)

		label := c.ID
		if c.Label != "" {
			label = fmt.Sprintf("%s <br/> %s", c.ID, c.Label)
		}
		label = strings.ReplaceAll(label, "\"", "'")

		opener, closer := "[", "]"
		switch c.Kind {
		case domain.KindPowerSource:
			opener, closer = "((", "))"
			source = safeID
		case domain.KindSwitch:
			opener, closer = "{{", "}}"
			pos := "L2"
			if c.Up {
				pos = "L1"
			}
			label = fmt.Sprintf("%s <br/> %s", label, pos)
		case domain.KindLight:
			opener, closer = "([", "])"
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", safeID, opener, label, closer))
	}

	for _, l := range scene.Links {
		fromComp, fromTerm, err := l.From.Split()
		if err != nil {
			continue
		}
		toComp, toTerm, err := l.To.Split()
		if err != nil {
			continue
		}
		sb.WriteString(fmt.Sprintf("    %s -- \"%s → %s\" --> %s\n",
			sanitizeMermaidID(fromComp), fromTerm, toTerm, sanitizeMermaidID(toComp)))
	}

	// Apply Overlay Styles
	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef active fill:#fff59d,stroke:#f9a825,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef short fill:#ffcdd2,stroke:#c62828,stroke-width:4px,color:#000;\n")

		seen := make(map[string]bool)
		for _, id := range overlay.Active {
			safeID := sanitizeMermaidID(id)
			if !seen[safeID] && safeID != "" {
				seen[safeID] = true
				sb.WriteString(fmt.Sprintf("    class %s active;\n", safeID))
			}
		}

		if overlay.ShortCircuit && source != "" {
			sb.WriteString(fmt.Sprintf("    class %s short;\n", source))
		}
	}

	return sb.String()
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
