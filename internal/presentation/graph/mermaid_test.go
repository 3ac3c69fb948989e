package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/circuit/internal/presentation/graph"
	"github.com/aretw0/circuit/pkg/domain"
)

func lampScene() domain.Scene {
	return domain.Scene{
		Components: []domain.Component{
			{ID: "src", Kind: domain.KindPowerSource},
			{ID: "wall-sw", Kind: domain.KindSwitch, Up: true},
			{ID: "lamp", Kind: domain.KindLight, Label: "Desk \"lamp\""},
			{ID: "R1", Kind: domain.KindResistor},
		},
		Links: []domain.Link{
			{From: "src.live", To: "wall-sw.common"},
			{From: "wall-sw.l1", To: "lamp.a"},
			{From: "lamp.b", To: "src.neutral"},
		},
	}
}

func TestGenerateMermaid(t *testing.T) {
	tests := []struct {
		name     string
		scene    domain.Scene
		overlay  *graph.GraphOverlay
		contains []string
		excludes []string
	}{
		{
			name:  "Component Shapes",
			scene: lampScene(),
			contains: []string{
				"src((\"src\"))",
				"wall_sw{{\"wall-sw <br/> L1\"}}",
				"lamp([\"lamp <br/> Desk 'lamp'\"])",
				"R1[\"R1\"]",
			},
		},
		{
			name:  "Link Edges",
			scene: lampScene(),
			contains: []string{
				"src -- \"live → common\" --> wall_sw",
				"wall_sw -- \"l1 → a\" --> lamp",
				"lamp -- \"b → neutral\" --> src",
			},
		},
		{
			name:     "No Overlay",
			scene:    lampScene(),
			excludes: []string{"classDef"},
		},
		{
			name:    "Active Overlay",
			scene:   lampScene(),
			overlay: &graph.GraphOverlay{Active: []string{"lamp", "lamp"}},
			contains: []string{
				"classDef active",
				"class lamp active;",
			},
			excludes: []string{"class src short;"},
		},
		{
			name:    "Short Overlay",
			scene:   lampScene(),
			overlay: graph.OverlayFromSnapshot(domain.Snapshot{ShortCircuit: true}),
			contains: []string{
				"class src short;",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := graph.GenerateMermaid(tt.scene, tt.overlay)
			if !strings.HasPrefix(got, "graph LR\n") {
				t.Errorf("expected flowchart header, got %q", got)
			}
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("expected output to contain %q\nGot:\n%s", want, got)
				}
			}
			for _, unwanted := range tt.excludes {
				if strings.Contains(got, unwanted) {
					t.Errorf("expected output to not contain %q\nGot:\n%s", unwanted, got)
				}
			}
			if n := strings.Count(got, "class lamp active;"); n > 1 {
				t.Errorf("expected deduplicated overlay, got %d entries", n)
			}
		})
	}
}
