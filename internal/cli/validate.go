package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/aretw0/circuit/internal/presentation/graph"
	"github.com/aretw0/circuit/pkg/adapters/file"
)

// Validate loads the scene file and reports every validation error.
func Validate(path string, out io.Writer) error {
	if path == "" {
		return fmt.Errorf("a scene file is required (--scene or first argument)")
	}
	scene, err := file.New(path).LoadScene()
	if err != nil {
		return err
	}
	if err := scene.Validate(); err != nil {
		return err
	}
	src, _ := scene.PowerSource()
	fmt.Fprintf(out, "✓ %s: %d components, %d links, source %s\n",
		scene.Name, len(scene.Components), len(scene.Links), src.ID)
	return nil
}

// ExportGraph writes the Mermaid diagram of the scene. With traced set, the
// circuit is traced first and the diagram carries the result overlay.
func ExportGraph(opts Options, traced bool, out io.Writer) error {
	logger, err := NewLogger(opts)
	if err != nil {
		return err
	}
	c, err := createCircuit(opts, logger)
	if err != nil {
		return err
	}

	var overlay *graph.GraphOverlay
	if traced {
		c.Test(context.Background())
		overlay = graph.OverlayFromSnapshot(c.Snapshot())
	}
	fmt.Fprint(out, graph.GenerateMermaid(c.Inspect(), overlay))
	return nil
}
