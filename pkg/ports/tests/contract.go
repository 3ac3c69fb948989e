package tests

import (
	"testing"

	"github.com/aretw0/circuit/pkg/domain"
	"github.com/aretw0/circuit/pkg/ports"
)

// SceneLoaderContractTest is a reusable test suite that verifies if an adapter complies with ports.SceneLoader.
// want is the scene the loader was prepared with.
func SceneLoaderContractTest(t *testing.T, loader ports.SceneLoader, want domain.Scene) {
	t.Helper()

	// 1. LoadScene returns the prepared components and links
	t.Run("LoadScene_Success", func(t *testing.T) {
		got, err := loader.LoadScene()
		if err != nil {
			t.Fatalf("unexpected error loading scene: %v", err)
		}
		if len(got.Components) != len(want.Components) {
			t.Fatalf("expected %d components, got %d", len(want.Components), len(got.Components))
		}
		for i, c := range want.Components {
			if got.Components[i] != c {
				t.Errorf("component %d mismatch. got %+v, want %+v", i, got.Components[i], c)
			}
		}
		if len(got.Links) != len(want.Links) {
			t.Fatalf("expected %d links, got %d", len(want.Links), len(got.Links))
		}
		for i, l := range want.Links {
			if got.Links[i] != l {
				t.Errorf("link %d mismatch. got %+v, want %+v", i, got.Links[i], l)
			}
		}
	})

	// 2. Loaded scenes are valid
	t.Run("LoadScene_Valid", func(t *testing.T) {
		got, err := loader.LoadScene()
		if err != nil {
			t.Fatalf("unexpected error loading scene: %v", err)
		}
		if err := got.Validate(); err != nil {
			t.Errorf("loaded scene is invalid: %v", err)
		}
	})

	// 3. Each call returns an independent copy
	t.Run("LoadScene_Independent", func(t *testing.T) {
		first, err := loader.LoadScene()
		if err != nil {
			t.Fatalf("unexpected error loading scene: %v", err)
		}
		if len(first.Components) == 0 {
			t.Skip("scene has no components")
		}
		first.Components[0].ID = "mutated"

		second, err := loader.LoadScene()
		if err != nil {
			t.Fatalf("unexpected error loading scene: %v", err)
		}
		if second.Components[0].ID == "mutated" {
			t.Error("mutating a loaded scene leaked into the loader")
		}
	})
}
