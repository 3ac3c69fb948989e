package ports

import "github.com/aretw0/circuit/pkg/domain"

// SceneLoader defines how the engine retrieves the circuit it runs.
// This allows the scene source (YAML file, memory, DSL) to be decoupled.
type SceneLoader interface {
	// LoadScene returns the scene definition. Implementations do not need to
	// validate it; the engine does.
	LoadScene() (*domain.Scene, error)
}
