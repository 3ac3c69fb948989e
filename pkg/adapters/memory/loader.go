package memory

import (
	"encoding/json"
	"fmt"

	"github.com/aretw0/circuit/pkg/domain"
)

// Loader implements ports.SceneLoader using an in-memory JSON document.
type Loader struct {
	raw []byte
}

// NewLoader creates a Loader from a raw JSON scene definition.
func NewLoader(data string) *Loader {
	return &Loader{raw: []byte(data)}
}

// NewFromScene creates a Loader from a domain scene.
// This handles serialization automatically, improving DX for tests.
func NewFromScene(scene domain.Scene) (*Loader, error) {
	raw, err := json.Marshal(scene)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal scene %q: %w", scene.Name, err)
	}
	return &Loader{raw: raw}, nil
}

// LoadScene decodes a fresh copy of the scene on every call.
func (l *Loader) LoadScene() (*domain.Scene, error) {
	var scene domain.Scene
	if err := json.Unmarshal(l.raw, &scene); err != nil {
		return nil, fmt.Errorf("failed to decode scene: %w", err)
	}
	return &scene, nil
}
