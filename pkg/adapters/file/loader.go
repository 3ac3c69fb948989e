package file

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/aretw0/circuit/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.SceneLoader by reading a YAML (or JSON) scene file.
//
// Links may be written as maps ({from: src.live, to: R1.a}) or with the
// arrow shorthand ("src.live -> R1.a").
type Loader struct {
	Path string
}

// New creates a file loader for path.
func New(path string) *Loader {
	return &Loader{Path: path}
}

// LoadScene reads and decodes the file on every call.
func (l *Loader) LoadScene() (*domain.Scene, error) {
	data, err := os.ReadFile(l.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene file: %w", err)
	}
	scene, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", l.Path, err)
	}
	if scene.Name == "" {
		scene.Name = strings.TrimSuffix(filepath.Base(l.Path), filepath.Ext(l.Path))
	}
	return scene, nil
}

// Parse decodes a scene document.
func Parse(data []byte) (*domain.Scene, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse yaml: %w", err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: empty document", domain.ErrInvalidScene)
	}

	var scene domain.Scene
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:  linkShorthandHook,
		ErrorUnused: true,
		Result:      &scene,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create decoder: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidScene, err)
	}
	return &scene, nil
}

var linkType = reflect.TypeOf(domain.Link{})

// linkShorthandHook turns "a -> b" strings into links.
func linkShorthandHook(from, to reflect.Type, data any) (any, error) {
	if to != linkType || from.Kind() != reflect.String {
		return data, nil
	}
	s, _ := data.(string)
	parts := strings.Split(s, "->")
	if len(parts) != 2 {
		return nil, fmt.Errorf("link %q: want \"<from> -> <to>\"", s)
	}
	return domain.Link{
		From: domain.TerminalID(strings.TrimSpace(parts[0])),
		To:   domain.TerminalID(strings.TrimSpace(parts[1])),
	}, nil
}
