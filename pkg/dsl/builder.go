package dsl

import (
	"fmt"

	"github.com/aretw0/circuit/pkg/adapters/memory"
	"github.com/aretw0/circuit/pkg/domain"
)

// Builder manages the scene construction.
type Builder struct {
	name       string
	components map[string]*ComponentBuilder
	order      []*ComponentBuilder
	links      []domain.Link
}

// New creates a new scene builder.
func New(name string) *Builder {
	return &Builder{
		name:       name,
		components: make(map[string]*ComponentBuilder),
	}
}

// Source adds the power source.
func (b *Builder) Source(id string) *ComponentBuilder {
	return b.add(id, domain.KindPowerSource)
}

// Resistor adds a resistor.
func (b *Builder) Resistor(id string) *ComponentBuilder {
	return b.add(id, domain.KindResistor)
}

// Light adds a light.
func (b *Builder) Light(id string) *ComponentBuilder {
	return b.add(id, domain.KindLight)
}

// Switch adds a single-pole double-throw switch, initially down (L2).
func (b *Builder) Switch(id string) *ComponentBuilder {
	return b.add(id, domain.KindSwitch)
}

// add creates a component. If the ID already exists, it returns the existing
// builder and the kind is left untouched.
func (b *Builder) add(id string, kind domain.Kind) *ComponentBuilder {
	if cb, ok := b.components[id]; ok {
		return cb
	}
	cb := &ComponentBuilder{
		component: domain.Component{ID: id, Kind: kind},
	}
	b.components[id] = cb
	b.order = append(b.order, cb)
	return cb
}

// Wire adds an initial link from one terminal to another.
func (b *Builder) Wire(from, to domain.TerminalID) *Builder {
	b.links = append(b.links, domain.Link{From: from, To: to})
	return b
}

// Chain wires terminals pairwise in order: Chain(a, b, c, d) links a->b and c->d.
func (b *Builder) Chain(terminals ...domain.TerminalID) *Builder {
	for i := 0; i+1 < len(terminals); i += 2 {
		b.Wire(terminals[i], terminals[i+1])
	}
	return b
}

// Scene returns the scene as built so far, without validating it.
func (b *Builder) Scene() domain.Scene {
	scene := domain.Scene{
		Name:       b.name,
		Components: make([]domain.Component, 0, len(b.order)),
		Links:      append([]domain.Link(nil), b.links...),
	}
	for _, cb := range b.order {
		scene.Components = append(scene.Components, cb.component)
	}
	return scene
}

// Build validates the scene and compiles it into a memory loader.
func (b *Builder) Build() (*memory.Loader, error) {
	scene := b.Scene()
	if err := scene.Validate(); err != nil {
		return nil, err
	}

	loader, err := memory.NewFromScene(scene)
	if err != nil {
		return nil, fmt.Errorf("failed to build memory loader: %w", err)
	}
	return loader, nil
}
