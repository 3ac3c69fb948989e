package dsl

import (
	"testing"

	"github.com/aretw0/circuit/pkg/domain"
	contract "github.com/aretw0/circuit/pkg/ports/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_Lamp(t *testing.T) {
	// 1. Build the scene using DSL
	b := New("lamp")

	src := b.Source("src").Label("Battery")
	sw := b.Switch("sw").Up()
	lamp := b.Light("lamp")

	b.Wire(src.Live(), sw.Common()).
		Wire(sw.L1(), lamp.A()).
		Wire(lamp.B(), src.Neutral())

	// 2. Compile to Loader
	loader, err := b.Build()
	require.NoError(t, err)

	// 3. Verify against the loader contract
	contract.SceneLoaderContractTest(t, loader, domain.Scene{
		Name: "lamp",
		Components: []domain.Component{
			{ID: "src", Kind: domain.KindPowerSource, Label: "Battery"},
			{ID: "sw", Kind: domain.KindSwitch, Up: true},
			{ID: "lamp", Kind: domain.KindLight},
		},
		Links: []domain.Link{
			{From: "src.live", To: "sw.common"},
			{From: "sw.l1", To: "lamp.a"},
			{From: "lamp.b", To: "src.neutral"},
		},
	})
}

func TestBuilder_AddIsIdempotent(t *testing.T) {
	b := New("dup")
	first := b.Resistor("R1")
	second := b.Light("R1").Label("still a resistor")

	assert.Same(t, first, second)
	scene := b.Scene()
	require.Len(t, scene.Components, 1)
	assert.Equal(t, domain.KindResistor, scene.Components[0].Kind)
	assert.Equal(t, "still a resistor", scene.Components[0].Label)
}

func TestBuilder_Chain(t *testing.T) {
	b := New("series")
	src := b.Source("src")
	r1 := b.Resistor("R1")
	r2 := b.Resistor("R2")

	b.Chain(src.Live(), r1.A(), r1.B(), r2.A(), r2.B(), src.Neutral())

	assert.Equal(t, []domain.Link{
		{From: "src.live", To: "R1.a"},
		{From: "R1.b", To: "R2.a"},
		{From: "R2.b", To: "src.neutral"},
	}, b.Scene().Links)
}

func TestBuilder_Validation(t *testing.T) {
	tests := []struct {
		name  string
		build func(b *Builder)
	}{
		{
			name:  "no power source",
			build: func(b *Builder) { b.Resistor("R1") },
		},
		{
			name: "unknown terminal",
			build: func(b *Builder) {
				src := b.Source("src")
				r := b.Resistor("R1")
				b.Wire(src.Live(), r.Common())
			},
		},
		{
			name: "terminal linked twice",
			build: func(b *Builder) {
				src := b.Source("src")
				r := b.Resistor("R1")
				b.Wire(src.Live(), r.A()).Wire(r.B(), r.A())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New(tt.name)
			tt.build(b)
			_, err := b.Build()
			assert.ErrorIs(t, err, domain.ErrInvalidScene)
		})
	}
}
