package circuit_test

import (
	"context"
	"fmt"
	"log"

	"github.com/aretw0/circuit"
	"github.com/aretw0/circuit/pkg/domain"
	"github.com/aretw0/circuit/pkg/dsl"
)

// ExampleNew_dsl builds a lamp circuit in code and reacts to its traces.
func ExampleNew_dsl() {
	b := dsl.New("desk")
	src := b.Source("src")
	sw := b.Switch("sw")
	lamp := b.Light("lamp")
	b.Wire(src.Live(), sw.Common()).
		Wire(sw.L1(), lamp.A()).
		Wire(lamp.B(), src.Neutral())

	loader, err := b.Build()
	if err != nil {
		log.Fatal(err)
	}

	c, err := circuit.New("", circuit.WithLoader(loader), circuit.WithLifecycleHooks(domain.LifecycleHooks{
		OnActivate: func(_ context.Context, e *domain.ActivationEvent) {
			fmt.Printf("%s active=%v\n", e.ComponentID, e.Active)
		},
	}))
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	fmt.Println(c.Test(ctx))

	class, _ := c.SetSwitch(ctx, "sw", true, nil)
	fmt.Println(class)

	// The reset deactivates the lamp, then the open walk reports it inactive again.
	class, _ = c.Disconnect(ctx, "lamp.b")
	fmt.Println(class)

	// Output:
	// open
	// lamp active=true
	// closed
	// lamp active=false
	// lamp active=false
	// open
}

// ExampleNew_short wires live straight to neutral.
func ExampleNew_short() {
	b := dsl.New("short")
	src := b.Source("src")
	b.Wire(src.Live(), src.Neutral())

	loader, _ := b.Build()
	c, _ := circuit.New("", circuit.WithLoader(loader))

	fmt.Println(c.Test(context.Background()), c.Snapshot().ShortCircuit)
	// Output: short true
}
