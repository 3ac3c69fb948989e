/*
Package circuit is a topology engine for interactive wiring puzzles and
electrical teaching toys.

A scene declares components (one power source, resistors, lights and
single-pole double-throw switches) and the links between their terminals.
Every rewire or switch change retraces the circuit from the live terminal of
the power source and classifies it:

  - Open: the walk dead-ends before returning to the source.
  - Closed: the walk returns through at least one resistor, which are all energized.
  - Short: the walk returns without passing any resistor.
  - Incomplete: no trace has run yet.

# Concept

Terminals belong to components and hold at most one link, which has a
direction: the terminal that initiated the connection owns it. Components
decide how a walk continues once it arrives at one of their terminals. The
circuit reacts to changes through lifecycle hooks, so a visual layer can light
lamps, draw a short-circuit indicator or move a physical switch lever.

# Usage

	c, err := circuit.New("scenes/lamp.yaml",
		circuit.WithLifecycleHooks(domain.LifecycleHooks{
			OnTrace: func(ctx context.Context, e *domain.TraceEvent) {
				log.Printf("circuit is %s", e.Classification)
			},
		}),
	)
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	c.Test(ctx)                                  // first trace
	c.Connect(ctx, "R1.b", "sw.common")          // drag a connector
	c.SetSwitch(ctx, "sw", true, nil)            // flip the switch to L1

Scenes can also be built in code with package dsl and injected with WithLoader.

# Concurrency

A Circuit serializes its operations. Hooks run synchronously while the
operation that caused them holds the circuit; a hook that needs to rewire
passes the context it received, and the resulting trace runs after the
current one completes.
*/
package circuit
