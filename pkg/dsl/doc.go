/*
Package dsl provides a Go DSL for programmatically constructing circuit scenes.

It is the code-first alternative to YAML scene files: components are declared
with a fluent builder, terminals are addressed through the component that owns
them, and Build validates the result before compiling it to a memory loader.

Example usage:

	b := dsl.New("lamp")

	src := b.Source("src").Label("Battery")
	sw := b.Switch("sw").Up()
	lamp := b.Light("lamp")

	b.Wire(src.Live(), sw.Common()).
		Wire(sw.L1(), lamp.A()).
		Wire(lamp.B(), src.Neutral())

	loader, err := b.Build()
	if err != nil {
		log.Fatal(err)
	}
	c, err := circuit.New("", circuit.WithLoader(loader))
*/
package dsl
