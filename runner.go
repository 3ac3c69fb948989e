package circuit

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// Runner drives a Circuit from line-oriented text commands.
// This allows for easy testing and integration with different frontends (CLI, TUI, pipes).
type Runner struct {
	Input    io.Reader
	Output   io.Writer
	Headless bool
	Renderer ContentRenderer
}

// ContentRenderer is a function that transforms the Markdown report before outputting it.
// This allows for TUI rendering (markdown to ANSI) without coupling the core package.
type ContentRenderer func(string) (string, error)

// NewRunner creates a Runner. Input and Output must be set before Run.
func NewRunner() *Runner {
	return &Runner{}
}

// Run reads commands until EOF, "exit" or "quit". In headless mode each
// command prints one line with the resulting classification; otherwise the
// full report is printed after every command.
//
// Parse and operation errors are reported on Output and do not stop the loop.
func (r *Runner) Run(ctx context.Context, c *Circuit) error {
	if r.Input == nil {
		return fmt.Errorf("input reader must be set (use os.Stdin)")
	}
	if r.Output == nil {
		return fmt.Errorf("output writer must be set (use os.Stdout)")
	}
	lineReader := bufio.NewReader(r.Input)

	if !r.Headless {
		fmt.Fprintf(r.Output, "--- circuit: %s ---\n", c.Name)
		r.print(c)
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !r.Headless {
			fmt.Fprint(r.Output, "> ")
		}

		text, err := lineReader.ReadString('\n')
		line := strings.TrimSpace(text)
		if err != nil && err != io.EOF {
			return fmt.Errorf("input error: %w", err)
		}

		switch {
		case line == "" || strings.HasPrefix(line, "#"):
		case line == "exit" || line == "quit":
			if !r.Headless {
				fmt.Fprintln(r.Output, "Bye!")
			}
			return nil
		default:
			r.exec(ctx, c, line)
		}

		if err == io.EOF {
			return nil
		}
	}
}

func (r *Runner) exec(ctx context.Context, c *Circuit, line string) {
	cmd, err := ParseCommand(line)
	if err != nil {
		fmt.Fprintf(r.Output, "error: %v\n", err)
		return
	}
	class, err := cmd.Apply(ctx, c)
	if err != nil {
		fmt.Fprintf(r.Output, "error: %v\n", err)
		return
	}
	if r.Headless {
		fmt.Fprintln(r.Output, class)
		return
	}
	r.print(c)
}

func (r *Runner) print(c *Circuit) {
	output := FormatReport(c.Name, c.Snapshot())
	if r.Renderer != nil {
		if rendered, err := r.Renderer(output); err == nil {
			output = rendered
		}
	}
	fmt.Fprintln(r.Output, strings.TrimSpace(output))
}
