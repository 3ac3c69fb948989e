package cli

import (
	"context"
	"io"
	"os"

	"github.com/aretw0/circuit"
	"github.com/aretw0/circuit/internal/presentation/tui"
)

// RunSession starts the interactive command loop on stdin. In headless mode
// the banner and reports are skipped and each command prints its
// classification only.
func RunSession(opts Options, headless bool) error {
	logger, err := NewLogger(opts)
	if err != nil {
		return err
	}
	c, err := createCircuit(opts, logger)
	if err != nil {
		return err
	}

	sc := NewSignalContext(context.Background())
	defer sc.Cancel()

	r := circuit.NewRunner()
	r.Input = NewInterruptibleReader(os.Stdin, sc.Done())
	r.Output = os.Stdout
	r.Headless = headless
	if !headless {
		tui.PrintBanner(os.Stdout, circuit.Version)
		if tui.IsInteractive(os.Stdout) {
			r.Renderer = tui.NewRenderer()
		}
	}

	err = handleExecutionError(r.Run(sc, c))
	if sig := sc.Signal(); sig != nil && !headless {
		printSystemMessage(os.Stdout, "Interrupted (%v) at %s.", sig, c.Snapshot().Classification)
	}
	return err
}

// RunScript feeds commands from in to a fresh circuit, printing one
// classification per command to out.
func RunScript(ctx context.Context, opts Options, in io.Reader, out io.Writer) error {
	logger, err := NewLogger(opts)
	if err != nil {
		return err
	}
	c, err := createCircuit(opts, logger)
	if err != nil {
		return err
	}

	r := circuit.NewRunner()
	r.Input = in
	r.Output = out
	r.Headless = true
	return handleExecutionError(r.Run(ctx, c))
}
