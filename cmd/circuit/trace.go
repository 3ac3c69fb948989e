package main

import (
	"os"

	"github.com/aretw0/circuit/internal/cli"
	"github.com/aretw0/circuit/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var traceCmd = &cobra.Command{
	Use:   "trace [scene]",
	Short: "Apply operations and print the resulting classification",
	Long: `Loads the scene, applies each --op in order and prints the final state.
If no operation traced the circuit, a test trace runs first.

  circuit trace lamp.yaml --op "switch sw up" --op "lamp.b -> src.neutral"`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ops, _ := cmd.Flags().GetStringArray("op")
		jsonMode, _ := cmd.Flags().GetBool("json")

		return cli.RunTrace(cmd.Context(), cli.TraceOptions{
			Options: optionsFrom(cmd, args),
			Ops:     ops,
			JSON:    jsonMode,
			Profile: tui.Profile(os.Stdout),
		}, os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(traceCmd)
	traceCmd.Flags().StringArray("op", nil, "Operation to apply (repeatable)")
	traceCmd.Flags().Bool("json", false, "Print the snapshot as JSON")
}
