package main

import (
	"os"

	"github.com/aretw0/circuit/internal/cli"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph [scene]",
	Short: "Export the wiring diagram",
	Long:  `Outputs a Mermaid diagram (graph LR) of the scene. With --traced the active resistors are highlighted.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		traced, _ := cmd.Flags().GetBool("traced")
		return cli.ExportGraph(optionsFrom(cmd, args), traced, os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().Bool("traced", false, "Trace the circuit and highlight the result")
}
