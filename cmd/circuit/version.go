package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/circuit"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of circuit",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("circuit version %s\n", strings.TrimSpace(circuit.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
