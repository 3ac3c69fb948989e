package main

import (
	"fmt"
	"os"

	"github.com/aretw0/circuit/internal/cli"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [scene]",
	Short: "Check the scene for consistency",
	Long:  `Reports duplicate components, a missing power source and links to unknown or reused terminals.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cli.Validate(optionsFrom(cmd, args).ScenePath, os.Stdout); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
