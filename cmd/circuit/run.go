package main

import (
	"context"
	"os"

	"github.com/aretw0/circuit/internal/cli"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run [scene]",
	Short: "Operate the circuit interactively",
	Long: `Starts a command loop on the scene. Commands:

  test                     trace the circuit
  connect A.x B.y          (or: A.x -> B.y) link two terminals
  disconnect A.x           remove the link on a terminal
  switch ID up|down        move a switch lever
  toggle ID                flip a switch lever
  status                   show the last result`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := optionsFrom(cmd, args)
		headless, _ := cmd.Flags().GetBool("headless")
		script, _ := cmd.Flags().GetString("script")

		if script == "" {
			return cli.RunSession(opts, headless)
		}

		f, err := os.Open(script)
		if err != nil {
			return err
		}
		defer f.Close()
		return cli.RunScript(context.Background(), opts, f, os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Bool("headless", false, "Run in headless mode (no prompts, one classification per line)")
	runCmd.Flags().String("script", "", "Read commands from a file instead of stdin")

	rootCmd.Args = runCmd.Args
	rootCmd.RunE = runCmd.RunE
	rootCmd.Flags().AddFlagSet(runCmd.Flags())
}
