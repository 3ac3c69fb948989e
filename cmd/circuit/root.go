package main

import (
	"fmt"
	"os"

	"github.com/aretw0/circuit/internal/cli"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "circuit",
	Short: "Circuit is a wiring topology engine",
	Long: `Circuit loads a scene of terminals, resistors, lights, switches and a power source,
traces the loop from the live terminal and reports whether it is open, closed or shorted.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringP("scene", "s", "", "Scene file (YAML or JSON)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error (default: no logs)")
	rootCmd.PersistentFlags().String("log-format", "text", "Log format: text or json")
	rootCmd.PersistentFlags().Bool("debug", false, "Log every engine event at debug level")
	rootCmd.PersistentFlags().Int("max-depth", 0, "Maximum terminals visited per trace (0 uses the default)")
}

// optionsFrom collects the persistent flags. The scene may also be given as
// the first positional argument.
func optionsFrom(cmd *cobra.Command, args []string) cli.Options {
	flags := cmd.Flags()
	scene, _ := flags.GetString("scene")
	if !flags.Changed("scene") && len(args) > 0 {
		scene = args[0]
	}
	level, _ := flags.GetString("log-level")
	format, _ := flags.GetString("log-format")
	debug, _ := flags.GetBool("debug")
	depth, _ := flags.GetInt("max-depth")
	return cli.Options{
		ScenePath: scene,
		LogLevel:  level,
		LogFormat: format,
		Debug:     debug,
		MaxDepth:  depth,
	}
}
