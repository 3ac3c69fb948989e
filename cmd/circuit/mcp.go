package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/circuit/internal/cli"
	"github.com/aretw0/circuit/pkg/adapters/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp [scene]",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Exposes the circuit to AI agents as MCP tools (status, test, connect,
disconnect, set_switch) and resources (circuit://scene, circuit://graph).

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := optionsFrom(cmd, args)
		transport, _ := cmd.Flags().GetString("transport")
		port, _ := cmd.Flags().GetInt("port")

		if opts.LogLevel == "" {
			opts.LogLevel = "info"
		}
		logger, err := cli.NewLogger(opts)
		if err != nil {
			return err
		}
		c, err := cli.NewCircuit(opts, logger)
		if err != nil {
			return err
		}

		srv := mcp.NewServer(c, logger)

		switch transport {
		case "stdio":
			// Ensure logs don't corrupt JSON-RPC on Stdout
			log.SetOutput(os.Stderr)
			logger.Info("Starting Circuit MCP Server (Stdio)...", "scene", c.Name)
			return srv.ServeStdio()
		case "sse":
			logger.Info("Starting Circuit MCP Server (SSE)", "port", port, "scene", c.Name)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := srv.ServeSSE(ctx, port); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			logger.Info("MCP Server stopped gracefully")
			return nil
		default:
			return fmt.Errorf("unknown transport: %s. Supported: stdio, sse", transport)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().Int("port", 8080, "Port to listen on (only for SSE)")
}
