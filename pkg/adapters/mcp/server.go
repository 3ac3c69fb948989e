package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/circuit"
	"github.com/aretw0/circuit/internal/presentation/graph"
	"github.com/aretw0/circuit/pkg/domain"
	"github.com/aretw0/circuit/pkg/ports"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// OperationResponse provides a unified structure across adapters.
type OperationResponse struct {
	Classification domain.Classification `json:"classification" jsonschema_description:"Circuit classification after the operation: open, closed, short or incomplete"`
	Snapshot       domain.Snapshot       `json:"snapshot" jsonschema_description:"Full circuit state after the operation"`
}

// Engine defines the interface required by the MCP server to drive a circuit.
type Engine interface {
	ports.Engine
}

// Server wraps a circuit and exposes it as an MCP Server.
type Server struct {
	engine    Engine
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// mcpOrigin marks switch changes made by an agent.
const mcpOrigin = "mcp"

// NewServer creates a new MCP Server instance.
func NewServer(engine Engine, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		engine:    engine,
		logger:    logger,
		mcpServer: server.NewMCPServer("circuit-mcp", strings.TrimSpace(circuit.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and stops it when ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		// Create a timeout context for the graceful shutdown
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("Shutdown signal received, shutting down MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

type connectArgs struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type disconnectArgs struct {
	Terminal string `json:"terminal"`
}

type switchArgs struct {
	ID string `json:"id"`
	Up *bool  `json:"up"`
}

func (s *Server) registerTools() {
	// TOOL: status
	s.mcpServer.AddTool(mcp.NewTool("status",
		mcp.WithDescription("Get the circuit state left by the last trace, without tracing again."),
		mcp.WithOutputSchema[OperationResponse](),
	), mcp.NewStructuredToolHandler(s.handleStatus))

	// TOOL: test
	s.mcpServer.AddTool(mcp.NewTool("test",
		mcp.WithDescription("Trace the circuit from the power source and classify it as open, closed or short."),
		mcp.WithOutputSchema[OperationResponse](),
	), mcp.NewStructuredToolHandler(s.handleTest))

	// TOOL: connect
	s.mcpServer.AddTool(mcp.NewTool("connect",
		mcp.WithDescription("Link two terminals. Links already on either terminal are removed first."),
		mcp.WithString("from", mcp.Required(), mcp.Description("Initiating terminal, as <component>.<terminal> (e.g. R1.b)")),
		mcp.WithString("to", mcp.Required(), mcp.Description("Receiving terminal, as <component>.<terminal>")),
		mcp.WithOutputSchema[OperationResponse](),
	), mcp.NewStructuredToolHandler(s.handleConnect))

	// TOOL: disconnect
	s.mcpServer.AddTool(mcp.NewTool("disconnect",
		mcp.WithDescription("Remove the outgoing link of a terminal. A terminal that only receives a link is left as is."),
		mcp.WithString("terminal", mcp.Required(), mcp.Description("Terminal, as <component>.<terminal>")),
		mcp.WithOutputSchema[OperationResponse](),
	), mcp.NewStructuredToolHandler(s.handleDisconnect))

	// TOOL: set_switch
	s.mcpServer.AddTool(mcp.NewTool("set_switch",
		mcp.WithDescription("Move a switch to L1 (up) or L2 (down). Omit 'up' to toggle."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Switch component ID")),
		mcp.WithBoolean("up", mcp.Description("true for L1, false for L2")),
		mcp.WithOutputSchema[OperationResponse](),
	), mcp.NewStructuredToolHandler(s.handleSetSwitch))
}

func (s *Server) handleStatus(ctx context.Context, request mcp.CallToolRequest, _ map[string]any) (OperationResponse, error) {
	snap := s.engine.Snapshot()
	return OperationResponse{Classification: snap.Classification, Snapshot: snap}, nil
}

func (s *Server) handleTest(ctx context.Context, request mcp.CallToolRequest, _ map[string]any) (OperationResponse, error) {
	return s.respond(s.engine.Test(ctx), nil)
}

func (s *Server) handleConnect(ctx context.Context, request mcp.CallToolRequest, args connectArgs) (OperationResponse, error) {
	if args.From == "" || args.To == "" {
		return OperationResponse{}, fmt.Errorf("from and to are required")
	}
	return s.respond(s.engine.Connect(ctx, domain.TerminalID(args.From), domain.TerminalID(args.To)))
}

func (s *Server) handleDisconnect(ctx context.Context, request mcp.CallToolRequest, args disconnectArgs) (OperationResponse, error) {
	if args.Terminal == "" {
		return OperationResponse{}, fmt.Errorf("terminal is required")
	}
	return s.respond(s.engine.Disconnect(ctx, domain.TerminalID(args.Terminal)))
}

func (s *Server) handleSetSwitch(ctx context.Context, request mcp.CallToolRequest, args switchArgs) (OperationResponse, error) {
	if args.ID == "" {
		return OperationResponse{}, fmt.Errorf("id is required")
	}
	if args.Up == nil {
		return s.respond(s.engine.Toggle(ctx, args.ID, mcpOrigin))
	}
	return s.respond(s.engine.SetSwitch(ctx, args.ID, *args.Up, mcpOrigin))
}

func (s *Server) respond(class domain.Classification, err error) (OperationResponse, error) {
	if err != nil {
		s.logger.Warn("MCP: operation rejected", "error", err)
		return OperationResponse{}, err
	}
	return OperationResponse{Classification: class, Snapshot: s.engine.Snapshot()}, nil
}

func (s *Server) registerResources() {
	// EXPOSE: circuit://scene
	s.mcpServer.AddResource(mcp.NewResource("circuit://scene", "Current Circuit Topology",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonBytes, err := json.Marshal(s.engine.Inspect())
		if err != nil {
			return nil, fmt.Errorf("failed to encode scene: %w", err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "circuit://scene",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})

	// EXPOSE: circuit://graph
	s.mcpServer.AddResource(mcp.NewResource("circuit://graph", "Circuit Diagram (Mermaid)",
		mcp.WithMIMEType("text/vnd.mermaid"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "circuit://graph",
				MIMEType: "text/vnd.mermaid",
				Text:     graph.GenerateMermaid(s.engine.Inspect(), graph.OverlayFromSnapshot(s.engine.Snapshot())),
			},
		}, nil
	})
}
