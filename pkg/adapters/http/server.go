package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/circuit"
	"github.com/aretw0/circuit/internal/presentation/graph"
	"github.com/aretw0/circuit/pkg/domain"
	"github.com/aretw0/circuit/pkg/ports"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Engine defines the circuit operations the HTTP API drives.
type Engine interface {
	ports.Engine
}

// Server exposes one circuit as a JSON API.
type Server struct {
	Engine  Engine
	Streams *StreamManager
	Logger  *slog.Logger
}

// ConnectRequest is the body of POST /links.
type ConnectRequest struct {
	From domain.TerminalID `json:"from"`
	To   domain.TerminalID `json:"to"`
}

// SwitchRequest is the body of PUT /switches/{id}.
type SwitchRequest struct {
	Up *bool `json:"up"`
}

// OperationResponse is returned by every mutating endpoint.
type OperationResponse struct {
	Classification domain.Classification `json:"classification"`
	Snapshot       domain.Snapshot       `json:"snapshot"`
}

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Error string `json:"error"`
}

// httpOrigin marks switch changes made through this API.
const httpOrigin = "http"

// NewHandler creates a new HTTP handler for the engine.
// streams receives engine events only if its Hooks were registered on the
// engine; the handler only serves them.
func NewHandler(engine Engine, streams *StreamManager, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	if streams == nil {
		streams = NewStreamManager(logger)
	}
	s := &Server{
		Engine:  engine,
		Streams: streams,
		Logger:  logger,
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(enableCORS)

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/circuit", s.GetCircuit)
	r.Post("/circuit/test", s.Test)
	r.Get("/scene", s.GetScene)
	r.Get("/graph", s.GetGraph)
	r.Post("/links", s.Connect)
	r.Delete("/links/{terminal}", s.Disconnect)
	r.Put("/switches/{id}", s.SetSwitch)
	r.Post("/switches/{id}/toggle", s.Toggle)
	r.Get("/events", s.SubscribeEvents)

	return r
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":     "circuit-http",
		"version": strings.TrimSpace(circuit.Version),
	})
}

// GetCircuit handles the GET /circuit request.
func (s *Server) GetCircuit(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.Engine.Snapshot())
}

// GetScene handles the GET /scene request.
func (s *Server) GetScene(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.Engine.Inspect())
}

// GetGraph handles the GET /graph request with a Mermaid flowchart.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request) {
	out := graph.GenerateMermaid(s.Engine.Inspect(), graph.OverlayFromSnapshot(s.Engine.Snapshot()))
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, out)
}

// Test handles the POST /circuit/test request.
func (s *Server) Test(w http.ResponseWriter, r *http.Request) {
	class := s.Engine.Test(r.Context())
	s.respond(w, class, nil)
}

// Connect handles the POST /links request.
func (s *Server) Connect(w http.ResponseWriter, r *http.Request) {
	var body ConnectRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		s.Logger.Warn("Connect: Invalid request body", "error", err)
		return
	}
	if body.From == "" || body.To == "" {
		s.writeError(w, http.StatusBadRequest, errors.New("from and to are required"))
		return
	}

	class, err := s.Engine.Connect(r.Context(), body.From, body.To)
	s.respond(w, class, err)
}

// Disconnect handles the DELETE /links/{terminal} request.
func (s *Server) Disconnect(w http.ResponseWriter, r *http.Request) {
	terminal := domain.TerminalID(chi.URLParam(r, "terminal"))
	class, err := s.Engine.Disconnect(r.Context(), terminal)
	s.respond(w, class, err)
}

// SetSwitch handles the PUT /switches/{id} request.
func (s *Server) SetSwitch(w http.ResponseWriter, r *http.Request) {
	var body SwitchRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Up == nil {
		s.writeError(w, http.StatusBadRequest, errors.New(`invalid request body: want {"up": true|false}`))
		return
	}

	class, err := s.Engine.SetSwitch(r.Context(), chi.URLParam(r, "id"), *body.Up, httpOrigin)
	s.respond(w, class, err)
}

// Toggle handles the POST /switches/{id}/toggle request.
func (s *Server) Toggle(w http.ResponseWriter, r *http.Request) {
	class, err := s.Engine.Toggle(r.Context(), chi.URLParam(r, "id"), httpOrigin)
	s.respond(w, class, err)
}

// SubscribeEvents handles the GET /events request (SSE).
// The optional "types" query parameter filters by event type (comma separated).
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		s.Logger.Error("SubscribeEvents: Streaming not supported")
		return
	}

	var types []domain.EventType
	if raw := r.URL.Query().Get("types"); raw != "" {
		for _, t := range strings.Split(raw, ",") {
			if t = strings.TrimSpace(t); t != "" {
				types = append(types, domain.EventType(t))
			}
		}
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch, cancel := s.Streams.Subscribe(types...)
	defer cancel()
	s.Logger.Info("SSE: Client subscribed", "types", types)

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			s.Logger.Info("SSE: Client disconnected")
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", msg.Event, msg.Data)
			flusher.Flush()
		}
	}
}

func (s *Server) respond(w http.ResponseWriter, class domain.Classification, err error) {
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}
	s.writeJSON(w, http.StatusOK, OperationResponse{
		Classification: class,
		Snapshot:       s.Engine.Snapshot(),
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrUnknownComponent), errors.Is(err, domain.ErrUnknownTerminal):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidTerminalID), errors.Is(err, domain.ErrNotASwitch):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		s.Logger.Error("request failed", "error", err)
	}
	s.writeJSON(w, status, ErrorResponse{Error: err.Error()})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error("response encode failed", "error", err)
	}
}
