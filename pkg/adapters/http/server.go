package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/aretw0/rivercross"
	"github.com/aretw0/rivercross/internal/presentation/graph"
	"github.com/aretw0/rivercross/pkg/adapters/file"
	"github.com/aretw0/rivercross/pkg/domain"
	"github.com/aretw0/rivercross/pkg/ports"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MaxBodyBytes bounds inline definitions posted to /solve.
const MaxBodyBytes = 1 << 20

var errBadQuery = errors.New("invalid query parameter")

// Engine defines what the HTTP API needs from the solver.
type Engine interface {
	ports.Solver
	Watch(ctx context.Context) (<-chan string, error)
}

// Server holds the HTTP handlers.
type Server struct {
	Engine Engine
	// MaxPaths bounds ?limit and ?path. Zero leaves them unbounded.
	MaxPaths int
}

// HandlerOption configures NewHandler.
type HandlerOption func(*handlerConfig)

type handlerConfig struct {
	gatherer prometheus.Gatherer
	maxPaths int
}

// WithMetrics exposes the gatherer's collectors on GET /metrics.
func WithMetrics(g prometheus.Gatherer) HandlerOption {
	return func(c *handlerConfig) {
		c.gatherer = g
	}
}

// WithMaxPaths caps the number of paths one request may enumerate.
// ?limit=0 and larger limits are clamped to n; ?path beyond n is rejected.
func WithMaxPaths(n int) HandlerOption {
	return func(c *handlerConfig) {
		c.maxPaths = n
	}
}

// NewHandler creates a new HTTP handler for the engine.
func NewHandler(engine Engine, opts ...HandlerOption) http.Handler {
	var cfg handlerConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	server := &Server{Engine: engine, MaxPaths: cfg.maxPaths}
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/health", server.GetHealth)
	r.Get("/info", server.GetInfo)
	r.Get("/events", server.SubscribeEvents)
	r.Post("/solve", server.Solve)
	r.Route("/puzzles", func(r chi.Router) {
		r.Get("/", server.ListPuzzles)
		r.Get("/{id}/solution", server.GetSolution)
		r.Get("/{id}/machine", server.GetMachine)
		r.Get("/{id}/graph", server.GetGraph)
	})
	if cfg.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(cfg.gatherer, promhttp.HandlerOpts{}))
	}

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Solve handles the POST /solve request. The body is a JSON puzzle definition.
func (s *Server) Solve(w http.ResponseWriter, r *http.Request) {
	opts, err := s.solveOptions(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		http.Error(w, "Invalid request body", http.StatusRequestEntityTooLarge)
		slog.Warn("Solve: Invalid request body", "err", err)
		return
	}

	p, err := file.Decode(body, file.FormatJSON)
	if err != nil {
		writeError(w, r, err)
		return
	}

	sol, err := s.Engine.Solve(r.Context(), p, opts...)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sol.Report())
}

// ListPuzzles handles the GET /puzzles request.
func (s *Server) ListPuzzles(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Engine.ListPuzzles(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	writeJSON(w, http.StatusOK, map[string][]string{"puzzles": ids})
}

// GetSolution handles the GET /puzzles/{id}/solution request.
func (s *Server) GetSolution(w http.ResponseWriter, r *http.Request) {
	opts, err := s.solveOptions(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	sol, err := s.Engine.SolveByID(r.Context(), chi.URLParam(r, "id"), opts...)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sol.Report())
}

// GetMachine handles the GET /puzzles/{id}/machine request.
func (s *Server) GetMachine(w http.ResponseWriter, r *http.Request) {
	sol, err := s.Engine.SolveByID(r.Context(), chi.URLParam(r, "id"), domain.WithoutPaths())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sol.Machine())
}

// GetGraph handles the GET /puzzles/{id}/graph request.
// ?path=N (1-based) overlays the N-th path on the Mermaid output.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request) {
	n, err := queryInt(r, "path")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if s.MaxPaths > 0 && n > s.MaxPaths {
		writeError(w, r, queryError("path", strconv.Itoa(n), fmt.Sprintf("must not exceed %d", s.MaxPaths)))
		return
	}

	var opts []domain.SolveOption
	if n == 0 {
		opts = append(opts, domain.WithoutPaths())
	} else {
		opts = append(opts, domain.WithPathLimit(n))
	}

	sol, err := s.Engine.SolveByID(r.Context(), chi.URLParam(r, "id"), opts...)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var overlay *graph.PathOverlay
	if n > 0 {
		if n > len(sol.Paths) {
			http.Error(w, fmt.Sprintf("path %d does not exist (%d found)", n, len(sol.Paths)), http.StatusNotFound)
			return
		}
		overlay = &graph.PathOverlay{Path: sol.Paths[n-1]}
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, graph.GenerateMermaid(sol, overlay))
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"app":     "rivercross-http",
		"version": rivercross.Version,
	})
}

// SubscribeEvents handles the GET /events request (SSE).
// Each event carries the ID of a puzzle definition that changed.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		slog.Error("SubscribeEvents: Streaming not supported")
		return
	}

	events, err := s.Engine.Watch(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("Watch error: %v", err), http.StatusNotImplemented)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			slog.Info("SSE Client Disconnected")
			return
		case id, ok := <-events:
			if !ok {
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", id)
			flusher.Flush()
		}
	}
}

// -- Helpers --

type fieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
	Value  any    `json:"value,omitempty"`
}

type errorResponse struct {
	Error  string       `json:"error"`
	Fields []fieldError `json:"fields,omitempty"`
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	resp := errorResponse{Error: err.Error()}
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, domain.ErrInvalidPuzzle), errors.Is(err, errBadQuery):
		status = http.StatusBadRequest
		for _, fe := range domain.FieldErrors(err) {
			resp.Fields = append(resp.Fields, fieldError{Field: fe.Field, Reason: fe.Reason, Value: fe.Value})
		}
	case errors.Is(err, domain.ErrPuzzleNotFound):
		status = http.StatusNotFound
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		status = http.StatusServiceUnavailable
	}

	if status == http.StatusInternalServerError {
		slog.Error("Request failed", "path", r.URL.Path, "err", err)
	} else {
		slog.Debug("Request rejected", "path", r.URL.Path, "status", status, "err", err)
	}
	writeJSON(w, status, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Response encode failed", "err", err)
	}
}

// solveOptions reads ?limit=N and ?paths=false.
func (s *Server) solveOptions(r *http.Request) ([]domain.SolveOption, error) {
	var opts []domain.SolveOption

	limit, err := queryInt(r, "limit")
	if err != nil {
		return nil, err
	}
	if r.URL.Query().Has("limit") {
		if s.MaxPaths > 0 && (limit == 0 || limit > s.MaxPaths) {
			limit = s.MaxPaths
		}
		opts = append(opts, domain.WithPathLimit(limit))
	}

	if raw := r.URL.Query().Get("paths"); raw != "" {
		enabled, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, queryError("paths", raw, "must be a boolean")
		}
		if !enabled {
			opts = append(opts, domain.WithoutPaths())
		}
	}
	return opts, nil
}

func queryInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, queryError(name, raw, "must be a non-negative integer")
	}
	return n, nil
}

func queryError(name, raw, reason string) error {
	return &domain.InputError{Field: name, Value: raw, Reason: reason, Err: errBadQuery}
}
