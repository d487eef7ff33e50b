package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/rivercross"
	"github.com/aretw0/rivercross/internal/presentation/graph"
	"github.com/aretw0/rivercross/pkg/adapters/file"
	"github.com/aretw0/rivercross/pkg/domain"
	"github.com/aretw0/rivercross/pkg/ports"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// PuzzleList is the structured result of list_puzzles.
type PuzzleList struct {
	Puzzles []string `json:"puzzles" jsonschema_description:"IDs of the puzzles the server can solve"`
}

// Engine defines the interface required by the MCP server.
type Engine interface {
	ports.Solver
}

// Server wraps the solver and exposes it as an MCP Server.
type Server struct {
	engine    Engine
	mcpServer *server.MCPServer
	maxPaths  int
}

// ServerOption configures NewServer.
type ServerOption func(*Server)

// WithMaxPaths caps the number of paths one tool call may enumerate.
// limit=0 and larger limits are clamped to n; a graph path beyond n is rejected.
func WithMaxPaths(n int) ServerOption {
	return func(s *Server) {
		s.maxPaths = n
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(engine Engine, opts ...ServerOption) *Server {
	s := &Server{
		engine:    engine,
		mcpServer: server.NewMCPServer("rivercross-mcp", rivercross.Version),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
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

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		slog.Info("Shutdown signal received, shutting down MCP server")
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

func (s *Server) registerTools() {
	// TOOL: solve_puzzle
	solveTool := mcp.NewTool("solve_puzzle",
		mcp.WithDescription("Solve a river-crossing puzzle, either a known one by ID or an inline definition."),
		mcp.WithString("id", mcp.Description("ID of a puzzle known to the server (see list_puzzles)")),
		mcp.WithObject("definition", mcp.Description("Inline definition: characters, boat {capacity, drivers, restricted_boat_states}, restricted_states, initial_state")),
		mcp.WithNumber("limit", mcp.Description("Stop after this many paths (0 = all, bounded by the server cap)")),
		mcp.WithBoolean("paths", mcp.Description("Set to false to report solvability only")),
		mcp.WithOutputSchema[domain.Report](),
	)
	s.mcpServer.AddTool(solveTool, mcp.NewStructuredToolHandler(s.handleSolve))

	// TOOL: list_puzzles
	listTool := mcp.NewTool("list_puzzles",
		mcp.WithDescription("List the IDs of the puzzles known to the server."),
		mcp.WithOutputSchema[PuzzleList](),
	)
	s.mcpServer.AddTool(listTool, mcp.NewStructuredToolHandler(s.handleList))

	// TOOL: get_graph
	s.mcpServer.AddTool(mcp.NewTool("get_graph",
		mcp.WithDescription("Get the state graph of a puzzle as a Mermaid flowchart."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Puzzle ID")),
		mcp.WithNumber("path", mcp.Description("Highlight this solution path (1-based, optional)")),
	), s.handleGetGraph)

	// TOOL: get_machine
	s.mcpServer.AddTool(mcp.NewTool("get_machine",
		mcp.WithDescription("Get the states and named triggers of a puzzle for state-machine integration."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Puzzle ID")),
	), s.handleGetMachine)
}

// Handler methods for structured tools

func (s *Server) handleSolve(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (domain.Report, error) {
	opts, err := s.solveOptions(args)
	if err != nil {
		return domain.Report{}, err
	}

	var sol *domain.Solution
	switch def := args["definition"].(type) {
	case nil:
		id, _ := args["id"].(string)
		if id == "" {
			return domain.Report{}, errors.New("either id or definition is required")
		}
		sol, err = s.engine.SolveByID(ctx, id, opts...)
	case map[string]any:
		var p domain.Puzzle
		if p, err = file.FromMap(def); err == nil {
			sol, err = s.engine.Solve(ctx, p, opts...)
		}
	case string:
		var p domain.Puzzle
		if p, err = file.Decode([]byte(def), file.FormatJSON); err == nil {
			sol, err = s.engine.Solve(ctx, p, opts...)
		}
	default:
		return domain.Report{}, fmt.Errorf("definition must be an object, got %T", def)
	}
	if err != nil {
		slog.Warn("MCP Solve: rejected", "err", err)
		return domain.Report{}, fmt.Errorf("solve failed: %w", err)
	}

	return *sol.Report(), nil
}

func (s *Server) handleList(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (PuzzleList, error) {
	ids, err := s.engine.ListPuzzles(ctx)
	if err != nil {
		return PuzzleList{}, fmt.Errorf("list failed: %w", err)
	}
	if ids == nil {
		ids = []string{}
	}
	return PuzzleList{Puzzles: ids}, nil
}

func (s *Server) handleGetGraph(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	id, _ := args["id"].(string)
	n, err := integer(args, "path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if s.maxPaths > 0 && n > s.maxPaths {
		return mcp.NewToolResultError(fmt.Sprintf("path must not exceed %d, got %d", s.maxPaths, n)), nil
	}

	opts := []domain.SolveOption{domain.WithoutPaths()}
	if n > 0 {
		opts = []domain.SolveOption{domain.WithPathLimit(n)}
	}

	sol, err := s.engine.SolveByID(ctx, id, opts...)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("solve failed: %v", err)), nil
	}

	var overlay *graph.PathOverlay
	if n > 0 {
		if n > len(sol.Paths) {
			return mcp.NewToolResultError(fmt.Sprintf("path %d does not exist (%d found)", n, len(sol.Paths))), nil
		}
		overlay = &graph.PathOverlay{Path: sol.Paths[n-1]}
	}
	return mcp.NewToolResultText(graph.GenerateMermaid(sol, overlay)), nil
}

func (s *Server) handleGetMachine(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, _ := request.GetArguments()["id"].(string)

	sol, err := s.engine.SolveByID(ctx, id, domain.WithoutPaths())
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("solve failed: %v", err)), nil
	}
	jsonBytes, _ := json.Marshal(sol.Machine())
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) registerResources() {
	// EXPOSE: rivercross://puzzles
	s.mcpServer.AddResource(mcp.NewResource("rivercross://puzzles", "Known Puzzles",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		list, err := s.handleList(ctx, mcp.CallToolRequest{}, nil)
		if err != nil {
			return nil, err
		}
		jsonBytes, _ := json.Marshal(list)

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "rivercross://puzzles",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}

func (s *Server) solveOptions(args map[string]any) ([]domain.SolveOption, error) {
	var opts []domain.SolveOption
	if _, ok := args["limit"]; ok {
		n, err := integer(args, "limit")
		if err != nil {
			return nil, err
		}
		if s.maxPaths > 0 && (n == 0 || n > s.maxPaths) {
			n = s.maxPaths
		}
		opts = append(opts, domain.WithPathLimit(n))
	}
	if enabled, ok := args["paths"].(bool); ok && !enabled {
		opts = append(opts, domain.WithoutPaths())
	}
	return opts, nil
}

// integer reads a non-negative whole number argument; JSON numbers arrive as float64.
func integer(args map[string]any, name string) (int, error) {
	switch v := args[name].(type) {
	case nil:
		return 0, nil
	case float64:
		if v < 0 || v != float64(int(v)) {
			return 0, fmt.Errorf("%s must be a non-negative integer, got %v", name, v)
		}
		return int(v), nil
	case int:
		if v < 0 {
			return 0, fmt.Errorf("%s must be a non-negative integer, got %d", name, v)
		}
		return v, nil
	default:
		return 0, fmt.Errorf("%s must be a number, got %T", name, v)
	}
}
