package ports

import (
	"context"

	"github.com/aretw0/rivercross/pkg/domain"
)

// Solver is the driving port used by transport adapters (HTTP, MCP).
type Solver interface {
	// Solve validates and solves an inline definition.
	Solve(ctx context.Context, p domain.Puzzle, opts ...domain.SolveOption) (*domain.Solution, error)

	// SolveByID loads a definition through the configured loader and solves it.
	SolveByID(ctx context.Context, id string, opts ...domain.SolveOption) (*domain.Solution, error)

	// ListPuzzles returns the IDs known to the configured loader.
	ListPuzzles(ctx context.Context) ([]string, error)
}
