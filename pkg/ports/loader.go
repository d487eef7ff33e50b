package ports

import (
	"context"

	"github.com/aretw0/rivercross/pkg/domain"
)

// PuzzleLoader defines how the engine retrieves puzzle definitions.
// This allows the storage layer (Loam, FS, Memory) to be decoupled.
type PuzzleLoader interface {
	// GetPuzzle retrieves a definition by ID.
	// Returns domain.ErrPuzzleNotFound (wrapped) if the ID is unknown.
	GetPuzzle(ctx context.Context, id string) (domain.Puzzle, error)

	// ListPuzzles returns the IDs of every available definition, sorted.
	ListPuzzles(ctx context.Context) ([]string, error)
}

// Watchable defines an interface for loaders that can notify about backend changes.
// This is typically used for hot-reload or dev-mode functionality.
type Watchable interface {
	// Watch returns a channel that receives the ID of every changed definition.
	// The channel is closed when ctx is done.
	Watch(ctx context.Context) (<-chan string, error)
}
