package ports

import (
	"context"

	"github.com/aretw0/rivercross/pkg/domain"
)

// SolutionStore defines the interface for caching solved puzzles.
// Reports are keyed by the fingerprint of the compiled definition.
type SolutionStore interface {
	// Save persists the report under the given fingerprint, replacing any previous one.
	Save(ctx context.Context, fingerprint string, report *domain.Report) error

	// Load retrieves the report for a fingerprint.
	// Returns domain.ErrSolutionNotFound if nothing is cached.
	Load(ctx context.Context, fingerprint string) (*domain.Report, error)

	// Delete removes the report for a fingerprint. Deleting a missing entry is not an error.
	Delete(ctx context.Context, fingerprint string) error

	// List returns the cached fingerprints.
	List(ctx context.Context) ([]string, error)
}
