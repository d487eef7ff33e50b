package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/aretw0/rivercross/pkg/domain"
)

// Store implements ports.SolutionStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]*domain.Report
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*domain.Report),
	}
}

// Save persists a copy of the report.
func (s *Store) Save(ctx context.Context, fingerprint string, report *domain.Report) error {
	copied := cloneReport(report)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[fingerprint] = copied
	return nil
}

// Load retrieves a copy of the cached report so callers cannot mutate the store.
func (s *Store) Load(ctx context.Context, fingerprint string) (*domain.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.data[fingerprint]
	if !ok {
		return nil, domain.ErrSolutionNotFound
	}
	return cloneReport(r), nil
}

// Delete removes the report.
func (s *Store) Delete(ctx context.Context, fingerprint string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, fingerprint)
	return nil
}

// List returns the cached fingerprints.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, 0, len(s.data))
	for fp := range s.data {
		out = append(out, fp)
	}
	return out, nil
}

func cloneReport(r *domain.Report) *domain.Report {
	c := *r
	c.Characters = slices.Clone(r.Characters)
	c.States = slices.Clone(r.States)
	c.Transitions = slices.Clone(r.Transitions)
	c.Paths = cloneGroups(r.Paths)
	return &c
}
