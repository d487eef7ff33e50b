package memory

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"sync"

	"github.com/aretw0/rivercross/pkg/domain"
)

// Loader implements ports.PuzzleLoader using an in-memory map.
// Safe for concurrent use.
type Loader struct {
	mu      sync.RWMutex
	puzzles map[string]domain.Puzzle
}

// NewLoader creates a new Loader holding the given definitions by ID.
func NewLoader(puzzles map[string]domain.Puzzle) *Loader {
	l := &Loader{puzzles: make(map[string]domain.Puzzle, len(puzzles))}
	for id, p := range puzzles {
		l.puzzles[id] = clonePuzzle(p)
	}
	return l
}

// NewFromPuzzles creates a Loader keyed by each puzzle's Name.
// This improves DX for tests and examples.
func NewFromPuzzles(puzzles ...domain.Puzzle) (*Loader, error) {
	data := make(map[string]domain.Puzzle, len(puzzles))
	for _, p := range puzzles {
		if p.Name == "" {
			return nil, fmt.Errorf("puzzle missing name")
		}
		if _, dup := data[p.Name]; dup {
			return nil, fmt.Errorf("duplicate puzzle name %q", p.Name)
		}
		data[p.Name] = p
	}
	return NewLoader(data), nil
}

// Put adds or replaces a definition.
func (l *Loader) Put(id string, p domain.Puzzle) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.puzzles[id] = clonePuzzle(p)
}

// GetPuzzle retrieves a definition by ID.
func (l *Loader) GetPuzzle(_ context.Context, id string) (domain.Puzzle, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	p, ok := l.puzzles[id]
	if !ok {
		return domain.Puzzle{}, fmt.Errorf("%w: %s", domain.ErrPuzzleNotFound, id)
	}
	if p.Name == "" {
		p.Name = id
	}
	return clonePuzzle(p), nil
}

// ListPuzzles returns all available IDs.
func (l *Loader) ListPuzzles(_ context.Context) ([]string, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	keys := make([]string, 0, len(l.puzzles))
	for k := range l.puzzles {
		keys = append(keys, k)
	}
	sort.Strings(keys) // Deterministic order
	return keys, nil
}

func clonePuzzle(p domain.Puzzle) domain.Puzzle {
	p.Characters = slices.Clone(p.Characters)
	p.Boat.Drivers = slices.Clone(p.Boat.Drivers)
	p.Boat.RestrictedBoatStates = cloneGroups(p.Boat.RestrictedBoatStates)
	p.RestrictedStates = cloneGroups(p.RestrictedStates)
	p.InitialState = slices.Clone(p.InitialState)
	return p
}

func cloneGroups(groups [][]string) [][]string {
	if groups == nil {
		return nil
	}
	out := make([][]string, len(groups))
	for i, g := range groups {
		out[i] = slices.Clone(g)
	}
	return out
}
