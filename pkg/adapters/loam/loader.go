package loam

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/loam"
	"github.com/aretw0/rivercross/pkg/domain"
)

// Loader adapts the Loam library to the PuzzleLoader interface.
type Loader struct {
	Repo *loam.TypedRepository[PuzzleMetadata]
}

// New creates a new Loam adapter.
func New(repo *loam.TypedRepository[PuzzleMetadata]) *Loader {
	return &Loader{
		Repo: repo,
	}
}

// Open initializes a read-only Loam repository at dir and wraps it.
func Open(dir string) (*Loader, error) {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}

	// Strict mode keeps JSON and YAML numbers integral; the solver never writes.
	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}
	return New(loam.NewTypedRepository[PuzzleMetadata](repo)), nil
}

// GetPuzzle retrieves a puzzle definition by its normalized ID.
func (l *Loader) GetPuzzle(ctx context.Context, id string) (domain.Puzzle, error) {
	index, err := l.index(ctx)
	if err != nil {
		return domain.Puzzle{}, err
	}

	docID, ok := index[trimExtension(id)]
	if !ok {
		return domain.Puzzle{}, fmt.Errorf("%w: %s", domain.ErrPuzzleNotFound, id)
	}

	// Loam resolves extension-less IDs (e.g. "missionaries" -> missionaries.json).
	doc, err := l.Repo.Get(ctx, trimExtension(docID))
	if err != nil {
		var rawErr error
		if doc, rawErr = l.Repo.Get(ctx, docID); rawErr != nil {
			return domain.Puzzle{}, fmt.Errorf("loam get failed for %s: %w", id, err)
		}
	}

	p, err := doc.Data.Definition(doc.Content).Puzzle()
	if err != nil {
		return domain.Puzzle{}, fmt.Errorf("puzzle %s: %w", id, err)
	}
	if p.Name == "" {
		p.Name = trimExtension(id)
	}
	return p, nil
}

// ListPuzzles lists all puzzle IDs in the repository, sorted.
func (l *Loader) ListPuzzles(ctx context.Context) ([]string, error) {
	index, err := l.index(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(index))
	for id := range index {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// index maps normalized puzzle IDs to Loam document IDs.
func (l *Loader) index(ctx context.Context) (map[string]string, error) {
	docs, err := l.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	seen := make(map[string]string, len(docs))
	for _, doc := range docs {
		// Use the ID from metadata if available, otherwise filename ID
		rawID := doc.Data.ID
		if rawID == "" {
			rawID = doc.ID
		}
		id := trimExtension(rawID)

		if existing, ok := seen[id]; ok {
			return nil, fmt.Errorf("collision detected: ID '%s' is defined in both '%s' and '%s'", id, existing, doc.ID)
		}
		seen[id] = doc.ID
	}
	return seen, nil
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}

// Watch implements ports.Watchable.
func (l *Loader) Watch(ctx context.Context) (<-chan string, error) {
	events, err := l.Repo.Watch(ctx, "**/*.{md,json,yaml,yml}")
	if err != nil {
		return nil, fmt.Errorf("failed to start loam watcher: %w", err)
	}

	ch := make(chan string, 1)

	go func() {
		defer close(ch)
		for {
			select {
			case <-ctx.Done():
				return
			case evt, ok := <-events:
				if !ok {
					return
				}
				// Loam debounces on its side; pass the normalized ID up.
				select {
				case ch <- trimExtension(evt.ID):
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return ch, nil
}
