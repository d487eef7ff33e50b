package tests

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/rivercross/pkg/domain"
	"github.com/aretw0/rivercross/pkg/ports"
)

// PuzzleLoaderContractTest is a reusable test suite that verifies if an adapter complies with ports.PuzzleLoader.
func PuzzleLoaderContractTest(t *testing.T, loader ports.PuzzleLoader, want map[string]domain.Puzzle) {
	t.Helper()
	ctx := context.Background()

	t.Run("GetPuzzle_Success", func(t *testing.T) {
		for id, expected := range want {
			got, err := loader.GetPuzzle(ctx, id)
			if err != nil {
				t.Fatalf("unexpected error getting puzzle %s: %v", id, err)
			}
			a, err := expected.Compile()
			if err != nil {
				t.Fatalf("fixture %s does not compile: %v", id, err)
			}
			b, err := got.Compile()
			if err != nil {
				t.Fatalf("loaded puzzle %s does not compile: %v", id, err)
			}
			if a.Fingerprint() != b.Fingerprint() {
				t.Errorf("definition mismatch for %s. got %+v, want %+v", id, got, expected)
			}
		}
	})

	t.Run("GetPuzzle_NotFound", func(t *testing.T) {
		_, err := loader.GetPuzzle(ctx, "non-existent-puzzle")
		if !errors.Is(err, domain.ErrPuzzleNotFound) {
			t.Errorf("expected ErrPuzzleNotFound for non-existent puzzle, got %v", err)
		}
	})

	t.Run("ListPuzzles", func(t *testing.T) {
		ids, err := loader.ListPuzzles(ctx)
		if err != nil {
			t.Fatalf("unexpected error listing puzzles: %v", err)
		}

		if len(ids) != len(want) {
			t.Errorf("expected %d puzzles, got %d (%v)", len(want), len(ids), ids)
		}

		lookup := make(map[string]bool)
		for _, id := range ids {
			lookup[id] = true
		}
		for id := range want {
			if !lookup[id] {
				t.Errorf("puzzle %s missing from list", id)
			}
		}
	})
}
