package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/rivercross/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// SampleReport returns a small, fully populated report for store tests.
func SampleReport(runID string) *domain.Report {
	return &domain.Report{
		RunID:       runID,
		Puzzle:      "trivial",
		Fingerprint: "fp-" + runID,
		Characters:  []string{"A"},
		Initial:     "A|",
		Goal:        "|A",
		States:      []string{"A|", "|A"},
		Transitions: []domain.TransitionRecord{
			{From: "A|", Condition: domain.SideLeft, To: "|A", Group: "A"},
			{From: "|A", Condition: domain.SideRight, To: "A|", Group: "A"},
		},
		Paths:       [][]string{{"A|", "|A"}},
		Solvable:    true,
		Stats:       domain.Stats{States: 2, Transitions: 2, Paths: 1, Duration: 3 * time.Millisecond},
		GeneratedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

// RunSolutionStoreContract runs a suite of tests to verify that a SolutionStore implementation
// adheres to the defined interface contract.
func RunSolutionStoreContract(t *testing.T, store SolutionStore) {
	ctx := context.Background()
	fingerprint := "contract-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		report := SampleReport("run-1")

		require.NoError(t, store.Save(ctx, fingerprint, report), "Save should not return error")

		loaded, err := store.Load(ctx, fingerprint)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, report.RunID, loaded.RunID)
		assert.Equal(t, report.States, loaded.States)
		assert.Equal(t, report.Transitions, loaded.Transitions)
		assert.Equal(t, report.Paths, loaded.Paths)
		assert.Equal(t, report.Stats, loaded.Stats)
		assert.True(t, report.GeneratedAt.Equal(loaded.GeneratedAt))
	})

	t.Run("Save Replaces", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, fingerprint, SampleReport("run-2")))

		loaded, err := store.Load(ctx, fingerprint)
		require.NoError(t, err)
		assert.Equal(t, "run-2", loaded.RunID)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+fingerprint)
		assert.ErrorIs(t, err, domain.ErrSolutionNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, fingerprint, SampleReport("run-3")))

		require.NoError(t, store.Delete(ctx, fingerprint), "Delete should not return error")

		_, err := store.Load(ctx, fingerprint)
		assert.ErrorIs(t, err, domain.ErrSolutionNotFound, "Load after Delete should return ErrSolutionNotFound")

		assert.NoError(t, store.Delete(ctx, fingerprint), "Deleting twice is not an error")
	})

	t.Run("List", func(t *testing.T) {
		fp1 := fingerprint + "-1"
		fp2 := fingerprint + "-2"
		require.NoError(t, store.Save(ctx, fp1, SampleReport("a")))
		require.NoError(t, store.Save(ctx, fp2, SampleReport("b")))

		defer func() {
			_ = store.Delete(ctx, fp1)
			_ = store.Delete(ctx, fp2)
		}()

		fingerprints, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, fingerprints, fp1)
		assert.Contains(t, fingerprints, fp2)
	})
}
