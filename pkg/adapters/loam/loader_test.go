package loam

import (
	"context"
	"testing"

	"github.com/aretw0/loam"
	"github.com/aretw0/rivercross/internal/testutils"
	"github.com/aretw0/rivercross/pkg/domain"
	"github.com/aretw0/rivercross/pkg/ports/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const wolfGoatCabbageMD = `---
characters: FWGC
boat:
  capacity: 2
  drivers: F
restricted_states: [WG, GC, WGC]
initial_state: FWGC
---
A farmer must ferry a wolf, a goat and a cabbage across the river.`

const trivialJSON = `{
  "name": "trivial",
  "characters": ["A"],
  "boat": {"capacity": 1, "drivers": ["A"]},
  "initial_state": ["A"]
}`

func newLoader(t *testing.T, files map[string]string) *Loader {
	t.Helper()
	_, repo := testutils.SetupTestRepo(t, files)
	return New(loam.NewTypedRepository[PuzzleMetadata](repo))
}

func TestLoader_Contract(t *testing.T) {
	loader := newLoader(t, map[string]string{
		"wolf-goat-cabbage.md": wolfGoatCabbageMD,
		"trivial.json":         trivialJSON,
	})

	tests.PuzzleLoaderContractTest(t, loader, map[string]domain.Puzzle{
		"wolf-goat-cabbage": {
			Characters:       []string{"F", "W", "G", "C"},
			Boat:             domain.Boat{Capacity: 2, Drivers: []string{"F"}},
			RestrictedStates: [][]string{{"W", "G"}, {"G", "C"}, {"W", "G", "C"}},
			InitialState:     []string{"F", "W", "G", "C"},
		},
		"trivial": {
			Characters:   []string{"A"},
			Boat:         domain.Boat{Capacity: 1, Drivers: []string{"A"}},
			InitialState: []string{"A"},
		},
	})
}

func TestLoader_MarkdownBodyIsDescription(t *testing.T) {
	loader := newLoader(t, map[string]string{"wolf-goat-cabbage.md": wolfGoatCabbageMD})

	p, err := loader.GetPuzzle(context.Background(), "wolf-goat-cabbage")
	require.NoError(t, err)

	assert.Equal(t, "wolf-goat-cabbage", p.Name, "name defaults to the ID")
	assert.Equal(t, "A farmer must ferry a wolf, a goat and a cabbage across the river.", p.Description)
}

func TestLoader_AcceptsExtensionInID(t *testing.T) {
	loader := newLoader(t, map[string]string{"trivial.json": trivialJSON})

	p, err := loader.GetPuzzle(context.Background(), "trivial.json")
	require.NoError(t, err)
	assert.Equal(t, "trivial", p.Name)
}

func TestLoader_ListPuzzles_DetectsCollisions(t *testing.T) {
	loader := newLoader(t, map[string]string{
		"trivial.json": trivialJSON,
		"trivial.md":   wolfGoatCabbageMD,
	})

	_, err := loader.ListPuzzles(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "collision detected")
	assert.Contains(t, err.Error(), "trivial")
}

func TestLoader_BadNotation(t *testing.T) {
	loader := newLoader(t, map[string]string{
		"broken.json": `{"characters": "AB", "boat": {"capacity": "two", "drivers": "A"}, "initial_state": "AB"}`,
	})

	_, err := loader.GetPuzzle(context.Background(), "broken")
	assert.ErrorIs(t, err, domain.ErrInvalidPuzzle)
}
