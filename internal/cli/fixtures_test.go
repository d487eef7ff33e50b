package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/rivercross"
	"github.com/aretw0/rivercross/internal/logging"
	"github.com/aretw0/rivercross/pkg/adapters/memory"
	"github.com/aretw0/rivercross/pkg/domain"
	"github.com/stretchr/testify/require"
)

const ferryYAML = `name: ferry
characters: FG
boat:
  capacity: 2
  drivers: F
initial_state: FG
`

const wolfGoatCabbageYAML = `name: wolf-goat-cabbage
characters: FWGC
boat:
  capacity: 2
  drivers: F
restricted_states: [WG, GC, WGC]
initial_state: FWGC
`

func writeDefinition(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func writeFerry(t *testing.T) string {
	t.Helper()
	return writeDefinition(t, "ferry.yaml", ferryYAML)
}

func wolfGoatCabbage() domain.Puzzle {
	return domain.Puzzle{
		Name:             "wolf-goat-cabbage",
		Characters:       []string{"F", "W", "G", "C"},
		Boat:             domain.Boat{Capacity: 2, Drivers: []string{"F"}},
		RestrictedStates: [][]string{{"W", "G"}, {"G", "C"}, {"W", "G", "C"}},
		InitialState:     []string{"F", "W", "G", "C"},
	}
}

func solveWolfGoatCabbage(t *testing.T, opts ...domain.SolveOption) *domain.Solution {
	t.Helper()
	loader, err := memory.NewFromPuzzles(wolfGoatCabbage())
	require.NoError(t, err)
	eng, err := rivercross.New("", rivercross.WithLoader(loader), rivercross.WithLogger(logging.NewNop()))
	require.NoError(t, err)

	sol, err := eng.SolveByID(context.Background(), "wolf-goat-cabbage", opts...)
	require.NoError(t, err)
	return sol
}
