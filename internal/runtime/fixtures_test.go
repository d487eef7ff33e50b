package runtime

import (
	"testing"

	"github.com/aretw0/rivercross/pkg/domain"
	"github.com/stretchr/testify/require"
)

func tokens(s string) []string {
	return domain.SplitTokens(s, false)
}

func groups(entries ...string) [][]string {
	out := make([][]string, len(entries))
	for i, e := range entries {
		out[i] = tokens(e)
	}
	return out
}

func compile(t *testing.T, p domain.Puzzle) *domain.Instance {
	t.Helper()
	in, err := p.Compile()
	require.NoError(t, err)
	return in
}

func trivialPuzzle() domain.Puzzle {
	return domain.Puzzle{
		Name:         "trivial",
		Characters:   tokens("A"),
		Boat:         domain.Boat{Capacity: 1, Drivers: tokens("A")},
		InitialState: tokens("A"),
	}
}

func wolfGoatCabbagePuzzle() domain.Puzzle {
	return domain.Puzzle{
		Name:             "wolf-goat-cabbage",
		Characters:       tokens("FWGC"),
		Boat:             domain.Boat{Capacity: 2, Drivers: tokens("F")},
		RestrictedStates: groups("WG", "GC", "WGC"),
		InitialState:     tokens("FWGC"),
	}
}

// missionariesPuzzle: A, B, C are missionaries and D, E, F cannibals. A bank with
// missionaries on it may never hold more cannibals than missionaries.
func missionariesPuzzle() domain.Puzzle {
	var restricted []string
	for _, m := range []string{"A", "B", "C"} {
		for _, c := range []string{"DE", "DF", "EF", "DEF"} {
			restricted = append(restricted, m+c)
		}
	}
	for _, mm := range []string{"AB", "AC", "BC"} {
		restricted = append(restricted, mm+"DEF")
	}

	return domain.Puzzle{
		Name:             "missionaries-and-cannibals",
		Characters:       tokens("ABCDEF"),
		Boat:             domain.Boat{Capacity: 2, Drivers: tokens("ABCDEF")},
		RestrictedStates: groups(restricted...),
		InitialState:     tokens("ABCDEF"),
	}
}

func unsolvablePuzzle() domain.Puzzle {
	return domain.Puzzle{
		Name:             "stranded",
		Characters:       tokens("AB"),
		Boat:             domain.Boat{Capacity: 1, Drivers: tokens("AB")},
		RestrictedStates: groups("A", "B"),
		InitialState:     tokens("AB"),
	}
}

func boatRestrictedPuzzle() domain.Puzzle {
	return domain.Puzzle{
		Name:         "no-pairs",
		Characters:   tokens("AB"),
		Boat:         domain.Boat{Capacity: 2, Drivers: tokens("A"), RestrictedBoatStates: groups("AB")},
		InitialState: tokens("AB"),
	}
}

func stateStrings(states []domain.Config) []string {
	out := make([]string, len(states))
	for i, s := range states {
		out[i] = s.String()
	}
	return out
}

func records(ts []domain.Transition) []domain.TransitionRecord {
	out := make([]domain.TransitionRecord, len(ts))
	for i, t := range ts {
		out[i] = t.Record()
	}
	return out
}
