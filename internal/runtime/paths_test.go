package runtime

import (
	"context"
	"testing"

	"github.com/aretw0/rivercross/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solvePaths(t *testing.T, p domain.Puzzle, opts PathOptions) (*domain.Instance, []domain.Transition, []domain.Path, bool) {
	t.Helper()
	in := compile(t, p)
	ts := GenerateTransitions(in, EnumerateStates(in))
	paths, truncated, err := ValidPaths(context.Background(), ts, in.Initial, in.Goal, opts)
	require.NoError(t, err)
	return in, ts, paths, truncated
}

func pathStrings(paths []domain.Path) [][]string {
	out := make([][]string, len(paths))
	for i, p := range paths {
		out[i] = p.Strings()
	}
	return out
}

// assertAlternating checks every consecutive pair against the transition set.
func assertAlternating(t *testing.T, in *domain.Instance, ts []domain.Transition, path domain.Path) {
	t.Helper()
	edges := make(map[domain.TransitionKey]bool, len(ts))
	for _, tr := range ts {
		edges[tr.Key()] = true
	}

	require.NotEmpty(t, path)
	assert.Equal(t, in.Initial.Key(), path[0].Key())
	assert.Equal(t, in.Goal.Key(), path[len(path)-1].Key())

	visited := make(map[domain.ConfigKey]bool)
	expected := domain.SideLeft
	for i, c := range path {
		assert.False(t, visited[c.Key()], "state %s repeats", c)
		visited[c.Key()] = true
		if i == len(path)-1 {
			break
		}
		key := domain.TransitionKey{From: c.Key(), Condition: expected, To: path[i+1].Key()}
		assert.True(t, edges[key], "step %d: no %s transition %s -> %s", i, expected, c, path[i+1])
		expected = expected.Opposite()
	}
}

func TestValidPaths_Trivial(t *testing.T) {
	_, _, paths, truncated := solvePaths(t, trivialPuzzle(), PathOptions{})

	assert.Equal(t, [][]string{{"A|", "|A"}}, pathStrings(paths))
	assert.False(t, truncated)
}

func TestValidPaths_WolfGoatCabbage(t *testing.T) {
	in, ts, paths, _ := solvePaths(t, wolfGoatCabbagePuzzle(), PathOptions{})

	assert.ElementsMatch(t, [][]string{
		{"FWGC|", "WC|FG", "FWC|G", "C|FWG", "FGC|W", "G|FWC", "FG|WC", "|FWGC"},
		{"FWGC|", "WC|FG", "FWC|G", "W|FGC", "FWG|C", "G|FWC", "FG|WC", "|FWGC"},
	}, pathStrings(paths))
	for _, p := range paths {
		assertAlternating(t, in, ts, p)
	}
}

func TestValidPaths_Unsolvable(t *testing.T) {
	_, ts, paths, truncated := solvePaths(t, unsolvablePuzzle(), PathOptions{})

	assert.Empty(t, ts)
	assert.NotNil(t, paths)
	assert.Empty(t, paths)
	assert.False(t, truncated)
}

func TestValidPaths_BoatRestrictionStrandsThePuzzle(t *testing.T) {
	_, _, paths, _ := solvePaths(t, boatRestrictedPuzzle(), PathOptions{})

	// A can only shuttle alone and B never gets a ride.
	assert.Empty(t, paths)
}

func TestValidPaths_InitialIsGoal(t *testing.T) {
	p := trivialPuzzle()
	p.InitialState = nil

	in, _, paths, _ := solvePaths(t, p, PathOptions{})

	require.Len(t, paths, 1)
	assert.Equal(t, domain.Path{in.Goal}, paths[0])
}

func TestValidPaths_RejectsWeakAlternation(t *testing.T) {
	in := compile(t, wolfGoatCabbagePuzzle())
	parse := func(s string) domain.Config {
		c, err := in.Alphabet.ParseConfig(s)
		require.NoError(t, err)
		return c
	}

	// The first pair matches "left", but the second pair only exists as a "left"
	// crossing too, so the path must be rejected even though one pair matched.
	ts := []domain.Transition{
		{From: parse("FWGC|"), Condition: domain.SideLeft, To: parse("WC|FG")},
		{From: parse("WC|FG"), Condition: domain.SideLeft, To: parse("|FWGC")},
	}

	paths, _, err := ValidPaths(context.Background(), ts, in.Initial, in.Goal, PathOptions{})
	require.NoError(t, err)
	assert.Empty(t, paths)
}

func TestValidPaths_Missionaries(t *testing.T) {
	in, ts, paths, truncated := solvePaths(t, missionariesPuzzle(), PathOptions{Limit: 25})

	assert.Len(t, paths, 25)
	assert.True(t, truncated)
	for _, p := range paths {
		assertAlternating(t, in, ts, p)
	}

	ok, err := Reachable(context.Background(), ts, in.Initial, in.Goal)
	require.NoError(t, err)
	assert.True(t, ok, "the goal must be reachable")
}

func TestValidPaths_Cancelled(t *testing.T) {
	in := compile(t, missionariesPuzzle())
	ts := GenerateTransitions(in, EnumerateStates(in))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := ValidPaths(ctx, ts, in.Initial, in.Goal, PathOptions{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestValidPaths_Idempotent(t *testing.T) {
	_, _, first, _ := solvePaths(t, wolfGoatCabbagePuzzle(), PathOptions{})
	_, _, second, _ := solvePaths(t, wolfGoatCabbagePuzzle(), PathOptions{})

	assert.ElementsMatch(t, pathStrings(first), pathStrings(second))
}

func TestReachable(t *testing.T) {
	tests := []struct {
		name   string
		puzzle domain.Puzzle
		want   bool
	}{
		{"Trivial", trivialPuzzle(), true},
		{"Wolf Goat Cabbage", wolfGoatCabbagePuzzle(), true},
		{"Unsolvable", unsolvablePuzzle(), false},
		{"Boat Restricted", boatRestrictedPuzzle(), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := compile(t, tt.puzzle)
			ts := GenerateTransitions(in, EnumerateStates(in))

			ok, err := Reachable(context.Background(), ts, in.Initial, in.Goal)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)

			paths, _, err := ValidPaths(context.Background(), ts, in.Initial, in.Goal, PathOptions{})
			require.NoError(t, err)
			assert.Equal(t, len(paths) > 0, ok, "reachability must agree with path enumeration")
		})
	}
}

// filteredSimplePaths enumerates every simple path over the topology, ignoring
// conditions, and keeps those whose pairs all alternate.
func filteredSimplePaths(ts []domain.Transition, initial, goal domain.Config) [][]string {
	next := make(map[domain.ConfigKey][]domain.Config)
	seen := make(map[[2]domain.ConfigKey]bool)
	conds := make(map[domain.TransitionKey]bool)
	for _, tr := range ts {
		conds[tr.Key()] = true
		pair := [2]domain.ConfigKey{tr.From.Key(), tr.To.Key()}
		if !seen[pair] {
			seen[pair] = true
			next[tr.From.Key()] = append(next[tr.From.Key()], tr.To)
		}
	}

	alternates := func(p domain.Path) bool {
		side := domain.SideLeft
		for i := 0; i+1 < len(p); i++ {
			if !conds[domain.TransitionKey{From: p[i].Key(), Condition: side, To: p[i+1].Key()}] {
				return false
			}
			side = side.Opposite()
		}
		return true
	}

	var out [][]string
	visited := map[domain.ConfigKey]bool{initial.Key(): true}
	var walk func(p domain.Path)
	walk = func(p domain.Path) {
		last := p[len(p)-1]
		if last.Key() == goal.Key() {
			if alternates(p) {
				out = append(out, p.Strings())
			}
			return
		}
		for _, n := range next[last.Key()] {
			if visited[n.Key()] {
				continue
			}
			visited[n.Key()] = true
			walk(append(append(domain.Path{}, p...), n))
			visited[n.Key()] = false
		}
	}
	walk(domain.Path{initial})
	return out
}

func TestValidPaths_MatchesFilteredSimplePaths(t *testing.T) {
	for _, p := range []domain.Puzzle{trivialPuzzle(), wolfGoatCabbagePuzzle(), unsolvablePuzzle(), boatRestrictedPuzzle()} {
		t.Run(p.Name, func(t *testing.T) {
			in, ts, paths, truncated := solvePaths(t, p, PathOptions{})
			assert.False(t, truncated)
			assert.ElementsMatch(t, filteredSimplePaths(ts, in.Initial, in.Goal), pathStrings(paths))
		})
	}
}

func TestValidPaths_LimitTruncation(t *testing.T) {
	tests := []struct {
		name      string
		puzzle    domain.Puzzle
		limit     int
		paths     int
		truncated bool
	}{
		{"Exactly One Path At Limit One", trivialPuzzle(), 1, 1, false},
		{"Exactly Two Paths At Limit Two", wolfGoatCabbagePuzzle(), 2, 2, false},
		{"Limit Above Path Count", wolfGoatCabbagePuzzle(), 5, 2, false},
		{"More Paths Than Limit", wolfGoatCabbagePuzzle(), 1, 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, paths, truncated := solvePaths(t, tt.puzzle, PathOptions{Limit: tt.limit})
			assert.Len(t, paths, tt.paths)
			assert.Equal(t, tt.truncated, truncated)
		})
	}
}
