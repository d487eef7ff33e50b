package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ferrySolution(t *testing.T) *Solution {
	t.Helper()
	in, err := wolfGoatCabbage().Compile()
	require.NoError(t, err)

	parse := func(s string) Config {
		c, err := in.Alphabet.ParseConfig(s)
		require.NoError(t, err)
		return c
	}
	fg, err := in.Alphabet.Mask([]string{"F", "G"})
	require.NoError(t, err)

	return &Solution{
		RunID:       "run-1",
		Fingerprint: in.Fingerprint(),
		Instance:    in,
		States:      []Config{parse("FWGC|"), parse("WC|FG")},
		Transitions: []Transition{{From: parse("FWGC|"), Condition: SideLeft, To: parse("WC|FG"), Group: fg}},
		Paths:       []Path{{parse("FWGC|"), parse("WC|FG")}},
		Solvable:    true,
		Stats:       Stats{States: 2, Transitions: 1, Paths: 1},
		GeneratedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestSolution_Report(t *testing.T) {
	r := ferrySolution(t).Report()

	assert.Equal(t, "wolf-goat-cabbage", r.Puzzle)
	assert.Equal(t, []string{"F", "W", "G", "C"}, r.Characters)
	assert.Equal(t, "FWGC|", r.Initial)
	assert.Equal(t, "|FWGC", r.Goal)
	assert.Equal(t, []string{"FWGC|", "WC|FG"}, r.States)
	assert.Equal(t, []TransitionRecord{{From: "FWGC|", Condition: SideLeft, To: "WC|FG", Group: "FG"}}, r.Transitions)
	assert.Equal(t, []string{"FWGC|", "WC|FG"}, r.Path(0))
	assert.Nil(t, r.Path(1))
	assert.Nil(t, r.Path(-1))
}

func TestInstance_Restore(t *testing.T) {
	sol := ferrySolution(t)
	report := sol.Report()

	restored, err := sol.Instance.Restore(report)
	require.NoError(t, err)

	assert.Equal(t, report, restored.Report())
	assert.Equal(t, sol.Transitions[0].Key(), restored.Transitions[0].Key())
	assert.Equal(t, sol.Transitions[0].Group, restored.Transitions[0].Group)
}

func TestInstance_Restore_RejectsForeignReport(t *testing.T) {
	sol := ferrySolution(t)
	report := sol.Report()
	report.Fingerprint = "something-else"

	_, err := sol.Instance.Restore(report)
	assert.ErrorContains(t, err, "does not match")
}

func TestInstance_Restore_RejectsCorruptState(t *testing.T) {
	sol := ferrySolution(t)
	report := sol.Report()
	report.States[1] = "WC|F"

	_, err := sol.Instance.Restore(report)
	assert.ErrorContains(t, err, "restore state 1")
}

func TestTransition_Trigger(t *testing.T) {
	sol := ferrySolution(t)

	assert.Equal(t, "FWGC|toWC|FG", sol.Transitions[0].Trigger())
	assert.Equal(t, 1, sol.Paths[0].Crossings())
}

func TestSolution_Machine(t *testing.T) {
	m := ferrySolution(t).Machine()

	assert.Equal(t, "FWGC|", m.Initial)
	assert.Equal(t, "|FWGC", m.Goal)
	assert.Equal(t, []string{"FWGC|", "WC|FG"}, m.States)
	assert.Equal(t, []Trigger{{Name: "FWGC|toWC|FG", Source: "FWGC|", Dest: "WC|FG", Condition: SideLeft}}, m.Triggers)
}

func TestSolveOptions_Apply(t *testing.T) {
	base := SolveOptions{PathLimit: 10}

	got := base.Apply(WithPathLimit(3), WithoutPaths())

	assert.Equal(t, SolveOptions{PathLimit: 3, SkipPaths: true}, got)
	assert.Equal(t, SolveOptions{PathLimit: 10}, base, "Apply does not mutate the receiver")
}
