package runtime

import (
	"math/bits"
	"testing"

	"github.com/aretw0/rivercross/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateTransitions_Trivial(t *testing.T) {
	in := compile(t, trivialPuzzle())

	got := records(GenerateTransitions(in, EnumerateStates(in)))

	assert.Equal(t, []domain.TransitionRecord{
		{From: "A|", Condition: domain.SideLeft, To: "|A", Group: "A"},
		{From: "|A", Condition: domain.SideRight, To: "A|", Group: "A"},
	}, got)
}

func TestGenerateTransitions_WolfGoatCabbage(t *testing.T) {
	in := compile(t, wolfGoatCabbagePuzzle())

	ts := GenerateTransitions(in, EnumerateStates(in))

	assert.Len(t, ts, 20)
	assert.Contains(t, records(ts), domain.TransitionRecord{
		From: "FWGC|", Condition: domain.SideLeft, To: "WC|FG", Group: "FG",
	})
	for _, tr := range ts {
		assert.NotZero(t, tr.Group&in.Boat.Drivers, "the farmer rows every crossing: %v", tr.Record())
	}
}

func TestGenerateTransitions_Invariants(t *testing.T) {
	puzzles := []domain.Puzzle{
		trivialPuzzle(),
		wolfGoatCabbagePuzzle(),
		missionariesPuzzle(),
		boatRestrictedPuzzle(),
	}

	for _, p := range puzzles {
		t.Run(p.Name, func(t *testing.T) {
			in := compile(t, p)
			states := EnumerateStates(in)
			legal := make(map[domain.ConfigKey]bool, len(states))
			for _, s := range states {
				legal[s.Key()] = true
			}

			seen := make(map[domain.TransitionKey]bool)
			for _, tr := range GenerateTransitions(in, states) {
				size := bits.OnesCount64(tr.Group)
				assert.GreaterOrEqual(t, size, 1)
				assert.LessOrEqual(t, size, in.Boat.Capacity)
				assert.NotZero(t, tr.Group&in.Boat.Drivers)
				assert.False(t, in.IsRestrictedBoat(tr.Group))

				// The destination is the source with exactly the group moved across.
				from := tr.From.Bank(tr.Condition)
				require.Equal(t, tr.Group, from&tr.Group, "group must depart from the condition bank")
				if tr.Condition == domain.SideLeft {
					assert.Equal(t, tr.From.Left&^tr.Group, tr.To.Left)
					assert.Equal(t, tr.From.Right|tr.Group, tr.To.Right)
				} else {
					assert.Equal(t, tr.From.Left|tr.Group, tr.To.Left)
					assert.Equal(t, tr.From.Right&^tr.Group, tr.To.Right)
				}

				assert.True(t, legal[tr.To.Key()], "destination %s must be a legal state", tr.To)
				assert.False(t, seen[tr.Key()], "duplicate transition %v", tr.Record())
				seen[tr.Key()] = true
			}
		})
	}
}

func TestGenerateTransitions_MissionariesOpening(t *testing.T) {
	in := compile(t, missionariesPuzzle())

	var pairs int
	for _, tr := range GenerateTransitions(in, EnumerateStates(in)) {
		if tr.From.Key() != in.Initial.Key() {
			continue
		}
		assert.Equal(t, domain.SideLeft, tr.Condition, "nothing can depart from the empty right bank")
		if bits.OnesCount64(tr.Group) == 2 {
			pairs++
		}
	}

	assert.Positive(t, pairs, "the initial state must allow a two-person crossing")
}

func TestGenerateTransitions_BoatRestriction(t *testing.T) {
	in := compile(t, boatRestrictedPuzzle())

	for _, tr := range GenerateTransitions(in, EnumerateStates(in)) {
		if tr.From.Key() == in.Initial.Key() {
			assert.Equal(t, 1, bits.OnesCount64(tr.Group), "AB is the only pair and may not board")
		}
	}
}

func TestGenerateTransitions_CapacityBeyondCharacters(t *testing.T) {
	p := trivialPuzzle()
	p.Boat.Capacity = 1 << 20
	in := compile(t, p)

	assert.Len(t, GenerateTransitions(in, EnumerateStates(in)), 2)
}

func TestGenerateTransitions_DefectPanics(t *testing.T) {
	p := unsolvablePuzzle()
	p.RestrictedStates = nil
	in := compile(t, p)

	// A state whose banks overlap can only come from broken bookkeeping.
	corrupt := domain.NewConfig(in.Alphabet, in.Alphabet.Full())
	corrupt.Right = 0b01

	assert.PanicsWithError(t,
		(&domain.DefectError{State: "AB|A", Group: "B", Got: 3, Want: 2}).Error(),
		func() {
			GenerateTransitions(in, []domain.Config{corrupt})
		},
	)
}
