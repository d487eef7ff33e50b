package playback_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/rivercross/internal/presentation/playback"
	"github.com/aretw0/rivercross/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	sol   *domain.Solution
	parse func(string) domain.Config
}

// ferry: F rows and G may ride along.
func ferry(t *testing.T) fixture {
	t.Helper()
	in, err := domain.Puzzle{
		Name:         "ferry",
		Characters:   []string{"F", "G"},
		Boat:         domain.Boat{Capacity: 2, Drivers: []string{"F"}},
		InitialState: []string{"F", "G"},
	}.Compile()
	require.NoError(t, err)

	parse := func(s string) domain.Config {
		c, err := in.Alphabet.ParseConfig(s)
		require.NoError(t, err)
		return c
	}
	mask := func(tokens ...string) uint64 {
		m, err := in.Alphabet.Mask(tokens)
		require.NoError(t, err)
		return m
	}

	return fixture{
		parse: parse,
		sol: &domain.Solution{
			Instance: in,
			Transitions: []domain.Transition{
				{From: parse("FG|"), Condition: domain.SideLeft, To: parse("G|F"), Group: mask("F")},
				{From: parse("G|F"), Condition: domain.SideRight, To: parse("FG|"), Group: mask("F")},
				{From: parse("FG|"), Condition: domain.SideLeft, To: parse("|FG"), Group: mask("F", "G")},
				{From: parse("|FG"), Condition: domain.SideRight, To: parse("G|F"), Group: mask("F", "G")},
			},
		},
	}
}

func TestPlayer_Frames(t *testing.T) {
	f := ferry(t)
	player := playback.NewPlayer(f.sol)

	frames, err := player.Frames(context.Background(), domain.Path{f.parse("FG|"), f.parse("|FG")})
	require.NoError(t, err)

	require.Len(t, frames, 2)
	assert.Equal(t, 0, frames[0].Step)
	assert.Equal(t, "FG|", frames[0].State.String())
	assert.Equal(t, domain.SideLeft, frames[0].Boat)
	assert.Nil(t, frames[0].Moved)

	assert.Equal(t, 1, frames[1].Step)
	assert.Equal(t, "|FG", frames[1].State.String())
	assert.Equal(t, domain.SideRight, frames[1].Boat)
	assert.Equal(t, []string{"F", "G"}, frames[1].Moved)
	assert.Equal(t, domain.SideRight, player.Boat())
}

func TestPlayer_ResetsBoat(t *testing.T) {
	f := ferry(t)
	player := playback.NewPlayer(f.sol)
	path := domain.Path{f.parse("FG|"), f.parse("G|F")}

	_, err := player.Frames(context.Background(), path)
	require.NoError(t, err)
	require.Equal(t, domain.SideRight, player.Boat())

	frames, err := player.Frames(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, domain.SideLeft, frames[0].Boat, "every playback starts on the left bank")
}

func TestPlayer_BoatOnWrongBank(t *testing.T) {
	f := ferry(t)
	player := playback.NewPlayer(f.sol)

	// The first crossing departs from the right bank while the boat waits on the left.
	_, err := player.Frames(context.Background(), domain.Path{f.parse("|FG"), f.parse("G|F")})
	assert.ErrorIs(t, err, playback.ErrBrokenPath)
	assert.ErrorContains(t, err, "boat is on the left bank")
}

func TestPlayer_UnknownCrossing(t *testing.T) {
	f := ferry(t)
	player := playback.NewPlayer(f.sol)

	_, err := player.Frames(context.Background(), domain.Path{f.parse("G|F"), f.parse("|FG")})
	assert.ErrorIs(t, err, playback.ErrBrokenPath)
	assert.ErrorContains(t, err, "no crossing from G|F to |FG")
}

func TestPlayer_StopsOnEmitError(t *testing.T) {
	f := ferry(t)
	player := playback.NewPlayer(f.sol)
	stop := errors.New("stop")

	var seen int
	err := player.Play(context.Background(), domain.Path{f.parse("FG|"), f.parse("G|F"), f.parse("FG|")}, func(playback.Frame) error {
		seen++
		if seen == 2 {
			return stop
		}
		return nil
	})

	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 2, seen)
}

func TestPlayer_Cancelled(t *testing.T) {
	f := ferry(t)
	player := playback.NewPlayer(f.sol)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	frames, err := player.Frames(ctx, domain.Path{f.parse("FG|"), f.parse("|FG")})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Len(t, frames, 1, "the starting frame is emitted before the first crossing")
}

func TestPlayer_EmptyPath(t *testing.T) {
	f := ferry(t)

	frames, err := playback.NewPlayer(f.sol).Frames(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, frames)
}
