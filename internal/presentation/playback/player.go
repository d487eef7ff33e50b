// Package playback steps through a solution path one crossing at a time.
// It is the only place that tracks where the boat is.
package playback

import (
	"context"
	"errors"
	"fmt"

	"github.com/aretw0/rivercross/pkg/domain"
)

// ErrBrokenPath is returned when a path cannot be replayed against the solution's transitions.
var ErrBrokenPath = errors.New("path cannot be replayed")

// Frame is one step of a playback.
// Step 0 is the starting configuration and has no travelers.
type Frame struct {
	Step  int
	State domain.Config
	Boat  domain.Side
	Moved []string
}

type edge struct {
	from, to domain.ConfigKey
}

// Player replays paths of one solution. It is not safe for concurrent use.
type Player struct {
	alpha *domain.Alphabet
	edges map[edge]domain.Transition
	boat  domain.Side
}

// NewPlayer indexes the solution's transitions. The boat starts on the left bank.
func NewPlayer(sol *domain.Solution) *Player {
	p := &Player{
		edges: make(map[edge]domain.Transition, len(sol.Transitions)),
		boat:  domain.SideLeft,
	}
	if sol.Instance != nil {
		p.alpha = sol.Instance.Alphabet
	}
	for _, t := range sol.Transitions {
		p.edges[edge{from: t.From.Key(), to: t.To.Key()}] = t
	}
	return p
}

// Boat reports the bank the boat is currently on.
func (p *Player) Boat() domain.Side {
	return p.boat
}

// Play resets the boat to the left bank and emits one frame per configuration of path.
// Before each crossing it checks that the boat is on the bank the crossing departs from.
// It stops at the first error returned by emit or by the context.
func (p *Player) Play(ctx context.Context, path domain.Path, emit func(Frame) error) error {
	if len(path) == 0 {
		return nil
	}

	p.boat = domain.SideLeft
	if err := emit(Frame{State: path[0], Boat: p.boat}); err != nil {
		return err
	}

	for i := 1; i < len(path); i++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		t, ok := p.edges[edge{from: path[i-1].Key(), to: path[i].Key()}]
		if !ok {
			return fmt.Errorf("%w: step %d: no crossing from %s to %s", ErrBrokenPath, i, path[i-1], path[i])
		}
		if t.Condition != p.boat {
			return fmt.Errorf("%w: step %d: boat is on the %s bank but %s departs from the %s", ErrBrokenPath, i, p.boat, t.Trigger(), t.Condition)
		}

		p.boat = p.boat.Opposite()
		frame := Frame{Step: i, State: path[i], Boat: p.boat}
		if p.alpha != nil {
			frame.Moved = p.alpha.Members(t.Group)
		}
		if err := emit(frame); err != nil {
			return err
		}
	}

	return nil
}

// Frames replays path and collects every frame.
func (p *Player) Frames(ctx context.Context, path domain.Path) ([]Frame, error) {
	var frames []Frame
	err := p.Play(ctx, path, func(f Frame) error {
		frames = append(frames, f)
		return nil
	})
	return frames, err
}
