package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aretw0/rivercross/internal/presentation/playback"
	"github.com/aretw0/rivercross/internal/presentation/tui"
	"github.com/aretw0/rivercross/pkg/domain"
)

// PlayOptions configures Play.
type PlayOptions struct {
	// Path is the 1-based path to replay.
	Path   int
	Delay  time.Duration
	Styled bool
}

// Play replays one path of sol frame by frame, pausing Delay between crossings.
func Play(ctx context.Context, w io.Writer, sol *domain.Solution, opts PlayOptions) error {
	if !sol.Solvable {
		return fmt.Errorf("%s has no solution to play", sol.Instance.Name)
	}
	if opts.Path < 1 || opts.Path > len(sol.Paths) {
		return fmt.Errorf("path %d does not exist (%d found)", opts.Path, len(sol.Paths))
	}
	path := sol.Paths[opts.Path-1]

	printSystemMessage(w, "Playing path %d of %s (%d crossings).", opts.Path, sol.Instance.Name, path.Crossings())

	player := playback.NewPlayer(sol)
	return player.Play(ctx, path, func(f playback.Frame) error {
		if f.Step > 0 && opts.Delay > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(opts.Delay):
			}
		}
		_, err := fmt.Fprintln(w, tui.FormatFrame(f, opts.Styled))
		return err
	})
}
