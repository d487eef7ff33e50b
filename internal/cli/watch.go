package cli

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/rivercross"
)

// settle lets editors finish writing before the definition is re-read.
const settle = 100 * time.Millisecond

// Watch runs fn once, then again every time the puzzle id changes on disk,
// until ctx is cancelled. Errors from fn are logged and do not stop the loop.
func Watch(ctx context.Context, eng *rivercross.Engine, id string, w io.Writer, logger *slog.Logger, fn func(context.Context) error) error {
	events, err := eng.Watch(ctx)
	if err != nil {
		return err
	}

	run := func() {
		if err := fn(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("Solve failed", "puzzle", id, "err", err)
		}
	}

	run()
	printSystemMessage(w, "Watching '%s' for changes...", id)

	for {
		select {
		case <-ctx.Done():
			return nil
		case changed, ok := <-events:
			if !ok {
				return nil
			}
			if changed != id {
				logger.Debug("Ignoring change", "changed", changed, "puzzle", id)
				continue
			}
			logger.Info("Change detected, solving again", "puzzle", id)
			printSystemMessage(w, "Change detected in '%s'.", changed)

			select {
			case <-ctx.Done():
				return nil
			case <-time.After(settle):
			}
			run()
		}
	}
}
