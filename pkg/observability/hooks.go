package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/rivercross/pkg/domain"
)

// Chain combines several hook sets into one. Hooks run in the given order.
func Chain(sets ...domain.LifecycleHooks) domain.LifecycleHooks {
	var starts, ends []func(context.Context, *domain.StageEvent)
	var solved []func(context.Context, *domain.SolveEvent)
	for _, s := range sets {
		if s.OnStageStart != nil {
			starts = append(starts, s.OnStageStart)
		}
		if s.OnStageEnd != nil {
			ends = append(ends, s.OnStageEnd)
		}
		if s.OnSolved != nil {
			solved = append(solved, s.OnSolved)
		}
	}

	var out domain.LifecycleHooks
	if len(starts) > 0 {
		out.OnStageStart = func(ctx context.Context, e *domain.StageEvent) {
			for _, fn := range starts {
				fn(ctx, e)
			}
		}
	}
	if len(ends) > 0 {
		out.OnStageEnd = func(ctx context.Context, e *domain.StageEvent) {
			for _, fn := range ends {
				fn(ctx, e)
			}
		}
	}
	if len(solved) > 0 {
		out.OnSolved = func(ctx context.Context, e *domain.SolveEvent) {
			for _, fn := range solved {
				fn(ctx, e)
			}
		}
	}
	return out
}

// LoggingHooks logs every lifecycle event at debug level, and finished solves at info.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStageStart: func(ctx context.Context, e *domain.StageEvent) {
			logger.DebugContext(ctx, "stage_start", "run_id", e.RunID, "puzzle", e.Puzzle, "stage", e.Stage)
		},
		OnStageEnd: func(ctx context.Context, e *domain.StageEvent) {
			logger.DebugContext(ctx, "stage_end",
				"run_id", e.RunID,
				"puzzle", e.Puzzle,
				"stage", e.Stage,
				"count", e.Count,
				"duration", e.Duration,
				"err", e.Err,
			)
		},
		OnSolved: func(ctx context.Context, e *domain.SolveEvent) {
			logger.InfoContext(ctx, "solved",
				"run_id", e.RunID,
				"puzzle", e.Puzzle,
				"solvable", e.Solvable,
				"paths", e.Paths,
				"cached", e.Cached,
				"duration", e.Duration,
			)
		},
	}
}
