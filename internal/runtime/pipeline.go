package runtime

import (
	"context"
	"log/slog"
	"time"

	"github.com/aretw0/rivercross/internal/logging"
	"github.com/aretw0/rivercross/pkg/domain"
)

// Pipeline runs the solving stages strictly in order:
// state enumeration, transition generation, path validation.
// It holds no per-run state and is safe for concurrent use.
type Pipeline struct {
	logger *slog.Logger
	hooks  domain.LifecycleHooks
	now    func() time.Time
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithLifecycleHooks registers stage observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(p *Pipeline) {
		p.hooks = hooks
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) {
		p.now = now
	}
}

// NewPipeline creates a pipeline with the given options.
func NewPipeline(opts ...Option) *Pipeline {
	p := &Pipeline{
		logger: logging.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// RunOptions carries the per-run settings.
type RunOptions struct {
	RunID string

	// PathLimit caps the number of enumerated paths (0 = unlimited).
	PathLimit int

	// SkipPaths disables path enumeration; only solvability is computed.
	SkipPaths bool
}

// Run solves a compiled instance.
func (p *Pipeline) Run(ctx context.Context, in *domain.Instance, opts RunOptions) (*domain.Solution, error) {
	start := p.now()
	logger := p.logger.With("run_id", opts.RunID)

	sol := &domain.Solution{
		RunID:        opts.RunID,
		Fingerprint:  in.Fingerprint(),
		Instance:     in,
		PathsSkipped: opts.SkipPaths,
		GeneratedAt:  start,
	}

	err := p.stage(ctx, logger, opts.RunID, in.Name, domain.StageEnumerateStates, func() (int, error) {
		sol.States = EnumerateStates(in)
		return len(sol.States), nil
	})
	if err != nil {
		return nil, err
	}

	err = p.stage(ctx, logger, opts.RunID, in.Name, domain.StageGenerateTransitions, func() (int, error) {
		sol.Transitions = GenerateTransitions(in, sol.States)
		return len(sol.Transitions), nil
	})
	if err != nil {
		return nil, err
	}

	err = p.stage(ctx, logger, opts.RunID, in.Name, domain.StageValidatePaths, func() (int, error) {
		if opts.SkipPaths {
			ok, err := Reachable(ctx, sol.Transitions, in.Initial, in.Goal)
			sol.Solvable = ok
			return 0, err
		}
		paths, truncated, err := ValidPaths(ctx, sol.Transitions, in.Initial, in.Goal, PathOptions{Limit: opts.PathLimit})
		if err != nil {
			return 0, err
		}
		sol.Paths = paths
		sol.Truncated = truncated
		sol.Solvable = len(paths) > 0
		return len(paths), nil
	})
	if err != nil {
		return nil, err
	}

	sol.Stats = domain.Stats{
		States:      len(sol.States),
		Transitions: len(sol.Transitions),
		Paths:       len(sol.Paths),
		Duration:    p.now().Sub(start),
	}

	logger.Info("Puzzle solved",
		"states", sol.Stats.States,
		"transitions", sol.Stats.Transitions,
		"paths", sol.Stats.Paths,
		"solvable", sol.Solvable,
		"truncated", sol.Truncated,
		"duration", sol.Stats.Duration,
	)

	return sol, nil
}

func (p *Pipeline) stage(ctx context.Context, logger *slog.Logger, runID, puzzle string, stage domain.Stage, fn func() (int, error)) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	base := domain.EventBase{Timestamp: p.now(), RunID: runID, Puzzle: puzzle}
	if p.hooks.OnStageStart != nil {
		p.hooks.OnStageStart(ctx, &domain.StageEvent{EventBase: base, Stage: stage})
	}

	started := p.now()
	count, err := fn()
	elapsed := p.now().Sub(started)

	if p.hooks.OnStageEnd != nil {
		end := domain.EventBase{Timestamp: p.now(), RunID: runID, Puzzle: puzzle}
		p.hooks.OnStageEnd(ctx, &domain.StageEvent{EventBase: end, Stage: stage, Count: count, Duration: elapsed, Err: err})
	}

	if err != nil {
		logger.Warn("Stage aborted", "stage", stage, "err", err)
		return err
	}
	logger.Debug("Stage finished", "stage", stage, "count", count, "duration", elapsed)
	return nil
}
