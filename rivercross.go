package rivercross

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strconv"
	"time"

	"github.com/aretw0/rivercross/internal/runtime"
	"github.com/aretw0/rivercross/internal/validator"
	loamAdapter "github.com/aretw0/rivercross/pkg/adapters/loam"
	"github.com/aretw0/rivercross/pkg/domain"
	"github.com/aretw0/rivercross/pkg/ports"
	"github.com/google/uuid"
)

// Version is the library and CLI version.
const Version = "0.1.0"

// DefaultLockTTL bounds how long a solve holds the distributed lock.
const DefaultLockTTL = 30 * time.Second

// Engine is the high-level entry point for the rivercross library.
// It validates definitions, runs the solving pipeline and caches results.
type Engine struct {
	pipeline *runtime.Pipeline
	loader   ports.PuzzleLoader
	store    ports.SolutionStore
	locker   ports.DistributedLocker
	lockTTL  time.Duration
	hooks    domain.LifecycleHooks
	logger   *slog.Logger
	defaults domain.SolveOptions
	now      func() time.Time
	newRunID func() string
	Name     string
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLoader injects a custom PuzzleLoader, bypassing the default Loam initialization.
func WithLoader(l ports.PuzzleLoader) Option {
	return func(e *Engine) {
		e.loader = l
	}
}

// WithStore enables result caching keyed by puzzle fingerprint.
func WithStore(s ports.SolutionStore) Option {
	return func(e *Engine) {
		e.store = s
	}
}

// WithLocker serializes concurrent solves of the same puzzle across processes.
// A zero ttl uses DefaultLockTTL.
func WithLocker(l ports.DistributedLocker, ttl time.Duration) Option {
	return func(e *Engine) {
		e.locker = l
		e.lockTTL = ttl
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithSolveDefaults sets the options applied to every solve unless overridden per call.
func WithSolveDefaults(opts ...domain.SolveOption) Option {
	return func(e *Engine) {
		e.defaults = e.defaults.Apply(opts...)
	}
}

// WithClock overrides the time source used for reports and durations.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// WithRunIDGenerator overrides the run ID source (default: random UUID).
func WithRunIDGenerator(fn func() string) Option {
	return func(e *Engine) {
		e.newRunID = fn
	}
}

// New initializes a new Engine.
// By default, it loads puzzles from a Loam repository at the given path.
// If WithLoader option is provided, repoPath can be empty and Loam is skipped.
func New(repoPath string, opts ...Option) (*Engine, error) {
	eng := &Engine{
		now:      time.Now,
		newRunID: uuid.NewString,
	}

	for _, opt := range opts {
		opt(eng)
	}

	if eng.loader == nil {
		if repoPath == "" {
			return nil, fmt.Errorf("repoPath is required when no custom loader is provided")
		}

		absPath, err := filepath.Abs(repoPath)
		if err != nil {
			return nil, fmt.Errorf("invalid path: %w", err)
		}
		eng.Name = filepath.Base(absPath)

		loader, err := loamAdapter.Open(absPath)
		if err != nil {
			return nil, err
		}
		eng.loader = loader
	} else if repoPath != "" {
		eng.Name = filepath.Base(repoPath)
	}

	if eng.logger == nil {
		eng.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if eng.Name != "" {
		eng.logger = eng.logger.With("repo", eng.Name)
	}
	if eng.lockTTL <= 0 {
		eng.lockTTL = DefaultLockTTL
	}

	eng.pipeline = runtime.NewPipeline(
		runtime.WithLogger(eng.logger),
		runtime.WithLifecycleHooks(eng.hooks),
		runtime.WithClock(eng.now),
	)

	return eng, nil
}

// Loader returns the configured puzzle loader.
func (e *Engine) Loader() ports.PuzzleLoader {
	return e.loader
}

// ListPuzzles returns the IDs known to the configured loader.
func (e *Engine) ListPuzzles(ctx context.Context) ([]string, error) {
	return e.loader.ListPuzzles(ctx)
}

// GetPuzzle loads a definition by ID without solving it.
// The returned puzzle is named after the ID when the definition has no name.
func (e *Engine) GetPuzzle(ctx context.Context, id string) (domain.Puzzle, error) {
	p, err := e.loader.GetPuzzle(ctx, id)
	if err != nil {
		return domain.Puzzle{}, err
	}
	if p.Name == "" {
		p.Name = id
	}
	return p, nil
}

// Validate checks a definition and returns its compiled instance.
func (e *Engine) Validate(p domain.Puzzle) (*domain.Instance, error) {
	return validator.ValidatePuzzle(p)
}

// Solve validates and solves an inline definition.
func (e *Engine) Solve(ctx context.Context, p domain.Puzzle, opts ...domain.SolveOption) (*domain.Solution, error) {
	in, err := validator.ValidatePuzzle(p)
	if err != nil {
		return nil, err
	}
	return e.solve(ctx, in, e.defaults.Apply(opts...))
}

// SolveByID loads a definition through the configured loader and solves it.
func (e *Engine) SolveByID(ctx context.Context, id string, opts ...domain.SolveOption) (*domain.Solution, error) {
	p, err := e.GetPuzzle(ctx, id)
	if err != nil {
		return nil, err
	}
	return e.Solve(ctx, p, opts...)
}

// Inspect returns the state graph of a puzzle as a state-machine description.
// Path enumeration is skipped.
func (e *Engine) Inspect(ctx context.Context, id string) (domain.Machine, error) {
	sol, err := e.SolveByID(ctx, id, domain.WithoutPaths())
	if err != nil {
		return domain.Machine{}, err
	}
	return sol.Machine(), nil
}

// Watch returns a channel of puzzle IDs that changed on disk.
func (e *Engine) Watch(ctx context.Context) (<-chan string, error) {
	w, ok := e.loader.(ports.Watchable)
	if !ok {
		return nil, fmt.Errorf("current loader does not support watching")
	}
	return w.Watch(ctx)
}

func (e *Engine) solve(ctx context.Context, in *domain.Instance, opts domain.SolveOptions) (*domain.Solution, error) {
	start := e.now()
	fp := in.Fingerprint()
	key := cacheKey(fp, opts)
	logger := e.logger.With("puzzle", in.Name, "fingerprint", fp[:12])

	if sol := e.cached(ctx, logger, in, key); sol != nil {
		e.solved(ctx, sol, true, start)
		return sol, nil
	}

	if e.store != nil && e.locker != nil {
		unlock, err := e.locker.Lock(ctx, "solve:"+key, e.lockTTL)
		if err != nil {
			return nil, fmt.Errorf("lock %s: %w", in.Name, err)
		}
		defer func() {
			if err := unlock(context.WithoutCancel(ctx)); err != nil {
				logger.Warn("Failed to release solve lock", "err", err)
			}
		}()

		// Another process may have finished while we waited.
		if sol := e.cached(ctx, logger, in, key); sol != nil {
			e.solved(ctx, sol, true, start)
			return sol, nil
		}
	}

	sol, err := e.pipeline.Run(ctx, in, runtime.RunOptions{
		RunID:     e.newRunID(),
		PathLimit: opts.PathLimit,
		SkipPaths: opts.SkipPaths,
	})
	if err != nil {
		return nil, err
	}

	if e.store != nil {
		if err := e.store.Save(ctx, key, sol.Report()); err != nil {
			logger.Warn("Failed to cache solution", "err", err)
		}
	}

	e.solved(ctx, sol, false, start)
	return sol, nil
}

// cached returns a stored solution for key, or nil on a miss.
// Unreadable entries are treated as misses.
func (e *Engine) cached(ctx context.Context, logger *slog.Logger, in *domain.Instance, key string) *domain.Solution {
	if e.store == nil {
		return nil
	}
	report, err := e.store.Load(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrSolutionNotFound) {
			logger.Warn("Failed to read cached solution", "err", err)
		}
		return nil
	}
	sol, err := in.Restore(report)
	if err != nil {
		logger.Warn("Discarding cached solution", "err", err)
		return nil
	}
	logger.Debug("Cache hit", "run_id", sol.RunID)
	return sol
}

func (e *Engine) solved(ctx context.Context, sol *domain.Solution, cached bool, start time.Time) {
	if e.hooks.OnSolved == nil {
		return
	}
	e.hooks.OnSolved(ctx, &domain.SolveEvent{
		EventBase: domain.EventBase{Timestamp: e.now(), RunID: sol.RunID, Puzzle: sol.Instance.Name},
		Solvable:  sol.Solvable,
		Paths:     len(sol.Paths),
		Cached:    cached,
		Duration:  e.now().Sub(start),
	})
}

// cacheKey separates results computed with different path settings.
func cacheKey(fp string, opts domain.SolveOptions) string {
	switch {
	case opts.SkipPaths:
		return fp + "-reach"
	case opts.PathLimit > 0:
		return fp + "-l" + strconv.Itoa(opts.PathLimit)
	default:
		return fp
	}
}
