package cli

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/aretw0/rivercross"
	"github.com/aretw0/rivercross/internal/config"
	"github.com/aretw0/rivercross/pkg/adapters/file"
	"github.com/aretw0/rivercross/pkg/adapters/memory"
	redisAdapter "github.com/aretw0/rivercross/pkg/adapters/redis"
	"github.com/aretw0/rivercross/pkg/domain"
	"github.com/aretw0/rivercross/pkg/observability"
)

// EngineOptions selects where puzzles come from and how results are cached.
type EngineOptions struct {
	Config config.Config

	// File solves a single definition file instead of the --dir repository.
	File string

	// Hooks are chained after the logging hooks.
	Hooks []domain.LifecycleHooks

	// MaxPaths caps the default path limit; an unlimited default becomes MaxPaths.
	// Zero leaves solve.path_limit as configured.
	MaxPaths int
}

// Engine bundles a configured engine with the resources it holds open.
type Engine struct {
	*rivercross.Engine

	// DefaultID is the ID of the --file puzzle, if any.
	DefaultID string

	closers []func() error
}

// Close releases the cache connections.
func (e *Engine) Close() error {
	var errs []string
	for _, c := range e.closers {
		if err := c(); err != nil {
			errs = append(errs, err.Error())
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("close engine: %s", strings.Join(errs, "; "))
	}
	return nil
}

// CreateEngine initializes an engine with standard CLI conventions:
// puzzles come from --file or the --dir repository, solutions are cached in
// Redis when redis.addr is set, or on disk when solve.cache is set.
func CreateEngine(ctx context.Context, opts EngineOptions, logger *slog.Logger) (*Engine, error) {
	cfg := opts.Config
	hooks := append([]domain.LifecycleHooks{observability.LoggingHooks(logger)}, opts.Hooks...)

	engineOpts := []rivercross.Option{
		rivercross.WithLogger(logger),
		rivercross.WithLifecycleHooks(observability.Chain(hooks...)),
		rivercross.WithSolveDefaults(domain.WithPathLimit(ClampPathLimit(cfg.Solve.PathLimit, opts.MaxPaths))),
	}

	eng := &Engine{}

	// 1. Loader
	if opts.File != "" {
		p, err := file.LoadPuzzle(opts.File)
		if err != nil {
			return nil, err
		}
		eng.DefaultID = p.Name
		engineOpts = append(engineOpts, rivercross.WithLoader(memory.NewLoader(map[string]domain.Puzzle{p.Name: p})))
	}

	// 2. Cache
	switch {
	case cfg.Redis.Addr != "":
		client := redisAdapter.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, fmt.Errorf("connect redis %s: %w", cfg.Redis.Addr, err)
		}
		store := redisAdapter.NewFromClient(client,
			redisAdapter.WithTTL(cfg.Redis.TTL),
			redisAdapter.WithPrefix(cfg.Redis.Prefix),
		)
		engineOpts = append(engineOpts,
			rivercross.WithStore(store),
			rivercross.WithLocker(redisAdapter.NewLocker(client, cfg.Redis.Prefix), 0),
		)
		eng.closers = append(eng.closers, client.Close)
		logger.Debug("Solution cache", "backend", "redis", "addr", cfg.Redis.Addr)
	case cfg.Solve.Cache:
		dir := filepath.Join(cfg.Dir, ".rivercross", "solutions")
		engineOpts = append(engineOpts, rivercross.WithStore(file.NewStore(dir)))
		logger.Debug("Solution cache", "backend", "file", "dir", dir)
	}

	// 3. Initialize
	repoPath := cfg.Dir
	if opts.File != "" {
		repoPath = ""
	}
	engine, err := rivercross.New(repoPath, engineOpts...)
	if err != nil {
		eng.Close()
		return nil, fmt.Errorf("error initializing engine: %w", err)
	}
	eng.Engine = engine

	return eng, nil
}

// ClampPathLimit bounds a requested path limit by ceiling. A zero limit means
// unlimited and therefore becomes ceiling. A zero ceiling disables the bound.
func ClampPathLimit(limit, ceiling int) int {
	if ceiling > 0 && (limit <= 0 || limit > ceiling) {
		return ceiling
	}
	return limit
}

// ResolveID picks the puzzle to work on: the positional argument, or the --file puzzle.
func (e *Engine) ResolveID(args []string) (string, error) {
	switch {
	case len(args) > 0:
		return args[0], nil
	case e.DefaultID != "":
		return e.DefaultID, nil
	default:
		return "", fmt.Errorf("a puzzle ID or --file is required")
	}
}
