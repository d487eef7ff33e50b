package observability

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/aretw0/rivercross/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Hooks(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewMetrics(reg)
	require.NoError(t, err)

	hooks := m.Hooks()
	ctx := context.Background()

	hooks.OnStageEnd(ctx, &domain.StageEvent{Stage: domain.StageEnumerateStates, Count: 10, Duration: time.Millisecond})
	hooks.OnStageEnd(ctx, &domain.StageEvent{Stage: domain.StageEnumerateStates, Count: 10, Duration: time.Millisecond})
	hooks.OnStageEnd(ctx, &domain.StageEvent{Stage: domain.StageValidatePaths, Err: context.Canceled})
	hooks.OnSolved(ctx, &domain.SolveEvent{Solvable: true})
	hooks.OnSolved(ctx, &domain.SolveEvent{Solvable: true, Cached: true})

	assert.Equal(t, 20.0, testutil.ToFloat64(m.StageItems.WithLabelValues(string(domain.StageEnumerateStates))))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.StageErrors.WithLabelValues(string(domain.StageValidatePaths))))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Solves.WithLabelValues("true", "false")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Solves.WithLabelValues("true", "true")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.StageDuration))
}

func TestNewMetrics_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewMetrics(reg)
	require.NoError(t, err)

	_, err = NewMetrics(reg)
	var already prometheus.AlreadyRegisteredError
	assert.True(t, errors.As(err, &already))
}

func TestChain(t *testing.T) {
	var calls []string
	record := func(name string) domain.LifecycleHooks {
		return domain.LifecycleHooks{
			OnStageStart: func(context.Context, *domain.StageEvent) { calls = append(calls, name+":start") },
			OnSolved:     func(context.Context, *domain.SolveEvent) { calls = append(calls, name+":solved") },
		}
	}

	hooks := Chain(record("a"), domain.LifecycleHooks{}, record("b"))
	require.NotNil(t, hooks.OnStageStart)
	assert.Nil(t, hooks.OnStageEnd, "no set provides OnStageEnd")

	hooks.OnStageStart(context.Background(), &domain.StageEvent{})
	hooks.OnSolved(context.Background(), &domain.SolveEvent{})

	assert.Equal(t, []string{"a:start", "b:start", "a:solved", "b:solved"}, calls)
}

func TestLoggingHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	hooks := LoggingHooks(logger)
	hooks.OnStageEnd(context.Background(), &domain.StageEvent{
		EventBase: domain.EventBase{RunID: "r1", Puzzle: "wgc"},
		Stage:     domain.StageGenerateTransitions,
		Count:     20,
	})
	hooks.OnSolved(context.Background(), &domain.SolveEvent{EventBase: domain.EventBase{RunID: "r1"}, Paths: 2})

	out := buf.String()
	assert.Contains(t, out, "stage=generate_transitions")
	assert.Contains(t, out, "count=20")
	assert.Contains(t, out, "msg=solved")
	assert.Contains(t, out, "paths=2")
}
