package observability

import (
	"context"
	"strconv"

	"github.com/aretw0/rivercross/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors fed by the solver's lifecycle hooks.
type Metrics struct {
	StageDuration *prometheus.HistogramVec
	StageItems    *prometheus.CounterVec
	StageErrors   *prometheus.CounterVec
	Solves        *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		StageDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "rivercross_stage_duration_seconds",
				Help:    "Duration of solver pipeline stages",
				Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
			},
			[]string{"stage"},
		),
		StageItems: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rivercross_stage_items_total",
				Help: "Items produced by each stage (states, transitions, paths)",
			},
			[]string{"stage"},
		),
		StageErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rivercross_stage_errors_total",
				Help: "Stages aborted by an error (usually cancellation)",
			},
			[]string{"stage"},
		),
		Solves: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rivercross_solves_total",
				Help: "Finished solve requests",
			},
			[]string{"solvable", "cached"},
		),
	}

	for _, c := range []prometheus.Collector{m.StageDuration, m.StageItems, m.StageErrors, m.Solves} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Hooks returns lifecycle hooks that record into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStageEnd: func(_ context.Context, e *domain.StageEvent) {
			stage := string(e.Stage)
			if e.Err != nil {
				m.StageErrors.WithLabelValues(stage).Inc()
				return
			}
			m.StageDuration.WithLabelValues(stage).Observe(e.Duration.Seconds())
			m.StageItems.WithLabelValues(stage).Add(float64(e.Count))
		},
		OnSolved: func(_ context.Context, e *domain.SolveEvent) {
			m.Solves.WithLabelValues(strconv.FormatBool(e.Solvable), strconv.FormatBool(e.Cached)).Inc()
		},
	}
}
