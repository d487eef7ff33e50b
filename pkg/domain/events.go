package domain

import (
	"context"
	"time"
)

// Stage names one step of the solving pipeline.
type Stage string

const (
	StageEnumerateStates     Stage = "enumerate_states"
	StageGenerateTransitions Stage = "generate_transitions"
	StageValidatePaths       Stage = "validate_paths"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	RunID     string    `json:"run_id"`
	Puzzle    string    `json:"puzzle,omitempty"`
}

// StageEvent reports the start or end of a pipeline stage.
// Count and Duration are only set on end events.
type StageEvent struct {
	EventBase
	Stage    Stage         `json:"stage"`
	Count    int           `json:"count,omitempty"`
	Duration time.Duration `json:"duration,omitempty"`
	Err      error         `json:"-"`
}

// SolveEvent reports a finished solve request.
type SolveEvent struct {
	EventBase
	Solvable bool          `json:"solvable"`
	Paths    int           `json:"paths"`
	Cached   bool          `json:"cached,omitempty"`
	Duration time.Duration `json:"duration"`
}

// LifecycleHooks defines callbacks for solver observability.
type LifecycleHooks struct {
	OnStageStart func(context.Context, *StageEvent)
	OnStageEnd   func(context.Context, *StageEvent)
	OnSolved     func(context.Context, *SolveEvent)
}
