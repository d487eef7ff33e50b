package domain

import (
	"fmt"
	"time"
)

// Stats summarizes one pipeline run.
type Stats struct {
	States      int           `json:"states" yaml:"states"`
	Transitions int           `json:"transitions" yaml:"transitions"`
	Paths       int           `json:"paths" yaml:"paths"`
	Duration    time.Duration `json:"duration" yaml:"duration"`
}

// Solution is the in-memory result of solving one puzzle instance.
// It is produced once and treated as read-only afterwards.
type Solution struct {
	RunID       string
	Fingerprint string
	Instance    *Instance
	States      []Config
	Transitions []Transition
	Paths       []Path

	// Solvable reports whether the goal is reachable under strict alternation,
	// independently of whether paths were enumerated.
	Solvable bool

	// Truncated is set when path enumeration stopped at the configured limit.
	Truncated bool

	// PathsSkipped is set when path enumeration was disabled for this run.
	PathsSkipped bool

	Stats       Stats
	GeneratedAt time.Time
}

// Report is the canonical string form of a Solution, safe to serialize and store.
type Report struct {
	RunID        string             `json:"run_id" yaml:"run_id"`
	Puzzle       string             `json:"puzzle,omitempty" yaml:"puzzle,omitempty"`
	Fingerprint  string             `json:"fingerprint" yaml:"fingerprint"`
	Characters   []string           `json:"characters" yaml:"characters"`
	Initial      string             `json:"initial" yaml:"initial"`
	Goal         string             `json:"goal" yaml:"goal"`
	States       []string           `json:"states" yaml:"states"`
	Transitions  []TransitionRecord `json:"transitions" yaml:"transitions"`
	Paths        [][]string         `json:"paths" yaml:"paths"`
	Solvable     bool               `json:"solvable" yaml:"solvable"`
	Truncated    bool               `json:"truncated,omitempty" yaml:"truncated,omitempty"`
	PathsSkipped bool               `json:"paths_skipped,omitempty" yaml:"paths_skipped,omitempty"`
	Stats        Stats              `json:"stats" yaml:"stats"`
	GeneratedAt  time.Time          `json:"generated_at" yaml:"generated_at"`
}

// Report converts the solution to its canonical string form.
func (s *Solution) Report() *Report {
	r := &Report{
		RunID:        s.RunID,
		Fingerprint:  s.Fingerprint,
		States:       make([]string, len(s.States)),
		Transitions:  make([]TransitionRecord, len(s.Transitions)),
		Paths:        make([][]string, len(s.Paths)),
		Solvable:     s.Solvable,
		Truncated:    s.Truncated,
		PathsSkipped: s.PathsSkipped,
		Stats:        s.Stats,
		GeneratedAt:  s.GeneratedAt,
	}
	if s.Instance != nil {
		r.Puzzle = s.Instance.Name
		r.Characters = s.Instance.Alphabet.Tokens()
		r.Initial = s.Instance.Initial.String()
		r.Goal = s.Instance.Goal.String()
	}
	for i, c := range s.States {
		r.States[i] = c.String()
	}
	for i, t := range s.Transitions {
		r.Transitions[i] = t.Record()
	}
	for i, p := range s.Paths {
		r.Paths[i] = p.Strings()
	}
	return r
}

// Path returns the n-th path of the report (zero-based), or nil.
func (r *Report) Path(n int) []string {
	if n < 0 || n >= len(r.Paths) {
		return nil
	}
	return r.Paths[n]
}

// Restore rebuilds a Solution for in from a cached report.
// The report must have been produced for the same definition.
func (in *Instance) Restore(r *Report) (*Solution, error) {
	if r.Fingerprint != "" && r.Fingerprint != in.Fingerprint() {
		return nil, fmt.Errorf("report fingerprint %s does not match puzzle %s", r.Fingerprint, in.Fingerprint())
	}

	parse := in.Alphabet.ParseConfig
	s := &Solution{
		RunID:        r.RunID,
		Fingerprint:  in.Fingerprint(),
		Instance:     in,
		States:       make([]Config, len(r.States)),
		Transitions:  make([]Transition, len(r.Transitions)),
		Paths:        make([]Path, len(r.Paths)),
		Solvable:     r.Solvable,
		Truncated:    r.Truncated,
		PathsSkipped: r.PathsSkipped,
		Stats:        r.Stats,
		GeneratedAt:  r.GeneratedAt,
	}

	var err error
	for i, str := range r.States {
		if s.States[i], err = parse(str); err != nil {
			return nil, fmt.Errorf("restore state %d: %w", i, err)
		}
	}
	for i, rec := range r.Transitions {
		t := Transition{Condition: rec.Condition}
		if t.From, err = parse(rec.From); err != nil {
			return nil, fmt.Errorf("restore transition %d: %w", i, err)
		}
		if t.To, err = parse(rec.To); err != nil {
			return nil, fmt.Errorf("restore transition %d: %w", i, err)
		}
		if t.Group, err = in.Alphabet.Mask(in.Alphabet.SplitTokens(rec.Group)); err != nil {
			return nil, fmt.Errorf("restore transition %d: %w", i, err)
		}
		s.Transitions[i] = t
	}
	for i, steps := range r.Paths {
		p := make(Path, len(steps))
		for j, str := range steps {
			if p[j], err = parse(str); err != nil {
				return nil, fmt.Errorf("restore path %d: %w", i, err)
			}
		}
		s.Paths[i] = p
	}
	return s, nil
}
