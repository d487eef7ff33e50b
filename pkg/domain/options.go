package domain

// SolveOptions tunes a single solve request.
type SolveOptions struct {
	// PathLimit caps path enumeration (0 = unlimited).
	PathLimit int

	// SkipPaths computes solvability only.
	SkipPaths bool
}

// SolveOption overrides the engine defaults for one request.
type SolveOption func(*SolveOptions)

// WithPathLimit stops path enumeration after n paths (0 = unlimited).
func WithPathLimit(n int) SolveOption {
	return func(o *SolveOptions) {
		o.PathLimit = n
	}
}

// WithoutPaths skips path enumeration; only solvability is reported.
func WithoutPaths() SolveOption {
	return func(o *SolveOptions) {
		o.SkipPaths = true
	}
}

// Apply returns o with every option applied.
func (o SolveOptions) Apply(opts ...SolveOption) SolveOptions {
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
