package domain

// TransitionKey is the deduplication identity of a Transition.
type TransitionKey struct {
	From      ConfigKey
	Condition Side
	To        ConfigKey
}

// Transition is a directed, labeled edge: with the boat on the Condition bank at From,
// ferrying Group across produces To.
type Transition struct {
	From      Config
	Condition Side
	To        Config

	// Group is the traveler group that first produced this edge.
	Group uint64
}

// Key returns the (source, condition, destination) identity.
func (t Transition) Key() TransitionKey {
	return TransitionKey{From: t.From.Key(), Condition: t.Condition, To: t.To.Key()}
}

// Trigger names the transition for host state machines ("<src>to<dst>").
func (t Transition) Trigger() string {
	return t.From.String() + "to" + t.To.String()
}

// GroupString returns the canonical traveler group string.
func (t Transition) GroupString() string {
	return t.From.alpha.Format(t.Group)
}

// Record returns the canonical string form.
func (t Transition) Record() TransitionRecord {
	return TransitionRecord{
		From:      t.From.String(),
		Condition: t.Condition,
		To:        t.To.String(),
		Group:     t.GroupString(),
	}
}

// TransitionRecord is the canonical string form of a Transition.
type TransitionRecord struct {
	From      string `json:"from" yaml:"from"`
	Condition Side   `json:"condition" yaml:"condition"`
	To        string `json:"to" yaml:"to"`
	Group     string `json:"group,omitempty" yaml:"group,omitempty"`
}

// Path is an ordered sequence of configurations from the initial state to the goal.
type Path []Config

// Strings returns the canonical strings of every step.
func (p Path) Strings() []string {
	out := make([]string, len(p))
	for i, c := range p {
		out[i] = c.String()
	}
	return out
}

// Crossings returns the number of boat crossings along the path.
func (p Path) Crossings() int {
	if len(p) == 0 {
		return 0
	}
	return len(p) - 1
}
