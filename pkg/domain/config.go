package domain

import "math/bits"

// Side names a river bank. As a transition condition it is the bank the boat departs from.
type Side string

const (
	SideLeft  Side = "left"
	SideRight Side = "right"
)

// Opposite returns the other bank.
func (s Side) Opposite() Side {
	if s == SideLeft {
		return SideRight
	}
	return SideLeft
}

// Valid reports whether s names a bank.
func (s Side) Valid() bool {
	return s == SideLeft || s == SideRight
}

// ConfigKey identifies a Config inside one puzzle instance.
type ConfigKey struct {
	Left  uint64
	Right uint64
}

// Config is one split of the full character set between the two banks.
// Build it with NewConfig or Alphabet.ParseConfig and pass it by value: Left and
// Right are disjoint and together cover the alphabet. The masks are exported for
// keys and serialization; code that writes them takes over that invariant.
type Config struct {
	Left  uint64
	Right uint64
	alpha *Alphabet
}

// NewConfig builds the configuration whose left bank is left; the right bank is the complement.
func NewConfig(a *Alphabet, left uint64) Config {
	full := a.Full()
	return Config{Left: left & full, Right: full &^ left, alpha: a}
}

// Key returns the comparable identity used for set membership and deduplication.
func (c Config) Key() ConfigKey {
	return ConfigKey{Left: c.Left, Right: c.Right}
}

// Bank returns the mask of characters on the given side.
func (c Config) Bank(s Side) uint64 {
	if s == SideLeft {
		return c.Left
	}
	return c.Right
}

// Count returns the number of characters across both banks.
func (c Config) Count() int {
	return bits.OnesCount64(c.Left) + bits.OnesCount64(c.Right)
}

// LeftString returns the canonical left-bank string.
func (c Config) LeftString() string { return c.alpha.Format(c.Left) }

// RightString returns the canonical right-bank string.
func (c Config) RightString() string { return c.alpha.Format(c.Right) }

// String returns the canonical "left|right" form.
func (c Config) String() string {
	if c.alpha == nil {
		return ""
	}
	return c.LeftString() + "|" + c.RightString()
}

// Alphabet returns the alphabet the masks refer to.
func (c Config) Alphabet() *Alphabet { return c.alpha }
