package domain

import (
	"fmt"
	"math/bits"
	"strings"
	"unicode/utf8"
)

// MaxCharacters is the largest character set a Config mask can address.
const MaxCharacters = 64

// Alphabet is the ordered character set of a puzzle.
// The position of a token is its bit in every mask derived from this alphabet,
// and definition order is the canonical sort order.
type Alphabet struct {
	tokens  []string
	index   map[string]int
	compact bool // every token is a single rune
}

// NewAlphabet builds an alphabet from the ordered, unique tokens.
func NewAlphabet(tokens []string) (*Alphabet, error) {
	if len(tokens) == 0 {
		return nil, &InputError{Field: "characters", Reason: "at least one character is required", Err: ErrInvalidPuzzle}
	}
	if len(tokens) > MaxCharacters {
		return nil, &InputError{
			Field:  "characters",
			Value:  len(tokens),
			Reason: fmt.Sprintf("at most %d characters are supported", MaxCharacters),
			Err:    ErrInvalidPuzzle,
		}
	}

	a := &Alphabet{
		tokens:  make([]string, len(tokens)),
		index:   make(map[string]int, len(tokens)),
		compact: true,
	}
	for i, tok := range tokens {
		if tok == "" {
			return nil, &InputError{Field: fmt.Sprintf("characters[%d]", i), Reason: "empty token", Err: ErrInvalidPuzzle}
		}
		if strings.ContainsAny(tok, "|,") {
			return nil, &InputError{Field: fmt.Sprintf("characters[%d]", i), Value: tok, Reason: "token must not contain '|' or ','", Err: ErrInvalidPuzzle}
		}
		if _, dup := a.index[tok]; dup {
			return nil, &InputError{Field: fmt.Sprintf("characters[%d]", i), Value: tok, Reason: "duplicate token", Err: ErrInvalidPuzzle}
		}
		a.tokens[i] = tok
		a.index[tok] = i
		if utf8.RuneCountInString(tok) != 1 {
			a.compact = false
		}
	}
	return a, nil
}

// Len returns the number of characters.
func (a *Alphabet) Len() int { return len(a.tokens) }

// Tokens returns a copy of the tokens in canonical order.
func (a *Alphabet) Tokens() []string {
	out := make([]string, len(a.tokens))
	copy(out, a.tokens)
	return out
}

// Full returns the mask holding every character.
func (a *Alphabet) Full() uint64 {
	if len(a.tokens) == MaxCharacters {
		return ^uint64(0)
	}
	return uint64(1)<<uint(len(a.tokens)) - 1
}

// Mask resolves a token group to its bitmask.
// Unknown or repeated tokens are rejected.
func (a *Alphabet) Mask(tokens []string) (uint64, error) {
	var mask uint64
	for _, tok := range tokens {
		i, ok := a.index[tok]
		if !ok {
			return 0, fmt.Errorf("%w: %q", ErrUnknownCharacter, tok)
		}
		bit := uint64(1) << uint(i)
		if mask&bit != 0 {
			return 0, fmt.Errorf("character %q listed twice", tok)
		}
		mask |= bit
	}
	return mask, nil
}

// Members lists the tokens of a mask in canonical order.
func (a *Alphabet) Members(mask uint64) []string {
	out := make([]string, 0, bits.OnesCount64(mask))
	for mask != 0 {
		i := bits.TrailingZeros64(mask)
		out = append(out, a.tokens[i])
		mask &^= uint64(1) << uint(i)
	}
	return out
}

// Format renders a mask as its canonical side string.
// Single-rune alphabets concatenate ("ADE"); others join with commas ("wolf,goat").
func (a *Alphabet) Format(mask uint64) string {
	sep := ","
	if a.compact {
		sep = ""
	}
	return strings.Join(a.Members(mask), sep)
}

// SplitTokens splits a side string using the same notation Format produces.
func (a *Alphabet) SplitTokens(side string) []string {
	return SplitTokens(side, !a.compact)
}

// ParseConfig parses a canonical "left|right" string back into a Config.
func (a *Alphabet) ParseConfig(s string) (Config, error) {
	left, right, ok := strings.Cut(s, "|")
	if !ok {
		return Config{}, fmt.Errorf("configuration %q: missing '|' separator", s)
	}
	l, err := a.Mask(a.SplitTokens(left))
	if err != nil {
		return Config{}, fmt.Errorf("configuration %q: left bank: %w", s, err)
	}
	r, err := a.Mask(a.SplitTokens(right))
	if err != nil {
		return Config{}, fmt.Errorf("configuration %q: right bank: %w", s, err)
	}
	if l&r != 0 || l|r != a.Full() {
		return Config{}, fmt.Errorf("configuration %q: banks must partition the character set", s)
	}
	return NewConfig(a, l), nil
}

// SplitTokens splits a group string into tokens. A string containing a comma, or
// any string when multi is set, is split on commas; otherwise every rune is a token.
func SplitTokens(s string, multi bool) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if multi || strings.Contains(s, ",") {
		parts := strings.Split(s, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out
	}
	out := make([]string, 0, utf8.RuneCountInString(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}
