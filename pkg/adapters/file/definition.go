package file

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/aretw0/rivercross/pkg/domain"
	"github.com/mitchellh/mapstructure"
)

// Definition is the on-disk form of a puzzle.
//
// Token groups may be written as a list of tokens or as a single string in
// entry notation: "ADE" is A, D, E and "wolf,goat" is wolf, goat. When any
// character is longer than one rune, string entries are always split on commas.
// initial_state may also carry the full "left|right" form; only the left side is read.
type Definition struct {
	Name             string         `json:"name,omitempty" yaml:"name,omitempty" mapstructure:"name"`
	Description      string         `json:"description,omitempty" yaml:"description,omitempty" mapstructure:"description"`
	Characters       any            `json:"characters" yaml:"characters" mapstructure:"characters"`
	Boat             BoatDefinition `json:"boat" yaml:"boat" mapstructure:"boat"`
	RestrictedStates []any          `json:"restricted_states,omitempty" yaml:"restricted_states,omitempty" mapstructure:"restricted_states"`
	InitialState     any            `json:"initial_state" yaml:"initial_state" mapstructure:"initial_state"`
}

// BoatDefinition is the on-disk form of the boat rules.
type BoatDefinition struct {
	Capacity             any   `json:"capacity" yaml:"capacity" mapstructure:"capacity"`
	Drivers              any   `json:"drivers" yaml:"drivers" mapstructure:"drivers"`
	RestrictedBoatStates []any `json:"restricted_boat_states,omitempty" yaml:"restricted_boat_states,omitempty" mapstructure:"restricted_boat_states"`
}

// FromMap decodes a loosely typed definition (MCP arguments, frontmatter) into a Puzzle.
func FromMap(m map[string]any) (domain.Puzzle, error) {
	var def Definition
	if err := mapstructure.Decode(m, &def); err != nil {
		return domain.Puzzle{}, fmt.Errorf("%w: %w", domain.ErrInvalidPuzzle, err)
	}
	return def.Puzzle()
}

// Puzzle converts the definition into the solver's plain-data form.
// Only the notation is checked here; rule validation happens when the puzzle is compiled.
func (d Definition) Puzzle() (domain.Puzzle, error) {
	characters, err := tokens("characters", d.Characters, false)
	if err != nil {
		return domain.Puzzle{}, err
	}

	multi := false
	for _, c := range characters {
		if utf8.RuneCountInString(c) > 1 {
			multi = true
			break
		}
	}

	p := domain.Puzzle{
		Name:        d.Name,
		Description: strings.TrimSpace(d.Description),
		Characters:  characters,
	}

	if p.Boat.Capacity, err = integer("boat.capacity", d.Boat.Capacity); err != nil {
		return domain.Puzzle{}, err
	}
	if p.Boat.Drivers, err = tokens("boat.drivers", d.Boat.Drivers, multi); err != nil {
		return domain.Puzzle{}, err
	}
	if p.Boat.RestrictedBoatStates, err = groups("boat.restricted_boat_states", d.Boat.RestrictedBoatStates, multi); err != nil {
		return domain.Puzzle{}, err
	}
	if p.RestrictedStates, err = groups("restricted_states", d.RestrictedStates, multi); err != nil {
		return domain.Puzzle{}, err
	}

	initial := d.InitialState
	if s, ok := initial.(string); ok {
		initial, _, _ = strings.Cut(s, "|")
	}
	if p.InitialState, err = tokens("initial_state", initial, multi); err != nil {
		return domain.Puzzle{}, err
	}

	return p, nil
}

// FromPuzzle returns the list form of p, suitable for writing back to disk.
func FromPuzzle(p domain.Puzzle) Definition {
	toAny := func(groups [][]string) []any {
		if groups == nil {
			return nil
		}
		out := make([]any, len(groups))
		for i, g := range groups {
			out[i] = g
		}
		return out
	}
	return Definition{
		Name:        p.Name,
		Description: p.Description,
		Characters:  p.Characters,
		Boat: BoatDefinition{
			Capacity:             p.Boat.Capacity,
			Drivers:              p.Boat.Drivers,
			RestrictedBoatStates: toAny(p.Boat.RestrictedBoatStates),
		},
		RestrictedStates: toAny(p.RestrictedStates),
		InitialState:     p.InitialState,
	}
}

func groups(field string, raw []any, multi bool) ([][]string, error) {
	if raw == nil {
		return nil, nil
	}
	out := make([][]string, len(raw))
	for i, entry := range raw {
		g, err := tokens(fmt.Sprintf("%s[%d]", field, i), entry, multi)
		if err != nil {
			return nil, err
		}
		out[i] = g
	}
	return out, nil
}

func tokens(field string, raw any, multi bool) ([]string, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case string:
		return domain.SplitTokens(v, multi), nil
	case []string:
		return trimAll(v), nil
	case []any:
		out := make([]string, 0, len(v))
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, notation(field, fmt.Sprintf("element %d must be a string, got %T", i, item), raw)
			}
			out = append(out, strings.TrimSpace(s))
		}
		return out, nil
	default:
		return nil, notation(field, fmt.Sprintf("expected a string or a list of strings, got %T", raw), raw)
	}
}

func integer(field string, raw any) (int, error) {
	switch v := raw.(type) {
	case nil:
		return 0, nil
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case uint64:
		if v > math.MaxInt32 {
			return 0, notation(field, "out of range", raw)
		}
		return int(v), nil
	case float64:
		if v != math.Trunc(v) {
			return 0, notation(field, "must be a whole number", raw)
		}
		return int(v), nil
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, notation(field, "must be a whole number", raw)
		}
		return int(n), nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, notation(field, "must be a whole number", raw)
		}
		return n, nil
	default:
		return 0, notation(field, fmt.Sprintf("expected a number, got %T", raw), raw)
	}
}

func trimAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.TrimSpace(s)
	}
	return out
}

func notation(field, reason string, value any) error {
	return &domain.InputError{Field: field, Value: value, Reason: reason, Err: domain.ErrInvalidPuzzle}
}
