package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Boat holds the crossing rules.
// The boat's current bank is not part of the definition; playback owns it.
type Boat struct {
	Capacity int      `json:"capacity" yaml:"capacity" mapstructure:"capacity" validate:"gte=1"`
	Drivers  []string `json:"drivers" yaml:"drivers" mapstructure:"drivers" validate:"required,min=1,dive,required"`

	// RestrictedBoatStates lists groups that may never board together.
	RestrictedBoatStates [][]string `json:"restricted_boat_states,omitempty" yaml:"restricted_boat_states,omitempty" mapstructure:"restricted_boat_states" validate:"dive,min=1,dive,required"`
}

// Puzzle is the plain-data definition handed to the solver by a loader.
type Puzzle struct {
	Name        string   `json:"name,omitempty" yaml:"name,omitempty" mapstructure:"name"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty" mapstructure:"description"`
	Characters  []string `json:"characters" yaml:"characters" mapstructure:"characters" validate:"required,min=1,max=64,dive,required"`
	Boat        Boat     `json:"boat" yaml:"boat" mapstructure:"boat"`

	// RestrictedStates lists bank contents that may never exist on either side.
	RestrictedStates [][]string `json:"restricted_states,omitempty" yaml:"restricted_states,omitempty" mapstructure:"restricted_states" validate:"dive,min=1,dive,required"`

	// InitialState lists the characters starting on the left bank.
	InitialState []string `json:"initial_state" yaml:"initial_state" mapstructure:"initial_state" validate:"dive,required"`
}

// BoatRules is the compiled form of Boat.
type BoatRules struct {
	Capacity   int
	Drivers    uint64
	Restricted map[uint64]struct{}
}

// Instance is a compiled Puzzle: every token resolved against one Alphabet.
// It is read-only once built.
type Instance struct {
	Name       string
	Alphabet   *Alphabet
	Boat       BoatRules
	Restricted map[uint64]struct{}
	Initial    Config
	Goal       Config
}

// IsRestricted reports whether a bank holding exactly mask is forbidden.
func (in *Instance) IsRestricted(mask uint64) bool {
	_, ok := in.Restricted[mask]
	return ok
}

// IsRestrictedBoat reports whether the traveler group may not board together.
func (in *Instance) IsRestrictedBoat(group uint64) bool {
	_, ok := in.Boat.Restricted[group]
	return ok
}

// Legal reports whether neither bank of c is restricted.
func (in *Instance) Legal(c Config) bool {
	return !in.IsRestricted(c.Left) && !in.IsRestricted(c.Right)
}

// Fingerprint returns a stable hash of the compiled definition, independent of
// the order restrictions were listed in.
func (in *Instance) Fingerprint() string {
	var sb strings.Builder
	sb.WriteString(strings.Join(in.Alphabet.tokens, "\x1f"))
	sb.WriteString("\x1e")
	sb.WriteString(strconv.Itoa(in.Boat.Capacity))
	sb.WriteString("\x1e")
	sb.WriteString(strconv.FormatUint(in.Boat.Drivers, 16))
	for _, set := range []map[uint64]struct{}{in.Boat.Restricted, in.Restricted} {
		sb.WriteString("\x1e")
		keys := make([]uint64, 0, len(set))
		for k := range set {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			sb.WriteString(strconv.FormatUint(k, 16))
			sb.WriteString(",")
		}
	}
	sb.WriteString("\x1e")
	sb.WriteString(strconv.FormatUint(in.Initial.Left, 16))

	sum := sha256.Sum256([]byte(sb.String()))
	return hex.EncodeToString(sum[:])
}

// Compile resolves every token of p. All unresolvable fields are reported together.
func (p Puzzle) Compile() (*Instance, error) {
	alpha, err := NewAlphabet(p.Characters)
	if err != nil {
		return nil, err
	}

	var errs []error
	reject := func(field string, value any, cause error) {
		errs = append(errs, &InputError{Field: field, Value: value, Reason: cause.Error(), Err: errors.Join(ErrInvalidPuzzle, cause)})
	}

	in := &Instance{
		Name:       p.Name,
		Alphabet:   alpha,
		Restricted: make(map[uint64]struct{}, len(p.RestrictedStates)),
		Boat: BoatRules{
			Capacity:   p.Boat.Capacity,
			Restricted: make(map[uint64]struct{}, len(p.Boat.RestrictedBoatStates)),
		},
	}

	if p.Boat.Capacity < 1 {
		errs = append(errs, &InputError{Field: "boat.capacity", Value: p.Boat.Capacity, Reason: "must be at least 1", Err: ErrInvalidPuzzle})
	}

	drivers, err := alpha.Mask(p.Boat.Drivers)
	switch {
	case err != nil:
		reject("boat.drivers", p.Boat.Drivers, err)
	case drivers == 0:
		errs = append(errs, &InputError{Field: "boat.drivers", Reason: "at least one driver is required", Err: ErrInvalidPuzzle})
	}
	in.Boat.Drivers = drivers

	for i, group := range p.Boat.RestrictedBoatStates {
		mask, err := alpha.Mask(group)
		if err != nil {
			reject(fmt.Sprintf("boat.restricted_boat_states[%d]", i), group, err)
			continue
		}
		in.Boat.Restricted[mask] = struct{}{}
	}

	for i, side := range p.RestrictedStates {
		mask, err := alpha.Mask(side)
		if err != nil {
			reject(fmt.Sprintf("restricted_states[%d]", i), side, err)
			continue
		}
		in.Restricted[mask] = struct{}{}
	}

	initial, err := alpha.Mask(p.InitialState)
	if err != nil {
		reject("initial_state", p.InitialState, err)
	}
	in.Initial = NewConfig(alpha, initial)
	in.Goal = NewConfig(alpha, 0)

	if err := Collect(errs); err != nil {
		return nil, err
	}
	return in, nil
}
