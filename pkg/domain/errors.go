package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidPuzzle is returned (wrapped) when a puzzle definition is rejected before generation.
var ErrInvalidPuzzle = errors.New("invalid puzzle definition")

// ErrUnknownCharacter is returned when a token does not belong to the puzzle's character set.
var ErrUnknownCharacter = errors.New("unknown character")

// ErrPuzzleNotFound is returned when a puzzle ID cannot be found by a loader.
var ErrPuzzleNotFound = errors.New("puzzle not found")

// ErrSolutionNotFound is returned when a solution is not present in the store.
var ErrSolutionNotFound = errors.New("solution not found")

// InputError describes one rejected field of a puzzle definition.
type InputError struct {
	Field  string
	Value  any
	Reason string
	Err    error
}

func (e *InputError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("field %q: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("field %q: %s (got %v)", e.Field, e.Reason, e.Value)
}

func (e *InputError) Unwrap() error { return e.Err }

// AggregateError collects every field failure of a definition.
type AggregateError struct {
	Errors []error
}

func (e *AggregateError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d validation errors:\n", len(e.Errors))
	for i, err := range e.Errors {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, err.Error())
	}
	return sb.String()
}

func (e *AggregateError) Unwrap() []error { return e.Errors }

// Collect returns nil for no errors, the error itself for one, and an AggregateError otherwise.
func Collect(errs []error) error {
	switch len(errs) {
	case 0:
		return nil
	case 1:
		return errs[0]
	default:
		return &AggregateError{Errors: errs}
	}
}

// FieldErrors flattens err into its InputErrors.
func FieldErrors(err error) []*InputError {
	var out []*InputError
	var visit func(error)
	visit = func(err error) {
		var agg *AggregateError
		var in *InputError
		switch {
		case errors.As(err, &agg):
			for _, e := range agg.Errors {
				visit(e)
			}
		case errors.As(err, &in):
			out = append(out, in)
		}
	}
	if err != nil {
		visit(err)
	}
	return out
}

// DefectError signals broken generation bookkeeping. It is raised with panic, never returned.
type DefectError struct {
	State string
	Group string
	Got   int
	Want  int
}

func (e *DefectError) Error() string {
	return fmt.Sprintf("character count mismatch crossing %q from %q: got %d characters, want %d",
		e.Group, e.State, e.Got, e.Want)
}
