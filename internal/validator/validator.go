package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/aretw0/rivercross/pkg/domain"
	"github.com/go-playground/validator/v10"
)

// puzzleValidate checks the shape of a definition before any token is resolved.
var puzzleValidate *validator.Validate

func init() {
	puzzleValidate = validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their wire names so messages match the definition files.
	puzzleValidate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
}

// ValidatePuzzle checks p and compiles it.
//
// Shape errors (missing characters, capacity below one, empty groups) are
// reported first; when the shape is sound the tokens are resolved and the
// semantic rules are applied. Every failure is collected, so the returned error
// is either a single *domain.InputError or a *domain.AggregateError, and always
// matches domain.ErrInvalidPuzzle.
func ValidatePuzzle(p domain.Puzzle) (*domain.Instance, error) {
	if errs := structErrors(p); len(errs) > 0 {
		return nil, domain.Collect(errs)
	}

	in, err := p.Compile()
	if err != nil {
		return nil, err
	}

	if in.IsRestricted(in.Initial.Left) || in.IsRestricted(in.Initial.Right) {
		return nil, &domain.InputError{
			Field:  "initial_state",
			Value:  in.Initial.String(),
			Reason: "initial configuration is itself restricted",
			Err:    domain.ErrInvalidPuzzle,
		}
	}

	return in, nil
}

func structErrors(p domain.Puzzle) []error {
	err := puzzleValidate.Struct(p)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []error{&domain.InputError{Field: "puzzle", Reason: err.Error(), Err: domain.ErrInvalidPuzzle}}
	}

	out := make([]error, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, &domain.InputError{
			Field:  fieldPath(fe.Namespace()),
			Value:  valueOf(fe),
			Reason: reason(fe),
			Err:    domain.ErrInvalidPuzzle,
		})
	}
	return out
}

// fieldPath drops the root struct name: "Puzzle.boat.capacity" -> "boat.capacity".
func fieldPath(ns string) string {
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}

func valueOf(fe validator.FieldError) any {
	switch fe.Kind() {
	case reflect.Slice, reflect.Map:
		return nil
	}
	if s, ok := fe.Value().(string); ok && s == "" {
		return nil
	}
	return fe.Value()
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("must list at least %s entries", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("must list at most %s entries", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	default:
		return fmt.Sprintf("failed %q check", fe.Tag())
	}
}
