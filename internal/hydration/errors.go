package hydration

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is the sentinel all input validation failures unwrap to,
// so callers can branch with errors.Is without matching field names.
var ErrInvalidInput = errors.New("invalid hydration input")

// InvalidInputError reports which field failed validation and what the
// accepted range is.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid hydration input: %s: %s", e.Field, e.Reason)
}

func (e *InvalidInputError) Unwrap() error { return ErrInvalidInput }

func invalidInput(field, reason string) error {
	return &InvalidInputError{Field: field, Reason: reason}
}
