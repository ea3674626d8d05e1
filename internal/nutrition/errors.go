package nutrition

import (
	"errors"
	"fmt"
)

// ErrInvalidMeal is the sentinel all meal validation failures unwrap to.
var ErrInvalidMeal = errors.New("invalid meal")

// InvalidMealError reports which meal field failed validation. It marks
// malformed input, not a policy judgment; valid late meals are accepted
// with warnings instead.
type InvalidMealError struct {
	Field  string
	Reason string
}

func (e *InvalidMealError) Error() string {
	return fmt.Sprintf("invalid meal: %s: %s", e.Field, e.Reason)
}

func (e *InvalidMealError) Unwrap() error { return ErrInvalidMeal }

func invalidMeal(field, reason string) error {
	return &InvalidMealError{Field: field, Reason: reason}
}
