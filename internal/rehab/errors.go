package rehab

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownCondition is the sentinel for condition lookups outside the
// supported set. Use errors.Is against it and errors.As against
// UnknownConditionError for the rejected value.
var ErrUnknownCondition = errors.New("unknown rehab condition")

// ErrPhaseOutOfRange is the sentinel for phase requests outside a
// protocol's valid range.
var ErrPhaseOutOfRange = errors.New("rehab phase out of range")

// UnknownConditionError reports a condition outside the supported set.
type UnknownConditionError struct {
	Condition Condition
}

func (e *UnknownConditionError) Error() string {
	return fmt.Sprintf("unknown rehab condition %q, valid conditions: %s",
		e.Condition, strings.Join(conditionNames(), ", "))
}

func (e *UnknownConditionError) Unwrap() error { return ErrUnknownCondition }

// PhaseOutOfRangeError reports a phase request outside a protocol's
// valid range.
type PhaseOutOfRangeError struct {
	Condition Condition
	Requested int
	Min       int
	Max       int
}

func (e *PhaseOutOfRangeError) Error() string {
	return fmt.Sprintf("phase %d out of range for %s, valid phases: %d-%d",
		e.Requested, e.Condition, e.Min, e.Max)
}

func (e *PhaseOutOfRangeError) Unwrap() error { return ErrPhaseOutOfRange }

func conditionNames() []string {
	names := make([]string, len(allConditions))
	for i, c := range allConditions {
		names[i] = string(c)
	}
	return names
}
