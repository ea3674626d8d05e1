package workout

import (
	"errors"
	"fmt"
)

// ErrInvalidEntry is the sentinel all entry validation failures unwrap to.
var ErrInvalidEntry = errors.New("invalid workout entry")

// InvalidEntryError reports which entry field failed validation and the
// accepted range.
type InvalidEntryError struct {
	Field  string
	Reason string
}

func (e *InvalidEntryError) Error() string {
	return fmt.Sprintf("invalid workout entry: %s: %s", e.Field, e.Reason)
}

func (e *InvalidEntryError) Unwrap() error { return ErrInvalidEntry }

func invalidEntry(field, reason string) error {
	return &InvalidEntryError{Field: field, Reason: reason}
}
