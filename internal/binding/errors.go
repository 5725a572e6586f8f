package binding

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownRow is returned when an edit targets a row that does not exist.
	ErrUnknownRow = errors.New("unknown row")
	// ErrInvalidName is returned when an auxiliary row name is not a valid identifier.
	ErrInvalidName = errors.New("invalid row name")
)

// NameCollisionError is returned when an auxiliary row would reuse a
// reserved name: the loop variable, a model input or another auxiliary row.
type NameCollisionError struct {
	Name   string
	Reason string
}

func (e *NameCollisionError) Error() string {
	return fmt.Sprintf("name %q is not available: %s", e.Name, e.Reason)
}
