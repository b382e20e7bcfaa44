package domain

import (
	"errors"
	"fmt"
)

// ErrValidation marks malformed or missing caller input. Wrap it with context:
//
//	fmt.Errorf("%w: customer name is required", domain.ErrValidation)
var ErrValidation = errors.New("validation failed")

// ErrInvalidSlotLabel marks a time-slot label that does not match the
// "HH:MM AM|PM" grammar.
var ErrInvalidSlotLabel = errors.New("invalid slot label")

// PersistenceError wraps an unexpected failure from the backing store. The
// cause is logged server-side; callers see an opaque persistence failure.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure: %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
