// ABOUTME: Errors returned by the workout engine.
// ABOUTME: Sentinels for state checks plus PersistenceError for storage failures.
package session

import (
	"errors"
	"fmt"
)

var (
	// ErrAlreadyActive is returned by Start and Resume while a workout is in progress.
	ErrAlreadyActive = errors.New("a workout is already active")
	// ErrNoActiveWorkout is returned by mutating calls while idle.
	ErrNoActiveWorkout = errors.New("no active workout")
	// ErrNotFound is returned for unknown exercise or set IDs.
	ErrNotFound = errors.New("not found")
	// ErrInvalidState is returned when editing the weight or reps of a completed set.
	ErrInvalidState = errors.New("invalid state")
	// ErrInvalidValue is returned for out-of-range or disallowed field values.
	ErrInvalidValue = errors.New("invalid value")
)

// PersistenceError reports a failed storage call. The active workout is left
// exactly as it was before the operation.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: persistence failed: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
