package core

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	// ErrLockTimeout is returned when the data file lock could not be
	// acquired within the configured window. No side effect has occurred
	// and the caller may retry.
	ErrLockTimeout = errors.New("lock acquisition timed out")

	// ErrNotFound is returned when no entry matches the requested ID.
	ErrNotFound = errors.New("entry not found")

	// ErrRecoveryExhausted is returned alongside an empty store when the
	// primary file is unreadable and no backup parses. Continuing with the
	// returned store accepts the data loss.
	ErrRecoveryExhausted = errors.New("no valid backup to recover from")

	// ErrConfirmationRequired is returned by destructive operations invoked
	// without explicit confirmation.
	ErrConfirmationRequired = errors.New("confirmation required")

	// ErrValidation is the class of all input validation failures.
	ErrValidation = errors.New("validation failed")
)

// ValidationError reports a caller-supplied field that violates a limit.
// It is raised before any lock is taken.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Is makes every ValidationError match ErrValidation.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// PersistError reports a failed write of the store. The previous file
// content is untouched when it occurs.
type PersistError struct {
	Path string
	Err  error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("failed to persist %s: %v", e.Path, e.Err)
}

func (e *PersistError) Unwrap() error {
	return e.Err
}
