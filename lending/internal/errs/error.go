package errs

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrUnauthorized     = errors.New("actor is not allowed to perform this transition")
	ErrAlreadyRequested = errors.New("an active request for this book already exists")
	ErrBookUnavailable  = errors.New("book is not currently borrowable")
)

// ValidationError names the offending field; the message is user-facing.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: field %q is required", e.Field)
}

func NewValidationError(field string) *ValidationError {
	return &ValidationError{Field: field}
}

type InvalidTransitionError struct {
	From string
	To   string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition from %s to %s", e.From, e.To)
}

// ConflictError reports an optimistic version mismatch. The caller is expected
// to refetch and retry or abandon, never to repeat the write blindly.
type ConflictError struct {
	ExpectedVersion int
	ActualVersion   int
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("version conflict: expected %d, actual %d", e.ExpectedVersion, e.ActualVersion)
}

// DependencyFailure marks a collaborator error. In the fan-out pipeline it is
// logged and never propagated; only create's catalog check surfaces it.
type DependencyFailure struct {
	Dependency string
	Err        error
}

func (e *DependencyFailure) Error() string {
	return fmt.Sprintf("dependency %s failed: %v", e.Dependency, e.Err)
}

func (e *DependencyFailure) Unwrap() error { return e.Err }
