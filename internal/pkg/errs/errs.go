package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrObjectNotFound is the sentinel error for lookups of missing objects.
	ErrObjectNotFound = errors.New("object not found")

	// ErrValueIsInvalid is the sentinel error for values that fail validation.
	ErrValueIsInvalid = errors.New("value is invalid")

	// ErrValueIsRequired is the sentinel error for missing required values.
	ErrValueIsRequired = errors.New("value is required")

	// ErrConcurrentModification is the sentinel error for optimistic concurrency
	// conflicts: another writer committed a change to the same object first.
	ErrConcurrentModification = errors.New("concurrent modification")

	// ErrAllocationExhausted is the sentinel error for identifier allocation that
	// keeps colliding until the retry bound is spent.
	ErrAllocationExhausted = errors.New("allocation exhausted")
)

// sanitize strips newlines out of values that end up in error messages,
// keeping log lines single-line.
func sanitize(v any) string {
	return strings.ReplaceAll(fmt.Sprintf("%v", v), "\n", " ")
}

// ObjectNotFoundError indicates that an object could not be found by its identifier.
// ParamName names the lookup parameter and ID carries the value that missed.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

// NewObjectNotFoundError creates an ObjectNotFoundError without an underlying cause.
func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

// NewObjectNotFoundErrorWithCause creates an ObjectNotFoundError wrapping an underlying cause.
func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %s)",
			ErrObjectNotFound, e.ParamName, sanitize(e.ID), e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, sanitize(e.ID))
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ValueIsInvalidError indicates that a named value failed validation.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

// NewValueIsInvalidError creates a ValueIsInvalidError without an underlying cause.
func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

// NewValueIsInvalidErrorWithCause creates a ValueIsInvalidError wrapping an underlying cause.
func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsInvalid, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsRequiredError indicates that a required value was not provided.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

// NewValueIsRequiredError creates a ValueIsRequiredError without an underlying cause.
func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

// NewValueIsRequiredErrorWithCause creates a ValueIsRequiredError wrapping an underlying cause.
func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsRequired, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// ConcurrentModificationError indicates that a read-validate-write sequence lost
// the race against another writer. The caller may re-read and retry.
type ConcurrentModificationError struct {
	ParamName string
	ID        any
	Cause     error
}

// NewConcurrentModificationError creates a ConcurrentModificationError without an underlying cause.
func NewConcurrentModificationError(paramName string, id any) *ConcurrentModificationError {
	return &ConcurrentModificationError{ParamName: paramName, ID: id}
}

// NewConcurrentModificationErrorWithCause creates a ConcurrentModificationError wrapping an underlying cause.
func NewConcurrentModificationErrorWithCause(paramName string, id any, cause error) *ConcurrentModificationError {
	return &ConcurrentModificationError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ConcurrentModificationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %s)",
			ErrConcurrentModification, e.ParamName, sanitize(e.ID), e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrConcurrentModification, sanitize(e.ID))
}

func (e *ConcurrentModificationError) Unwrap() error {
	return ErrConcurrentModification
}

// AllocationExhaustedError indicates that identifier allocation collided on every
// attempt up to the retry bound and the creation was abandoned.
type AllocationExhaustedError struct {
	ParamName     string
	Attempts      int
	LastCandidate string
	Cause         error
}

// NewAllocationExhaustedError creates an AllocationExhaustedError without an underlying cause.
func NewAllocationExhaustedError(paramName string, attempts int, lastCandidate string) *AllocationExhaustedError {
	return &AllocationExhaustedError{ParamName: paramName, Attempts: attempts, LastCandidate: lastCandidate}
}

// NewAllocationExhaustedErrorWithCause creates an AllocationExhaustedError wrapping an underlying cause.
func NewAllocationExhaustedErrorWithCause(
	paramName string,
	attempts int,
	lastCandidate string,
	cause error,
) *AllocationExhaustedError {
	return &AllocationExhaustedError{
		ParamName:     paramName,
		Attempts:      attempts,
		LastCandidate: lastCandidate,
		Cause:         cause,
	}
}

func (e *AllocationExhaustedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s, gave up after %d attempts, last candidate is: %s (cause: %s)",
			ErrAllocationExhausted, e.ParamName, e.Attempts, sanitize(e.LastCandidate), e.Cause)
	}
	return fmt.Sprintf("%s: %s, gave up after %d attempts, last candidate is: %s",
		ErrAllocationExhausted, e.ParamName, e.Attempts, sanitize(e.LastCandidate))
}

func (e *AllocationExhaustedError) Unwrap() error {
	return ErrAllocationExhausted
}
