package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors (no external dependencies).
var (
	ErrNotFound           = errors.New("resource not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrInvalidInput       = errors.New("invalid input")
	ErrDuplicate          = errors.New("duplicate resource")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("access denied")
	ErrConflict           = errors.New("conflict with current state")
	ErrCommitInFlight     = errors.New("commit already in progress for this draft")
)

// ValidationError reports the fields that were missing or failed numeric
// coercion during a draft append. The draft is left unchanged when one of
// these is returned.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Fields, ", ")
}

// NewValidationError builds a ValidationError for the named fields.
func NewValidationError(fields ...string) *ValidationError {
	return &ValidationError{Fields: fields}
}

// IncompleteDocumentError is returned by commit precondition checks: the
// draft is missing a header group or its line items. No write is attempted.
type IncompleteDocumentError struct {
	Reason string
}

func (e *IncompleteDocumentError) Error() string {
	return "incomplete document: " + e.Reason
}

// PersistenceError wraps a failure surfaced by the persistence collaborator
// during commit. The draft is preserved so the caller can retry.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure: %v", e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// PartialWriteError means the document header was written but its child rows
// failed and the compensating delete of the header also failed. The reserved
// number identifies the orphaned header for manual cleanup or retry.
type PartialWriteError struct {
	DocumentID string
	Number     string
	Err        error
}

func (e *PartialWriteError) Error() string {
	return fmt.Sprintf("partial write: document %s (%s) has an orphaned header: %v", e.Number, e.DocumentID, e.Err)
}

func (e *PartialWriteError) Unwrap() error { return e.Err }
