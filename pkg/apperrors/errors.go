package apperrors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrNotFound signals that the requested record does not exist or is soft-deleted.
// Repositories return it unchanged; the HTTP boundary maps it to 404.
var ErrNotFound = errors.New("not found")

// ErrVersionConflict signals a lost optimistic-concurrency race: the record was
// modified between read and write. The boundary maps it to 409.
var ErrVersionConflict = errors.New("version conflict")

// ValidationError carries every violated field constraint at once so the
// caller can display all problems together instead of fixing them one by one.
type ValidationError struct {
	Violations map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Violations) == 0 {
		return "validation failed"
	}
	fields := make([]string, 0, len(e.Violations))
	for f := range e.Violations {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+e.Violations[f])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// NewValidation builds a ValidationError from a field -> message map.
func NewValidation(violations map[string]string) *ValidationError {
	return &ValidationError{Violations: violations}
}

// InvariantError is returned by entity setters when a value violates a domain
// invariant (e.g. an over-long class name). Unlike ValidationError it refers to
// a single field and is raised at mutation time, not at input-binding time.
type InvariantError struct {
	Field  string
	Reason string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

// Invariant builds an InvariantError.
func Invariant(field, reason string) *InvariantError {
	return &InvariantError{Field: field, Reason: reason}
}

// IsNotFound reports whether err is (or wraps) ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
