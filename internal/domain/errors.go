package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrReferenceNotFound is returned when a foreign key does not resolve.
	ErrReferenceNotFound = errors.New("referenced record not found")

	// ErrDeletionBlocked is returned when a record is still referenced by requirements.
	ErrDeletionBlocked = errors.New("cannot delete: in use")

	// ErrConstraintViolation is returned when the store rejects a write.
	ErrConstraintViolation = errors.New("constraint violation")

	// ErrValidation is returned when input fails field validation.
	ErrValidation = errors.New("validation failed")
)

// NotFoundError names the entity and the id (or natural key, for lookups
// by name) that could not be found.
type NotFoundError struct {
	Entity string
	ID     int64
	Key    string
}

func (e *NotFoundError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("%s %q not found", e.Entity, e.Key)
	}
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// ReferenceError identifies the foreign-key field that failed to resolve.
// Name is set instead of ID when the reference was given by name.
type ReferenceError struct {
	Field string
	ID    int64
	Name  string
}

func (e *ReferenceError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("%s: referenced record %q not found", e.Field, e.Name)
	}
	return fmt.Sprintf("%s: referenced record %d not found", e.Field, e.ID)
}

func (e *ReferenceError) Unwrap() error { return ErrReferenceNotFound }

// ConstraintError wraps a store-level constraint failure.
type ConstraintError struct {
	Constraint string
	Err        error
}

func (e *ConstraintError) Error() string {
	if e.Constraint == "" {
		return fmt.Sprintf("constraint violation: %v", e.Err)
	}
	return fmt.Sprintf("constraint violation (%s): %v", e.Constraint, e.Err)
}

func (e *ConstraintError) Unwrap() []error { return []error{ErrConstraintViolation, e.Err} }

// FieldError describes a single invalid input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError collects every invalid field of an input.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// fieldErrors accumulates FieldErrors and converts to an error only when
// at least one was recorded.
type fieldErrors []FieldError

func (f *fieldErrors) add(field, msg string) {
	*f = append(*f, FieldError{Field: field, Message: msg})
}

func (f *fieldErrors) required(field, value string) bool {
	if strings.TrimSpace(value) == "" {
		f.add(field, field+" is required")
		return false
	}
	return true
}

func (f *fieldErrors) maxLen(field, value string, n int) {
	if len([]rune(value)) > n {
		f.add(field, fmt.Sprintf("%s must be at most %d characters", field, n))
	}
}

func (f fieldErrors) err() error {
	if len(f) == 0 {
		return nil
	}
	return &ValidationError{Fields: f}
}
