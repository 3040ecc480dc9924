package errs

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInsertFailed reports a row-returning insert that produced no row.
// Match it with errors.Is; the concrete error is *InsertError.
var ErrInsertFailed = errors.New("insert returned no rows")

// ValidationError is returned when create/update input does not satisfy the
// entity schema. It carries one FieldError per failing field so the HTTP edge
// can render them without re-validating.
type ValidationError struct {
	Entity string
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		parts = append(parts, fe.Field+" "+fe.Error)
	}

	prefix := "validation failed"
	if e.Entity != "" {
		prefix = fmt.Sprintf("invalid %s input", e.Entity)
	}
	if len(parts) == 0 {
		return prefix
	}
	return prefix + ": " + strings.Join(parts, "; ")
}

// NewValidationError builds a ValidationError for a single field.
func NewValidationError(entity, field, message string) *ValidationError {
	return &ValidationError{
		Entity: entity,
		Errors: []FieldError{{Field: field, Error: message}},
	}
}

// SchemaError means a row returned by the store lacks a field the parser
// needs, or carries it in a shape no coercion can recover.
type SchemaError struct {
	Entity string
	Field  string
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s row: field %q %s", e.Entity, e.Field, e.Reason)
}

// DecodeError wraps a JSON column that failed to decode.
type DecodeError struct {
	Field string
	Err   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Field, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// InsertError is the concrete error behind ErrInsertFailed.
type InsertError struct {
	Entity string
}

func (e *InsertError) Error() string {
	return fmt.Sprintf("failed to insert %s record", e.Entity)
}

func (e *InsertError) Is(target error) bool {
	return target == ErrInsertFailed
}

// IDAllocationError reports that every id allocated for an insert collided
// with a concurrently inserted row.
type IDAllocationError struct {
	Table    string
	Attempts int
	Err      error
}

func (e *IDAllocationError) Error() string {
	return fmt.Sprintf("allocate id for %s: %d attempts collided: %v", e.Table, e.Attempts, e.Err)
}

func (e *IDAllocationError) Unwrap() error {
	return e.Err
}
