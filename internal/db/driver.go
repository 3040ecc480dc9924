// Package db is the driver-agnostic core of the data-access layer.
//
// It defines the Driver contract the repositories run on, normalizes raw
// driver rows, and provides the building blocks every repository shares:
// tolerant value coercion, parameterized WHERE/ORDER BY construction, the
// pagination engine and the numeric id allocator.
//
// SQL text everywhere in this layer uses '?' placeholders. Drivers that speak
// a different bind style rebind before sending.
package db

import (
	"context"
	"time"
)

// Driver is the capability the data layer consumes. Implementations live in
// internal/database; tests use dbtest.Driver.
type Driver interface {
	// Query runs a row-returning statement.
	Query(ctx context.Context, query string, params []any) ([]Row, error)
	// Execute runs a statement whose rows are not read.
	Execute(ctx context.Context, query string, params []any) (ExecResult, error)
}

// ExecResult is the driver-neutral outcome of Execute.
type ExecResult struct {
	RowsAffected int64
	LastInsertID int64
}

// ISOTimeLayout is the layout dates are serialized with before transmission.
const ISOTimeLayout = "2006-01-02T15:04:05.000Z07:00"

// NormalizeParams prepares positional parameters for a driver: times become
// ISO-8601 UTC text and nil pointers become SQL NULL.
func NormalizeParams(params []any) []any {
	out := make([]any, len(params))
	for i, p := range params {
		out[i] = normalizeParam(p)
	}
	return out
}

func normalizeParam(p any) any {
	switch v := p.(type) {
	case nil:
		return nil
	case time.Time:
		return v.UTC().Format(ISOTimeLayout)
	case *time.Time:
		if v == nil {
			return nil
		}
		return v.UTC().Format(ISOTimeLayout)
	case *string:
		if v == nil {
			return nil
		}
		return *v
	case *int64:
		if v == nil {
			return nil
		}
		return *v
	case *int:
		if v == nil {
			return nil
		}
		return int64(*v)
	case int:
		return int64(v)
	case *float64:
		if v == nil {
			return nil
		}
		return *v
	case *bool:
		if v == nil {
			return nil
		}
		return *v
	case interface{ Param() any }:
		return normalizeParam(v.Param())
	default:
		return p
	}
}
