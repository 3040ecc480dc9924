package db

import (
	"context"
	"fmt"

	"github.com/ansiversa/quizdb/internal/errs"
	"github.com/ansiversa/quizdb/internal/sqlerr"
)

// MaxIDAttempts bounds how many ids InsertWithNextID tries before giving up.
const MaxIDAttempts = 3

// NextID computes the next integer id for an application-keyed table. table
// must be a trusted constant; it is interpolated into the statement.
func NextID(ctx context.Context, d Driver, table string) (int64, error) {
	rows, err := d.Query(ctx, "SELECT COALESCE(MAX(id), 0) + 1 as nextId FROM "+table, nil)
	if err != nil {
		return 0, fmt.Errorf("next id for %s: %w", table, err)
	}
	if len(rows) == 0 {
		return 1, nil
	}

	v, ok := rows[0].Get("nextId")
	if !ok {
		v, _ = rows[0].First()
	}
	return max(CoerceInteger(v, 1), 1), nil
}

// InsertWithNextID inserts a record whose id the application supplies. With
// an explicit id the insert runs once. Otherwise an id is allocated with
// NextID and the insert is retried on a unique violation, since two
// concurrent callers can compute the same id.
func InsertWithNextID[T any](ctx context.Context, d Driver, table string, explicit *int64, insert func(id int64) (T, error)) (T, error) {
	if explicit != nil {
		return insert(*explicit)
	}

	var zero T
	var lastErr error
	for attempt := 1; attempt <= MaxIDAttempts; attempt++ {
		id, err := NextID(ctx, d, table)
		if err != nil {
			return zero, err
		}

		record, err := insert(id)
		if err == nil {
			return record, nil
		}
		if !sqlerr.IsUniqueViolation(err) {
			return zero, err
		}
		lastErr = err
	}
	return zero, &errs.IDAllocationError{Table: table, Attempts: MaxIDAttempts, Err: lastErr}
}
