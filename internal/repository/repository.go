// Package repository handles all interactions with the database.
//
// It contains the SQL for every quiz entity and the admin search views.
// Repositories only see a db.Driver, so the same code runs on Postgres,
// SQLite and libsql. SQL text uses '?' placeholders; table and column names
// are fixed constants and caller input only ever reaches the parameter list.
package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/ansiversa/quizdb/internal/db"
	"github.com/ansiversa/quizdb/internal/errs"
)

type parseFunc[T any] func(db.Row) (T, error)

// queryAll runs query and parses every returned row.
func queryAll[T any](ctx context.Context, d db.Driver, parse parseFunc[T], query string, params ...any) ([]T, error) {
	rows, err := d.Query(ctx, query, params)
	if err != nil {
		return nil, err
	}

	out := make([]T, 0, len(rows))
	for i, row := range rows {
		item, err := parse(row)
		if err != nil {
			return nil, fmt.Errorf("parse row %d: %w", i, err)
		}
		out = append(out, item)
	}
	return out, nil
}

// queryOne runs query and parses the first row. No rows is a nil result,
// not an error.
func queryOne[T any](ctx context.Context, d db.Driver, parse parseFunc[T], query string, params ...any) (*T, error) {
	rows, err := d.Query(ctx, query, params)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	item, err := parse(rows[0])
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// insertOne runs a row-returning insert. An insert that returns nothing is
// an *errs.InsertError.
func insertOne[T any](ctx context.Context, d db.Driver, entity string, parse parseFunc[T], query string, params ...any) (T, error) {
	item, err := queryOne(ctx, d, parse, query, params...)
	if err != nil {
		var zero T
		return zero, err
	}
	if item == nil {
		var zero T
		return zero, &errs.InsertError{Entity: entity}
	}
	return *item, nil
}

// changeSet collects the SET list of a sparse update.
type changeSet struct {
	assignments []string
	params      []any
}

func (c *changeSet) set(column string, v any) {
	c.assignments = append(c.assignments, column+" = ?")
	c.params = append(c.params, v)
}

func (c *changeSet) empty() bool {
	return len(c.assignments) == 0
}

// sql renders "UPDATE table SET ... WHERE id = ? RETURNING columns" with the
// id appended to the parameters.
func (c *changeSet) sql(table, columns string, id int64) (string, []any) {
	q := "UPDATE " + table + " SET " + strings.Join(c.assignments, ", ") +
		" WHERE id = ? RETURNING " + columns
	return q, append(append([]any{}, c.params...), id)
}

func setPtr[T any](c *changeSet, column string, v *T) {
	if v != nil {
		c.set(column, *v)
	}
}

func setNullable[T any](c *changeSet, column string, v db.Nullable[T]) {
	if v.IsSet() {
		c.set(column, v.Param())
	}
}

func setBool(c *changeSet, column string, v *bool) {
	if v != nil {
		c.set(column, db.BoolParam(*v))
	}
}

// update applies changes to the row with id and returns it, or nil when no
// such row exists. An empty change set is a plain read.
func update[T any](ctx context.Context, d db.Driver, c *changeSet, table, columns string, id int64, parse parseFunc[T], get func(context.Context, int64) (*T, error)) (*T, error) {
	if c.empty() {
		return get(ctx, id)
	}
	q, params := c.sql(table, columns, id)
	return queryOne(ctx, d, parse, q, params...)
}

// remove deletes the row with id and returns its last state, or nil when no
// such row exists.
func remove[T any](ctx context.Context, d db.Driver, table, columns string, id int64, parse parseFunc[T]) (*T, error) {
	return queryOne(ctx, d, parse, "DELETE FROM "+table+" WHERE id = ? RETURNING "+columns, id)
}

func int64Param(v *int64) any {
	if v == nil {
		return nil
	}
	return *v
}

func stringParam(v *string) any {
	if v == nil {
		return nil
	}
	return *v
}
