package db

import (
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
)

// Where accumulates squirrel conditions joined with AND. Column arguments are
// always fixed strings chosen by repository code; caller input only ever
// reaches the parameter list.
//
// Every method is a no-op when its filter is unset, so a Where built from an
// empty options struct renders as "".
type Where struct {
	conds []sq.Sqlizer
}

// NewWhere returns an empty builder.
func NewWhere() *Where {
	return &Where{}
}

func (w *Where) add(cond sq.Sqlizer) *Where {
	w.conds = append(w.conds, cond)
	return w
}

// Raw appends a condition verbatim with its parameters.
func (w *Where) Raw(cond string, params ...any) *Where {
	return w.add(sq.Expr(cond, params...))
}

// Eq adds "column = ?" when v is non-nil.
func (w *Where) Eq(column string, v *string) *Where {
	if v == nil {
		return w
	}
	return w.add(sq.Eq{column: *v})
}

// EqInt adds "column = ?" when v is non-nil. Negative values bind as 0.
func (w *Where) EqInt(column string, v *int64) *Where {
	if v == nil {
		return w
	}
	return w.add(sq.Eq{column: max(*v, 0)})
}

// EqNullable filters a nullable foreign key: unset adds nothing, null adds
// "column IS NULL", a value adds "column = ?".
func (w *Where) EqNullable(column string, v Nullable[int64]) *Where {
	if !v.IsSet() {
		return w
	}
	if n, ok := v.Get(); ok {
		return w.add(sq.Eq{column: max(n, 0)})
	}
	return w.add(sq.Eq{column: nil})
}

// EqBool adds "column = 1" or "column = 0" bound as a parameter.
func (w *Where) EqBool(column string, v *bool) *Where {
	if v == nil {
		return w
	}
	return w.add(sq.Eq{column: boolParam(*v)})
}

// Like adds a case-insensitive substring match. Blank terms are skipped.
func (w *Where) Like(column string, term *string) *Where {
	t, ok := SearchTerm(term)
	if !ok {
		return w
	}
	return w.add(sq.Expr("LOWER("+column+") LIKE LOWER(?)", "%"+t+"%"))
}

// Min adds "column >= ?", floored at 0.
func (w *Where) Min(column string, v *int64) *Where {
	if v == nil {
		return w
	}
	return w.add(sq.GtOrEq{column: max(*v, 0)})
}

// Max adds "column <= ?", floored at 0.
func (w *Where) Max(column string, v *int64) *Where {
	if v == nil {
		return w
	}
	return w.add(sq.LtOrEq{column: max(*v, 0)})
}

// StatusFilter selects records by their active flag.
type StatusFilter string

const (
	StatusAll      StatusFilter = "all"
	StatusActive   StatusFilter = "active"
	StatusInactive StatusFilter = "inactive"
)

// Status adds "column = 1" for active and "column = 0" for inactive. Any
// other value, including StatusAll, adds nothing.
func (w *Where) Status(column string, status StatusFilter) *Where {
	switch status {
	case StatusActive:
		return w.add(sq.Expr(column + " = 1"))
	case StatusInactive:
		return w.add(sq.Expr(column + " = 0"))
	}
	return w
}

// ExcludeIDs adds "column NOT IN (?,...)" for the distinct positive ids.
func (w *Where) ExcludeIDs(column string, ids []int64) *Where {
	unique := UniquePositive(ids)
	if len(unique) == 0 {
		return w
	}
	return w.add(sq.NotEq{column: unique})
}

// Empty reports whether no condition was added.
func (w *Where) Empty() bool {
	return len(w.conds) == 0
}

// SQL renders " WHERE a AND b" with its parameters, or "" and an empty list.
// Conditions are joined without the parentheses sq.And would add.
func (w *Where) SQL() (string, []any, error) {
	params := []any{}
	if len(w.conds) == 0 {
		return "", params, nil
	}

	parts := make([]string, 0, len(w.conds))
	for i, cond := range w.conds {
		sql, args, err := cond.ToSql()
		if err != nil {
			return "", nil, fmt.Errorf("render condition %d: %w", i, err)
		}
		parts = append(parts, sql)
		params = append(params, args...)
	}
	return " WHERE " + strings.Join(parts, " AND "), params, nil
}

// SearchTerm trims a free-text filter; blank or nil terms are absent.
func SearchTerm(term *string) (string, bool) {
	if term == nil {
		return "", false
	}
	t := strings.TrimSpace(*term)
	return t, t != ""
}

// UniquePositive drops non-positive ids and duplicates, keeping first-seen
// order.
func UniquePositive(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id <= 0 {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func boolParam(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

// BoolParam is the stored encoding of a boolean column.
func BoolParam(b bool) int64 {
	return boolParam(b)
}

// SortDirection is the requested sort order. Only SortDesc sorts descending.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// OrderBy resolves key through the allow-list columns and renders
// " ORDER BY <column> <dir>". Unknown keys sort by fallback. When the
// resolved column is not fallback, fallback is appended as a tie-breaker so
// pages stay stable.
func OrderBy[K ~string](columns map[K]string, key K, dir SortDirection, fallback string) string {
	column, ok := columns[key]
	if !ok || column == "" {
		column = fallback
	}

	direction := "ASC"
	if dir == SortDesc {
		direction = "DESC"
	}

	clause := " ORDER BY " + column + " " + direction
	if column != fallback {
		clause += ", " + fallback
	}
	return clause
}
