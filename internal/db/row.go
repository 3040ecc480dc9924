package db

import (
	"sort"
	"strconv"
	"strings"
)

// RawRow is a row as a driver hands it over: either positional values paired
// with column names, or an already keyed map. Normalize turns both into a Row
// so parsers never branch on the shape again.
type RawRow interface {
	normalize() Row
}

// Positional is a row of values in column order.
type Positional struct {
	Columns []string
	Values  []any
}

// Keyed is a row already mapped by column name.
type Keyed map[string]any

func (p Positional) normalize() Row {
	r := Row{
		columns: make([]string, 0, len(p.Values)),
		values:  make(map[string]any, len(p.Values)),
	}
	for i, v := range p.Values {
		name := strconv.Itoa(i)
		if i < len(p.Columns) && p.Columns[i] != "" {
			name = p.Columns[i]
		}
		if _, dup := r.values[name]; !dup {
			r.columns = append(r.columns, name)
		}
		r.values[name] = normalizeValue(v)
	}
	return r
}

// Keyed rows have no intrinsic column order; columns are ordered by name.
func (k Keyed) normalize() Row {
	r := Row{
		columns: make([]string, 0, len(k)),
		values:  make(map[string]any, len(k)),
	}
	for name, v := range k {
		r.columns = append(r.columns, name)
		r.values[name] = normalizeValue(v)
	}
	sort.Strings(r.columns)
	return r
}

// Normalize converts a driver row into a Row.
func Normalize(raw RawRow) Row {
	if raw == nil {
		return Row{values: map[string]any{}}
	}
	return raw.normalize()
}

// NormalizeAll converts a batch of driver rows.
func NormalizeAll[R RawRow](raw []R) []Row {
	rows := make([]Row, 0, len(raw))
	for _, r := range raw {
		rows = append(rows, r.normalize())
	}
	return rows
}

// Row is a normalized result row: values keyed by column name, with the
// original column order preserved for positional probing.
type Row struct {
	columns []string
	values  map[string]any
}

// Get returns the value for key. Exact names win; otherwise the lookup falls
// back to a case-insensitive match because Postgres folds unquoted
// identifiers (qCount comes back as qcount).
func (r Row) Get(key string) (any, bool) {
	if v, ok := r.values[key]; ok {
		return v, true
	}
	for _, name := range r.columns {
		if strings.EqualFold(name, key) {
			return r.values[name], true
		}
	}
	return nil, false
}

// Value is Get without the presence flag.
func (r Row) Value(key string) any {
	v, _ := r.Get(key)
	return v
}

// First returns the value of the first column.
func (r Row) First() (any, bool) {
	if len(r.columns) == 0 {
		return nil, false
	}
	return r.values[r.columns[0]], true
}

// Columns returns the column names in row order.
func (r Row) Columns() []string {
	return append([]string(nil), r.columns...)
}

// Len reports the number of columns.
func (r Row) Len() int {
	return len(r.columns)
}

// Map returns a copy of the row as a plain map.
func (r Row) Map() map[string]any {
	out := make(map[string]any, len(r.values))
	for k, v := range r.values {
		out[k] = v
	}
	return out
}

// normalizeValue folds driver-specific scalar encodings into the small set of
// types the coercers understand.
func normalizeValue(v any) any {
	switch t := v.(type) {
	case []byte:
		return string(t)
	default:
		return v
	}
}
