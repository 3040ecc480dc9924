package db

import (
	"context"
	"fmt"
	"math"
)

// DefaultPageSize is used when a request carries no page size.
const DefaultPageSize = 20

// PageRequest is the caller's requested window. Nil fields take defaults.
type PageRequest struct {
	Page     *int `json:"page,omitempty"`
	PageSize *int `json:"pageSize,omitempty"`
}

// NewPageRequest is a convenience for callers holding plain ints.
func NewPageRequest(page, pageSize int) PageRequest {
	return PageRequest{Page: &page, PageSize: &pageSize}
}

// Page is the paginated envelope returned to callers.
type Page[T any] struct {
	Data            []T   `json:"data"`
	Total           int64 `json:"total"`
	Page            int   `json:"page"`
	PageSize        int   `json:"pageSize"`
	TotalPages      int   `json:"totalPages"`
	HasNextPage     bool  `json:"hasNextPage"`
	HasPreviousPage bool  `json:"hasPreviousPage"`
}

// TotalCount reports the number of matching records across all pages.
func (p *Page[T]) TotalCount() int64 {
	if p == nil {
		return 0
	}
	return p.Total
}

// Window is the arithmetic part of pagination: which page is served and at
// which offset.
type Window struct {
	Page            int
	PageSize        int
	TotalPages      int
	Offset          int
	HasNextPage     bool
	HasPreviousPage bool
}

// ComputeWindow clamps the requested page into the range the total allows.
// A request past the last page is served the last page; an empty result is
// always page 1.
func ComputeWindow(total int64, req PageRequest) Window {
	pageSize := DefaultPageSize
	if req.PageSize != nil {
		pageSize = *req.PageSize
	}
	pageSize = max(1, pageSize)

	requested := 1
	if req.Page != nil {
		requested = *req.Page
	}
	requested = max(1, requested)

	if total < 0 {
		total = 0
	}

	totalPages := 0
	if total > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(pageSize)))
	}

	page := 1
	if total > 0 {
		page = min(requested, max(totalPages, 1))
	}

	return Window{
		Page:            page,
		PageSize:        pageSize,
		TotalPages:      totalPages,
		Offset:          (page - 1) * pageSize,
		HasNextPage:     totalPages > 0 && page < totalPages,
		HasPreviousPage: totalPages > 0 && page > 1,
	}
}

// PageQuery describes one paginated read. DataQuery must end with
// "LIMIT ? OFFSET ?": the page size and offset are appended to Params.
type PageQuery[T any] struct {
	CountQuery string
	DataQuery  string
	Params     []any
	Request    PageRequest
	MapRow     func(Row) (T, error)
}

// Paginate runs the count query, computes the window and runs the data query
// for that window. An empty count still reads page 1 at offset 0.
func Paginate[T any](ctx context.Context, d Driver, q PageQuery[T]) (*Page[T], error) {
	countRows, err := d.Query(ctx, q.CountQuery, q.Params)
	if err != nil {
		return nil, err
	}

	var total int64
	if len(countRows) > 0 {
		total = ExtractTotal(countRows[0])
	}
	w := ComputeWindow(total, q.Request)

	page := &Page[T]{
		Data:            []T{},
		Total:           max(total, 0),
		Page:            w.Page,
		PageSize:        w.PageSize,
		TotalPages:      w.TotalPages,
		HasNextPage:     w.HasNextPage,
		HasPreviousPage: w.HasPreviousPage,
	}
	params := make([]any, 0, len(q.Params)+2)
	params = append(params, q.Params...)
	params = append(params, int64(w.PageSize), int64(w.Offset))

	rows, err := d.Query(ctx, q.DataQuery, params)
	if err != nil {
		return nil, err
	}
	for i, row := range rows {
		item, err := q.MapRow(row)
		if err != nil {
			return nil, fmt.Errorf("map row %d: %w", i, err)
		}
		page.Data = append(page.Data, item)
	}
	return page, nil
}

var totalKeys = []string{"total", "count", "value"}

// ExtractTotal reads the aggregate from a count row, probing total, count
// and value before falling back to the first column. Anything unreadable
// counts as zero.
func ExtractTotal(row Row) int64 {
	for _, key := range totalKeys {
		if v, ok := row.Get(key); ok {
			if n, ok := countValue(v); ok {
				return n
			}
		}
	}
	if v, ok := row.First(); ok {
		if n, ok := countValue(v); ok {
			return n
		}
	}
	return 0
}

func countValue(v any) (int64, bool) {
	switch v.(type) {
	case nil, bool:
		return 0, false
	}
	f := CoerceNumber(v, math.NaN())
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return int64(math.Trunc(f)), true
}
