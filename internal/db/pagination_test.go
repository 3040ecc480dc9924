package db_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/ansiversa/quizdb/internal/db"
	"github.com/ansiversa/quizdb/internal/db/dbtest"
)

func intPtr(v int) *int { return &v }

func TestComputeWindow(t *testing.T) {
	tests := []struct {
		name  string
		total int64
		req   db.PageRequest
		want  db.Window
	}{
		{
			name:  "defaults",
			total: 45,
			req:   db.PageRequest{},
			want:  db.Window{Page: 1, PageSize: 20, TotalPages: 3, Offset: 0, HasNextPage: true},
		},
		{
			name:  "past last page clamps",
			total: 45,
			req:   db.NewPageRequest(9, 20),
			want:  db.Window{Page: 3, PageSize: 20, TotalPages: 3, Offset: 40, HasPreviousPage: true},
		},
		{
			name:  "empty total",
			total: 0,
			req:   db.NewPageRequest(4, 10),
			want:  db.Window{Page: 1, PageSize: 10, TotalPages: 0, Offset: 0},
		},
		{
			name:  "non-positive inputs",
			total: 5,
			req:   db.NewPageRequest(-2, 0),
			want:  db.Window{Page: 1, PageSize: 1, TotalPages: 5, Offset: 0, HasNextPage: true},
		},
		{
			name:  "middle page",
			total: 30,
			req:   db.PageRequest{Page: intPtr(2), PageSize: intPtr(10)},
			want:  db.Window{Page: 2, PageSize: 10, TotalPages: 3, Offset: 10, HasNextPage: true, HasPreviousPage: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := db.ComputeWindow(tt.total, tt.req); got != tt.want {
				t.Fatalf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func mapName(r db.Row) (string, error) {
	return db.CoerceString(r.Value("name"), ""), nil
}

func TestPaginateClampsToLastPage(t *testing.T) {
	drv := dbtest.New(
		dbtest.Rows(map[string]any{"total": int64(45)}),
		dbtest.Rows(map[string]any{"name": "a"}, map[string]any{"name": "b"}),
	)

	page, err := db.Paginate(context.Background(), drv, db.PageQuery[string]{
		CountQuery: "SELECT COUNT(*) as total FROM Subject WHERE platformId = ?",
		DataQuery:  "SELECT * FROM Subject WHERE platformId = ? LIMIT ? OFFSET ?",
		Params:     []any{int64(3)},
		Request:    db.NewPageRequest(9, 20),
		MapRow:     mapName,
	})
	if err != nil {
		t.Fatal(err)
	}

	if page.Page != 3 || page.TotalPages != 3 || page.Total != 45 {
		t.Fatalf("unexpected envelope %+v", page)
	}
	if page.HasNextPage || !page.HasPreviousPage {
		t.Fatalf("unexpected flags %+v", page)
	}
	if !reflect.DeepEqual(page.Data, []string{"a", "b"}) {
		t.Fatalf("data = %v", page.Data)
	}

	data := drv.Call(1)
	if want := []any{int64(3), int64(20), int64(40)}; !reflect.DeepEqual(data.Params, want) {
		t.Fatalf("data params = %#v, want %#v", data.Params, want)
	}
}

func TestPaginateEmptyReadsFirstPage(t *testing.T) {
	drv := dbtest.New(dbtest.Rows(map[string]any{"count": "0"}))

	page, err := db.Paginate(context.Background(), drv, db.PageQuery[string]{
		CountQuery: "SELECT COUNT(*) as count FROM Topic",
		DataQuery:  "SELECT * FROM Topic LIMIT ? OFFSET ?",
		Request:    db.NewPageRequest(4, 10),
		MapRow:     mapName,
	})
	if err != nil {
		t.Fatal(err)
	}

	want := &db.Page[string]{Data: []string{}, Total: 0, Page: 1, PageSize: 10, TotalPages: 0}
	if !reflect.DeepEqual(page, want) {
		t.Fatalf("got %+v, want %+v", page, want)
	}
	if n := len(drv.Calls()); n != 2 {
		t.Fatalf("expected count and data queries, got %d calls", n)
	}
	if got, want := drv.Call(1).Params, []any{int64(10), int64(0)}; !reflect.DeepEqual(got, want) {
		t.Fatalf("data params = %#v, want %#v", got, want)
	}
}

func TestPaginatePropagatesErrors(t *testing.T) {
	boom := errors.New("boom")

	drv := dbtest.New(dbtest.Fail(boom))
	_, err := db.Paginate(context.Background(), drv, db.PageQuery[string]{MapRow: mapName})
	if !errors.Is(err, boom) {
		t.Fatalf("count error not propagated: %v", err)
	}

	drv = dbtest.New(dbtest.Rows(map[string]any{"total": 1}), dbtest.Rows(map[string]any{"name": "x"}))
	_, err = db.Paginate(context.Background(), drv, db.PageQuery[string]{
		MapRow: func(db.Row) (string, error) { return "", boom },
	})
	if !errors.Is(err, boom) {
		t.Fatalf("map error not propagated: %v", err)
	}
}

func TestExtractTotal(t *testing.T) {
	tests := []struct {
		name string
		row  db.RawRow
		want int64
	}{
		{"total", db.Keyed{"total": int64(7)}, 7},
		{"count string", db.Keyed{"count": "12"}, 12},
		{"value float", db.Keyed{"value": 3.0}, 3},
		{"first column", db.Positional{Columns: []string{"COUNT(*)"}, Values: []any{int64(9)}}, 9},
		{"unreadable total falls through", db.Keyed{"total": "n/a", "count": int64(2)}, 2},
		{"nothing usable", db.Keyed{"total": nil}, 0},
		{"empty", db.Keyed{}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := db.ExtractTotal(db.Normalize(tt.row)); got != tt.want {
				t.Fatalf("got %d, want %d", got, tt.want)
			}
		})
	}
}
