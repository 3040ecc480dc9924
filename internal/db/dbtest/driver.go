// Package dbtest provides a scripted db.Driver for tests.
package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/ansiversa/quizdb/internal/db"
)

// Call is one recorded driver invocation.
type Call struct {
	Query  string
	Params []any
	Exec   bool
}

// Response is the scripted outcome of one call.
type Response struct {
	Rows   []db.RawRow
	Result db.ExecResult
	Err    error
}

// Driver replays scripted responses in order and records every call. When
// the script runs out it answers with no rows.
type Driver struct {
	mu        sync.Mutex
	responses []Response
	calls     []Call
}

// New returns a Driver that will answer with responses in order.
func New(responses ...Response) *Driver {
	return &Driver{responses: responses}
}

// Rows is a Response carrying keyed rows.
func Rows(rows ...map[string]any) Response {
	raw := make([]db.RawRow, 0, len(rows))
	for _, r := range rows {
		raw = append(raw, db.Keyed(r))
	}
	return Response{Rows: raw}
}

// Fail is a Response that fails with err.
func Fail(err error) Response {
	return Response{Err: err}
}

// Push appends responses to the script.
func (d *Driver) Push(responses ...Response) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.responses = append(d.responses, responses...)
}

func (d *Driver) next(call Call) Response {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls = append(d.calls, call)
	if len(d.responses) == 0 {
		return Response{}
	}
	r := d.responses[0]
	d.responses = d.responses[1:]
	return r
}

func (d *Driver) Query(ctx context.Context, query string, params []any) ([]db.Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r := d.next(Call{Query: query, Params: append([]any(nil), params...)})
	if r.Err != nil {
		return nil, r.Err
	}
	return db.NormalizeAll(r.Rows), nil
}

func (d *Driver) Execute(ctx context.Context, query string, params []any) (db.ExecResult, error) {
	if err := ctx.Err(); err != nil {
		return db.ExecResult{}, err
	}
	r := d.next(Call{Query: query, Params: append([]any(nil), params...), Exec: true})
	return r.Result, r.Err
}

// Calls returns a copy of every recorded call.
func (d *Driver) Calls() []Call {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]Call(nil), d.calls...)
}

// Call returns the i-th recorded call, panicking with a readable message
// when there is none.
func (d *Driver) Call(i int) Call {
	calls := d.Calls()
	if i < 0 || i >= len(calls) {
		panic(fmt.Sprintf("dbtest: call %d requested, %d recorded", i, len(calls)))
	}
	return calls[i]
}

// Remaining reports how many scripted responses were never consumed.
func (d *Driver) Remaining() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.responses)
}

// CompactSQL collapses runs of whitespace so multi-line queries compare
// against single-line expectations.
func CompactSQL(q string) string {
	return strings.Join(strings.Fields(q), " ")
}
