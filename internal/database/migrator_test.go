package database

import (
	"bytes"
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/ansiversa/quizdb/internal/db/dbtest"
	"github.com/rs/zerolog"
)

func TestSplitStatements(t *testing.T) {
	body := `-- platforms
CREATE TABLE a (id INTEGER);

CREATE INDEX a_idx ON a (id);
-- trailing comment
`
	got := splitStatements(body)
	want := []string{"CREATE TABLE a (id INTEGER)", "CREATE INDEX a_idx ON a (id)"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %q", got)
	}
}

func TestMigrateSQLSkipsAppliedVersions(t *testing.T) {
	drv := dbtest.New(
		dbtest.Response{},
		dbtest.Rows(map[string]any{"version": int64(1)}),
	)
	log := zerolog.Nop()

	if err := migrateSQL(context.Background(), &log, drv); err != nil {
		t.Fatal(err)
	}
	if n := len(drv.Calls()); n != 2 {
		t.Fatalf("%d calls, want the version check only", n)
	}
}

func TestMigrateSQLRecordsVersion(t *testing.T) {
	drv := dbtest.New()
	log := zerolog.Nop()

	if err := migrateSQL(context.Background(), &log, drv); err != nil {
		t.Fatal(err)
	}

	calls := drv.Calls()
	last := calls[len(calls)-1]
	if !strings.HasPrefix(last.Query, "UPDATE schema_version SET version") || !reflect.DeepEqual(last.Params, []any{int64(1)}) {
		t.Fatalf("last call = %+v", last)
	}
	if calls[2].Query != "INSERT INTO schema_version (version) VALUES (0)" {
		t.Fatalf("version row not initialized: %q", calls[2].Query)
	}
}

func TestLoggingDriverUsesContextLogger(t *testing.T) {
	var appBuf, reqBuf bytes.Buffer
	appLog := zerolog.New(&appBuf)
	reqLog := zerolog.New(&reqBuf).With().Str("request_id", "r-1").Logger()

	drv := dbtest.New(dbtest.Rows(), dbtest.Fail(errors.New("boom")))
	d := newLoggingDriver(drv, &appLog, 0)
	ctx := reqLog.WithContext(context.Background())

	if _, err := d.Query(ctx, "SELECT 1", nil); err != nil {
		t.Fatal(err)
	}
	if reqBuf.Len() != 0 {
		t.Fatalf("successful query logged: %s", reqBuf.String())
	}

	if _, err := d.Query(ctx, "SELECT\n  2", []any{1}); err == nil {
		t.Fatal("expected error")
	}
	out := reqBuf.String()
	if !strings.Contains(out, `"request_id":"r-1"`) || !strings.Contains(out, `"query":"SELECT 2"`) || !strings.Contains(out, "database query failed") {
		t.Fatalf("request log = %s", out)
	}
	if appBuf.Len() != 0 {
		t.Fatalf("application logger used: %s", appBuf.String())
	}
}

func TestLoggingDriverFallsBackToApplicationLogger(t *testing.T) {
	var appBuf bytes.Buffer
	appLog := zerolog.New(&appBuf)

	d := newLoggingDriver(dbtest.New(dbtest.Fail(errors.New("boom"))), &appLog, 0)
	if _, err := d.Execute(context.Background(), "DELETE FROM Platform", nil); err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(appBuf.String(), "database query failed") {
		t.Fatalf("application log = %s", appBuf.String())
	}
}
