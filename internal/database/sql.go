package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/ansiversa/quizdb/internal/config"
	"github.com/ansiversa/quizdb/internal/db"
	"github.com/jmoiron/sqlx"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/tursodatabase/libsql-client-go/libsql"

	_ "modernc.org/sqlite"
)

const (
	sqliteDriverName = "sqlite"
	libsqlDriverName = "libsql"
)

// openSQL opens a libsql or sqlite database through database/sql.
func openSQL(cfg config.DatabaseConfig) (*sqlx.DB, error) {
	var (
		sqlDB *sqlx.DB
		err   error
	)

	switch cfg.Driver {
	case config.DriverLibSQL:
		sqlDB, err = openLibSQL(cfg.URL, cfg.AuthToken)
	default:
		sqlDB, err = sqlx.Open(sqliteDriverName, cfg.URL)
		if err == nil && isMemoryDSN(cfg.URL) {
			sqlDB.SetMaxOpenConns(1)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", cfg.Driver, err)
	}

	if n := cfg.MaxOpenConns; n > 0 && !isMemoryDSN(cfg.URL) {
		sqlDB.SetMaxOpenConns(n)
	}
	if n := cfg.MaxIdleConns; n > 0 {
		sqlDB.SetMaxIdleConns(n)
	}
	if s := cfg.ConnMaxLifetime; s > 0 {
		sqlDB.SetConnMaxLifetime(time.Duration(s) * time.Second)
	}
	if s := cfg.ConnMaxIdleTime; s > 0 {
		sqlDB.SetConnMaxIdleTime(time.Duration(s) * time.Second)
	}
	return sqlDB, nil
}

func openLibSQL(url, authToken string) (*sqlx.DB, error) {
	var opts []libsql.Option
	if authToken != "" {
		opts = append(opts, libsql.WithAuthToken(authToken))
	}
	connector, err := libsql.NewConnector(url, opts...)
	if err != nil {
		return nil, err
	}
	return sqlx.NewDb(sql.OpenDB(connector), libsqlDriverName), nil
}

func isMemoryDSN(dsn string) bool {
	return dsn == ":memory:" || strings.Contains(dsn, "mode=memory") || strings.HasPrefix(dsn, "file::memory:")
}

// SQLDriver runs '?' placeholder SQL through database/sql. Both SQLite and
// libsql accept '?' natively.
type SQLDriver struct {
	db      *sqlx.DB
	product newrelic.DatastoreProduct
}

func NewSQLDriver(sqlDB *sqlx.DB, dialect string) *SQLDriver {
	product := newrelic.DatastoreSQLite
	if dialect == config.DriverLibSQL {
		product = newrelic.DatastoreProduct("libSQL")
	}
	return &SQLDriver{db: sqlDB, product: product}
}

func (d *SQLDriver) Query(ctx context.Context, query string, params []any) ([]db.Row, error) {
	defer d.segment(ctx, query).End()

	rows, err := d.db.QueryxContext(ctx, query, db.NormalizeParams(params)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var out []db.Row
	for rows.Next() {
		values, err := rows.SliceScan()
		if err != nil {
			return nil, err
		}
		out = append(out, db.Normalize(db.Positional{Columns: columns, Values: values}))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (d *SQLDriver) Execute(ctx context.Context, query string, params []any) (db.ExecResult, error) {
	defer d.segment(ctx, query).End()

	res, err := d.db.ExecContext(ctx, query, db.NormalizeParams(params)...)
	if err != nil {
		return db.ExecResult{}, err
	}

	var out db.ExecResult
	out.RowsAffected, _ = res.RowsAffected()
	out.LastInsertID, _ = res.LastInsertId()
	return out, nil
}

// segment times the call on the request's APM transaction, if any.
func (d *SQLDriver) segment(ctx context.Context, query string) *newrelic.DatastoreSegment {
	txn := newrelic.FromContext(ctx)
	op, _, _ := strings.Cut(strings.TrimSpace(query), " ")
	return &newrelic.DatastoreSegment{
		StartTime:          txn.StartSegmentNow(),
		Product:            d.product,
		Operation:          strings.ToUpper(op),
		ParameterizedQuery: query,
	}
}
