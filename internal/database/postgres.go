package database

import (
	"context"
	"fmt"
	"time"

	"github.com/ansiversa/quizdb/internal/config"
	"github.com/ansiversa/quizdb/internal/db"
	loggerConfig "github.com/ansiversa/quizdb/internal/logger"
	pgxzero "github.com/jackc/pgx-zerolog"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/jmoiron/sqlx"
	"github.com/newrelic/go-agent/v3/integrations/nrpgx5"
	"github.com/rs/zerolog"
)

// multiTracer fans pgx query tracing out to several tracers, since
// ConnConfig has a single Tracer slot.
type multiTracer struct {
	tracers []pgx.QueryTracer
}

func (mt *multiTracer) TraceQueryStart(ctx context.Context, conn *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	for _, t := range mt.tracers {
		ctx = t.TraceQueryStart(ctx, conn, data)
	}
	return ctx
}

func (mt *multiTracer) TraceQueryEnd(ctx context.Context, conn *pgx.Conn, data pgx.TraceQueryEndData) {
	for _, t := range mt.tracers {
		t.TraceQueryEnd(ctx, conn, data)
	}
}

// newPostgresPool builds the pgx pool: New Relic tracing when APM is on,
// SQL logging through pgx-zerolog in the local environment.
func newPostgresPool(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerConfig.LoggerService) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse pgx pool config: %w", err)
	}

	if n := cfg.Database.MaxOpenConns; n > 0 {
		poolConfig.MaxConns = int32(n)
	}
	if n := cfg.Database.MaxIdleConns; n > 0 {
		if cfg.Database.MaxOpenConns > 0 {
			n = min(n, cfg.Database.MaxOpenConns)
		}
		poolConfig.MinConns = int32(n)
	}
	if s := cfg.Database.ConnMaxLifetime; s > 0 {
		poolConfig.MaxConnLifetime = time.Duration(s) * time.Second
	}
	if s := cfg.Database.ConnMaxIdleTime; s > 0 {
		poolConfig.MaxConnIdleTime = time.Duration(s) * time.Second
	}

	var tracers []pgx.QueryTracer
	if loggerService.GetApplication() != nil {
		tracers = append(tracers, nrpgx5.NewTracer())
	}
	if cfg.IsLocal() {
		level := logger.GetLevel()
		pgxLogger := loggerConfig.NewPgxLogger(level)
		tracers = append(tracers, &tracelog.TraceLog{
			Logger:   pgxzero.NewLogger(pgxLogger),
			LogLevel: loggerConfig.GetPgxTraceLogLevel(level),
		})
	}
	switch len(tracers) {
	case 0:
	case 1:
		poolConfig.ConnConfig.Tracer = tracers[0]
	default:
		poolConfig.ConnConfig.Tracer = &multiTracer{tracers: tracers}
	}

	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}
	return pool, nil
}

// PostgresDriver runs '?' placeholder SQL on a pgx pool.
type PostgresDriver struct {
	pool *pgxpool.Pool
}

func NewPostgresDriver(pool *pgxpool.Pool) *PostgresDriver {
	return &PostgresDriver{pool: pool}
}

func (d *PostgresDriver) Query(ctx context.Context, query string, params []any) ([]db.Row, error) {
	rows, err := d.pool.Query(ctx, sqlx.Rebind(sqlx.DOLLAR, query), db.NormalizeParams(params)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	columns := make([]string, len(fields))
	for i, f := range fields {
		columns[i] = f.Name
	}

	var out []db.Row
	for rows.Next() {
		values, err := rows.Values()
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

func (d *PostgresDriver) Execute(ctx context.Context, query string, params []any) (db.ExecResult, error) {
	tag, err := d.pool.Exec(ctx, sqlx.Rebind(sqlx.DOLLAR, query), db.NormalizeParams(params)...)
	if err != nil {
		return db.ExecResult{}, err
	}
	return db.ExecResult{RowsAffected: tag.RowsAffected()}, nil
}
