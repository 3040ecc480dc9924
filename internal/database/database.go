// Package database opens the configured store and exposes it as a db.Driver.
//
// Three backends are supported:
//   - postgres: a pgx connection pool with query tracing
//   - libsql: a remote libsql/Turso database through database/sql
//   - sqlite: a local file or in-memory database (modernc.org/sqlite)
//
// Every backend is wrapped in a decorator that logs slow and failed calls
// through the request logger.
package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ansiversa/quizdb/internal/config"
	"github.com/ansiversa/quizdb/internal/db"
	loggerConfig "github.com/ansiversa/quizdb/internal/logger"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
)

// DatabasePingTimeout bounds the startup connectivity check, in seconds.
const DatabasePingTimeout = 10

// Database is the opened store. It implements db.Driver.
//
// Exactly one of Pool and SQL is set, matching Dialect.
type Database struct {
	Dialect string
	Pool    *pgxpool.Pool
	SQL     *sqlx.DB

	driver db.Driver
	log    *zerolog.Logger
}

var _ db.Driver = (*Database)(nil)

// New opens the database selected by cfg.Database.Driver and pings it.
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerConfig.LoggerService) (*Database, error) {
	var (
		database *Database
		err      error
	)

	switch cfg.Database.Driver {
	case config.DriverPostgres:
		var pool *pgxpool.Pool
		pool, err = newPostgresPool(cfg, logger, loggerService)
		if err == nil {
			database = &Database{Dialect: config.DriverPostgres, Pool: pool, driver: NewPostgresDriver(pool)}
		}
	case config.DriverLibSQL, config.DriverSQLite:
		var sqlDB *sqlx.DB
		sqlDB, err = openSQL(cfg.Database)
		if err == nil {
			database = &Database{Dialect: cfg.Database.Driver, SQL: sqlDB, driver: NewSQLDriver(sqlDB, cfg.Database.Driver)}
		}
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
	if err != nil {
		return nil, err
	}

	database.log = logger
	database.driver = newLoggingDriver(database.driver, logger, cfg.Observability.Logging.SlowQueryThreshold)

	ctx, cancel := context.WithTimeout(context.Background(), DatabasePingTimeout*time.Second)
	defer cancel()
	if err := database.Ping(ctx); err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info().Str("driver", database.Dialect).Msg("connected to the database")
	return database, nil
}

// OpenSQLite opens a SQLite database outside the config flow, as used by
// tests and tools. An in-memory DSN is pinned to one connection so every
// statement sees the same database.
func OpenSQLite(ctx context.Context, dsn string, logger *zerolog.Logger) (*Database, error) {
	sqlDB, err := sqlx.Open(sqliteDriverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if isMemoryDSN(dsn) {
		sqlDB.SetMaxOpenConns(1)
	}

	if _, err := sqlDB.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Database{
		Dialect: config.DriverSQLite,
		SQL:     sqlDB,
		driver:  newLoggingDriver(NewSQLDriver(sqlDB, config.DriverSQLite), logger, 0),
		log:     logger,
	}, nil
}

func (d *Database) Query(ctx context.Context, query string, params []any) ([]db.Row, error) {
	return d.driver.Query(ctx, query, params)
}

func (d *Database) Execute(ctx context.Context, query string, params []any) (db.ExecResult, error) {
	return d.driver.Execute(ctx, query, params)
}

// Ping checks that the store is reachable.
func (d *Database) Ping(ctx context.Context) error {
	switch {
	case d.Pool != nil:
		return d.Pool.Ping(ctx)
	case d.SQL != nil:
		return d.SQL.PingContext(ctx)
	}
	return errors.New("database not initialized")
}

// Close releases the pool.
func (d *Database) Close() error {
	if d.log != nil {
		d.log.Info().Msg("closing database connection pool")
	}
	if d.Pool != nil {
		d.Pool.Close()
	}
	if d.SQL != nil {
		return d.SQL.Close()
	}
	return nil
}
