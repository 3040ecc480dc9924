package database

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/ansiversa/quizdb/internal/db"
	"github.com/jackc/pgx/v5/pgxpool"
	tern "github.com/jackc/tern/v2/migrate"
	"github.com/rs/zerolog"
)

// The binary carries its migrations: one directory per dialect family.
//
//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrations embed.FS

const schemaVersionTable = "schema_version"

// Migrate brings the schema of database up to date.
func Migrate(ctx context.Context, logger *zerolog.Logger, database *Database) error {
	if database.Pool != nil {
		return migratePostgres(ctx, logger, database.Pool)
	}
	return migrateSQL(ctx, logger, database)
}

// migratePostgres runs the tern migrations on one pooled connection.
func migratePostgres(ctx context.Context, logger *zerolog.Logger, pool *pgxpool.Pool) error {
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquiring migration connection: %w", err)
	}
	defer conn.Release()

	m, err := tern.NewMigrator(ctx, conn.Conn(), schemaVersionTable)
	if err != nil {
		return fmt.Errorf("constructing database migrator: %w", err)
	}

	subtree, err := fs.Sub(migrations, "migrations/postgres")
	if err != nil {
		return fmt.Errorf("retrieving database migrations subtree: %w", err)
	}
	if err := m.LoadMigrations(subtree); err != nil {
		return fmt.Errorf("loading database migrations: %w", err)
	}

	from, err := m.GetCurrentVersion(ctx)
	if err != nil {
		return fmt.Errorf("retrieving current database migration version: %w", err)
	}
	if err := m.Migrate(ctx); err != nil {
		return err
	}

	logMigration(logger, int(from), len(m.Migrations))
	return nil
}

// migrateSQL applies the SQLite migrations through the driver, tracking the
// applied version the same way tern does.
func migrateSQL(ctx context.Context, logger *zerolog.Logger, d db.Driver) error {
	files, err := fs.Glob(migrations, "migrations/sqlite/*.sql")
	if err != nil {
		return fmt.Errorf("listing database migrations: %w", err)
	}
	sort.Strings(files)

	if _, err := d.Execute(ctx, "CREATE TABLE IF NOT EXISTS "+schemaVersionTable+" (version INTEGER NOT NULL)", nil); err != nil {
		return fmt.Errorf("creating %s: %w", schemaVersionTable, err)
	}

	rows, err := d.Query(ctx, "SELECT version FROM "+schemaVersionTable, nil)
	if err != nil {
		return fmt.Errorf("retrieving current database migration version: %w", err)
	}
	from := 0
	if len(rows) == 0 {
		if _, err := d.Execute(ctx, "INSERT INTO "+schemaVersionTable+" (version) VALUES (0)", nil); err != nil {
			return fmt.Errorf("initializing %s: %w", schemaVersionTable, err)
		}
	} else {
		from = int(db.CoerceInteger(rows[0].Value("version"), 0))
	}

	for i := from; i < len(files); i++ {
		body, err := migrations.ReadFile(files[i])
		if err != nil {
			return fmt.Errorf("reading %s: %w", files[i], err)
		}
		for _, stmt := range splitStatements(string(body)) {
			if _, err := d.Execute(ctx, stmt, nil); err != nil {
				return fmt.Errorf("migration %s: %w", files[i], err)
			}
		}
		if _, err := d.Execute(ctx, "UPDATE "+schemaVersionTable+" SET version = ?", []any{int64(i + 1)}); err != nil {
			return fmt.Errorf("recording migration %s: %w", files[i], err)
		}
	}

	logMigration(logger, from, len(files))
	return nil
}

// splitStatements splits a migration on ';'. Migrations never put ';'
// inside literals.
func splitStatements(body string) []string {
	var out []string
	for _, part := range strings.Split(body, ";") {
		var lines []string
		for _, line := range strings.Split(part, "\n") {
			if strings.HasPrefix(strings.TrimSpace(line), "--") {
				continue
			}
			lines = append(lines, line)
		}
		if stmt := strings.TrimSpace(strings.Join(lines, "\n")); stmt != "" {
			out = append(out, stmt)
		}
	}
	return out
}

func logMigration(logger *zerolog.Logger, from, to int) {
	if from == to {
		logger.Info().Msgf("database schema up to date, version %d", to)
		return
	}
	logger.Info().Msgf("migrated database schema, from %d to %d", from, to)
}
