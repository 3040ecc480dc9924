package database

import (
	"context"
	"strings"
	"time"

	"github.com/ansiversa/quizdb/internal/db"
	"github.com/rs/zerolog"
)

// loggingDriver logs failed calls at debug level and calls slower than
// threshold at warn level. It logs through the logger carried by the
// context, falling back to the application logger.
type loggingDriver struct {
	next      db.Driver
	log       *zerolog.Logger
	threshold time.Duration
}

func newLoggingDriver(next db.Driver, log *zerolog.Logger, threshold time.Duration) *loggingDriver {
	return &loggingDriver{next: next, log: log, threshold: threshold}
}

func (d *loggingDriver) Query(ctx context.Context, query string, params []any) ([]db.Row, error) {
	start := time.Now()
	rows, err := d.next.Query(ctx, query, params)
	d.observe(ctx, query, len(params), time.Since(start), len(rows), err)
	return rows, err
}

func (d *loggingDriver) Execute(ctx context.Context, query string, params []any) (db.ExecResult, error) {
	start := time.Now()
	res, err := d.next.Execute(ctx, query, params)
	d.observe(ctx, query, len(params), time.Since(start), int(res.RowsAffected), err)
	return res, err
}

func (d *loggingDriver) observe(ctx context.Context, query string, nparams int, elapsed time.Duration, rows int, err error) {
	slow := d.threshold > 0 && elapsed >= d.threshold
	if err == nil && !slow {
		return
	}

	logger := d.logger(ctx)
	var event *zerolog.Event
	switch {
	case err != nil:
		event = logger.Debug().Err(err)
	default:
		event = logger.Warn()
	}

	event.
		Str("query", compactSQL(query)).
		Int("params", nparams).
		Int("rows", rows).
		Dur("duration", elapsed).
		Msg(logMessage(err))
}

func (d *loggingDriver) logger(ctx context.Context) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l != nil && l.GetLevel() != zerolog.Disabled {
		return l
	}
	return d.log
}

func logMessage(err error) string {
	if err != nil {
		return "database query failed"
	}
	return "slow database query"
}

func compactSQL(q string) string {
	return strings.Join(strings.Fields(q), " ")
}
