// Package sqlerr classifies database driver errors and converts them into
// HTTP errors (e.g. a unique violation into a "Bad Request").
//
// Postgres errors arrive as *pgconn.PgError with a SQLSTATE. SQLite and
// libsql only report constraint failures as text, so those are classified by
// message.
package sqlerr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// Code is the constraint category of a database error.
type Code string

const (
	Other               Code = "other"
	NotNullViolation    Code = "not_null_violation"
	ForeignKeyViolation Code = "foreign_key_violation"
	UniqueViolation     Code = "unique_violation"
	CheckViolation      Code = "check_violation"
)

// Severity mirrors the Postgres severity levels.
type Severity string

const (
	SeverityError   Severity = "ERROR"
	SeverityFatal   Severity = "FATAL"
	SeverityPanic   Severity = "PANIC"
	SeverityWarning Severity = "WARNING"
	SeverityNotice  Severity = "NOTICE"
	SeverityDebug   Severity = "DEBUG"
	SeverityInfo    Severity = "INFO"
	SeverityLog     Severity = "LOG"
)

// Error is a driver error normalized across Postgres and SQLite.
type Error struct {
	Code           Code
	Severity       Severity
	DatabaseCode   string
	Message        string
	SchemaName     string
	TableName      string
	ColumnName     string
	DataTypeName   string
	ConstraintName string
	driverErr      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Severity, e.DatabaseCode, e.Message)
}

func (e *Error) Unwrap() error {
	return e.driverErr
}

// MapCode maps a SQLSTATE to a Code.
func MapCode(code string) Code {
	switch code {
	case "23502":
		return NotNullViolation
	case "23503":
		return ForeignKeyViolation
	case "23505":
		return UniqueViolation
	case "23514":
		return CheckViolation
	default:
		return Other
	}
}

// MapSeverity maps a Postgres severity string to a Severity. Unknown values
// are treated as errors.
func MapSeverity(severity string) Severity {
	switch s := Severity(strings.ToUpper(severity)); s {
	case SeverityError, SeverityFatal, SeverityPanic, SeverityWarning,
		SeverityNotice, SeverityDebug, SeverityInfo, SeverityLog:
		return s
	default:
		return SeverityError
	}
}

var sqliteConstraints = []struct {
	prefix string
	code   Code
}{
	{"UNIQUE constraint failed", UniqueViolation},
	{"FOREIGN KEY constraint failed", ForeignKeyViolation},
	{"NOT NULL constraint failed", NotNullViolation},
	{"CHECK constraint failed", CheckViolation},
}

// ConvertSQLiteError classifies a SQLite/libsql error by its message. The
// message names the column as "Table.column" for unique and not-null
// failures. It returns nil when err is not a constraint failure.
func ConvertSQLiteError(err error) *Error {
	msg := err.Error()
	for _, c := range sqliteConstraints {
		idx := strings.Index(msg, c.prefix)
		if idx < 0 {
			continue
		}

		out := &Error{
			Code:      c.code,
			Severity:  SeverityError,
			Message:   msg,
			driverErr: err,
		}
		detail := strings.TrimSpace(strings.TrimPrefix(msg[idx+len(c.prefix):], ":"))
		if first, _, _ := strings.Cut(detail, ","); first != "" {
			if table, column, ok := strings.Cut(strings.TrimSpace(first), "."); ok {
				// modernc appends the extended result code: "Platform.name (2067)".
				column, _, _ = strings.Cut(column, " ")
				out.TableName = table
				out.ColumnName = column
			}
		}
		return out
	}
	return nil
}

// Classify returns the normalized form of err, or nil when err carries no
// recognizable driver error.
func Classify(err error) *Error {
	if err == nil {
		return nil
	}

	var sqlErr *Error
	if errors.As(err, &sqlErr) {
		return sqlErr
	}

	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) {
		return ConvertPgError(pgerr)
	}

	return ConvertSQLiteError(err)
}

// IsUniqueViolation reports whether err is a unique-constraint failure from
// any supported driver.
func IsUniqueViolation(err error) bool {
	e := Classify(err)
	return e != nil && e.Code == UniqueViolation
}
