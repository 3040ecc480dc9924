package sqlerr

import (
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/ansiversa/quizdb/internal/errs"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrCode reports the constraint category of err, or Other.
func ErrCode(err error) Code {
	if e := Classify(err); e != nil {
		return e.Code
	}
	return Other
}

// ConvertPgError converts a raw Postgres error into an Error.
func ConvertPgError(src *pgconn.PgError) *Error {
	return &Error{
		Code:           MapCode(src.Code),
		Severity:       MapSeverity(src.Severity),
		DatabaseCode:   src.Code,
		Message:        src.Message,
		SchemaName:     src.SchemaName,
		TableName:      src.TableName,
		ColumnName:     src.ColumnName,
		DataTypeName:   src.DataTypeName,
		ConstraintName: src.ConstraintName,
		driverErr:      src,
	}
}

// generateErrorCode builds a machine-readable code <ENTITY>_<ACTION>, e.g.
// Subject + UniqueViolation => SUBJECT_ALREADY_EXISTS.
func generateErrorCode(tableName string, errType Code) string {
	if tableName == "" {
		tableName = "RECORD"
	}
	domain := strings.ToUpper(tableName)

	action := "ERROR"
	switch errType {
	case ForeignKeyViolation:
		action = "NOT_FOUND"
	case UniqueViolation:
		action = "ALREADY_EXISTS"
	case NotNullViolation:
		action = "REQUIRED"
	case CheckViolation:
		action = "INVALID"
	}

	return fmt.Sprintf("%s_%s", domain, action)
}

func formatUserFriendlyMessage(sqlErr *Error) string {
	entityName := getEntityName(sqlErr.TableName, sqlErr.ColumnName)

	switch sqlErr.Code {
	case ForeignKeyViolation:
		return fmt.Sprintf("The referenced %s does not exist", entityName)

	case UniqueViolation:
		// "identifier" is replaced with the column when it can be inferred.
		return fmt.Sprintf("A %s with this identifier already exists", entityName)

	case NotNullViolation:
		fieldName := humanizeText(sqlErr.ColumnName)
		if fieldName == "" {
			fieldName = "field"
		}
		return fmt.Sprintf("The %s is required", fieldName)

	case CheckViolation:
		fieldName := humanizeText(sqlErr.ColumnName)
		if fieldName != "" {
			return fmt.Sprintf("The %s value does not meet required conditions", fieldName)
		}
		return "One or more values do not meet required conditions"

	default:
		return "An error occurred while processing your request"
	}
}

// getEntityName prefers the entity a foreign-key column points at
// ("platformId" -> "Platform"), then the table name, then "record".
func getEntityName(tableName, columnName string) string {
	if base, ok := foreignKeyBase(columnName); ok {
		return humanizeText(base)
	}
	if tableName != "" {
		return humanizeText(tableName)
	}
	return "record"
}

func foreignKeyBase(columnName string) (string, bool) {
	switch {
	case columnName == "" || strings.EqualFold(columnName, "id"):
		return "", false
	case strings.HasSuffix(columnName, "Id"):
		return strings.TrimSuffix(columnName, "Id"), true
	case strings.HasSuffix(strings.ToLower(columnName), "_id"):
		return columnName[:len(columnName)-3], true
	}
	return "", false
}

// humanizeText turns snake_case or camelCase identifiers into Title Case:
// "first_name" and "firstName" both become "First Name".
func humanizeText(text string) string {
	if text == "" {
		return ""
	}

	var b strings.Builder
	runes := []rune(strings.ReplaceAll(text, "_", " "))
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) && unicode.IsLower(runes[i-1]) {
			b.WriteRune(' ')
		}
		b.WriteRune(r)
	}
	return cases.Title(language.English).String(b.String())
}

var uniqueKeySuffix = regexp.MustCompile(`_([^_]+)_(?:key|ukey)$`)

// extractColumnForUniqueViolation infers the column of a unique constraint
// from either "unique_<table>_<column>" or "<table>_<column>_key" naming, or
// from the column SQLite reported directly.
func extractColumnForUniqueViolation(sqlErr *Error) string {
	if sqlErr.ColumnName != "" {
		return sqlErr.ColumnName
	}

	name := sqlErr.ConstraintName
	if name == "" {
		return ""
	}

	if strings.HasPrefix(name, "unique_") {
		parts := strings.Split(name, "_")
		if len(parts) >= 3 {
			return parts[len(parts)-1]
		}
	}

	if matches := uniqueKeySuffix.FindStringSubmatch(name); len(matches) > 1 {
		return matches[1]
	}
	return ""
}

func codePtr(code string) *string {
	return &code
}

// HandleError converts any error surfaced by the data layer into an
// *errs.HTTPError:
//
//   - *errs.HTTPError: returned unchanged
//   - *errs.ValidationError: 400 with field errors
//   - *errs.IDAllocationError: 409
//   - constraint violations (Postgres or SQLite): 400 with a derived code
//   - ErrNoRows: 404
//   - *errs.SchemaError, *errs.DecodeError, errs.ErrInsertFailed: 500 with a
//     narrowed code
//   - anything else: 500
func HandleError(err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	var validationErr *errs.ValidationError
	if errors.As(err, &validationErr) {
		return errs.FromValidation(validationErr)
	}

	var allocErr *errs.IDAllocationError
	if errors.As(err, &allocErr) {
		code := generateErrorCode(allocErr.Table, UniqueViolation)
		return errs.NewConflictError("Could not allocate an id, please retry", &code)
	}

	if sqlErr := Classify(err); sqlErr != nil {
		errorCode := generateErrorCode(sqlErr.TableName, sqlErr.Code)
		userMessage := formatUserFriendlyMessage(sqlErr)

		switch sqlErr.Code {
		case ForeignKeyViolation:
			return errs.NewBadRequestError(userMessage, false, &errorCode, nil)

		case UniqueViolation:
			if column := extractColumnForUniqueViolation(sqlErr); column != "" {
				userMessage = strings.ReplaceAll(userMessage, "identifier", humanizeText(column))
			}
			return errs.NewBadRequestError(userMessage, true, &errorCode, nil)

		case NotNullViolation:
			fieldErrors := []errs.FieldError{
				{
					Field: sqlErr.ColumnName,
					Error: "is required",
				},
			}
			return errs.NewBadRequestError(userMessage, true, &errorCode, fieldErrors)

		case CheckViolation:
			return errs.NewBadRequestError(userMessage, true, &errorCode, nil)

		default:
			return errs.NewInternalServerError(nil)
		}
	}

	if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows) {
		return errs.NewNotFoundError("Resource not found", false, nil)
	}

	var schemaErr *errs.SchemaError
	if errors.As(err, &schemaErr) {
		return errs.NewInternalServerError(codePtr("DATA_SCHEMA_MISMATCH"))
	}

	var decodeErr *errs.DecodeError
	if errors.As(err, &decodeErr) {
		return errs.NewInternalServerError(codePtr("DATA_DECODE_FAILED"))
	}

	if errors.Is(err, errs.ErrInsertFailed) {
		return errs.NewInternalServerError(codePtr("INSERT_FAILED"))
	}

	return errs.NewInternalServerError(nil)
}
