// Package validation validates create/update payloads and request data.
//
// It uses the `validator` library to enforce rules defined in struct tags
// and extracts validation errors into field errors the client can
// understand. Field names are reported by their JSON names.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/ansiversa/quizdb/internal/db"
	"github.com/ansiversa/quizdb/internal/errs"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Validatable is implemented by payload types that know how to validate
// themselves, typically by calling Struct on their own tags.
type Validatable interface {
	Validate() error
}

// CustomValidationError is a single issue that cannot be expressed via
// validator tags.
type CustomValidationError struct {
	Field   string
	Message string
}

// CustomValidationErrors is a slice of custom validation errors that satisfies error.
type CustomValidationErrors []CustomValidationError

func (c CustomValidationErrors) Error() string {
	return "Validation failed"
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		switch name {
		case "-":
			return ""
		case "":
			return field.Name
		}
		return name
	})

	// Tri-state fields validate as their value; unset and null behave like a
	// nil pointer, so "omitempty" skips them.
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if n, ok := field.Interface().(db.Nullable[int64]); ok {
			return n.Param()
		}
		return nil
	}, db.Nullable[int64]{})
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if n, ok := field.Interface().(db.Nullable[string]); ok {
			return n.Param()
		}
		return nil
	}, db.Nullable[string]{})

	return v
}

// Struct runs the tag rules of s.
func Struct(s any) error {
	return validate.Struct(s)
}

// Validate runs payload.Validate and reports failures as an
// *errs.ValidationError for entity.
func Validate(entity string, payload Validatable) error {
	err := payload.Validate()
	if err == nil {
		return nil
	}

	fieldErrors := extractValidationError(err)
	if len(fieldErrors) == 0 {
		return fmt.Errorf("validate %s: %w", entity, err)
	}
	return &errs.ValidationError{Entity: entity, Errors: fieldErrors}
}

// BindAndValidate binds request data into payload and validates it. Failures
// are 400 HTTPErrors, with field-level errors when validation fails.
func BindAndValidate(c echo.Context, payload Validatable) error {
	if err := c.Bind(payload); err != nil {
		return errs.NewBadRequestError(bindMessage(err), false, nil, nil)
	}

	if err := payload.Validate(); err != nil {
		if fieldErrors := extractValidationError(err); len(fieldErrors) > 0 {
			return errs.NewBadRequestError("Validation failed", true, nil, fieldErrors)
		}
		return errs.NewBadRequestError(err.Error(), false, nil, nil)
	}

	return nil
}

func bindMessage(err error) string {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if msg, ok := he.Message.(string); ok && msg != "" {
			return msg
		}
	}
	return "Invalid request body"
}

func extractValidationError(err error) []errs.FieldError {
	var fieldErrors []errs.FieldError

	var custom CustomValidationErrors
	if errors.As(err, &custom) {
		for _, ce := range custom {
			fieldErrors = append(fieldErrors, errs.FieldError{
				Field: ce.Field,
				Error: ce.Message,
			})
		}
		return fieldErrors
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil
	}

	for _, fe := range validationErrors {
		field := fe.Field()
		var msg string

		switch fe.Tag() {
		case "required":
			msg = "is required"

		case "min":
			switch fe.Kind() {
			case reflect.String:
				msg = fmt.Sprintf("must be at least %s characters", fe.Param())
			case reflect.Slice:
				msg = fmt.Sprintf("must contain at least %s items", fe.Param())
			default:
				msg = fmt.Sprintf("must be at least %s", fe.Param())
			}

		case "max":
			switch fe.Kind() {
			case reflect.String:
				msg = fmt.Sprintf("must not exceed %s characters", fe.Param())
			case reflect.Slice:
				msg = fmt.Sprintf("must not contain more than %s items", fe.Param())
			default:
				msg = fmt.Sprintf("must not exceed %s", fe.Param())
			}

		case "oneof":
			msg = fmt.Sprintf("must be one of: %s", fe.Param())

		case "gtefield":
			msg = fmt.Sprintf("must be greater than or equal to %s", fe.Param())

		case "uuid":
			msg = "must be a valid UUID"

		case "dive":
			msg = "some items are invalid"

		default:
			if fe.Param() != "" {
				msg = fmt.Sprintf("%s: %s:%s", field, fe.Tag(), fe.Param())
			} else {
				msg = fmt.Sprintf("%s: %s", field, fe.Tag())
			}
		}

		fieldErrors = append(fieldErrors, errs.FieldError{
			Field: field,
			Error: msg,
		})
	}

	return fieldErrors
}
