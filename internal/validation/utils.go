package validation

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/openenergydashboard/oed-server/internal/errs"
)

// InvalidParamsMessage is the top-level message of every 400 produced here.
const InvalidParamsMessage = "Invalid params"

// Validatable is implemented by request payload types that know how to validate themselves.
//
// Validate returns validator.ValidationErrors for tag-based rules or
// CustomValidationErrors for everything else (including Schema checks).
type Validatable interface {
	Validate() error
}

// CustomValidationError represents a single validation issue for a specific field.
type CustomValidationError struct {
	Field   string
	Rule    Rule
	Message string
}

// CustomValidationErrors is a slice of custom validation errors that satisfies error.
type CustomValidationErrors []CustomValidationError

func (c CustomValidationErrors) Error() string {
	return InvalidParamsMessage
}

// Rules returns the violated rule for each field, in order.
func (c CustomValidationErrors) Rules() map[string][]Rule {
	rules := make(map[string][]Rule, len(c))
	for _, e := range c {
		rules[e.Field] = append(rules[e.Field], e.Rule)
	}
	return rules
}

// BindAndValidate binds request data into payload and validates it.
//
// payload must be a pointer so c.Bind can populate it. Any failure is
// returned as a 400 *errs.HTTPError; the caller must not continue.
func BindAndValidate(c echo.Context, payload Validatable) error {
	if err := c.Bind(payload); err != nil {
		return bindError(err)
	}

	if msg, fieldErrors := validateStruct(payload); fieldErrors != nil {
		return errs.NewBadRequestError(msg, true, nil, fieldErrors, nil)
	}

	return nil
}

// bindError converts echo's binder failures into the errs shape.
// Unsupported media types keep their 415 status.
func bindError(err error) error {
	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		if echoErr.Code == http.StatusUnsupportedMediaType {
			return echoErr
		}
		return errs.NewBadRequestError("Invalid request body", false, nil, nil, nil)
	}
	return errs.NewBadRequestError(InvalidParamsMessage, false, nil, nil, nil)
}

func validateStruct(v Validatable) (string, []errs.FieldError) {
	if err := v.Validate(); err != nil {
		return extractValidationError(err)
	}
	return "", nil
}

func extractValidationError(err error) (string, []errs.FieldError) {
	var fieldErrors []errs.FieldError

	var customValidationErrors CustomValidationErrors
	if errors.As(err, &customValidationErrors) {
		for _, err := range customValidationErrors {
			fieldErrors = append(fieldErrors, errs.FieldError{
				Field: err.Field,
				Error: err.Message,
			})
		}
		return InvalidParamsMessage, fieldErrors
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return InvalidParamsMessage, []errs.FieldError{{Field: "", Error: err.Error()}}
	}

	for _, err := range validationErrors {
		field := strings.ToLower(err.Field())
		var msg string

		switch err.Tag() {
		case "required":
			msg = "is required"

		case "min":
			if err.Type().Kind() == reflect.String {
				msg = fmt.Sprintf("must be at least %s characters", err.Param())
			} else {
				msg = fmt.Sprintf("must be at least %s", err.Param())
			}

		case "max":
			if err.Type().Kind() == reflect.String {
				msg = fmt.Sprintf("must not exceed %s characters", err.Param())
			} else {
				msg = fmt.Sprintf("must not exceed %s", err.Param())
			}

		case "oneof":
			msg = fmt.Sprintf("must be one of: %s", err.Param())

		case "email":
			msg = "must be a valid email address"

		case "numeric":
			msg = "must contain only digits"

		case "uuid":
			msg = "must be a valid UUID"

		default:
			if err.Param() != "" {
				msg = fmt.Sprintf("%s: %s:%s", field, err.Tag(), err.Param())
			} else {
				msg = fmt.Sprintf("%s: %s", field, err.Tag())
			}
		}

		fieldErrors = append(fieldErrors, errs.FieldError{
			Field: field,
			Error: msg,
		})
	}

	return InvalidParamsMessage, fieldErrors
}

// uuidRegex matches standard UUID format: xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx
var uuidRegex = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

// IsValidUUID checks whether a string matches UUID format (format only).
func IsValidUUID(uuid string) bool {
	return uuidRegex.MatchString(uuid)
}
