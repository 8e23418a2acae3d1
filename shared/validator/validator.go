package validator

import (
	"encoding/json"
	"errors"
	"fmt"
	"hotel/shared/failure"
	"hotel/shared/timezone"
	"io"
	"reflect"
	"strings"

	val "github.com/go-playground/validator/v10"
)

// messages renders the first failing rule of a request. {field} is the JSON
// name of the field.
var messages = map[string]string{
	"required":  "{field} is required",
	"gt":        "{field} must be greater than {param}",
	"gte":       "{field} must be greater than or equal to {param}",
	"lte":       "{field} must be less than or equal to {param}",
	"min":       "{field} must be greater than or equal to {param}",
	"max":       "{field} must be less than or equal to {param}",
	"oneof":     "{field} must be one of {param}",
	"email":     "{field} must be a valid email address",
	"e164":      "{field} must be a phone number in E.164 format",
	"uuid":      "{field} must be a valid UUID",
	"url":       "{field} must be a valid URL",
	"datetime":  "{field} must match the layout {param}",
	"timestamp": "{field} must be an RFC 3339 timestamp or YYYY-MM-DD date",
}

var validate = newValidate()

func newValidate() *val.Validate {
	v := val.New(val.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return field.Name
		}

		return name
	})

	if err := v.RegisterValidation("timestamp", isTimestamp); err != nil {
		panic(err)
	}

	return v
}

// isTimestamp accepts RFC 3339 timestamps and YYYY-MM-DD dates.
func isTimestamp(field val.FieldLevel) bool {
	value, ok := field.Field().Interface().(string)
	if !ok {
		return false
	}

	_, err := timezone.ParseTimestamp(value)

	return err == nil
}

// Validate decodes one JSON document from r into data and validates it.
// Every failure is a 400.
func Validate[T any](r io.Reader, data *T) error {
	err := json.NewDecoder(r).Decode(data)

	switch {
	case errors.Is(err, io.EOF):
		return failure.BadRequestFromString("request body is required") //nolint:wrapcheck
	case err != nil:
		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err)) //nolint:wrapcheck
	}

	return ValidateStruct(data)
}

func ValidateStruct[T any](data *T) error {
	if err := validate.Struct(data); err != nil {
		return failure.BadRequestFromString(message(err)) //nolint:wrapcheck
	}

	return nil
}

func ValidateVar(field any, tag string) error {
	if err := validate.Var(field, tag); err != nil {
		return failure.BadRequestFromString(message(err)) //nolint:wrapcheck
	}

	return nil
}

func message(err error) string {
	var fieldErrors val.ValidationErrors
	if !errors.As(err, &fieldErrors) || len(fieldErrors) == 0 {
		return err.Error()
	}

	first := fieldErrors[0]

	template, ok := messages[first.Tag()]
	if !ok {
		return fmt.Sprintf("%s failed the %s rule", first.Field(), first.Tag())
	}

	return strings.NewReplacer("{field}", first.Field(), "{param}", first.Param()).Replace(template)
}

// PathID checks an id taken from the URL. A malformed id cannot name a stored
// row, so it is reported as an unknown resource.
func PathID(id, resource string) error {
	if err := validate.Var(id, "required,uuid"); err != nil {
		return failure.NotFound(resource + " not found") // nolint:wrapcheck
	}

	return nil
}
