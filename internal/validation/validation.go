// Package validation checks request payloads against tagged schemas.
//
// It wraps go-playground/validator so that every rule of a schema runs and all
// violations come back together, keyed by the field's wire name (json, form
// or uri tag) rather than the Go field name.
package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldError is a single violation.
type FieldError struct {
	Field   string
	Message string
}

// Errors is the full list of violations found for one payload.
type Errors []FieldError

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fe.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Fields flattens the violations into field -> message. When a field fails
// more than one rule the first message wins.
func (e Errors) Fields() map[string]string {
	fields := make(map[string]string, len(e))
	for _, fe := range e {
		if _, ok := fields[fe.Field]; !ok {
			fields[fe.Field] = fe.Message
		}
	}
	return fields
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, key := range []string{"json", "form", "uri"} {
			name := strings.SplitN(fld.Tag.Get(key), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})

	// "uint" accepts decimal strings that fit in a non-negative int64.
	if err := v.RegisterValidation("uint", func(fl validator.FieldLevel) bool {
		_, err := ParseUint(fl.Field().String())
		return err == nil
	}); err != nil {
		panic(err)
	}

	// "id" is a path identifier: a "uint" that is also greater than zero.
	if err := v.RegisterValidation("id", func(fl validator.FieldLevel) bool {
		n, err := ParseUint(fl.Field().String())
		return err == nil && n > 0
	}); err != nil {
		panic(err)
	}

	return v
}

// ParseUint parses a decimal identifier or pagination value. Values are
// limited to 63 bits so they convert safely to both uint and int.
func ParseUint(s string) (uint64, error) {
	return strconv.ParseUint(s, 10, 63)
}

// Struct validates v and returns Errors when any rule fails.
func Struct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := make(Errors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{
			Field:   fe.Field(),
			Message: message(fe),
		})
	}
	return out
}

func message(fe validator.FieldError) string {
	field := fe.Field()

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is a required field", field)
	case "uint":
		return fmt.Sprintf("%s must be a non-negative integer", field)
	case "id":
		return fmt.Sprintf("%s must be a positive integer", field)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must not exceed %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must not exceed %s", field, fe.Param())
	default:
		if fe.Param() != "" {
			return fmt.Sprintf("%s failed %s:%s", field, fe.Tag(), fe.Param())
		}
		return fmt.Sprintf("%s failed %s", field, fe.Tag())
	}
}

// FromBindError turns a body decoding failure into violations. Type mismatches
// are attributed to the offending field; anything else is reported on "body".
func FromBindError(err error) Errors {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return Errors{{
			Field:   typeErr.Field,
			Message: fmt.Sprintf("%s must be a %s", typeErr.Field, typeName(typeErr.Type)),
		}}
	}
	return Errors{{Field: "body", Message: "request body must be valid JSON"}}
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "value"
	}
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "non-negative integer"
	case reflect.String:
		return "string"
	default:
		return t.Kind().String()
	}
}
