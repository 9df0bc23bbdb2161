package shared

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// Validate is the shared validator for request payloads. Field errors report
// the json tag name so they match the wire format.
var Validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		// ALLOW-PANIC: registration fails only on an empty tag name
		panic(fmt.Sprintf("failed to register notblank validator: %v", err))
	}
	return v
}

// DecodeJSON decodes the request body into the given struct.
func DecodeJSON(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return err
	}
	return nil
}

// ValidateRequest validates the given struct using the shared validator.
func ValidateRequest(v interface{}) error {
	return Validate.Struct(v)
}

// DecodeErrorMessage translates a body decoding failure into the specific
// client-facing message for the Bad Request envelope.
func DecodeErrorMessage(err error) string {
	var typeErr *json.UnmarshalTypeError
	var timeErr *time.ParseError

	switch {
	case errors.Is(err, io.EOF):
		return "Request body is missing"
	case errors.As(err, &typeErr) && typeErr.Field != "":
		return "Invalid value for field: " + typeErr.Field
	case errors.As(err, &timeErr), isTimeUnmarshalError(err):
		// The request models carry exactly one time field.
		return "Invalid value for field: dueDate"
	default:
		return "Malformed JSON request"
	}
}

// isTimeUnmarshalError matches date parse failures surfaced through
// time.Time.UnmarshalJSON, which hides the ParseError behind a flat message.
func isTimeUnmarshalError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "Time.UnmarshalJSON")
}
