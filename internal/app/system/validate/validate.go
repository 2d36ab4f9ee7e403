// internal/app/system/validate/validate.go
package validate

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/gridleapp/gridle/internal/app/system/httpx"
)

// maxBodyBytes bounds request bodies; anything larger is a validation error,
// not a server fault.
const maxBodyBytes = 1 << 20

var v = newValidator()

func newValidator() *validator.Validate {
	val := validator.New(validator.WithRequiredStructEnabled())

	// json tag names in violation output, not Go field names
	val.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	// password: at least one lower, upper, digit, and special character
	_ = val.RegisterValidation("password", func(fl validator.FieldLevel) bool {
		return passwordComplexOK(fl.Field().String())
	})

	return val
}

func passwordComplexOK(s string) bool {
	var lower, upper, digit, special bool
	for _, r := range s {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		default:
			special = true
		}
	}
	return lower && upper && digit && special
}

// FieldError is one violated constraint on one field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Struct validates every field of req and returns all violations, not just
// the first. A nil return means the payload is accepted.
func Struct(req any) []FieldError {
	err := v.Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Field: "", Message: "invalid request data"}}
	}
	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fe.Field(), Message: message(fe)})
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return "Invalid email address"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s cannot exceed %s characters", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("%s cannot exceed %s", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), strings.Join(strings.Fields(fe.Param()), ", "))
	case "hexcolor":
		return "Invalid color format"
	case "password":
		return "Password must contain at least one uppercase letter, one lowercase letter, one number, and one special character"
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

// DecodeJSON reads and decodes the request body into dst. Unknown fields are
// ignored; malformed JSON is a 400-class tagged error.
func DecodeJSON(r *http.Request, dst any) error {
	body := http.MaxBytesReader(nil, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return httpx.E(httpx.KindBadRequest, "Request body is required")
		}
		return httpx.Wrap(httpx.KindBadRequest, "Invalid request data", err)
	}
	return nil
}

// Request decodes and validates in one step, returning the standard
// "Validation failed" tagged error with every violated field in Details.
func Request(r *http.Request, dst any) error {
	if err := DecodeJSON(r, dst); err != nil {
		return err
	}
	if fieldErrs := Struct(dst); fieldErrs != nil {
		return httpx.E(httpx.KindValidation, "Validation failed").WithDetails(fieldErrs)
	}
	return nil
}
