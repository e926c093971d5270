package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"net/http"
	"reflect"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
)

const invalidJSONMessage = "Request body must be a valid JSON object"

// Validator checks decoded request bodies against their `validate` struct
// tags and renders failures as client facing messages. Field names in the
// messages are taken from the json tags.
type Validator struct {
	validate *validator.Validate
}

// NewValidator returns a Validator. It is safe for concurrent use.
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonName)
	return &Validator{validate: v}
}

func jsonName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return fld.Name
	}
	return name
}

// check returns one message per failing field, in struct field order, merging
// tag violations with fields that could not be decoded (keyed by json name).
// A field that failed to decode reports only its decode message. A nil result
// means payload is valid.
func (v *Validator) check(payload any, undecoded map[string]string) []string {
	byField := make(map[string]string, len(undecoded))
	for field, msg := range undecoded {
		byField[field] = msg
	}

	var unplaced []string
	if err := v.validate.Struct(payload); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return []string{"Request body is invalid"}
		}
		for _, fe := range fieldErrs {
			if _, seen := byField[fe.Field()]; seen {
				continue
			}
			// Nested fields keep validator order after the top-level ones.
			if strings.Count(fe.Namespace(), ".") > 1 {
				unplaced = append(unplaced, message(fe))
				continue
			}
			byField[fe.Field()] = message(fe)
		}
	}
	if len(byField) == 0 && len(unplaced) == 0 {
		return nil
	}

	messages := make([]string, 0, len(byField)+len(unplaced))
	t := reflect.TypeOf(payload)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() == reflect.Struct {
		for i := range t.NumField() {
			name := jsonName(t.Field(i))
			if msg, ok := byField[name]; ok {
				messages = append(messages, msg)
				delete(byField, name)
			}
		}
	}
	for _, field := range slices.Sorted(maps.Keys(byField)) {
		messages = append(messages, byField[field])
	}
	return append(messages, unplaced...)
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("Please provide a value for %q", fe.Field())
	case "email":
		return fmt.Sprintf("Please provide a valid email address for %q", fe.Field())
	default:
		return fmt.Sprintf("Please provide a valid value for %q", fe.Field())
	}
}

// Validate returns a middleware that decodes the JSON body into a T and
// checks it. Every violation is reported at once as 400 {"errors":[...]}.
// Valid requests continue with the original body bytes, unmodified.
func Validate[T any](v *Validator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var raw []byte
			if r.Body != nil {
				var err error
				raw, err = io.ReadAll(r.Body)
				if err != nil {
					var maxErr *http.MaxBytesError
					if errors.As(err, &maxErr) {
						writeError(w, http.StatusRequestEntityTooLarge, "Request body too large")
						return
					}
					writeError(w, http.StatusBadRequest, "Request body could not be read")
					return
				}
				_ = r.Body.Close()
			}

			var (
				payload   T
				undecoded map[string]string
			)
			if len(bytes.TrimSpace(raw)) > 0 {
				// Unmarshal decodes the remaining fields past a type mismatch,
				// so only a mismatch at a named field lets validation continue.
				if err := json.Unmarshal(raw, &payload); err != nil {
					var typeErr *json.UnmarshalTypeError
					if !errors.As(err, &typeErr) || typeErr.Field == "" {
						writeJSON(w, http.StatusBadRequest, validationResponse{Errors: []string{invalidJSONMessage}})
						return
					}
					undecoded = map[string]string{
						typeErr.Field: fmt.Sprintf("Please provide a valid value for %q", typeErr.Field),
					}
				}
			}

			if messages := v.check(&payload, undecoded); len(messages) > 0 {
				writeJSON(w, http.StatusBadRequest, validationResponse{Errors: messages})
				return
			}

			r.Body = io.NopCloser(bytes.NewReader(raw))
			next.ServeHTTP(w, r)
		})
	}
}
