package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var initOnce sync.Once

// Init configures the global validator used by Gin's binding: errors use JSON
// tag names and the maxbytes rule is registered.
func Init() {
	initOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			v.RegisterTagNameFunc(func(fld reflect.StructField) string {
				name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
				if name == "-" {
					return ""
				}
				return name
			})
			_ = v.RegisterValidation("maxbytes", maxBytes)
		}
	})
}

// maxBytes limits the encoded length of a string, unlike max which counts runes.
func maxBytes(fl validator.FieldLevel) bool {
	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return len(fl.Field().String()) <= limit
}

// Error is a validation failure naming the first violation.
type Error struct {
	Message string
}

func (e *Error) Error() string {
	return "Validation failed: " + e.Message
}

// New converts a binding/validation error into *Error. Nil stays nil.
func New(err error) error {
	if err == nil {
		return nil
	}
	var ve *Error
	if errors.As(err, &ve) {
		return ve
	}

	if errors.Is(err, io.EOF) {
		return &Error{Message: "request body is empty"}
	}

	var se *json.SyntaxError
	if errors.As(err, &se) {
		return &Error{Message: "invalid json"}
	}

	var ute *json.UnmarshalTypeError
	if errors.As(err, &ute) {
		field := ute.Field
		if field == "" {
			field = "payload"
		}
		return &Error{Message: field + " " + typeMismatch(ute)}
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		first := verrs[0]
		return &Error{Message: fieldPath(first) + " " + formatFieldError(first)}
	}

	return &Error{Message: err.Error()}
}

// fieldPath drops the root struct name from the namespace: "createUserRequest.address.city" -> "address.city".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

// typeMismatch describes a JSON decode failure. A fractional number sent for
// an integer field is still a number, so it is reported as not an integer.
func typeMismatch(ute *json.UnmarshalTypeError) string {
	if ute.Type != nil && strings.HasPrefix(ute.Value, "number") && isIntegerKind(ute.Type.Kind()) {
		return "must be an integer"
	}
	return "must be of type " + typeName(ute.Type)
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "unknown"
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "number"
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "boolean"
	case reflect.Slice, reflect.Array:
		return "array"
	case reflect.Struct, reflect.Map:
		return "object"
	default:
		return t.String()
	}
}

func formatFieldError(fe validator.FieldError) string {
	tag := fe.Tag()
	param := fe.Param()
	kind := fe.Kind()

	switch tag {
	case "required":
		if kind == reflect.String {
			return "is required and must not be empty"
		}
		return "is required"
	case "email":
		return "must be a valid email"
	case "min":
		if isNumberKind(kind) {
			return "must be at least " + param
		}
		if kind == reflect.Slice || kind == reflect.Array {
			return "must contain at least " + param + " items"
		}
		return "must be at least " + param + " characters long"
	case "max":
		if isNumberKind(kind) {
			return "must be at most " + param
		}
		return "must be at most " + param + " characters long"
	case "maxbytes":
		return "must be at most " + param + " bytes"
	case "gte":
		return "must be greater than or equal to " + param
	case "gt":
		return "must be greater than " + param
	case "lte":
		return "must be less than or equal to " + param
	case "oneof":
		return "must be one of: " + strings.Join(strings.Fields(param), ", ")
	case "dive":
		return "array validation failed"
	default:
		if param != "" {
			return fmt.Sprintf("validation failed for '%s' with parameter '%s'", tag, param)
		}
		return fmt.Sprintf("validation failed for '%s'", tag)
	}
}

func isIntegerKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	default:
		return false
	}
}

func isNumberKind(k reflect.Kind) bool {
	return isIntegerKind(k) || k == reflect.Float32 || k == reflect.Float64
}
