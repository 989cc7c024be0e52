package validation

import (
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate *validator.Validate
	once     sync.Once
)

// getValidator returns the singleton validator instance.
func getValidator() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		// Report fields by their option or mapstructure key.
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			for _, tag := range []string{"option", "mapstructure"} {
				name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
				if name != "" && name != "-" {
					return name
				}
			}
			return toSnakeCase(fld.Name)
		})
	})
	return validate
}

// StructError is a single failed struct tag rule.
type StructError struct {
	// Field is the option or mapstructure key of the failing field.
	Field string
	// Tag is the failed rule (required, min, max, oneof...).
	Tag string
	// Param is the rule parameter, e.g. "16" for max=16.
	Param string
	// Message is a human-readable description.
	Message string
}

// StructErrors collects every failed rule of a Struct call.
type StructErrors []StructError

func (e StructErrors) Error() string {
	messages := make([]string, len(e))
	for i, fe := range e {
		messages[i] = fe.Field + ": " + fe.Message
	}
	return strings.Join(messages, "; ")
}

// Struct validates s using its `validate` struct tags and returns the
// failures, or nil when s is valid.
func Struct(s any) StructErrors {
	err := getValidator().Struct(s)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return StructErrors{{Field: "", Tag: "invalid", Message: err.Error()}}
	}

	out := make(StructErrors, 0, len(validationErrors))
	for _, e := range validationErrors {
		out = append(out, StructError{
			Field:   e.Field(),
			Tag:     e.Tag(),
			Param:   e.Param(),
			Message: formatValidationError(e),
		})
	}
	return out
}

// IsRangeTag reports whether tag is a numeric bound rule.
func IsRangeTag(tag string) bool {
	switch tag {
	case "min", "max", "gte", "lte", "gt", "lt":
		return true
	}
	return false
}

// formatValidationError creates a human-readable error message.
func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "min", "gte":
		return "must be at least " + e.Param()
	case "max", "lte":
		return "must be at most " + e.Param()
	case "oneof":
		return "must be one of: " + e.Param()
	default:
		return "is invalid"
	}
}

// toSnakeCase converts a field name to snake_case.
func toSnakeCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result.WriteRune('_')
		}
		if r >= 'A' && r <= 'Z' {
			result.WriteRune(r + 32) // lowercase
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}
