package validation

import (
	"fmt"
	"slices"
	"strings"

	"github.com/kbukum/pktchain/errors"
)

// FieldError is one failed check.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) String() string { return e.Field + ": " + e.Message }

// Validator accumulates failed checks on configuration values. Checks
// chain and never stop early, so one Validate call reports every field:
//
//	validation.New().Required("name", name).Range("nr", nr, 1, 16).Validate()
type Validator struct {
	failed []FieldError
}

// New creates an empty Validator.
func New() *Validator { return &Validator{} }

// AddError records a failed check.
func (v *Validator) AddError(field, message string) {
	v.failed = append(v.failed, FieldError{Field: field, Message: message})
}

// HasErrors reports whether any check failed.
func (v *Validator) HasErrors() bool { return len(v.failed) > 0 }

// Errors returns the failed checks in the order they were made.
func (v *Validator) Errors() []FieldError { return slices.Clone(v.failed) }

// Validate returns nil when every check passed, and otherwise one
// INVALID_CONFIG error naming each failed field.
func (v *Validator) Validate() *errors.AppError {
	if len(v.failed) == 0 {
		return nil
	}
	parts := make([]string, len(v.failed))
	for i, fe := range v.failed {
		parts[i] = fe.String()
	}
	return errors.InvalidConfig(strings.Join(parts, "; ")).WithDetail("fields", v.Errors())
}

func (v *Validator) check(ok bool, field, format string, args ...any) *Validator {
	if !ok {
		v.AddError(field, fmt.Sprintf(format, args...))
	}
	return v
}

// Required rejects empty or blank strings.
func (v *Validator) Required(field, value string) *Validator {
	return v.check(strings.TrimSpace(value) != "", field, "is required")
}

// Range requires lo <= value <= hi.
func (v *Validator) Range(field string, value, lo, hi int) *Validator {
	return v.check(value >= lo && value <= hi, field, "must be between %d and %d", lo, hi)
}

// Min requires value >= lo.
func (v *Validator) Min(field string, value, lo int) *Validator {
	return v.check(value >= lo, field, "must be at least %d", lo)
}

// OneOf requires value to be empty or one of allowed.
func (v *Validator) OneOf(field, value string, allowed []string) *Validator {
	return v.check(value == "" || slices.Contains(allowed, value), field,
		"must be one of: %s", strings.Join(allowed, ", "))
}

// Custom records message for field unless ok holds.
func (v *Validator) Custom(ok bool, field, message string) *Validator {
	return v.check(ok, field, "%s", message)
}
