package errors

import (
	"fmt"
	"net/http"
)

// AppError is the unified error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// HTTPStatus is the recommended HTTP status code for this error.
	HTTPStatus int `json:"-"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError.
func New(code ErrorCode, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// --- Construction errors ---

// FilterNotFound creates an error for an unknown filter name.
func FilterNotFound(name string) *AppError {
	return &AppError{
		Code: ErrCodeFilterNotFound, Message: fmt.Sprintf("No filter named %q is registered.", name),
		HTTPStatus: http.StatusBadRequest,
		Details:    map[string]any{"filter": name},
	}
}

// InvalidOption creates an error for an option that is unknown or does not parse.
func InvalidOption(filter, option, reason string) *AppError {
	details := map[string]any{"filter": filter}
	if option != "" {
		details["option"] = option
	}
	return &AppError{
		Code: ErrCodeInvalidOption, Message: fmt.Sprintf("Invalid option for %s: %s", filter, reason),
		HTTPStatus: http.StatusBadRequest, Details: details,
	}
}

// OutOfRange creates an error for a numeric option outside its declared range.
func OutOfRange(filter, option, bound string) *AppError {
	return &AppError{
		Code: ErrCodeOutOfRange, Message: fmt.Sprintf("Option %s of %s is out of range (%s).", option, filter, bound),
		HTTPStatus: http.StatusBadRequest,
		Details:    map[string]any{"filter": filter, "option": option, "bound": bound},
	}
}

// InvalidConfig creates an error for a malformed descriptor or configuration.
func InvalidConfig(reason string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidConfig, Message: reason,
		HTTPStatus: http.StatusBadRequest,
	}
}

// --- Processing errors ---

// AllocationFailure creates an error for a packet that could not be allocated.
func AllocationFailure(filter string, size int) *AppError {
	return &AppError{
		Code: ErrCodeAllocationFailure, Message: fmt.Sprintf("%s could not allocate a %d byte packet.", filter, size),
		HTTPStatus: http.StatusUnprocessableEntity,
		Details:    map[string]any{"filter": filter, "size": size},
	}
}

// InvalidState creates an error for a push/pull protocol violation.
func InvalidState(filter, reason string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidState, Message: fmt.Sprintf("%s: %s", filter, reason),
		HTTPStatus: http.StatusConflict,
		Details:    map[string]any{"filter": filter},
	}
}

// --- Surface errors ---

// InvalidInput creates an error for a malformed request.
func InvalidInput(field, reason string) *AppError {
	details := make(map[string]any)
	if field != "" {
		details["field"] = field
	}
	return &AppError{
		Code: ErrCodeInvalidInput, Message: fmt.Sprintf("Invalid input: %s", reason),
		HTTPStatus: http.StatusBadRequest, Details: details,
	}
}

// NotFound creates an error for a named resource that does not exist.
func NotFound(resource, name string) *AppError {
	details := map[string]any{"resource": resource}
	if name != "" {
		details["name"] = name
	}
	return &AppError{
		Code: ErrCodeNotFound, Message: fmt.Sprintf("The requested %s was not found.", resource),
		HTTPStatus: http.StatusNotFound, Details: details,
	}
}

// Unauthorized creates an error for unauthorized access.
func Unauthorized(reason string) *AppError {
	if reason == "" {
		reason = "Authentication required."
	}
	return &AppError{
		Code: ErrCodeUnauthorized, Message: reason,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// Internal creates an error for an unexpected failure.
func Internal(cause error) *AppError {
	return &AppError{
		Code: ErrCodeInternal, Message: "An unexpected error occurred.",
		HTTPStatus: http.StatusInternalServerError, Cause: cause,
	}
}
