// Package errors provides the error taxonomy for filter chains.
// It implements structured error types with machine-readable codes,
// construction-time versus processing-time classification, and HTTP status
// mapping for the API surface.
package errors
