package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Construction errors
const (
	// ErrCodeFilterNotFound indicates a descriptor named an unknown filter kind.
	ErrCodeFilterNotFound ErrorCode = "FILTER_NOT_FOUND"
	// ErrCodeInvalidOption indicates an option key is unknown or its value does not parse.
	ErrCodeInvalidOption ErrorCode = "INVALID_OPTION"
	// ErrCodeOutOfRange indicates a numeric option is outside its declared range.
	ErrCodeOutOfRange ErrorCode = "OUT_OF_RANGE"
	// ErrCodeInvalidConfig indicates a malformed descriptor or filter configuration.
	ErrCodeInvalidConfig ErrorCode = "INVALID_CONFIG"
)

// Processing errors
const (
	// ErrCodeAllocationFailure indicates a packet could not be allocated.
	ErrCodeAllocationFailure ErrorCode = "ALLOCATION_FAILURE"
	// ErrCodeInvalidState indicates the push/pull protocol was misused.
	ErrCodeInvalidState ErrorCode = "INVALID_STATE"
)

// Surface errors
const (
	// ErrCodeInvalidInput indicates a malformed request.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeNotFound indicates a named resource (such as a catalog chain) does not exist.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeUnauthorized indicates the request is unauthorized.
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	// ErrCodeInternal indicates an internal error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

var configCodes = map[ErrorCode]bool{
	ErrCodeFilterNotFound: true,
	ErrCodeInvalidOption:  true,
	ErrCodeOutOfRange:     true,
	ErrCodeInvalidConfig:  true,
}

// IsConfigCode returns true if the code is raised while building a chain.
func IsConfigCode(code ErrorCode) bool {
	return configCodes[code]
}
