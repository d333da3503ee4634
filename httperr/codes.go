package httperr

// Validation errors
const (
	// CodeInvalidInput indicates the input is invalid.
	CodeInvalidInput = "INVALID_INPUT"
	// CodeValidation indicates structured request validation failed.
	CodeValidation = "VALIDATION_FAILED"
	// CodeMalformedBody indicates the request body could not be decoded.
	CodeMalformedBody = "MALFORMED_BODY"
)

// Resource errors
const (
	// CodeNotFound indicates the requested resource was not found.
	CodeNotFound = "NOT_FOUND"
	// CodeConflict indicates a conflict with the current state of the resource.
	CodeConflict = "CONFLICT"
)

// Authentication/Authorization errors
const (
	// CodeUnauthorized indicates the request is unauthorized.
	CodeUnauthorized = "UNAUTHORIZED"
	// CodeForbidden indicates the request is forbidden.
	CodeForbidden = "FORBIDDEN"
)

// Availability errors
const (
	// CodeUnavailable indicates a dependency is temporarily unavailable.
	CodeUnavailable = "SERVICE_UNAVAILABLE"
	// CodeTimeout indicates an operation exceeded its deadline.
	CodeTimeout = "TIMEOUT"
)

// Internal errors
const (
	// CodeInternal is the catch-all code for unclassified failures.
	CodeInternal = "INTERNAL_ERROR"
)
