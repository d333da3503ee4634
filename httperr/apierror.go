package httperr

import (
	"fmt"
	"net/http"
)

// APIError is the application-raised error type. Business code
// constructs one at the point of failure with a stable code and the
// HTTP status it should surface as; the dispatcher maps it 1:1 to a
// Record. Constructing an APIError has no side effects.
type APIError struct {
	Code       string
	Message    string
	StatusCode int
	Details    map[string]any
}

// Error returns the string representation of the error.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Record converts the error to its canonical Record. Severity is
// SeverityWarn for client statuses and SeverityError for 5xx; an
// APIError is never critical.
func (e *APIError) Record() Record {
	sev := SeverityWarn
	if e.StatusCode >= 500 {
		sev = SeverityError
	}
	r := Record{
		Code:       e.Code,
		Message:    e.Message,
		StatusCode: e.StatusCode,
		Details:    e.Details,
		Severity:   sev,
	}
	return r.normalize()
}

// NewAPIError creates an APIError. A zero statusCode defaults to 400.
func NewAPIError(code, message string, statusCode int, details map[string]any) *APIError {
	if statusCode == 0 {
		statusCode = http.StatusBadRequest
	}
	return &APIError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Details:    details,
	}
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *APIError) WithDetail(key string, value any) *APIError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// --- Common Constructors ---

// NotFound creates an APIError for a resource that was not found.
func NotFound(resource string) *APIError {
	return &APIError{
		Code: CodeNotFound, Message: fmt.Sprintf("The requested %s was not found.", resource),
		StatusCode: http.StatusNotFound,
		Details:    map[string]any{"resource": resource},
	}
}

// InvalidInput creates an APIError for invalid input.
func InvalidInput(field, reason string) *APIError {
	details := make(map[string]any)
	if field != "" {
		details["field"] = field
	}
	return &APIError{
		Code: CodeInvalidInput, Message: fmt.Sprintf("Invalid input: %s", reason),
		StatusCode: http.StatusBadRequest, Details: details,
	}
}

// Unauthorized creates an APIError for unauthorized access.
func Unauthorized(reason string) *APIError {
	if reason == "" {
		reason = "Authentication required."
	}
	return &APIError{
		Code: CodeUnauthorized, Message: reason,
		StatusCode: http.StatusUnauthorized,
	}
}

// Forbidden creates an APIError for forbidden access.
func Forbidden(reason string) *APIError {
	if reason == "" {
		reason = "You don't have permission to perform this action."
	}
	return &APIError{
		Code: CodeForbidden, Message: reason,
		StatusCode: http.StatusForbidden,
	}
}

// Conflict creates an APIError for a conflict with the current state
// of the resource.
func Conflict(reason string) *APIError {
	return &APIError{
		Code: CodeConflict, Message: reason,
		StatusCode: http.StatusConflict,
	}
}

// Unavailable creates an APIError for a dependency that is temporarily
// unavailable.
func Unavailable(service string) *APIError {
	return &APIError{
		Code: CodeUnavailable, Message: fmt.Sprintf("The %s is temporarily unavailable. Please try again.", service),
		StatusCode: http.StatusServiceUnavailable,
		Details:    map[string]any{"service": service},
	}
}
