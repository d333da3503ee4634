package httperr

import "net/http"

// Severity classifies how a Record should be logged.
type Severity int

const (
	severityUnset Severity = iota
	// SeverityWarn marks client errors (status < 500).
	SeverityWarn
	// SeverityError marks server errors the caller classified itself.
	SeverityError
	// SeverityCritical marks unclassified failures; only these carry a
	// full stack trace into the log.
	SeverityCritical
)

// String returns the lowercase severity name.
func (s Severity) String() string {
	switch s {
	case SeverityWarn:
		return "warn"
	case SeverityError:
		return "error"
	case SeverityCritical:
		return "critical"
	default:
		return "unset"
	}
}

// Record is the canonical representation of a classified failure.
// Code is a stable machine-readable identifier, Message and Details
// are client-safe, and StatusCode drives the HTTP response status.
type Record struct {
	Code       string
	Message    string
	StatusCode int
	Details    map[string]any
	Severity   Severity
}

// normalize enforces the Record invariants on mapper-produced records:
// StatusCode within the valid HTTP range (default 400, out of range
// collapses to 500), a non-empty Code, non-nil Details, and severity
// defaulting to SeverityError when the mapper left it unset.
func (r Record) normalize() Record {
	if r.StatusCode == 0 {
		r.StatusCode = http.StatusBadRequest
	}
	if r.StatusCode < 100 || r.StatusCode > 599 {
		r.StatusCode = http.StatusInternalServerError
	}
	if r.Code == "" {
		r.Code = CodeInternal
	}
	if r.Details == nil {
		r.Details = map[string]any{}
	}
	if r.Severity == severityUnset {
		r.Severity = SeverityError
	}
	return r
}
