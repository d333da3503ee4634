package httperr

import (
	"encoding/json"
	"net/http"
	"strconv"
)

// Envelope is the fixed JSON error body shared by every adapter.
type Envelope struct {
	Error Body `json:"error"`
}

// Body contains the error fields sent to clients. Details is always
// present, an empty object when the record carried none.
type Body struct {
	Code      string         `json:"code"`
	Message   string         `json:"message"`
	Details   map[string]any `json:"details"`
	RequestID string         `json:"request_id"`
}

// Envelope builds the wire body for the record with the resolved
// request id.
func (r Record) Envelope(requestID string) Envelope {
	details := r.Details
	if details == nil {
		details = map[string]any{}
	}
	return Envelope{Error: Body{
		Code:      r.Code,
		Message:   r.Message,
		Details:   details,
		RequestID: requestID,
	}}
}

// Response is the minimal rendered form used when a framework's native
// response path is unavailable. Status and StatusCode carry the same
// value so callers of either naming convention can read it; Body holds
// the JSON-encoded envelope.
type Response struct {
	Status     int
	StatusCode int
	Body       []byte
}

// NewResponse encodes env into a Response. Encoding the fixed envelope
// shape cannot fail for JSON-safe details; if a caller smuggled an
// unencodable value into Details, a bare internal-error body is
// substituted so the error path still produces valid JSON.
func NewResponse(statusCode int, env Envelope) *Response {
	body, err := json.Marshal(env)
	if err != nil {
		env.Error.Details = map[string]any{}
		body, err = json.Marshal(env)
		if err != nil {
			body = []byte(`{"error":{"code":"INTERNAL_ERROR","message":"An unexpected error occurred","details":{},"request_id":"unknown"}}`)
			statusCode = http.StatusInternalServerError
		}
	}
	return &Response{Status: statusCode, StatusCode: statusCode, Body: body}
}

// Write sends the response over a standard ResponseWriter.
func (r *Response) Write(w http.ResponseWriter) {
	h := w.Header()
	h.Set("Content-Type", "application/json; charset=utf-8")
	h.Set("Content-Length", strconv.Itoa(len(r.Body)))
	w.WriteHeader(r.StatusCode)
	_, _ = w.Write(r.Body)
}
