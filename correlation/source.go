package correlation

import (
	"net/http"

	"go.opentelemetry.io/otel/trace"
)

// Source resolves a request id from one representation of an inbound
// request. Implementations report ok=false when they have no value so
// the next source in the chain is consulted; resolution is best-effort
// and must not fail the error path.
type Source interface {
	Resolve(r *http.Request) (id string, ok bool)
}

// SourceFunc adapts a function to a Source.
type SourceFunc func(*http.Request) (string, bool)

// Resolve calls f.
func (f SourceFunc) Resolve(r *http.Request) (string, bool) { return f(r) }

// HeaderSource reads the request id from a request header,
// DefaultHeader unless Header is set.
type HeaderSource struct {
	Header string
}

// Resolve returns the header value when present.
func (s HeaderSource) Resolve(r *http.Request) (string, bool) {
	name := s.Header
	if name == "" {
		name = DefaultHeader
	}
	v := r.Header.Get(name)
	return v, v != ""
}

// ContextSource reads the ambient correlation context.
type ContextSource struct{}

// Resolve returns the request id stored in the request context.
func (ContextSource) Resolve(r *http.Request) (string, bool) {
	id := FromContext(r.Context()).RequestID
	return id, id != ""
}

// SpanSource reads the active OpenTelemetry span and uses its trace id
// as the request id. Useful when tracing middleware runs ahead of any
// request-id middleware.
type SpanSource struct{}

// Resolve returns the active span's trace id when one is present.
func (SpanSource) Resolve(r *http.Request) (string, bool) {
	sc := trace.SpanContextFromContext(r.Context())
	if !sc.HasTraceID() {
		return "", false
	}
	return sc.TraceID().String(), true
}

// ResolveRequestID walks sources in order and returns the first
// present, non-empty value, or Unknown when every source comes up
// empty. A panicking source is skipped.
func ResolveRequestID(r *http.Request, sources ...Source) string {
	for _, s := range sources {
		if s == nil {
			continue
		}
		if id, ok := tryResolve(s, r); ok && id != "" {
			return id
		}
	}
	return Unknown
}

func tryResolve(s Source, r *http.Request) (id string, ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	return s.Resolve(r)
}
