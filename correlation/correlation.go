// Package correlation carries per-request identifiers through
// context.Context and resolves a best-effort request id from
// heterogeneous request representations.
package correlation

import "context"

// DefaultHeader is the wire header carrying the request id.
const DefaultHeader = "X-Request-Id"

// Unknown is the literal request id used when no source yields one.
const Unknown = "unknown"

// IDs holds the ambient identifiers for a single request. The zero
// value means "absent"; this package never fabricates ids.
type IDs struct {
	RequestID     string
	CorrelationID string
}

// ctxKey is an unexported type for context keys to avoid collisions.
type ctxKey struct{}

// WithIDs stores ids in the context.
func WithIDs(ctx context.Context, ids IDs) context.Context {
	return context.WithValue(ctx, ctxKey{}, ids)
}

// WithRequestID stores a request id in the context, preserving any
// correlation id already present.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	ids := FromContext(ctx)
	ids.RequestID = requestID
	return WithIDs(ctx, ids)
}

// FromContext retrieves the ambient IDs, zero value when absent.
func FromContext(ctx context.Context) IDs {
	if ids, ok := ctx.Value(ctxKey{}).(IDs); ok {
		return ids
	}
	return IDs{}
}
