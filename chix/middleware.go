package chix

import (
	"context"
	"errors"
	"net/http"
	"runtime/debug"

	"github.com/skillsenselab/httpkit/correlation"
	"github.com/skillsenselab/httpkit/httperr"
)

// ErrorMiddleware returns standard net/http middleware that recovers
// panics from the wrapped handler and renders them as the JSON error
// envelope. It drops into a chi chain with no further configuration:
//
//	r := chi.NewRouter()
//	r.Use(middleware.RequestID)
//	r.Use(chix.ErrorMiddleware())
func ErrorMiddleware(opts ...Option) func(http.Handler) http.Handler {
	o := newOptions(opts...)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if v := recover(); v != nil {
					if err, ok := v.(error); ok && errors.Is(err, http.ErrAbortHandler) {
						panic(v)
					}
					respond(w, r, o, panicError(v), debug.Stack())
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// HandlerFunc is an HTTP handler that reports failure by returning an
// error instead of writing its own error response.
type HandlerFunc func(http.ResponseWriter, *http.Request) error

// Handler adapts fn into an http.HandlerFunc: a returned error (or a
// panic) is classified, logged, and rendered as the standard envelope.
func Handler(fn HandlerFunc, opts ...Option) http.HandlerFunc {
	o := newOptions(opts...)
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if v := recover(); v != nil {
				if err, ok := v.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(v)
				}
				respond(w, r, o, panicError(v), debug.Stack())
			}
		}()
		if err := fn(w, r); err != nil {
			respond(w, r, o, err, nil)
		}
	}
}

func respond(w http.ResponseWriter, r *http.Request, o *options, err error, stack []byte) {
	// Cancellation of the inbound request is not an application error;
	// there is no client left to answer.
	if isCancellation(err) && r.Context().Err() != nil {
		return
	}

	rec := httperr.Classify(err, o.handlers, o.fallbackMessage)
	if rec.Severity == httperr.SeverityCritical && stack == nil {
		stack = debug.Stack()
	}
	httperr.Log(o.log.WithContext(r.Context()), rec, err, stack)

	env := rec.Envelope(correlation.ResolveRequestID(r, o.sources...))
	render(w, o, rec.StatusCode, env)
}

// render invokes the configured renderer and, should it fail, falls
// back to the minimal hand-built response so some well-formed body is
// always sent.
func render(w http.ResponseWriter, o *options, statusCode int, env httperr.Envelope) {
	defer func() {
		if recover() != nil {
			httperr.NewResponse(statusCode, env).Write(w)
		}
	}()
	o.renderer.Render(w, statusCode, env)
}

func isCancellation(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// panicError converts a recovered panic value into an error.
func panicError(v any) error {
	if err, ok := v.(error); ok {
		return err
	}
	return &httperr.PanicError{Value: v}
}
