package ginx

import (
	"context"
	"errors"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/httpkit/correlation"
	"github.com/skillsenselab/httpkit/httperr"
)

// requestIDKey is the Gin context state slot seeded by RequestID.
const requestIDKey = "request_id"

// ErrorMiddleware returns Gin middleware that converts panics and
// handler-reported errors (via c.Error or Abort) into the standard
// JSON error envelope. It composes into a Gin chain with no further
// configuration:
//
//	r := gin.New()
//	r.Use(ginx.RequestID(), ginx.ErrorMiddleware(
//	    ginx.WithHandlers(httperr.ValidationHandler()),
//	))
func ErrorMiddleware(opts ...Option) gin.HandlerFunc {
	o := newOptions(opts...)
	return func(c *gin.Context) {
		defer func() {
			if v := recover(); v != nil {
				if err, ok := v.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(v)
				}
				finish(c, o, panicError(v), debug.Stack())
			}
		}()

		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		finish(c, o, c.Errors.Last().Err, nil)
	}
}

// Abort records err on the context and stops the chain, handing the
// error to ErrorMiddleware.
func Abort(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

func finish(c *gin.Context, o *options, err error, stack []byte) {
	// Cancellation of the inbound request is not an application error;
	// there is no client left to answer.
	if isCancellation(err) && c.Request.Context().Err() != nil {
		c.Abort()
		return
	}

	rec := httperr.Classify(err, o.handlers, o.fallbackMessage)
	if rec.Severity == httperr.SeverityCritical && stack == nil {
		stack = debug.Stack()
	}
	httperr.Log(o.log.WithContext(c.Request.Context()), rec, err, stack)

	env := rec.Envelope(resolveRequestID(c, o.sources))
	render(c, o, rec.StatusCode, env)
	c.Abort()
}

// render invokes the configured renderer and, should it fail, falls
// back to the minimal hand-built response so some well-formed body is
// always sent.
func render(c *gin.Context, o *options, statusCode int, env httperr.Envelope) {
	defer func() {
		if recover() != nil && !c.Writer.Written() {
			httperr.NewResponse(statusCode, env).Write(c.Writer)
		}
	}()
	o.renderer.Render(c, statusCode, env)
}

// resolveRequestID tries the Gin state slot first, then the configured
// source chain over the underlying request.
func resolveRequestID(c *gin.Context, sources []correlation.Source) string {
	if v, ok := c.Get(requestIDKey); ok {
		if id, ok := v.(string); ok && id != "" {
			return id
		}
	}
	return correlation.ResolveRequestID(c.Request, sources...)
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
