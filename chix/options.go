package chix

import (
	"net/http"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/skillsenselab/httpkit/correlation"
	"github.com/skillsenselab/httpkit/httperr"
	"github.com/skillsenselab/httpkit/logger"
)

type options struct {
	handlers        []httperr.Handler
	fallbackMessage string
	log             *logger.Logger
	renderer        Renderer
	sources         []correlation.Source
}

// Option configures the error middleware.
type Option func(*options)

// WithHandlers appends classification handlers, evaluated in order.
func WithHandlers(hs ...httperr.Handler) Option {
	return func(o *options) { o.handlers = append(o.handlers, hs...) }
}

// WithFallbackMessage sets the client-safe message used by the
// catch-all 500 record.
func WithFallbackMessage(msg string) Option {
	return func(o *options) { o.fallbackMessage = msg }
}

// WithLogger sets the logger used for classified errors.
func WithLogger(l *logger.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithRenderer overrides the response renderer.
func WithRenderer(r Renderer) Option {
	return func(o *options) { o.renderer = r }
}

// WithSources replaces the request-id source chain.
func WithSources(ss ...correlation.Source) Option {
	return func(o *options) { o.sources = ss }
}

// chiRequestIDSource reads the id placed in the context by chi's own
// RequestID middleware. This is the framework state slot and therefore
// first in the default chain.
func chiRequestIDSource() correlation.Source {
	return correlation.SourceFunc(func(r *http.Request) (string, bool) {
		id := chimiddleware.GetReqID(r.Context())
		return id, id != ""
	})
}

func newOptions(opts ...Option) *options {
	o := &options{
		fallbackMessage: httperr.DefaultFallbackMessage,
		sources: []correlation.Source{
			chiRequestIDSource(),
			correlation.HeaderSource{},
			correlation.ContextSource{},
		},
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.log == nil {
		o.log = logger.GetGlobalLogger()
	}
	if o.renderer == nil {
		o.renderer = jsonRenderer{}
	}
	return o
}
