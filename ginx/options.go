package ginx

import (
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

// WithRenderer overrides the response renderer. FallbackRenderer is
// the hand-built substitute when Gin's render path must be bypassed.
func WithRenderer(r Renderer) Option {
	return func(o *options) { o.renderer = r }
}

// WithSources replaces the request-id source chain consulted after the
// Gin context state slot.
func WithSources(ss ...correlation.Source) Option {
	return func(o *options) { o.sources = ss }
}

func newOptions(opts ...Option) *options {
	o := &options{
		fallbackMessage: httperr.DefaultFallbackMessage,
		sources: []correlation.Source{
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
