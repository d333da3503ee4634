package ginx_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/skillsenselab/httpkit/correlation"
	"github.com/skillsenselab/httpkit/ginx"
	"github.com/skillsenselab/httpkit/httperr"
	"github.com/skillsenselab/httpkit/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newEngine(log *logger.Logger, opts ...ginx.Option) *gin.Engine {
	r := gin.New()
	r.Use(ginx.ErrorMiddleware(append([]ginx.Option{ginx.WithLogger(log)}, opts...)...))
	return r
}

func decodeEnvelope(t *testing.T, body *bytes.Buffer) httperr.Envelope {
	t.Helper()
	var env httperr.Envelope
	if err := json.Unmarshal(body.Bytes(), &env); err != nil {
		t.Fatalf("response is not a valid envelope: %v (%s)", err, body.String())
	}
	return env
}

func TestErrorMiddleware_APIError(t *testing.T) {
	log := logger.Wrap(zerolog.New(&bytes.Buffer{}))
	r := newEngine(log)
	r.GET("/widgets/42", func(c *gin.Context) {
		ginx.Abort(c, httperr.NewAPIError("NOT_FOUND", "Widget 42 missing", 404, map[string]any{"widget_id": 42}))
	})

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest("GET", "/widgets/42", http.NoBody))

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
	env := decodeEnvelope(t, rr.Body)
	if env.Error.Code != "NOT_FOUND" {
		t.Errorf("expected NOT_FOUND, got %s", env.Error.Code)
	}
	if env.Error.Message != "Widget 42 missing" {
		t.Errorf("unexpected message %q", env.Error.Message)
	}
	if env.Error.Details["widget_id"] != float64(42) {
		t.Errorf("expected widget_id=42, got %v", env.Error.Details["widget_id"])
	}
	if env.Error.RequestID != correlation.Unknown {
		t.Errorf("expected %q without any id source, got %q", correlation.Unknown, env.Error.RequestID)
	}
}

func TestErrorMiddleware_APIError_LogsWarn(t *testing.T) {
	var buf bytes.Buffer
	r := newEngine(logger.Wrap(zerolog.New(&buf)))
	r.GET("/", func(c *gin.Context) {
		ginx.Abort(c, httperr.NotFound("widget"))
	})

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest("GET", "/", http.NoBody))

	if !strings.Contains(buf.String(), `"level":"warn"`) {
		t.Errorf("expected warn log for 4xx APIError, got %s", buf.String())
	}
}

func TestErrorMiddleware_UnregisteredError(t *testing.T) {
	var buf bytes.Buffer
	r := newEngine(logger.Wrap(zerolog.New(&buf)))
	r.GET("/", func(c *gin.Context) {
		ginx.Abort(c, errors.New("database exploded: dsn=postgres://secret"))
	})

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest("GET", "/", http.NoBody))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}
	env := decodeEnvelope(t, rr.Body)
	if env.Error.Code != "INTERNAL_ERROR" {
		t.Errorf("expected INTERNAL_ERROR, got %s", env.Error.Code)
	}
	if env.Error.Message != "An unexpected error occurred" {
		t.Errorf("expected fallback message, got %q", env.Error.Message)
	}
	if len(env.Error.Details) != 0 {
		t.Errorf("expected empty details, got %v", env.Error.Details)
	}
	if strings.Contains(rr.Body.String(), "secret") {
		t.Error("internal error detail leaked to client")
	}
	if !strings.Contains(buf.String(), `"level":"fatal"`) {
		t.Errorf("expected critical log entry, got %s", buf.String())
	}
	if !strings.Contains(buf.String(), "database exploded") {
		t.Error("original error must be fully logged")
	}
}

func TestErrorMiddleware_PanicRecovery(t *testing.T) {
	var buf bytes.Buffer
	r := newEngine(logger.Wrap(zerolog.New(&buf)))
	r.GET("/", func(*gin.Context) {
		panic("handler exploded")
	})

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest("GET", "/", http.NoBody))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}
	env := decodeEnvelope(t, rr.Body)
	if env.Error.Code != "INTERNAL_ERROR" {
		t.Errorf("expected INTERNAL_ERROR, got %s", env.Error.Code)
	}
	if !strings.Contains(buf.String(), `"stack"`) {
		t.Error("expected a stack trace in the critical log entry")
	}
	if strings.Contains(rr.Body.String(), "handler exploded") {
		t.Error("panic value leaked to client")
	}
}

type quotaError struct{ limit int }

func (e *quotaError) Error() string { return "quota exceeded" }

func TestErrorMiddleware_RegisteredHandler(t *testing.T) {
	var buf bytes.Buffer
	quotaHandler := httperr.Handler{
		Match: httperr.IsType[*quotaError](),
		Map: func(err error) httperr.Record {
			var qe *quotaError
			errors.As(err, &qe)
			return httperr.Record{
				Code:       "QUOTA_EXCEEDED",
				Message:    "Request quota exceeded",
				StatusCode: http.StatusTooManyRequests,
				Details:    map[string]any{"limit": qe.limit},
				Severity:   httperr.SeverityWarn,
			}
		},
	}
	r := newEngine(logger.Wrap(zerolog.New(&buf)), ginx.WithHandlers(quotaHandler))
	r.GET("/", func(c *gin.Context) {
		ginx.Abort(c, &quotaError{limit: 100})
	})

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest("GET", "/", http.NoBody))

	if rr.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rr.Code)
	}
	env := decodeEnvelope(t, rr.Body)
	if env.Error.Code != "QUOTA_EXCEEDED" {
		t.Errorf("expected QUOTA_EXCEEDED, got %s", env.Error.Code)
	}
	if env.Error.Details["limit"] != float64(100) {
		t.Errorf("expected limit detail, got %v", env.Error.Details)
	}
	if strings.Contains(buf.String(), `"level":"fatal"`) {
		t.Error("handler-classified errors must not log as critical")
	}
}

func TestErrorMiddleware_CustomFallbackMessage(t *testing.T) {
	log := logger.Wrap(zerolog.New(&bytes.Buffer{}))
	r := newEngine(log, ginx.WithFallbackMessage("Something broke"))
	r.GET("/", func(c *gin.Context) {
		ginx.Abort(c, errors.New("boom"))
	})

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest("GET", "/", http.NoBody))

	env := decodeEnvelope(t, rr.Body)
	if env.Error.Message != "Something broke" {
		t.Errorf("expected custom fallback message, got %q", env.Error.Message)
	}
}

func TestErrorMiddleware_StateSlotBeatsHeader(t *testing.T) {
	log := logger.Wrap(zerolog.New(&bytes.Buffer{}))
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("request_id", "abc")
		c.Next()
	})
	r.Use(ginx.ErrorMiddleware(ginx.WithLogger(log)))
	r.GET("/", func(c *gin.Context) {
		ginx.Abort(c, httperr.NotFound("widget"))
	})

	rr := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/", http.NoBody)
	req.Header.Set(correlation.DefaultHeader, "conflicting-header-id")
	r.ServeHTTP(rr, req)

	env := decodeEnvelope(t, rr.Body)
	if env.Error.RequestID != "abc" {
		t.Errorf("state slot must take priority, got %q", env.Error.RequestID)
	}
}

func TestErrorMiddleware_AmbientContextID(t *testing.T) {
	log := logger.Wrap(zerolog.New(&bytes.Buffer{}))
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Request = c.Request.WithContext(correlation.WithRequestID(c.Request.Context(), "xyz"))
		c.Next()
	})
	r.Use(ginx.ErrorMiddleware(ginx.WithLogger(log)))
	r.GET("/", func(c *gin.Context) {
		ginx.Abort(c, httperr.NotFound("widget"))
	})

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest("GET", "/", http.NoBody))

	env := decodeEnvelope(t, rr.Body)
	if env.Error.RequestID != "xyz" {
		t.Errorf("expected ambient context id, got %q", env.Error.RequestID)
	}
}

func TestErrorMiddleware_FallbackRenderer(t *testing.T) {
	log := logger.Wrap(zerolog.New(&bytes.Buffer{}))
	r := newEngine(log, ginx.WithRenderer(ginx.FallbackRenderer{}))
	r.GET("/", func(c *gin.Context) {
		ginx.Abort(c, httperr.NewAPIError("NOT_FOUND", "gone", 404, nil))
	})

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest("GET", "/", http.NoBody))

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected same status as the native path, got %d", rr.Code)
	}
	env := decodeEnvelope(t, rr.Body)
	if env.Error.Code != "NOT_FOUND" {
		t.Errorf("fallback body must match the envelope, got %s", env.Error.Code)
	}
}

func TestErrorMiddleware_NoErrorPassesThrough(t *testing.T) {
	log := logger.Wrap(zerolog.New(&bytes.Buffer{}))
	r := newEngine(log)
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest("GET", "/", http.NoBody))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if strings.Contains(rr.Body.String(), "error") {
		t.Errorf("successful responses must be untouched, got %s", rr.Body.String())
	}
}

func TestRequestID_GeneratesAndPropagates(t *testing.T) {
	r := gin.New()
	r.Use(ginx.RequestID())
	var seen string
	r.GET("/", func(c *gin.Context) {
		seen = correlation.FromContext(c.Request.Context()).RequestID
		c.Status(http.StatusOK)
	})

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest("GET", "/", http.NoBody))

	header := rr.Header().Get(correlation.DefaultHeader)
	if header == "" {
		t.Fatal("expected X-Request-Id response header")
	}
	if seen != header {
		t.Errorf("ambient context id %q does not match header %q", seen, header)
	}
}

func TestRequestID_PreservesClientID(t *testing.T) {
	r := gin.New()
	r.Use(ginx.RequestID())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	rr := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/", http.NoBody)
	req.Header.Set(correlation.DefaultHeader, "client-id-1")
	r.ServeHTTP(rr, req)

	if got := rr.Header().Get(correlation.DefaultHeader); got != "client-id-1" {
		t.Errorf("expected client-id-1, got %q", got)
	}
}

func TestRequestID_FeedsErrorEnvelope(t *testing.T) {
	log := logger.Wrap(zerolog.New(&bytes.Buffer{}))
	r := gin.New()
	r.Use(ginx.RequestID(), ginx.ErrorMiddleware(ginx.WithLogger(log)))
	r.GET("/", func(c *gin.Context) {
		ginx.Abort(c, httperr.NotFound("widget"))
	})

	rr := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/", http.NoBody)
	req.Header.Set(correlation.DefaultHeader, "req-77")
	r.ServeHTTP(rr, req)

	env := decodeEnvelope(t, rr.Body)
	if env.Error.RequestID != "req-77" {
		t.Errorf("expected req-77 in envelope, got %q", env.Error.RequestID)
	}
}
