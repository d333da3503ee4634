package chix

import (
	"encoding/json"
	"net/http"

	"github.com/skillsenselab/httpkit/httperr"
)

// Renderer writes a classified error envelope as the response. The
// renderer is chosen once at middleware construction, not per request.
type Renderer interface {
	Render(w http.ResponseWriter, statusCode int, env httperr.Envelope)
}

// jsonRenderer streams the envelope through encoding/json, the way chi
// services normally write JSON bodies.
type jsonRenderer struct{}

func (jsonRenderer) Render(w http.ResponseWriter, statusCode int, env httperr.Envelope) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(env)
}

// FallbackRenderer writes a pre-encoded minimal response. It produces
// the same envelope and status as the native path.
type FallbackRenderer struct{}

// Render writes env to w.
func (FallbackRenderer) Render(w http.ResponseWriter, statusCode int, env httperr.Envelope) {
	httperr.NewResponse(statusCode, env).Write(w)
}
