package chix

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/skillsenselab/httpkit/correlation"
)

// RequestID injects a unique X-Request-Id header into every
// request/response and stores the id in the ambient correlation
// context. Unlike chi's own RequestID middleware it propagates an
// id supplied by the client unchanged.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(correlation.DefaultHeader)
		if id == "" {
			id = uuid.New().String()
		}
		w.Header().Set(correlation.DefaultHeader, id)
		ctx := correlation.WithRequestID(r.Context(), id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
