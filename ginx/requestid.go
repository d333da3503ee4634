package ginx

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/skillsenselab/httpkit/correlation"
)

// RequestID injects a unique X-Request-Id header into every
// request/response, seeds the Gin state slot, and stores the id in the
// ambient correlation context so downstream code and the error
// envelope see the same value.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(correlation.DefaultHeader)
		if id == "" {
			id = uuid.New().String()
		}
		c.Set(requestIDKey, id)
		c.Request = c.Request.WithContext(correlation.WithRequestID(c.Request.Context(), id))
		c.Header(correlation.DefaultHeader, id)
		c.Next()
	}
}
