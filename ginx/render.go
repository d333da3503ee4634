package ginx

import (
	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/httpkit/httperr"
)

// Renderer writes a classified error envelope as the response. The
// renderer is chosen once at middleware construction, not per request.
type Renderer interface {
	Render(c *gin.Context, statusCode int, env httperr.Envelope)
}

// jsonRenderer uses Gin's native JSON response path.
type jsonRenderer struct{}

func (jsonRenderer) Render(c *gin.Context, statusCode int, env httperr.Envelope) {
	c.JSON(statusCode, env)
}

// FallbackRenderer bypasses Gin's render machinery and writes a
// pre-encoded minimal response straight to the ResponseWriter. It
// produces the same envelope and status as the native path.
type FallbackRenderer struct{}

// Render writes env to the underlying writer.
func (FallbackRenderer) Render(c *gin.Context, statusCode int, env httperr.Envelope) {
	httperr.NewResponse(statusCode, env).Write(c.Writer)
}
