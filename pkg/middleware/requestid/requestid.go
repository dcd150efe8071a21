package requestid

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// Header carries the request ID on both the incoming request and the
	// response, so admin-frontend calls can be correlated with server logs.
	Header = "X-Request-ID"

	contextKey = "request_id"
)

// Middleware tags every request with an ID. A caller-supplied X-Request-ID is
// kept as-is; otherwise a fresh UUID is minted. The ID is echoed back on the
// response and stored in the Gin context for log enrichment.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(Header)
		if id == "" {
			id = uuid.NewString()
		}

		c.Set(contextKey, id)
		c.Writer.Header().Set(Header, id)

		c.Next()
	}
}

// Value returns the request ID for the current request, or "" when the
// middleware is not installed.
func Value(c *gin.Context) string {
	if v, ok := c.Get(contextKey); ok {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}
