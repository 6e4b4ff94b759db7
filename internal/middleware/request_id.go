package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"hrpayroll/backend/foundation/web"
)

// RequestID takes the trace id from X-Request-Id, or generates one, and
// echoes it in the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(web.TraceIDHeader)
		if id == "" {
			id = uuid.NewString()
		}

		c.Set(web.TraceIDKey, id)
		c.Header(web.TraceIDHeader, id)

		c.Next()
	}
}
