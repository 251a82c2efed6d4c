package response

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ContextKeyRequestID is the Gin context key holding the request ID that
// the envelope metadata echoes back.
const ContextKeyRequestID = "request_id"

// RequestIDMiddleware tags every fixture-server request with an ID so a
// failed admin call can be matched to its server-side log line. An
// incoming X-Request-ID is trusted and passed through.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := c.GetHeader("X-Request-ID")
		if reqID == "" {
			reqID = uuid.New().String()
		}
		c.Set(ContextKeyRequestID, reqID)
		c.Header("X-Request-ID", reqID)
		c.Next()
	}
}
