package response

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Response is the standardized API response envelope. The admin client
// reads Data on success and Message/Details on failure, so those three
// fields are the wire contract; Metadata is tracing convenience.
type Response struct {
	Data     interface{}   `json:"data,omitempty"`
	Code     ErrCode       `json:"code,omitempty"`
	Message  string        `json:"message,omitempty"`
	Details  []FieldDetail `json:"details,omitempty"`
	Metadata Metadata      `json:"metadata"`
}

// FieldDetail is one field-level validation failure.
type FieldDetail struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// Metadata includes request tracing and timing.
type Metadata struct {
	RequestID string `json:"request_id"`
	Timestamp string `json:"timestamp"`
}

// Success sends a successful JSON response with the given status code and data.
func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, Response{
		Data:     data,
		Metadata: buildMetadata(c),
	})
}

// Fail sends an error response with an error code and no field-level details.
func Fail(c *gin.Context, statusCode int, code ErrCode) {
	c.JSON(statusCode, Response{
		Code:     code,
		Message:  GetMessage(code),
		Metadata: buildMetadata(c),
	})
}

// FailWithDetails sends an error response carrying field-level detail messages.
func FailWithDetails(c *gin.Context, statusCode int, code ErrCode, details []FieldDetail) {
	c.JSON(statusCode, Response{
		Code:     code,
		Message:  GetMessage(code),
		Details:  details,
		Metadata: buildMetadata(c),
	})
}

// AbortFail aborts the middleware chain and sends an error response.
func AbortFail(c *gin.Context, statusCode int, code ErrCode) {
	c.AbortWithStatusJSON(statusCode, Response{
		Code:     code,
		Message:  GetMessage(code),
		Metadata: buildMetadata(c),
	})
}

func buildMetadata(c *gin.Context) Metadata {
	reqID, _ := c.Get(ContextKeyRequestID)
	id, ok := reqID.(string)
	if !ok || id == "" {
		id = uuid.New().String() // Fallback if middleware not applied
	}
	return Metadata{
		RequestID: id,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}
