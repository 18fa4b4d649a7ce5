package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"codecamp-backend/pkg/logger"
)

const RequestIDHeader = "X-Request-ID"

// RequestID gắn request id vào gin context (key "request_id"), response header
// và logger của request. Id từ client được giữ nguyên nếu có.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}

		c.Set("request_id", id)
		c.Header(RequestIDHeader, id)
		c.Request = c.Request.WithContext(logger.WithRequestID(c.Request.Context(), id))
		c.Next()
	}
}
