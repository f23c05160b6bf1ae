package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/labakery/backend/internal/interfaces/http/dto"
)

const bodyTooLargeMessage = "Request body exceeds maximum allowed size"

// BodyLimit caps the request body at maxBytes. A declared Content-Length
// over the cap is rejected before the handler runs; a chunked body fails
// on read and HandleValidationError turns that into the same 413.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			abortTooLarge(c)
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

func abortTooLarge(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, dto.NewErrorResponse(bodyTooLargeMessage))
}
