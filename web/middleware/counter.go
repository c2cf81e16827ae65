package middleware

import (
	"postboard/web/service"

	"github.com/gin-gonic/gin"
)

// CountRequests feeds the served-request total reported by the status
// endpoint.
func CountRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		service.CountRequest()
		c.Next()
	}
}
