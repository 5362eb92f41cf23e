package middleware

import (
	"github.com/go-authgate/edgegate/internal/logging"

	"github.com/gin-gonic/gin"
)

// ClientIPMiddleware stores the client IP in the request context so that
// context-aware log calls further down the chain carry it.
func ClientIPMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Gin's ClientIP() honours the engine's trusted proxy settings
		ctx := logging.WithClientIP(c.Request.Context(), c.ClientIP())
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
