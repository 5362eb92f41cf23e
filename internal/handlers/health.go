package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const healthCheckTimeout = 2 * time.Second

type healthChecker interface {
	Health(ctx context.Context) error
}

// HealthCheck reports whether the session store is reachable.
func HealthCheck(store healthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
		defer cancel()

		switch err := store.Health(ctx); err {
		case nil:
			c.JSON(http.StatusOK, gin.H{
				"status":        "healthy",
				"session_store": "connected",
			})
		default:
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":        "unhealthy",
				"session_store": "disconnected",
			})
		}
	}
}
