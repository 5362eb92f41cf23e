package middleware

import (
	"github.com/go-authgate/edgegate/internal/session"

	"github.com/gin-gonic/gin"
)

// ContextSessionID is the gin context key holding the validated session id.
const ContextSessionID = "session_id"

// RequireSession runs the session filter and stops the chain when it halts.
func RequireSession(gate *session.Gate) gin.HandlerFunc {
	return func(c *gin.Context) {
		result := gate.Filter(c.Request)
		if result.Halted() {
			if result.Body() == "" {
				c.AbortWithStatus(result.Status())
				return
			}
			c.String(result.Status(), result.Body())
			c.Abort()
			return
		}

		id, _ := session.ExtractSessionID(c.Request)
		c.Set(ContextSessionID, id)
		c.Next()
	}
}
