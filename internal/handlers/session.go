package handlers

import (
	"net/http"

	"github.com/go-authgate/edgegate/internal/auth"
	"github.com/go-authgate/edgegate/internal/core"
	"github.com/go-authgate/edgegate/internal/middleware"
	"github.com/go-authgate/edgegate/internal/session"

	"github.com/gin-gonic/gin"
)

// LoginRequest is the body of POST /login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SessionHandler serves the login, logout and session-check endpoints.
type SessionHandler struct {
	authenticator *auth.Authenticator
	gate          *session.Gate
	metrics       core.Recorder
}

func NewSessionHandler(
	authenticator *auth.Authenticator,
	gate *session.Gate,
	metrics core.Recorder,
) *SessionHandler {
	return &SessionHandler{
		authenticator: authenticator,
		gate:          gate,
		metrics:       metrics,
	}
}

// Login handles POST /login.
// 200 {"session": id} on success, 401 with an empty body otherwise.
func (h *SessionHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	ctx := c.Request.Context()
	if h.authenticator.Authenticate(ctx, req.Username, req.Password) != auth.OutcomeAuthenticated {
		h.metrics.RecordLogin(false)
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	id, err := h.gate.NewSession(ctx)
	if err != nil {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	h.metrics.RecordLogin(true)
	c.JSON(http.StatusOK, gin.H{"session": id})
}

// Logout handles POST /logout. Logging out an unknown session still succeeds.
func (h *SessionHandler) Logout(c *gin.Context) {
	id, ok := session.ExtractSessionID(c.Request)
	if !ok {
		c.String(http.StatusForbidden, session.InvalidSessionMessage)
		return
	}

	if err := h.gate.RemoveSession(c.Request.Context(), id); err != nil {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	h.metrics.RecordLogout()
	c.JSON(http.StatusOK, gin.H{})
}

// CheckSession handles GET /session: 200 with an empty body if the session
// header names a live session, 403 otherwise.
func (h *SessionHandler) CheckSession(c *gin.Context) {
	result := h.gate.Filter(c.Request)
	if result.Halted() {
		c.String(result.Status(), result.Body())
		return
	}
	c.Status(http.StatusOK)
}

// Whoami echoes the session id validated by RequireSession.
func (h *SessionHandler) Whoami(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"session": c.GetString(middleware.ContextSessionID)})
}
