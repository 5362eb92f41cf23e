package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

const testToken = "test-secret-token-123"

func metricsRouter(token string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(MetricsAuthMiddleware(token))
	r.GET("/metrics", func(c *gin.Context) {
		c.String(http.StatusOK, "metrics")
	})
	return r
}

func TestMetricsAuthMiddleware(t *testing.T) {
	tests := []struct {
		name          string
		token         string
		authorization string
		wantCode      int
		wantMessage   string
	}{
		{name: "open when no token configured", wantCode: http.StatusOK},
		{name: "valid token", token: testToken, authorization: "Bearer " + testToken, wantCode: http.StatusOK},
		{name: "missing header", token: testToken, wantCode: http.StatusUnauthorized, wantMessage: "Bearer token required"},
		{name: "basic scheme", token: testToken, authorization: "Basic dXNlcjpwYXNz", wantCode: http.StatusUnauthorized, wantMessage: "Bearer token required"},
		{name: "lowercase scheme", token: testToken, authorization: "bearer " + testToken, wantCode: http.StatusUnauthorized, wantMessage: "Bearer token required"},
		{name: "wrong token", token: testToken, authorization: "Bearer wrong", wantCode: http.StatusUnauthorized, wantMessage: "Invalid token"},
		{name: "empty bearer", token: testToken, authorization: "Bearer ", wantCode: http.StatusUnauthorized, wantMessage: "Invalid token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := metricsRouter(tt.token)

			w := httptest.NewRecorder()
			req, _ := http.NewRequestWithContext(context.Background(), http.MethodGet, "/metrics", nil)
			if tt.authorization != "" {
				req.Header.Set("Authorization", tt.authorization)
			}
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantCode, w.Code)
			if tt.wantCode == http.StatusOK {
				assert.Equal(t, "metrics", w.Body.String())
				return
			}
			assert.Equal(t, `Bearer realm="Metrics"`, w.Header().Get("WWW-Authenticate"))
			assert.Contains(t, w.Body.String(), tt.wantMessage)
		})
	}
}
