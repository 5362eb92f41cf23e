package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/go-authgate/edgegate/internal/cache"
	"github.com/go-authgate/edgegate/internal/metrics"
	"github.com/go-authgate/edgegate/internal/mocks"
	"github.com/go-authgate/edgegate/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func protectedRouter(gate *session.Gate, reached *bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", RequireSession(gate), func(c *gin.Context) {
		*reached = true
		c.String(http.StatusOK, c.GetString(ContextSessionID))
	})
	return r
}

func newMemoryGate() *session.Gate {
	store := session.NewCacheStore(cache.NewMemoryCache[session.Record](), time.Hour)
	return session.NewGate(store, metrics.NewNoopMetrics(), nil)
}

func TestRequireSession_Valid(t *testing.T) {
	gate := newMemoryGate()
	id, err := gate.NewSession(context.Background())
	require.NoError(t, err)

	reached := false
	r := protectedRouter(gate, &reached)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(session.HeaderName, id)
	r.ServeHTTP(w, req)

	assert.True(t, reached)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, id, w.Body.String())
}

func TestRequireSession_Refused(t *testing.T) {
	tests := []struct {
		name   string
		set    bool
		header string
	}{
		{name: "missing header"},
		{name: "empty header", set: true},
		{name: "unknown id", set: true, header: "forged"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reached := false
			r := protectedRouter(newMemoryGate(), &reached)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.set {
				req.Header.Set(session.HeaderName, tt.header)
			}
			r.ServeHTTP(w, req)

			assert.False(t, reached)
			assert.Equal(t, http.StatusForbidden, w.Code)
			assert.Equal(t, "Invalid session", w.Body.String())
		})
	}
}

func TestRequireSession_StoreFault(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockSessionStore(ctrl)
	store.EXPECT().IsValid(gomock.Any(), "abc").Return(false, errors.New("redis down"))

	reached := false
	r := protectedRouter(session.NewGate(store, metrics.NewNoopMetrics(), nil), &reached)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(session.HeaderName, "abc")
	r.ServeHTTP(w, req)

	assert.False(t, reached)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Empty(t, w.Body.String())
}
