package handlers

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/go-authgate/edgegate/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpstreamProxy(t *testing.T) {
	var gotSession, gotPath, gotQuery string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSession = r.Header.Get(session.HeaderName)
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		_, _ = io.WriteString(w, "from upstream")
	}))
	defer upstream.Close()

	target, err := url.Parse(upstream.URL)
	require.NoError(t, err)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.NoRoute(UpstreamProxy(target, nil))

	req := httptest.NewRequest(http.MethodGet, "/app/page?x=1", nil)
	req.Header.Set(session.HeaderName, "abc")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "from upstream", w.Body.String())
	assert.Equal(t, "/app/page", gotPath)
	assert.Equal(t, "x=1", gotQuery)
	assert.Empty(t, gotSession)
}

func TestUpstreamProxy_Unreachable(t *testing.T) {
	target, err := url.Parse("http://127.0.0.1:1")
	require.NoError(t, err)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.NoRoute(UpstreamProxy(target, nil))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusBadGateway, w.Code)
}
