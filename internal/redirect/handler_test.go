package redirect

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-authgate/edgegate/internal/metrics"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(99, metrics.NewNoopMetrics(), nil)
	r.NoRoute(h.Redirect)
	return r
}

func TestRedirect_OriginForm(t *testing.T) {
	r := setupRouter()

	req := httptest.NewRequest(http.MethodGet, "/path?x=1", nil)
	req.Host = "other.com:20"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusMovedPermanently, w.Code)
	assert.Equal(t, "https://other.com:99/path?x=1", w.Header().Get("Location"))
}

func TestRedirect_AbsoluteForm(t *testing.T) {
	r := setupRouter()

	req := httptest.NewRequest(http.MethodPost, "http://host.foo.com/login", nil)
	req.Host = "other.com"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusMovedPermanently, w.Code)
	assert.Equal(t, "https://host.foo.com/login", w.Header().Get("Location"))
}

func TestRedirect_NoHost(t *testing.T) {
	r := setupRouter()

	req := httptest.NewRequest(http.MethodGet, "/path", nil)
	req.Host = ""
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Empty(t, w.Body.String())
	assert.Empty(t, w.Header().Get("Location"))
}
