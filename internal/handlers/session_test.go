package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/go-authgate/edgegate/internal/auth"
	"github.com/go-authgate/edgegate/internal/cache"
	"github.com/go-authgate/edgegate/internal/config"
	"github.com/go-authgate/edgegate/internal/core"
	"github.com/go-authgate/edgegate/internal/metrics"
	"github.com/go-authgate/edgegate/internal/middleware"
	"github.com/go-authgate/edgegate/internal/mocks"
	"github.com/go-authgate/edgegate/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	adminSalt = "0123456789abcdef"
	// PBKDF2-HMAC-SHA256("hunter2", adminSalt, 100000, 32)
	adminHash = "fb0c308bd80cfde00997bb9d6cd16e24a62edfd3038e1d661fbaadbfa9cd885c"
)

type testEnv struct {
	router    *gin.Engine
	gate      *session.Gate
	directory *mocks.MockDirectoryAuthenticator
}

func setupTestEnv(t *testing.T, store core.SessionStore) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ctrl := gomock.NewController(t)
	directory := mocks.NewMockDirectoryAuthenticator(ctrl)
	directory.EXPECT().Name().Return("ldap").AnyTimes()

	if store == nil {
		store = session.NewCacheStore(cache.NewMemoryCache[session.Record](), time.Hour)
	}

	m := metrics.NewNoopMetrics()
	gate := session.NewGate(store, m, nil)
	authenticator := auth.NewAuthenticator(&config.AdminIdentity{
		Name:         "admin",
		Salt:         adminSalt,
		PasswordHash: adminHash,
	}, directory, m, nil)
	h := NewSessionHandler(authenticator, gate, m)

	r := gin.New()
	r.POST("/login", h.Login)
	r.POST("/logout", h.Logout)
	r.GET("/session", h.CheckSession)
	r.GET("/health", HealthCheck(gate))
	api := r.Group("/api", middleware.RequireSession(gate))
	api.GET("/whoami", h.Whoami)

	return &testEnv{router: r, gate: gate, directory: directory}
}

func (e *testEnv) do(method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) login(t *testing.T, username, password string) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(LoginRequest{Username: username, Password: password})
	require.NoError(t, err)
	return e.do(http.MethodPost, "/login", string(body), nil)
}

func sessionFrom(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp struct {
		Session string `json:"session"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Session)
	return resp.Session
}

func TestLogin_Admin(t *testing.T) {
	env := setupTestEnv(t, nil)

	w := env.login(t, "admin", "hunter2")
	assert.Equal(t, http.StatusOK, w.Code)

	id := sessionFrom(t, w)
	ok, err := env.gate.IsValid(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestLogin_AdminWrongPasswordSkipsDirectory(t *testing.T) {
	env := setupTestEnv(t, nil)
	env.directory.EXPECT().Authenticate(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	w := env.login(t, "admin", "wrong")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestLogin_Directory(t *testing.T) {
	tests := []struct {
		name     string
		ok       bool
		err      error
		wantCode int
	}{
		{name: "accepted", ok: true, wantCode: http.StatusOK},
		{name: "rejected", wantCode: http.StatusUnauthorized},
		{name: "fault", err: errors.New("connection refused"), wantCode: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setupTestEnv(t, nil)
			env.directory.EXPECT().Authenticate(gomock.Any(), "alice", "pw").Return(tt.ok, tt.err)

			w := env.login(t, "alice", "pw")
			assert.Equal(t, tt.wantCode, w.Code)
			if tt.wantCode == http.StatusOK {
				sessionFrom(t, w)
			} else {
				assert.Empty(t, w.Body.String())
			}
		})
	}
}

func TestLogin_MalformedBody(t *testing.T) {
	env := setupTestEnv(t, nil)

	for _, body := range []string{"", "{", `{"username": 1}`, "not json"} {
		w := env.do(http.MethodPost, "/login", body, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
		assert.Empty(t, w.Body.String())
	}
}

func TestLogin_StoreFault(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockSessionStore(ctrl)
	store.EXPECT().NewSession(gomock.Any()).Return("", errors.New("redis down"))

	env := setupTestEnv(t, store)

	w := env.login(t, "admin", "hunter2")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestSessionLifecycle(t *testing.T) {
	env := setupTestEnv(t, nil)

	id := sessionFrom(t, env.login(t, "admin", "hunter2"))
	hdr := map[string]string{session.HeaderName: id}

	w := env.do(http.MethodGet, "/session", "", hdr)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())

	w = env.do(http.MethodGet, "/api/whoami", "", hdr)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"session":"`+id+`"}`, w.Body.String())

	w = env.do(http.MethodPost, "/logout", "", hdr)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "{}", w.Body.String())

	w = env.do(http.MethodGet, "/session", "", hdr)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Invalid session", w.Body.String())

	w = env.do(http.MethodGet, "/api/whoami", "", hdr)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Logging out twice is not an error.
	w = env.do(http.MethodPost, "/logout", "", hdr)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMissingSessionHeader(t *testing.T) {
	env := setupTestEnv(t, nil)

	for _, tc := range []struct{ method, path string }{
		{http.MethodPost, "/logout"},
		{http.MethodGet, "/session"},
		{http.MethodGet, "/api/whoami"},
	} {
		w := env.do(tc.method, tc.path, "", nil)
		assert.Equal(t, http.StatusForbidden, w.Code, tc.path)
		assert.Equal(t, "Invalid session", w.Body.String(), tc.path)
	}
}

func TestCheckSession_Forged(t *testing.T) {
	env := setupTestEnv(t, nil)

	w := env.do(http.MethodGet, "/session", "", map[string]string{session.HeaderName: "forged"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Invalid session", w.Body.String())
}

func TestCheckSession_StoreFault(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockSessionStore(ctrl)
	store.EXPECT().IsValid(gomock.Any(), "abc").Return(false, errors.New("redis down"))

	env := setupTestEnv(t, store)

	w := env.do(http.MethodGet, "/session", "", map[string]string{session.HeaderName: "abc"})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestHealthCheck(t *testing.T) {
	env := setupTestEnv(t, nil)

	w := env.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"healthy","session_store":"connected"}`, w.Body.String())

	ctrl := gomock.NewController(t)
	store := mocks.NewMockSessionStore(ctrl)
	store.EXPECT().Health(gomock.Any()).Return(errors.New("redis down"))

	env = setupTestEnv(t, store)
	w = env.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.JSONEq(t, `{"status":"unhealthy","session_store":"disconnected"}`, w.Body.String())
}
