package bootstrap

import (
	"fmt"
	"log/slog"
	"net/url"

	"github.com/go-authgate/edgegate/internal/config"
	"github.com/go-authgate/edgegate/internal/handlers"
	"github.com/go-authgate/edgegate/internal/metrics"
	"github.com/go-authgate/edgegate/internal/middleware"
	"github.com/go-authgate/edgegate/internal/redirect"
	"github.com/go-authgate/edgegate/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// setupRouter configures the main router with the session endpoints and the
// protected surface
func setupRouter(
	cfg *config.Config,
	gate *session.Gate,
	h *handlers.SessionHandler,
	recorder metrics.Recorder,
	logger *slog.Logger,
) (*gin.Engine, error) {
	r := gin.New()

	// Setup middleware
	r.Use(metrics.HTTPMetricsMiddleware(recorder))
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(middleware.ClientIPMiddleware())

	// Health check endpoint
	r.GET("/health", handlers.HealthCheck(gate))

	// Setup metrics endpoint
	setupMetricsEndpoint(r, cfg, logger)

	// Session endpoints
	r.POST("/login", h.Login)
	r.POST("/logout", h.Logout)
	r.GET("/session", h.CheckSession)

	// Protected surface
	if cfg.UpstreamURL == "" {
		api := r.Group("/api", middleware.RequireSession(gate))
		api.GET("/whoami", h.Whoami)
		return r, nil
	}

	target, err := url.Parse(cfg.UpstreamURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse UPSTREAM_URL: %w", err)
	}
	r.NoRoute(middleware.RequireSession(gate), handlers.UpstreamProxy(target, logger))
	logger.Info("Proxying authenticated requests", "upstream", target.Redacted())

	return r, nil
}

// setupRedirectRouter configures the plaintext router; every request is
// answered by the redirect handler before any other processing
func setupRedirectRouter(h *redirect.Handler, recorder metrics.Recorder) *gin.Engine {
	r := gin.New()
	r.Use(metrics.HTTPMetricsMiddleware(recorder))
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(middleware.ClientIPMiddleware())
	r.NoRoute(h.Redirect)
	return r
}

// setupMetricsEndpoint configures the Prometheus metrics endpoint
func setupMetricsEndpoint(r *gin.Engine, cfg *config.Config, logger *slog.Logger) {
	switch {
	case !cfg.MetricsEnabled:
		logger.Info("Prometheus metrics disabled")
	case cfg.MetricsToken != "":
		logger.Info("Prometheus metrics enabled at /metrics with Bearer token authentication")
		r.GET(
			"/metrics",
			middleware.MetricsAuthMiddleware(cfg.MetricsToken),
			gin.WrapH(promhttp.Handler()),
		)
	default:
		logger.Warn("Prometheus metrics enabled at /metrics (no authentication)")
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}
}

// setupGinMode sets Gin mode based on environment configuration
func setupGinMode(cfg *config.Config, logger *slog.Logger) {
	mode := ginModeMap[cfg.IsProduction]
	gin.SetMode(mode)
	logger.Info("Gin mode", "mode", ginModeLogMessage[cfg.IsProduction])
}

var ginModeMap = map[bool]string{
	true:  gin.ReleaseMode,
	false: gin.DebugMode,
}

var ginModeLogMessage = map[bool]string{
	true:  "Release (production)",
	false: "Debug (development)",
}

// logServerStartup logs server startup information
func logServerStartup(cfg *config.Config, logger *slog.Logger) {
	scheme := "http"
	if cfg.TLSEnabled() {
		scheme = "https"
	}
	logger.Info("EdgeGate server starting", "addr", cfg.ServerAddr, "scheme", scheme)
	if cfg.RedirectEnabled {
		logger.Info("HTTPS redirect listener starting",
			"addr", cfg.RedirectAddr, "https_port", cfg.HTTPSPort)
	}
	if cfg.Admin != nil {
		logger.Info("Admin identity configured", "name", cfg.Admin.Name)
	}
}
