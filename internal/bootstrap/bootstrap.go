package bootstrap

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-authgate/edgegate/internal/auth"
	"github.com/go-authgate/edgegate/internal/config"
	"github.com/go-authgate/edgegate/internal/core"
	"github.com/go-authgate/edgegate/internal/handlers"
	"github.com/go-authgate/edgegate/internal/logging"
	"github.com/go-authgate/edgegate/internal/metrics"
	"github.com/go-authgate/edgegate/internal/redirect"
	"github.com/go-authgate/edgegate/internal/session"

	"github.com/appleboy/graceful"
	"github.com/gin-gonic/gin"
)

// Application holds all initialized components
type Application struct {
	Config *config.Config
	Logger *slog.Logger

	// Core infrastructure
	MetricsRecorder metrics.Recorder
	SessionStore    *session.CacheStore

	// Business layer
	Gate          *session.Gate
	Directory     core.DirectoryAuthenticator
	Authenticator *auth.Authenticator

	// HTTP
	SessionHandler  *handlers.SessionHandler
	RedirectHandler *redirect.Handler
	Router          *gin.Engine
	RedirectRouter  *gin.Engine
	Server          *http.Server
	RedirectServer  *http.Server
}

// Run initializes and starts the application
func Run(cfg *config.Config) error {
	app := &Application{
		Config: cfg,
		Logger: logging.Setup(os.Stderr, cfg),
	}

	// Phase 1: Validate configuration
	if err := validateConfiguration(cfg); err != nil {
		return err
	}

	// Phase 2: Initialize infrastructure
	if err := app.initializeInfrastructure(); err != nil {
		return err
	}

	// Phase 3: Initialize business layer
	app.initializeBusinessLayer()

	// Phase 4: Initialize HTTP layer
	if err := app.initializeHTTPLayer(); err != nil {
		return err
	}

	// Phase 5: Start servers with graceful shutdown
	app.startWithGracefulShutdown()

	return nil
}

// initializeInfrastructure sets up metrics and the session store
func (app *Application) initializeInfrastructure() error {
	var err error

	app.MetricsRecorder = initializeMetrics(app.Config, app.Logger)

	app.SessionStore, err = initializeSessionStore(app.Config, app.Logger)
	if err != nil {
		return err
	}

	return nil
}

// initializeBusinessLayer sets up the session gate and the authenticator
func (app *Application) initializeBusinessLayer() {
	app.Gate = session.NewGate(app.SessionStore, app.MetricsRecorder, app.Logger)
	app.Directory = initializeDirectory(app.Config, app.Logger)
	app.Authenticator = auth.NewAuthenticator(
		app.Config.Admin,
		app.Directory,
		app.MetricsRecorder,
		app.Logger,
	)
}

// initializeHTTPLayer sets up handlers, routers, and servers
func (app *Application) initializeHTTPLayer() error {
	app.SessionHandler = handlers.NewSessionHandler(app.Authenticator, app.Gate, app.MetricsRecorder)
	app.RedirectHandler = redirect.NewHandler(app.Config.HTTPSPort, app.MetricsRecorder, app.Logger)

	setupGinMode(app.Config, app.Logger)

	var err error
	app.Router, err = setupRouter(app.Config, app.Gate, app.SessionHandler, app.MetricsRecorder, app.Logger)
	if err != nil {
		return err
	}
	app.Server = createHTTPServer(app.Config.ServerAddr, app.Router)

	if app.Config.RedirectEnabled {
		app.RedirectRouter = setupRedirectRouter(app.RedirectHandler, app.MetricsRecorder)
		app.RedirectServer = createHTTPServer(app.Config.RedirectAddr, app.RedirectRouter)
	}

	logServerStartup(app.Config, app.Logger)
	return nil
}

// startWithGracefulShutdown starts the servers and handles graceful shutdown
func (app *Application) startWithGracefulShutdown() {
	m := graceful.NewManager()

	addServerRunningJob(m, app.Server, app.Config, app.Logger)
	addServerShutdownJob(m, app.Server, "server", app.Config.ServerShutdownTimeout, app.Logger)
	if app.RedirectServer != nil {
		addRedirectServerRunningJob(m, app.RedirectServer, app.Logger)
		addServerShutdownJob(m, app.RedirectServer, "redirect server", app.Config.ServerShutdownTimeout, app.Logger)
	}
	addSessionSweepJob(m, app.Config, app.SessionStore, app.Logger)
	addSessionStoreShutdownJob(m, app.SessionStore, app.Logger)

	// Wait for graceful shutdown
	<-m.Done()
}
