package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-authgate/edgegate/internal/config"
	"github.com/go-authgate/edgegate/internal/session"

	"github.com/appleboy/graceful"
)

// createHTTPServer creates an HTTP server instance
func createHTTPServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}

// addServerRunningJob adds the main server running job
func addServerRunningJob(
	m *graceful.Manager,
	srv *http.Server,
	cfg *config.Config,
	logger *slog.Logger,
) {
	listen := srv.ListenAndServe
	if cfg.TLSEnabled() {
		listen = func() error {
			return srv.ListenAndServeTLS(cfg.TLSCertFile, cfg.TLSKeyFile)
		}
	}
	addListenerJob(m, "server", listen, logger)
}

// addRedirectServerRunningJob adds the plaintext redirect server running job
func addRedirectServerRunningJob(m *graceful.Manager, srv *http.Server, logger *slog.Logger) {
	addListenerJob(m, "redirect server", srv.ListenAndServe, logger)
}

func addListenerJob(m *graceful.Manager, name string, listen func() error, logger *slog.Logger) {
	m.AddRunningJob(func(ctx context.Context) error {
		go func() {
			if err := listen(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("Failed to start "+name, "error", err)
				os.Exit(1)
			}
		}()
		<-ctx.Done()
		return nil
	})
}

// addServerShutdownJob adds a server shutdown handler
func addServerShutdownJob(
	m *graceful.Manager,
	srv *http.Server,
	name string,
	timeout time.Duration,
	logger *slog.Logger,
) {
	m.AddShutdownJob(func() error {
		logger.Info("Shutting down " + name + "...")
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Error(name+" forced to shutdown", "error", err)
			return err
		}

		logger.Info(name + " exited")
		return nil
	})
}

// addSessionStoreShutdownJob closes the session store on shutdown
func addSessionStoreShutdownJob(m *graceful.Manager, store *session.CacheStore, logger *slog.Logger) {
	m.AddShutdownJob(func() error {
		if err := store.Close(); err != nil {
			logger.Error("Error closing session store", "error", err)
			return err
		}
		logger.Info("Session store closed")
		return nil
	})
}

// addSessionSweepJob periodically reclaims expired sessions for backends
// without native expiry
func addSessionSweepJob(
	m *graceful.Manager,
	cfg *config.Config,
	store *session.CacheStore,
	logger *slog.Logger,
) {
	if !store.NeedsSweep() || cfg.SessionCleanupInterval <= 0 {
		return
	}

	m.AddRunningJob(func(ctx context.Context) error {
		ticker := time.NewTicker(cfg.SessionCleanupInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if removed := store.Sweep(); removed > 0 {
					logger.Debug("Expired sessions removed", "count", removed)
				}
			case <-ctx.Done():
				return nil
			}
		}
	})
}
