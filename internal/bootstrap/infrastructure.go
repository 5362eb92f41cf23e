package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-authgate/edgegate/internal/auth"
	"github.com/go-authgate/edgegate/internal/cache"
	"github.com/go-authgate/edgegate/internal/config"
	"github.com/go-authgate/edgegate/internal/core"
	"github.com/go-authgate/edgegate/internal/metrics"
	"github.com/go-authgate/edgegate/internal/session"
)

// initializeMetrics initializes Prometheus metrics
func initializeMetrics(cfg *config.Config, logger *slog.Logger) metrics.Recorder {
	recorder := metrics.Init(cfg.MetricsEnabled)
	if cfg.MetricsEnabled {
		logger.Info("Prometheus metrics initialized")
	} else {
		logger.Info("Metrics disabled (using noop implementation)")
	}
	return recorder
}

// initializeSessionStore builds the session store on the configured cache backend
func initializeSessionStore(cfg *config.Config, logger *slog.Logger) (*session.CacheStore, error) {
	var backend core.Cache[session.Record]

	switch cfg.SessionStore {
	case config.SessionStoreRedis:
		ctx, cancel := context.WithTimeout(context.Background(), cfg.CacheInitTimeout)
		defer cancel()

		redisCache, err := cache.NewRueidisCache[session.Record](
			ctx,
			cfg.RedisAddr,
			cfg.RedisPassword,
			cfg.RedisDB,
			cfg.RedisKeyPrefix,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize redis session store: %w", err)
		}
		backend = redisCache
		logger.Info("Session store: redis", "addr", cfg.RedisAddr, "db", cfg.RedisDB)

	default: // memory
		backend = cache.NewMemoryCache[session.Record]()
		logger.Info("Session store: memory (single instance only)")
	}

	return session.NewCacheStore(backend, cfg.SessionTTL), nil
}

// initializeDirectory returns the LDAP provider, or nil when LDAP is not configured
func initializeDirectory(cfg *config.Config, logger *slog.Logger) core.DirectoryAuthenticator {
	if cfg.LDAP == nil {
		logger.Info("Directory authentication disabled")
		return nil
	}

	mode := "search"
	if cfg.LDAP.UserDNTemplate != "" {
		mode = "template"
	}
	logger.Info("Directory authentication enabled",
		"provider", "ldap", "url", cfg.LDAP.URL, "bind_mode", mode, "start_tls", cfg.LDAP.StartTLS)

	return auth.NewLDAPProvider(cfg.LDAP)
}
