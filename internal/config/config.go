package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Session store backends
const (
	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"
)

// Log formats
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// AdminIdentity is the statically configured administrator account.
// PasswordHash is the hex output of auth.HashPassword(password, Salt).
type AdminIdentity struct {
	Name         string
	Salt         string
	PasswordHash string
}

// LDAPConfig configures the directory-service fallback.
//
// Two bind styles are supported: when UserDNTemplate is set the user's DN is
// built from it directly (e.g. "uid=%s,ou=people,dc=example,dc=com");
// otherwise the service account BindDN searches BaseDN with UserFilter
// (e.g. "(uid=%s)") and the single match is bound with the user's password.
type LDAPConfig struct {
	URL                string
	UserDNTemplate     string
	BindDN             string
	BindPassword       string
	BaseDN             string
	UserFilter         string
	StartTLS           bool
	InsecureSkipVerify bool
	Timeout            time.Duration
}

type Config struct {
	// Listeners
	ServerAddr      string // HTTPS (or TLS-terminated) listener
	RedirectAddr    string // Plaintext listener answering every request with an HTTPS redirect
	RedirectEnabled bool
	HTTPSPort       int // Port substituted into redirects when the request named one
	TLSCertFile     string
	TLSKeyFile      string
	IsProduction    bool

	// Credentials; nil when not configured
	Admin *AdminIdentity
	LDAP  *LDAPConfig

	// Sessions
	SessionStore           string // "memory" or "redis"
	SessionTTL             time.Duration
	SessionCleanupInterval time.Duration

	// Redis (SESSION_STORE=redis)
	RedisAddr        string
	RedisPassword    string
	RedisDB          int
	RedisKeyPrefix   string
	CacheInitTimeout time.Duration

	// Protected upstream; empty serves the built-in /api group only
	UpstreamURL string

	// Metrics
	MetricsEnabled bool
	MetricsToken   string

	// Logging
	LogLevel  string
	LogFormat string

	// Timeouts
	ServerShutdownTimeout time.Duration
}

func Load() *Config {
	// Load .env file if exists (ignore error if not found)
	_ = godotenv.Load()

	return &Config{
		ServerAddr:      getEnv("SERVER_ADDR", ":8443"),
		RedirectAddr:    getEnv("REDIRECT_ADDR", ":8080"),
		RedirectEnabled: getEnvBool("REDIRECT_ENABLED", true),
		HTTPSPort:       getEnvInt("HTTPS_PORT", 443),
		TLSCertFile:     getEnv("TLS_CERT_FILE", ""),
		TLSKeyFile:      getEnv("TLS_KEY_FILE", ""),
		IsProduction:    getEnv("ENVIRONMENT", "development") == "production",

		Admin: loadAdmin(),
		LDAP:  loadLDAP(),

		SessionStore:           getEnv("SESSION_STORE", SessionStoreMemory),
		SessionTTL:             getEnvDuration("SESSION_TTL", 24*time.Hour),
		SessionCleanupInterval: getEnvDuration("SESSION_CLEANUP_INTERVAL", 10*time.Minute),

		RedisAddr:        getEnv("REDIS_ADDR", ""),
		RedisPassword:    getEnv("REDIS_PASSWORD", ""),
		RedisDB:          getEnvInt("REDIS_DB", 0),
		RedisKeyPrefix:   getEnv("REDIS_KEY_PREFIX", "edgegate:sessions:"),
		CacheInitTimeout: getEnvDuration("CACHE_INIT_TIMEOUT", 5*time.Second),

		UpstreamURL: getEnv("UPSTREAM_URL", ""),

		MetricsEnabled: getEnvBool("METRICS_ENABLED", false),
		MetricsToken:   getEnv("METRICS_TOKEN", ""),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", LogFormatText),

		ServerShutdownTimeout: getEnvDuration("SERVER_SHUTDOWN_TIMEOUT", 5*time.Second),
	}
}

// loadAdmin returns nil unless ADMIN_NAME is set.
func loadAdmin() *AdminIdentity {
	name := getEnv("ADMIN_NAME", "")
	if name == "" {
		return nil
	}
	return &AdminIdentity{
		Name:         name,
		Salt:         getEnv("ADMIN_SALT", ""),
		PasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
	}
}

// loadLDAP returns nil unless LDAP_URL is set.
func loadLDAP() *LDAPConfig {
	ldapURL := getEnv("LDAP_URL", "")
	if ldapURL == "" {
		return nil
	}
	return &LDAPConfig{
		URL:                ldapURL,
		UserDNTemplate:     getEnv("LDAP_USER_DN_TEMPLATE", ""),
		BindDN:             getEnv("LDAP_BIND_DN", ""),
		BindPassword:       getEnv("LDAP_BIND_PASSWORD", ""),
		BaseDN:             getEnv("LDAP_BASE_DN", ""),
		UserFilter:         getEnv("LDAP_USER_FILTER", "(uid=%s)"),
		StartTLS:           getEnvBool("LDAP_START_TLS", false),
		InsecureSkipVerify: getEnvBool("LDAP_INSECURE_SKIP_VERIFY", false),
		Timeout:            getEnvDuration("LDAP_TIMEOUT", 10*time.Second),
	}
}

// Validate checks the loaded configuration for contradictions
func (c *Config) Validate() error {
	if c.HTTPSPort < 1 || c.HTTPSPort > 65535 {
		return fmt.Errorf("invalid HTTPS_PORT value: %d (must be 1-65535)", c.HTTPSPort)
	}

	if (c.TLSCertFile == "") != (c.TLSKeyFile == "") {
		return errors.New("TLS_CERT_FILE and TLS_KEY_FILE must be set together")
	}

	if c.Admin != nil && c.Admin.PasswordHash == "" {
		return errors.New("ADMIN_PASSWORD_HASH is required when ADMIN_NAME is set")
	}

	if c.LDAP != nil {
		if err := c.LDAP.validate(); err != nil {
			return err
		}
	}

	switch c.SessionStore {
	case SessionStoreMemory:
	case SessionStoreRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("SESSION_STORE=%q requires REDIS_ADDR", c.SessionStore)
		}
	default:
		return fmt.Errorf(
			"invalid SESSION_STORE value: %q (must be %q or %q)",
			c.SessionStore, SessionStoreMemory, SessionStoreRedis,
		)
	}

	if c.UpstreamURL != "" {
		u, err := url.Parse(c.UpstreamURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("invalid UPSTREAM_URL value: %q (must be an absolute URL)", c.UpstreamURL)
		}
	}

	if c.SessionTTL <= 0 {
		return fmt.Errorf("invalid SESSION_TTL value: %s (must be positive)", c.SessionTTL)
	}

	switch c.LogFormat {
	case LogFormatText, LogFormatJSON:
	default:
		return fmt.Errorf("invalid LOG_FORMAT value: %q (must be %q or %q)",
			c.LogFormat, LogFormatText, LogFormatJSON)
	}

	return nil
}

func (l *LDAPConfig) validate() error {
	if l.UserDNTemplate != "" {
		if strings.Count(l.UserDNTemplate, "%s") != 1 {
			return errors.New("LDAP_USER_DN_TEMPLATE must contain exactly one %s")
		}
		return nil
	}
	if l.BaseDN == "" {
		return errors.New("LDAP_BASE_DN is required when LDAP_USER_DN_TEMPLATE is not set")
	}
	if strings.Count(l.UserFilter, "%s") != 1 {
		return errors.New("LDAP_USER_FILTER must contain exactly one %s")
	}
	return nil
}

// TLSEnabled reports whether the main listener terminates TLS itself.
func (c *Config) TLSEnabled() bool {
	return c.TLSCertFile != "" && c.TLSKeyFile != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1"
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var i int
		if _, err := fmt.Sscanf(value, "%d", &i); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
