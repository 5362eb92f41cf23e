package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	resultSuccess = "success"
	resultFailure = "failure"
)

// HTTPMetricsMiddleware creates a Gin middleware that records HTTP metrics
func HTTPMetricsMiddleware(m Recorder) gin.HandlerFunc {
	metrics, ok := m.(*Metrics)
	if !ok {
		// Noop or unknown implementation
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return func(c *gin.Context) {
		// Skip metrics endpoint to avoid self-recording
		if c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}

		start := time.Now()

		metrics.HTTPRequestsInFlight.Inc()
		defer metrics.HTTPRequestsInFlight.Dec()

		c.Next()

		duration := time.Since(start).Seconds()
		method := c.Request.Method
		path := normalizePath(c.FullPath()) // Use route pattern, not actual path
		status := strconv.Itoa(c.Writer.Status())

		metrics.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
	}
}

// normalizePath returns the route pattern, or "unmatched" for requests that
// hit NoRoute (every request on the redirect listener, proxied paths).
func normalizePath(fullPath string) string {
	if fullPath == "" {
		return "unmatched"
	}
	return fullPath
}

// RecordAuthAttempt records one credential check against a single source
func (m *Metrics) RecordAuthAttempt(method, result string, duration time.Duration) {
	m.AuthAttemptsTotal.WithLabelValues(method, result).Inc()
	m.AuthLoginDuration.WithLabelValues(method).Observe(duration.Seconds())
}

// RecordLogin records the final decision of a login request
func (m *Metrics) RecordLogin(success bool) {
	result := resultSuccess
	if !success {
		result = resultFailure
	}
	m.AuthLoginTotal.WithLabelValues(result).Inc()
}

// RecordLogout records logout
func (m *Metrics) RecordLogout() {
	m.AuthLogoutTotal.Inc()
}

// RecordSessionCreated records a minted session
func (m *Metrics) RecordSessionCreated() {
	m.SessionsCreatedTotal.Inc()
}

// RecordSessionCheck records a session validation result
func (m *Metrics) RecordSessionCheck(result string) {
	m.SessionChecksTotal.WithLabelValues(result).Inc()
}

// RecordRedirect records a redirect listener response
func (m *Metrics) RecordRedirect(result string) {
	m.RedirectsTotal.WithLabelValues(result).Inc()
}
