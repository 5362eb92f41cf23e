package core

import "time"

// Recorder defines the interface for recording application metrics.
// Implementations include Metrics (Prometheus-based) and NoopMetrics (no-op).
type Recorder interface {
	// Authentication
	RecordAuthAttempt(method, result string, duration time.Duration)
	RecordLogin(success bool)
	RecordLogout()

	// Session Management
	RecordSessionCreated()
	RecordSessionCheck(result string)

	// Scheme upgrade
	RecordRedirect(result string)
}
