package metrics

import "time"

// NoopMetrics is a no-operation implementation of Recorder
type NoopMetrics struct{}

var _ Recorder = (*NoopMetrics)(nil)

// NewNoopMetrics creates a new no-operation metrics recorder
func NewNoopMetrics() Recorder {
	return &NoopMetrics{}
}

func (n *NoopMetrics) RecordAuthAttempt(method, result string, duration time.Duration) {}
func (n *NoopMetrics) RecordLogin(success bool)                                        {}
func (n *NoopMetrics) RecordLogout()                                                   {}
func (n *NoopMetrics) RecordSessionCreated()                                           {}
func (n *NoopMetrics) RecordSessionCheck(result string)                                {}
func (n *NoopMetrics) RecordRedirect(result string)                                    {}
