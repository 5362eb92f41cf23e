package session

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-authgate/edgegate/internal/core"
)

const (
	checkValid   = "valid"
	checkInvalid = "invalid"
	checkMissing = "missing"
	checkError   = "error"
)

// FilterResult is the decision of the session filter for one request.
// The zero value means Continue.
type FilterResult struct {
	halt   bool
	status int
	body   string
}

// Continue lets the request proceed to the next pipeline stage.
func Continue() FilterResult {
	return FilterResult{}
}

// Halt ends the request with status and body.
func Halt(status int, body string) FilterResult {
	return FilterResult{halt: true, status: status, body: body}
}

// Halted reports whether the request must stop here.
func (r FilterResult) Halted() bool { return r.halt }

// Status is the response status of a halted request.
func (r FilterResult) Status() int { return r.status }

// Body is the response body of a halted request.
func (r FilterResult) Body() string { return r.body }

// Gate fronts a core.SessionStore with logging and metrics.
type Gate struct {
	store   core.SessionStore
	metrics core.Recorder
	logger  *slog.Logger
}

// NewGate creates a Gate. A nil logger means slog.Default().
func NewGate(store core.SessionStore, metrics core.Recorder, logger *slog.Logger) *Gate {
	if logger == nil {
		logger = slog.Default()
	}
	return &Gate{store: store, metrics: metrics, logger: logger}
}

// NewSession mints a fresh session.
func (g *Gate) NewSession(ctx context.Context) (string, error) {
	id, err := g.store.NewSession(ctx)
	if err != nil {
		g.logger.ErrorContext(ctx, "Failed to create session", "error", err)
		return "", err
	}
	g.metrics.RecordSessionCreated()
	return id, nil
}

// IsValid reports whether id names a live session. It never changes the store.
func (g *Gate) IsValid(ctx context.Context, id string) (bool, error) {
	ok, err := g.store.IsValid(ctx, id)
	switch {
	case err != nil:
		g.logger.ErrorContext(ctx, "Failed to check session", "error", err)
		g.metrics.RecordSessionCheck(checkError)
	case ok:
		g.metrics.RecordSessionCheck(checkValid)
	default:
		g.logger.DebugContext(ctx, "Invalid session")
		g.metrics.RecordSessionCheck(checkInvalid)
	}
	return ok, err
}

// RemoveSession retires id. Removing an unknown id succeeds.
func (g *Gate) RemoveSession(ctx context.Context, id string) error {
	if err := g.store.RemoveSession(ctx, id); err != nil {
		g.logger.ErrorContext(ctx, "Failed to remove session", "error", err)
		return err
	}
	return nil
}

// Health reports whether the backing store is reachable.
func (g *Gate) Health(ctx context.Context) error {
	return g.store.Health(ctx)
}

// Filter decides whether r carries a live session.
func (g *Gate) Filter(r *http.Request) FilterResult {
	ctx := r.Context()

	id, ok := ExtractSessionID(r)
	if !ok {
		g.logger.DebugContext(ctx, "Missing session header", "path", r.URL.Path)
		g.metrics.RecordSessionCheck(checkMissing)
		return Halt(http.StatusForbidden, InvalidSessionMessage)
	}

	valid, err := g.IsValid(ctx, id)
	if err != nil {
		return Halt(http.StatusInternalServerError, "")
	}
	if !valid {
		return Halt(http.StatusForbidden, InvalidSessionMessage)
	}
	return Continue()
}
