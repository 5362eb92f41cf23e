package core

import "context"

// SessionStore owns all session state. Implementations must be safe for
// concurrent use: a session is visible to IsValid once NewSession returns and
// invisible once RemoveSession returns.
type SessionStore interface {
	// NewSession mints and registers a fresh session identifier.
	NewSession(ctx context.Context) (string, error)

	// IsValid reports whether id names a live session. It never mutates the store.
	IsValid(ctx context.Context, id string) (bool, error)

	// RemoveSession retires id. Removing an unknown id is not an error.
	RemoveSession(ctx context.Context, id string) error

	// Health checks if the backing store is reachable
	Health(ctx context.Context) error

	// Close releases the backing store
	Close() error
}
