package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-authgate/edgegate/internal/cache"
	"github.com/go-authgate/edgegate/internal/core"

	"github.com/google/uuid"
)

var _ core.SessionStore = (*CacheStore)(nil)

// expirer is implemented by backends that reclaim expired entries on demand.
type expirer interface {
	DeleteExpired() int
}

// CacheStore implements core.SessionStore on top of a core.Cache.
// A session lives until it is removed or its TTL elapses.
type CacheStore struct {
	cache core.Cache[Record]
	ttl   time.Duration
	newID func() string
	now   func() time.Time
}

// NewCacheStore creates a session store that keeps each session for ttl.
func NewCacheStore(c core.Cache[Record], ttl time.Duration) *CacheStore {
	return &CacheStore{
		cache: c,
		ttl:   ttl,
		newID: uuid.NewString,
		now:   time.Now,
	}
}

// NewSession mints a random identifier and registers it.
func (s *CacheStore) NewSession(ctx context.Context) (string, error) {
	id := s.newID()
	if err := s.cache.Set(ctx, id, Record{CreatedAt: s.now()}, s.ttl); err != nil {
		return "", fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return id, nil
}

// IsValid reports whether id names a live session.
func (s *CacheStore) IsValid(ctx context.Context, id string) (bool, error) {
	if id == "" {
		return false, nil
	}

	_, err := s.cache.Get(ctx, id)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, cache.ErrCacheMiss), errors.Is(err, cache.ErrInvalidValue):
		return false, nil
	default:
		return false, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
}

// RemoveSession retires id. Unknown ids are ignored.
func (s *CacheStore) RemoveSession(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	if err := s.cache.Delete(ctx, id); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

// Sweep reclaims expired sessions when the backend needs it and returns the
// number removed. Backends with native expiry report 0.
func (s *CacheStore) Sweep() int {
	if e, ok := s.cache.(expirer); ok {
		return e.DeleteExpired()
	}
	return 0
}

// NeedsSweep reports whether the backend relies on Sweep to reclaim memory.
func (s *CacheStore) NeedsSweep() bool {
	_, ok := s.cache.(expirer)
	return ok
}

func (s *CacheStore) Health(ctx context.Context) error {
	return s.cache.Health(ctx)
}

func (s *CacheStore) Close() error {
	return s.cache.Close()
}
