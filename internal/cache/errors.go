package cache

import "errors"

var (
	// ErrCacheMiss indicates the key was never stored, was deleted, or has expired
	ErrCacheMiss = errors.New("cache: key not found")

	// ErrCacheUnavailable indicates the backend could not be reached
	ErrCacheUnavailable = errors.New("cache: backend unavailable")

	// ErrInvalidValue indicates a stored value could not be encoded or decoded
	ErrInvalidValue = errors.New("cache: invalid value")
)
