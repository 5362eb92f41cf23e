package auth

import "errors"

var (
	// ErrDirectoryUnavailable indicates the directory service could not be
	// reached or answered with a protocol-level failure.
	ErrDirectoryUnavailable = errors.New("directory service unavailable")

	// ErrDirectoryLookup indicates the service-account search for the user failed.
	ErrDirectoryLookup = errors.New("directory user lookup failed")
)
