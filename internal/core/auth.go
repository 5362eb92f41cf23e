package core

import "context"

// DirectoryAuthenticator is the interface that directory-service backends
// (e.g. LDAP) must implement.
//
// Authenticate returns (true, nil) when the directory accepts the credentials,
// (false, nil) when it rejects them, and a non-nil error when the directory
// could not be consulted.
type DirectoryAuthenticator interface {
	Authenticate(ctx context.Context, username, password string) (bool, error)
	Name() string
}
