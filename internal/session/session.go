// Package session issues, validates and revokes the opaque session
// identifiers that guard the application surface.
package session

import (
	"errors"
	"net/http"
	"time"
)

// HeaderName is the request header that carries the session identifier.
const HeaderName = "session"

// InvalidSessionMessage is the body sent when a request is refused by the gate.
const InvalidSessionMessage = "Invalid session"

// ErrStoreUnavailable indicates the session store could not be consulted.
var ErrStoreUnavailable = errors.New("session store unavailable")

// Record is the value kept per live session.
type Record struct {
	CreatedAt time.Time `json:"created_at"`
}

// ExtractSessionID returns the value of the session header. ok is false only
// when the header is absent; a present but empty header yields ("", true).
func ExtractSessionID(r *http.Request) (id string, ok bool) {
	values, ok := r.Header[http.CanonicalHeaderKey(HeaderName)]
	if !ok || len(values) == 0 {
		return "", false
	}
	return values[0], true
}
