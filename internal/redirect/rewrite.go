// Package redirect upgrades plaintext requests to the HTTPS listener.
package redirect

import (
	"errors"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/net/http/httpguts"
)

var (
	// ErrInvalidLocation indicates the rewritten URL is not a legal header value.
	ErrInvalidLocation = errors.New("redirect location is not a valid header value")

	// ErrMissingHost indicates neither the request target nor the Host header named a host.
	ErrMissingHost = errors.New("redirect location has no host")
)

// RewriteURL builds the https:// equivalent of target.
//
// The host is taken from the target's authority when it has one, otherwise
// from hostHeader. If the chosen source names a port, the port is replaced
// by httpsPort; if it does not, no port is emitted. Path and query are
// copied without decoding or re-encoding.
func RewriteURL(target *url.URL, hostHeader string, httpsPort int) string {
	source := target.Host
	if source == "" {
		source = hostHeader
	}
	host, hasPort := splitHostPort(source)

	var b strings.Builder
	b.WriteString("https://")
	b.WriteString(host)
	if hasPort {
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(httpsPort))
	}
	b.WriteString(requestPath(target))
	if target.RawQuery != "" || target.ForceQuery {
		b.WriteByte('?')
		b.WriteString(target.RawQuery)
	}
	return b.String()
}

// requestPath returns the path exactly as it appeared on the request line.
// net/url keeps the original in RawPath whenever it differs from the default
// escaping of Path, so EscapedPath is only consulted when they agree. An
// empty path is written as "/".
func requestPath(target *url.URL) string {
	path := target.RawPath
	if path == "" {
		path = target.EscapedPath()
	}
	if path == "" {
		return "/"
	}
	return path
}

// splitHostPort separates an optional port from hostport. Brackets around
// IPv6 literals are kept, and an empty port after ':' counts as no port.
func splitHostPort(hostport string) (host string, hasPort bool) {
	colon := strings.LastIndexByte(hostport, ':')
	if colon == -1 || strings.LastIndexByte(hostport, ']') > colon {
		return hostport, false
	}
	return hostport[:colon], colon+1 < len(hostport)
}

// ValidateLocation checks that location can be sent as a Location header.
func ValidateLocation(location string) error {
	if !httpguts.ValidHeaderFieldValue(location) {
		return ErrInvalidLocation
	}
	u, err := url.Parse(location)
	if err != nil {
		return errors.Join(ErrInvalidLocation, err)
	}
	if u.Host == "" {
		return ErrMissingHost
	}
	return nil
}
