package auth

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/url"
	"time"

	"github.com/go-authgate/edgegate/internal/config"
	"github.com/go-authgate/edgegate/internal/core"

	"github.com/go-ldap/ldap/v3"
)

var _ core.DirectoryAuthenticator = (*LDAPProvider)(nil)

// ldapConn is the subset of *ldap.Conn used for authentication.
type ldapConn interface {
	Bind(username, password string) error
	Search(req *ldap.SearchRequest) (*ldap.SearchResult, error)
	StartTLS(cfg *tls.Config) error
	Close()
}

// connAdapter normalises Close across go-ldap releases.
type connAdapter struct {
	*ldap.Conn
}

func (c connAdapter) Close() {
	c.Conn.Close()
}

type dialFunc func(ctx context.Context) (ldapConn, error)

// LDAPProvider authenticates users with a simple bind against a directory.
type LDAPProvider struct {
	cfg       config.LDAPConfig
	tlsConfig *tls.Config
	dial      dialFunc
}

// NewLDAPProvider creates a new LDAP authentication provider
func NewLDAPProvider(cfg *config.LDAPConfig) *LDAPProvider {
	p := &LDAPProvider{cfg: *cfg}

	serverName := ""
	if u, err := url.Parse(cfg.URL); err == nil {
		serverName = u.Hostname()
	}
	// #nosec G402 -- InsecureSkipVerify is user-configurable for development/testing
	p.tlsConfig = &tls.Config{
		ServerName:         serverName,
		InsecureSkipVerify: cfg.InsecureSkipVerify,
		MinVersion:         tls.VersionTLS12,
	}
	p.dial = p.dialURL

	return p
}

func (p *LDAPProvider) dialURL(ctx context.Context) (ldapConn, error) {
	timeout := p.cfg.Timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); timeout <= 0 || remaining < timeout {
			timeout = remaining
		}
	}

	conn, err := ldap.DialURL(
		p.cfg.URL,
		ldap.DialWithDialer(&net.Dialer{Timeout: timeout}),
		ldap.DialWithTLSConfig(p.tlsConfig),
	)
	if err != nil {
		return nil, err
	}
	if timeout > 0 {
		conn.SetTimeout(timeout)
	}
	return connAdapter{conn}, nil
}

// Authenticate verifies credentials with the directory.
func (p *LDAPProvider) Authenticate(ctx context.Context, username, password string) (bool, error) {
	// An empty password turns a simple bind into an unauthenticated bind,
	// which most servers accept.
	if username == "" || password == "" {
		return false, nil
	}

	conn, err := p.dial(ctx)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrDirectoryUnavailable, err)
	}
	defer conn.Close()

	if p.cfg.StartTLS {
		if err := conn.StartTLS(p.tlsConfig); err != nil {
			return false, fmt.Errorf("%w: starttls: %v", ErrDirectoryUnavailable, err)
		}
	}

	userDN, found, err := p.resolveUserDN(conn, username)
	if err != nil || !found {
		return false, err
	}

	if err := conn.Bind(userDN, password); err != nil {
		if ldap.IsErrorWithCode(err, ldap.LDAPResultInvalidCredentials) {
			return false, nil
		}
		return false, fmt.Errorf("%w: bind: %v", ErrDirectoryUnavailable, err)
	}

	return true, nil
}

// resolveUserDN returns the DN to bind as. found is false when the search
// matched no entry or more than one.
func (p *LDAPProvider) resolveUserDN(conn ldapConn, username string) (dn string, found bool, err error) {
	if p.cfg.UserDNTemplate != "" {
		return fmt.Sprintf(p.cfg.UserDNTemplate, ldap.EscapeDN(username)), true, nil
	}

	if p.cfg.BindDN != "" {
		if err := conn.Bind(p.cfg.BindDN, p.cfg.BindPassword); err != nil {
			return "", false, fmt.Errorf("%w: service bind: %v", ErrDirectoryLookup, err)
		}
	}

	req := ldap.NewSearchRequest(
		p.cfg.BaseDN,
		ldap.ScopeWholeSubtree,
		ldap.NeverDerefAliases,
		2, // more than one match is ambiguous
		int(p.cfg.Timeout.Seconds()),
		false,
		fmt.Sprintf(p.cfg.UserFilter, ldap.EscapeFilter(username)),
		[]string{"dn"},
		nil,
	)

	result, err := conn.Search(req)
	if err != nil {
		if ldap.IsErrorWithCode(err, ldap.LDAPResultSizeLimitExceeded) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("%w: %v", ErrDirectoryLookup, err)
	}
	if len(result.Entries) != 1 {
		return "", false, nil
	}

	return result.Entries[0].DN, true, nil
}

// Name returns provider name for logging
func (p *LDAPProvider) Name() string {
	return "ldap"
}
