package auth

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-authgate/edgegate/internal/config"
	"github.com/go-authgate/edgegate/internal/core"
)

const (
	methodAdmin = "admin"

	resultSuccess = "success"
	resultFailure = "failure"
	resultError   = "error"
)

// Authenticator arbitrates between the configured administrator identity and
// the directory-service fallback.
type Authenticator struct {
	admin     *config.AdminIdentity
	directory core.DirectoryAuthenticator
	metrics   core.Recorder
	logger    *slog.Logger
}

// NewAuthenticator creates an Authenticator. admin and directory may be nil
// when not configured.
func NewAuthenticator(
	admin *config.AdminIdentity,
	directory core.DirectoryAuthenticator,
	metrics core.Recorder,
	logger *slog.Logger,
) *Authenticator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Authenticator{
		admin:     admin,
		directory: directory,
		metrics:   metrics,
		logger:    logger,
	}
}

// Authenticate decides whether username/password may log in.
//
// A username equal to the admin name is decided by the admin hash alone and
// the directory is never consulted for it. Any other username falls through
// to the directory. Directory rejections and faults both leave the outcome
// Unknown; nothing is retried.
func (a *Authenticator) Authenticate(ctx context.Context, username, password string) Outcome {
	outcome := OutcomeUnknown

	if a.admin != nil && username == a.admin.Name {
		start := time.Now()
		if VerifyPassword(password, a.admin.Salt, a.admin.PasswordHash) {
			a.logger.InfoContext(ctx, "Admin auth success")
			a.metrics.RecordAuthAttempt(methodAdmin, resultSuccess, time.Since(start))
			outcome = OutcomeAuthenticated
		} else {
			a.logger.WarnContext(ctx, "Admin auth failure")
			a.metrics.RecordAuthAttempt(methodAdmin, resultFailure, time.Since(start))
			outcome = OutcomeRejected
		}
	}

	if outcome == OutcomeUnknown && a.directory != nil {
		outcome = a.authenticateDirectory(ctx, username, password)
	}

	return outcome
}

func (a *Authenticator) authenticateDirectory(ctx context.Context, username, password string) Outcome {
	method := a.directory.Name()
	start := time.Now()

	ok, err := a.directory.Authenticate(ctx, username, password)
	duration := time.Since(start)

	switch {
	case err != nil:
		a.logger.ErrorContext(ctx, "Error authenticating to directory",
			"provider", method, "username", username, "error", err)
		a.metrics.RecordAuthAttempt(method, resultError, duration)
		return OutcomeUnknown
	case !ok:
		a.logger.WarnContext(ctx, "Directory auth failure",
			"provider", method, "username", username)
		a.metrics.RecordAuthAttempt(method, resultFailure, duration)
		return OutcomeUnknown
	default:
		a.logger.InfoContext(ctx, "Directory auth success",
			"provider", method, "username", username)
		a.metrics.RecordAuthAttempt(method, resultSuccess, duration)
		return OutcomeAuthenticated
	}
}
