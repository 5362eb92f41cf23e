package bootstrap

import (
	"errors"
	"fmt"

	"github.com/go-authgate/edgegate/internal/config"
)

// validateConfiguration validates all configuration settings
func validateConfiguration(cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if err := validateCredentialSources(cfg); err != nil {
		return fmt.Errorf("invalid authentication configuration: %w", err)
	}
	return nil
}

// validateCredentialSources refuses to start a gate nobody can log in to
func validateCredentialSources(cfg *config.Config) error {
	if cfg.Admin == nil && cfg.LDAP == nil {
		return errors.New("at least one of ADMIN_NAME or LDAP_URL must be set")
	}
	return nil
}
