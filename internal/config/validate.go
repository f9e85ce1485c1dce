package config

import (
	"github.com/aloundoye/paritygate/internal/constants"
	"github.com/aloundoye/paritygate/internal/errors"
)

// Validate checks the configuration for missing or invalid values.
// It returns an error describing the first validation failure found,
// naming the environment variable the operator must fix.
//
// Validation rules:
//   - Repository and Token must be set (the gate cannot query the API without them)
//   - Workflow file and branch must not be empty
//   - Required streak must be at least 1
//   - Timeouts must be positive
//
// Validation runs before any network call so misconfiguration fails fast.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.Wrap(errors.ErrConfigMissing, "config is nil")
	}

	if err := validateRequired(cfg); err != nil {
		return err
	}

	return validateGateSettings(cfg)
}

// validateRequired checks the values that have no usable default.
func validateRequired(cfg *Config) error {
	if cfg.Repository == "" {
		return errors.Wrapf(errors.ErrConfigMissing,
			"%s is not set", constants.EnvRepository)
	}

	if cfg.Token == "" {
		return errors.Wrapf(errors.ErrConfigMissing,
			"%s is not set", constants.EnvToken)
	}

	return nil
}

// validateGateSettings checks the gate tuning values.
func validateGateSettings(cfg *Config) error {
	if cfg.WorkflowFile == "" {
		return errors.Wrapf(errors.ErrConfigInvalid,
			"%s must not be empty", constants.EnvWorkflowFile)
	}

	if cfg.RequiredStreak < 1 {
		return errors.Wrapf(errors.ErrConfigInvalid,
			"%s must be at least 1, got %d", constants.EnvRequiredStreak, cfg.RequiredStreak)
	}

	if cfg.Branch == "" {
		return errors.Wrapf(errors.ErrConfigInvalid,
			"%s must not be empty", constants.EnvBranch)
	}

	if cfg.APIBaseURL == "" {
		return errors.Wrapf(errors.ErrConfigInvalid,
			"%s must not be empty", constants.EnvAPIBaseURL)
	}

	if cfg.HTTPTimeout <= 0 {
		return errors.Wrapf(errors.ErrConfigInvalid,
			"%s must be positive, got %s", constants.EnvHTTPTimeout, cfg.HTTPTimeout)
	}

	if cfg.DownloadTimeout <= 0 {
		return errors.Wrapf(errors.ErrConfigInvalid,
			"%s must be positive, got %s", constants.EnvDownloadTimeout, cfg.DownloadTimeout)
	}

	return nil
}
