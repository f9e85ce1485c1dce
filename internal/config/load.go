package config

import (
	"context"

	"github.com/go-viper/mapstructure/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/aloundoye/paritygate/internal/constants"
	"github.com/aloundoye/paritygate/internal/errors"
)

// newViperInstance creates a new Viper instance with the gate's defaults
// and environment variable bindings.
func newViperInstance() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	bindEnv(v)
	return v
}

// Load reads configuration from environment variables over built-in defaults
// and validates the result.
//
// The function returns an error only for actual configuration problems;
// absent optional variables simply leave the defaults in place.
//
// The context parameter carries the logger; config reads are environment
// lookups and need no cancellation.
func Load(ctx context.Context) (*Config, error) {
	cfg, err := loadUnvalidated(ctx)
	if err != nil {
		return nil, err
	}

	if err := Validate(cfg); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}

	return cfg, nil
}

// LoadForDisplay reads configuration without validating required values.
// Used by "config show" so operators can inspect the effective config
// before GITHUB_REPOSITORY and GITHUB_TOKEN are set.
func LoadForDisplay(ctx context.Context) (*Config, error) {
	return loadUnvalidated(ctx)
}

// loadUnvalidated unmarshals the viper state into a Config struct.
func loadUnvalidated(ctx context.Context) (*Config, error) {
	v := newViperInstance()

	var cfg Config
	if err := v.Unmarshal(&cfg, viperDecoderOption()); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}

	// Log loaded configuration for debugging. Token is never logged.
	logger := zerolog.Ctx(ctx).With().Str("component", "config").Logger()
	logger.Debug().
		Str("repository", cfg.Repository).
		Str("workflow_file", cfg.WorkflowFile).
		Int("required_streak", cfg.RequiredStreak).
		Str("branch", cfg.Branch).
		Str("api_base_url", cfg.APIBaseURL).
		Dur("http_timeout", cfg.HTTPTimeout).
		Dur("download_timeout", cfg.DownloadTimeout).
		Msg("configuration loaded and unmarshaled")

	return &cfg, nil
}

// setDefaults configures all default values on the Viper instance.
// IMPORTANT: Keys must match the mapstructure tag names exactly for proper mapping.
func setDefaults(v *viper.Viper) {
	v.SetDefault("repository", "")
	v.SetDefault("token", "")
	v.SetDefault("workflow_file", constants.DefaultWorkflowFile)
	v.SetDefault("required_streak", constants.DefaultRequiredStreak)
	v.SetDefault("branch", constants.DefaultBranch)
	v.SetDefault("api_base_url", constants.GitHubAPIBaseURL)
	v.SetDefault("http_timeout", constants.DefaultHTTPTimeout)
	v.SetDefault("download_timeout", constants.DefaultDownloadTimeout)
	v.SetDefault("log_file", "")
}

// bindEnv binds each key to its operator-facing environment variable.
// GITHUB_REPOSITORY and GITHUB_TOKEN come straight from the Actions job
// environment; the PARITY_* names are gate-specific, so the keys do not
// share a single prefix and are bound individually.
func bindEnv(v *viper.Viper) {
	_ = v.BindEnv("repository", constants.EnvRepository)
	_ = v.BindEnv("token", constants.EnvToken)
	_ = v.BindEnv("workflow_file", constants.EnvWorkflowFile)
	_ = v.BindEnv("required_streak", constants.EnvRequiredStreak)
	_ = v.BindEnv("branch", constants.EnvBranch)
	_ = v.BindEnv("api_base_url", constants.EnvAPIBaseURL)
	_ = v.BindEnv("http_timeout", constants.EnvHTTPTimeout)
	_ = v.BindEnv("download_timeout", constants.EnvDownloadTimeout)
	_ = v.BindEnv("log_file", constants.EnvLogFile)
}

// viperDecoderOption returns the decoder options for Viper unmarshal.
// This configures mapstructure to handle time.Duration conversion from strings.
func viperDecoderOption() viper.DecoderConfigOption {
	return viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
		),
	)
}
