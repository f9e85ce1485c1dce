// Package config provides configuration management for the parity gate.
//
// The gate runs inside CI jobs, so configuration is environment-first:
// values are read from environment variables over built-in defaults.
// There are no config files and the gate never writes any.
//
// Sources in precedence order (highest first):
//  1. Environment variables (GITHUB_REPOSITORY, GITHUB_TOKEN, PARITY_*)
//  2. Built-in defaults
//
// IMPORTANT: This package may import internal/constants and internal/errors,
// but MUST NOT import internal/github or other internal packages.
package config

import "time"

// Config is the root configuration structure for the parity gate.
type Config struct {
	// Repository is the "owner/name" slug of the repository whose nightly
	// workflow runs are evaluated. Required; no default.
	Repository string `yaml:"repository" mapstructure:"repository"`

	// Token is the GitHub API bearer token used for all requests,
	// including artifact downloads. Required; no default.
	Token string `yaml:"token" mapstructure:"token"`

	// WorkflowFile is the file name of the nightly workflow whose runs
	// are evaluated (e.g. "parity-nightly.yml").
	// Default: "parity-nightly.yml"
	WorkflowFile string `yaml:"workflow_file" mapstructure:"workflow_file"`

	// RequiredStreak is how many consecutive most-recent completed runs
	// must succeed with passing reports for the gate to pass.
	// Default: 3, must be at least 1
	RequiredStreak int `yaml:"required_streak" mapstructure:"required_streak"`

	// Branch is the branch whose workflow runs are evaluated.
	// Default: "main"
	Branch string `yaml:"branch" mapstructure:"branch"`

	// APIBaseURL is the GitHub REST API base URL. Override for GitHub
	// Enterprise or for tests against a local server.
	// Default: "https://api.github.com"
	APIBaseURL string `yaml:"api_base_url" mapstructure:"api_base_url"`

	// HTTPTimeout bounds each JSON API request.
	// Default: 30s
	HTTPTimeout time.Duration `yaml:"http_timeout" mapstructure:"http_timeout"`

	// DownloadTimeout bounds each artifact archive download. Archives can
	// be large, so this is longer than HTTPTimeout.
	// Default: 60s
	DownloadTimeout time.Duration `yaml:"download_timeout" mapstructure:"download_timeout"`

	// LogFile enables a rotating file log when non-empty. Empty (the
	// default) keeps the gate write-free.
	LogFile string `yaml:"log_file" mapstructure:"log_file"`
}

// Masked returns a copy of the config with the token replaced by a
// placeholder, safe for display and logging. An unset token stays empty
// so operators can see it is missing.
func (c *Config) Masked() *Config {
	masked := *c
	if masked.Token != "" {
		masked.Token = "[REDACTED]"
	}
	return &masked
}
