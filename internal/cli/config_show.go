// Package cli provides the command-line interface for the parity gate.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/aloundoye/paritygate/internal/config"
	"github.com/aloundoye/paritygate/internal/constants"
	"github.com/aloundoye/paritygate/internal/ctxutil"
	"github.com/aloundoye/paritygate/internal/errors"
	"github.com/aloundoye/paritygate/internal/tui"
)

// AddConfigCommand adds the config command to the root command.
func AddConfigCommand(rootCmd *cobra.Command) {
	rootCmd.AddCommand(newConfigCmd())
}

// newConfigCmd creates the 'config' parent command.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect parity gate configuration",
		Long: `Inspect the parity gate configuration.

The gate is configured entirely through environment variables; there are no
configuration files. Use 'config show' to see the effective values and which
ones were overridden.

Example:
  paritygate config show           # Effective config as YAML with sources
  paritygate config show -o json   # Same, as JSON`,
	}

	AddConfigShowCommand(cmd)

	return cmd
}

// ConfigShowFlags holds flags specific to the config show command.
type ConfigShowFlags struct {
	// OutputFormat specifies the output format (yaml or json).
	OutputFormat string
}

// newConfigShowCmd creates the 'config show' subcommand for displaying configuration.
func newConfigShowCmd(flags *ConfigShowFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Display effective configuration",
		Long: `Display the effective parity gate configuration with source annotations.

Each value is labeled with where it came from:
  - default: Built-in default value
  - env:     Environment variable override

The GitHub token is masked in the output. Validation is not applied, so the
command works before GITHUB_REPOSITORY and GITHUB_TOKEN are set.

Examples:
  paritygate config show                 # YAML format
  paritygate config show --output json   # JSON format`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigShow(cmd.Context(), cmd.OutOrStdout(), flags)
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringVarP(&flags.OutputFormat, "output", "o", "yaml", "output format (yaml or json)")

	return cmd
}

// AddConfigShowCommand adds the show subcommand to the config command.
func AddConfigShowCommand(configCmd *cobra.Command) {
	flags := &ConfigShowFlags{}
	configCmd.AddCommand(newConfigShowCmd(flags))
}

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	// SourceDefault indicates the value is a built-in default.
	SourceDefault ConfigSource = "default"
	// SourceEnv indicates the value came from an environment variable.
	SourceEnv ConfigSource = "env"
)

// ConfigValueWithSource represents a configuration value with its source.
type ConfigValueWithSource struct {
	Value  any          `json:"value" yaml:"value"`
	Source ConfigSource `json:"source" yaml:"source"`
}

// AnnotatedConfig is the effective configuration with source annotations,
// in the order operators expect to read it.
type AnnotatedConfig struct {
	Repository      ConfigValueWithSource `json:"repository" yaml:"repository"`
	Token           ConfigValueWithSource `json:"token" yaml:"token"`
	WorkflowFile    ConfigValueWithSource `json:"workflow_file" yaml:"workflow_file"`
	RequiredStreak  ConfigValueWithSource `json:"required_streak" yaml:"required_streak"`
	Branch          ConfigValueWithSource `json:"branch" yaml:"branch"`
	APIBaseURL      ConfigValueWithSource `json:"api_base_url" yaml:"api_base_url"`
	HTTPTimeout     ConfigValueWithSource `json:"http_timeout" yaml:"http_timeout"`
	DownloadTimeout ConfigValueWithSource `json:"download_timeout" yaml:"download_timeout"`
	LogFile         ConfigValueWithSource `json:"log_file" yaml:"log_file"`
}

// runConfigShow executes the config show command.
func runConfigShow(ctx context.Context, w io.Writer, flags *ConfigShowFlags) error {
	if err := ctxutil.Canceled(ctx); err != nil {
		return err
	}

	// Required values are not enforced here: operators use this command to
	// see what is missing.
	cfg, err := config.LoadForDisplay(ctx)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	annotated := buildAnnotatedConfig(cfg.Masked())

	switch strings.ToLower(flags.OutputFormat) {
	case "json":
		return outputConfigJSON(w, annotated)
	case "yaml":
		return outputConfigYAML(w, annotated)
	default:
		return fmt.Errorf("%w: %s (use yaml or json)", errors.ErrUnsupportedOutputFormat, flags.OutputFormat)
	}
}

// buildAnnotatedConfig pairs each effective value with its source. The gate
// has exactly two sources: a built-in default or the named environment
// variable, so detection is a plain env lookup.
func buildAnnotatedConfig(cfg *config.Config) *AnnotatedConfig {
	return &AnnotatedConfig{
		Repository:      annotate(cfg.Repository, constants.EnvRepository),
		Token:           annotate(cfg.Token, constants.EnvToken),
		WorkflowFile:    annotate(cfg.WorkflowFile, constants.EnvWorkflowFile),
		RequiredStreak:  annotate(cfg.RequiredStreak, constants.EnvRequiredStreak),
		Branch:          annotate(cfg.Branch, constants.EnvBranch),
		APIBaseURL:      annotate(cfg.APIBaseURL, constants.EnvAPIBaseURL),
		HTTPTimeout:     annotate(cfg.HTTPTimeout.String(), constants.EnvHTTPTimeout),
		DownloadTimeout: annotate(cfg.DownloadTimeout.String(), constants.EnvDownloadTimeout),
		LogFile:         annotate(cfg.LogFile, constants.EnvLogFile),
	}
}

// annotate labels a value with env or default depending on whether its
// environment variable is set.
func annotate(value any, envName string) ConfigValueWithSource {
	if os.Getenv(envName) != "" {
		return ConfigValueWithSource{Value: value, Source: SourceEnv}
	}
	return ConfigValueWithSource{Value: value, Source: SourceDefault}
}

// outputConfigJSON outputs the annotated configuration in JSON format.
func outputConfigJSON(w io.Writer, annotated *AnnotatedConfig) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(annotated)
}

// configShowStyles contains styling for the config show header comments.
type configShowStyles struct {
	header lipgloss.Style
	dim    lipgloss.Style
}

// newConfigShowStyles creates styles for config show command output.
func newConfigShowStyles() *configShowStyles {
	return &configShowStyles{
		header: lipgloss.NewStyle().
			Bold(true).
			Foreground(tui.ColorPrimary),
		dim: lipgloss.NewStyle().
			Foreground(tui.ColorMuted),
	}
}

// outputConfigYAML outputs the annotated configuration as a YAML document.
// The leading lines are YAML comments, so the output stays parseable when
// piped into other tooling.
func outputConfigYAML(w io.Writer, annotated *AnnotatedConfig) error {
	styles := newConfigShowStyles()

	_, _ = fmt.Fprintln(w, styles.header.Render("# Effective parity gate configuration"))
	_, _ = fmt.Fprintln(w, styles.dim.Render("# Sources: env (override) or default (built-in)"))

	data, err := yaml.Marshal(annotated)
	if err != nil {
		return fmt.Errorf("failed to marshal configuration: %w", err)
	}

	_, err = w.Write(data)
	return err
}
