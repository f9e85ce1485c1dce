package config

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aloundoye/paritygate/internal/constants"
	"github.com/aloundoye/paritygate/internal/errors"
)

// clearGateEnv blanks every gate environment variable so tests observe
// built-in defaults. Viper treats empty env values as unset.
func clearGateEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		constants.EnvRepository,
		constants.EnvToken,
		constants.EnvWorkflowFile,
		constants.EnvRequiredStreak,
		constants.EnvBranch,
		constants.EnvAPIBaseURL,
		constants.EnvHTTPTimeout,
		constants.EnvDownloadTimeout,
		constants.EnvLogFile,
	} {
		t.Setenv(name, "")
	}
}

func TestLoad_AppliesDefaults(t *testing.T) {
	clearGateEnv(t)
	t.Setenv(constants.EnvRepository, "deepseek-ai/parity-harness")
	t.Setenv(constants.EnvToken, "test-token")

	cfg, err := Load(context.Background())
	require.NoError(t, err, "Load should succeed with only required vars set")
	require.NotNil(t, cfg)

	assert.Equal(t, "deepseek-ai/parity-harness", cfg.Repository)
	assert.Equal(t, "test-token", cfg.Token)
	assert.Equal(t, constants.DefaultWorkflowFile, cfg.WorkflowFile, "should use default workflow file")
	assert.Equal(t, constants.DefaultRequiredStreak, cfg.RequiredStreak, "should use default streak")
	assert.Equal(t, constants.DefaultBranch, cfg.Branch, "should use default branch")
	assert.Equal(t, constants.GitHubAPIBaseURL, cfg.APIBaseURL, "should use default API base URL")
	assert.Equal(t, constants.DefaultHTTPTimeout, cfg.HTTPTimeout, "should use default HTTP timeout")
	assert.Equal(t, constants.DefaultDownloadTimeout, cfg.DownloadTimeout, "should use default download timeout")
	assert.Empty(t, cfg.LogFile, "file logging should be off by default")
}

func TestLoad_EnvVarsOverrideDefaults(t *testing.T) {
	clearGateEnv(t)
	t.Setenv(constants.EnvRepository, "deepseek-ai/parity-harness")
	t.Setenv(constants.EnvToken, "test-token")
	t.Setenv(constants.EnvWorkflowFile, "parity-weekly.yml")
	t.Setenv(constants.EnvRequiredStreak, "7")
	t.Setenv(constants.EnvBranch, "release/candidate")
	t.Setenv(constants.EnvAPIBaseURL, "https://github.example.com/api/v3")
	t.Setenv(constants.EnvHTTPTimeout, "45s")
	t.Setenv(constants.EnvDownloadTimeout, "2m")
	t.Setenv(constants.EnvLogFile, "/tmp/parity-gate.log")

	cfg, err := Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "parity-weekly.yml", cfg.WorkflowFile)
	assert.Equal(t, 7, cfg.RequiredStreak)
	assert.Equal(t, "release/candidate", cfg.Branch)
	assert.Equal(t, "https://github.example.com/api/v3", cfg.APIBaseURL)
	assert.Equal(t, 45*time.Second, cfg.HTTPTimeout, "duration strings should decode")
	assert.Equal(t, 2*time.Minute, cfg.DownloadTimeout, "duration strings should decode")
	assert.Equal(t, "/tmp/parity-gate.log", cfg.LogFile)
}

func TestLoad_MissingRepository(t *testing.T) {
	clearGateEnv(t)
	t.Setenv(constants.EnvToken, "test-token")

	cfg, err := Load(context.Background())
	require.Error(t, err, "Load should fail without a repository")
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, errors.ErrConfigMissing)
	assert.Contains(t, err.Error(), constants.EnvRepository, "error should name the variable to set")
}

func TestLoad_MissingToken(t *testing.T) {
	clearGateEnv(t)
	t.Setenv(constants.EnvRepository, "deepseek-ai/parity-harness")

	cfg, err := Load(context.Background())
	require.Error(t, err, "Load should fail without a token")
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, errors.ErrConfigMissing)
	assert.Contains(t, err.Error(), constants.EnvToken, "error should name the variable to set")
}

func TestLoad_InvalidStreak(t *testing.T) {
	clearGateEnv(t)
	t.Setenv(constants.EnvRepository, "deepseek-ai/parity-harness")
	t.Setenv(constants.EnvToken, "test-token")
	t.Setenv(constants.EnvRequiredStreak, "0")

	cfg, err := Load(context.Background())
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, errors.ErrConfigInvalid)
	assert.Contains(t, err.Error(), constants.EnvRequiredStreak)
}

func TestLoadForDisplay_SkipsRequiredValidation(t *testing.T) {
	clearGateEnv(t)

	cfg, err := LoadForDisplay(context.Background())
	require.NoError(t, err, "display load should succeed without required vars")
	require.NotNil(t, cfg)

	assert.Empty(t, cfg.Repository)
	assert.Empty(t, cfg.Token)
	assert.Equal(t, constants.DefaultWorkflowFile, cfg.WorkflowFile)
}
