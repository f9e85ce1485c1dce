package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMasked_ReplacesToken(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	masked := cfg.Masked()

	assert.Equal(t, "[REDACTED]", masked.Token)
	assert.Equal(t, "test-token", cfg.Token, "original config should be untouched")
	assert.Equal(t, cfg.Repository, masked.Repository, "non-sensitive fields should be copied")
}

func TestMasked_EmptyTokenStaysEmpty(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.Token = ""

	masked := cfg.Masked()
	assert.Empty(t, masked.Token, "an unset token should be visible as unset")
}
