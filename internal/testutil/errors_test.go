package testutil

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockErrors_Messages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "ErrMockNetwork", err: ErrMockNetwork, want: "network error"},
		{name: "ErrMockAPIError", err: ErrMockAPIError, want: "API error"},
		{name: "ErrMockDownloadFailed", err: ErrMockDownloadFailed, want: "download failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Error(t, tt.err)
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestMockErrors_WorkAsSentinels(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("listing runs: %w", ErrMockNetwork)
	assert.ErrorIs(t, wrapped, ErrMockNetwork)

	// A same-text error built independently must not match.
	lookalike := errors.New("network error") //nolint:err113 // intentional non-sentinel for the test
	assert.NotErrorIs(t, lookalike, ErrMockNetwork)
}
