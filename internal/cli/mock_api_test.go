package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMockAPICmd_Defaults(t *testing.T) {
	t.Parallel()

	flags := &MockAPIFlags{}
	cmd := newMockAPICmd(flags, BuildInfo{})

	tests := []struct {
		flag     string
		defValue string
	}{
		{"host", "127.0.0.1"},
		{"port", "18765"},
		{"fail-first", "0"},
		{"fail-status", "503"},
		{"response-delay-ms", "0"},
	}

	for _, tc := range tests {
		f := cmd.Flags().Lookup(tc.flag)
		require.NotNil(t, f, "flag %s should exist", tc.flag)
		assert.Equal(t, tc.defValue, f.DefValue, "flag %s default", tc.flag)
	}

	require.NotNil(t, cmd.PersistentFlags().Lookup("verbose"))
	require.NotNil(t, cmd.PersistentFlags().Lookup("quiet"))
}

func TestNewMockAPICmd_Help(t *testing.T) {
	t.Parallel()

	flags := &MockAPIFlags{}
	cmd := newMockAPICmd(flags, BuildInfo{})
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"--help"})

	err := cmd.Execute()
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "chat completions")
	assert.Contains(t, output, "--fail-first")
	assert.Contains(t, output, "--fail-status")
	assert.Contains(t, output, "--response-delay-ms")
}

func TestNewMockAPICmd_Version(t *testing.T) {
	t.Parallel()

	flags := &MockAPIFlags{}
	cmd := newMockAPICmd(flags, BuildInfo{Version: "1.2.3", Commit: "abc123", Date: "2025-01-01"})
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"--version"})

	err := cmd.Execute()
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "1.2.3 (commit: abc123, built: 2025-01-01)")
}

func TestNewMockAPICmd_VerboseQuietMutuallyExclusive(t *testing.T) {
	t.Parallel()

	flags := &MockAPIFlags{}
	cmd := newMockAPICmd(flags, BuildInfo{})
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"--verbose", "--quiet"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitInvalidInput, ExitCodeForError(err))
}

func TestMockAPICmd_RunsAndShutsDown(t *testing.T) {
	t.Parallel()

	// A canceled context exercises the full start/shutdown path without
	// leaving a server running.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	flags := &MockAPIFlags{}
	cmd := newMockAPICmd(flags, BuildInfo{})
	cmd.SetArgs([]string{"--host", "127.0.0.1", "--port", "0"})

	err := cmd.ExecuteContext(ctx)
	require.NoError(t, err)
}

func TestMockAPICmd_ClampsNegativeFaultKnobs(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	flags := &MockAPIFlags{}
	cmd := newMockAPICmd(flags, BuildInfo{})
	cmd.SetArgs([]string{
		"--host", "127.0.0.1",
		"--port", "0",
		"--fail-first", "-5",
		"--response-delay-ms", "-100",
	})

	err := cmd.ExecuteContext(ctx)
	require.NoError(t, err)
	assert.Equal(t, -5, flags.FailFirst, "flag keeps the raw value; clamping happens at run time")
}
