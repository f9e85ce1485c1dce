// Package cli provides the command-line interface for the parity gate.
package cli

import (
	"context"
	"net"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/aloundoye/paritygate/internal/constants"
	"github.com/aloundoye/paritygate/internal/mockapi"
)

// MockAPIFlags holds the mock server's command-line settings.
type MockAPIFlags struct {
	// Host is the interface to bind.
	Host string
	// Port is the TCP port to bind.
	Port int
	// FailFirst is how many initial requests should fail.
	FailFirst int
	// FailStatus is the HTTP status used for injected failures.
	FailStatus int
	// ResponseDelayMS delays every response by this many milliseconds.
	ResponseDelayMS int
	// Verbose enables debug-level logging.
	Verbose bool
	// Quiet suppresses non-essential output.
	Quiet bool
}

// newMockAPICmd creates the root command for the mock-deepseek-api binary.
func newMockAPICmd(flags *MockAPIFlags, info BuildInfo) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mock-deepseek-api",
		Short: "Run a local DeepSeek-compatible mock API server",
		Long: `Run a local DeepSeek-compatible mock chat completions server.

The server answers POST /chat/completions with canned content and is used by
parity smoke and reliability tests. Fault injection is available through
flags: --fail-first makes the first N requests fail with --fail-status, and
--response-delay-ms adds artificial latency to every response.

The server runs until interrupted (SIGINT/SIGTERM) and shuts down
gracefully.

Examples:
  mock-deepseek-api
  mock-deepseek-api --port 19000 --fail-first 2 --fail-status 429
  mock-deepseek-api --response-delay-ms 500`,
		Version: formatVersion(info),
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			globalLoggerMu.Lock()
			globalLogger = InitLogger(flags.Verbose, flags.Quiet)
			globalLoggerMu.Unlock()

			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMockAPI(cmd.Context(), flags)
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringVar(&flags.Host, "host", constants.MockDefaultHost, "interface to bind")
	cmd.Flags().IntVar(&flags.Port, "port", constants.MockDefaultPort, "TCP port to bind")
	cmd.Flags().IntVar(&flags.FailFirst, "fail-first", 0, "fail this many initial requests")
	cmd.Flags().IntVar(&flags.FailStatus, "fail-status", constants.MockDefaultFailStatus, "HTTP status for injected failures")
	cmd.Flags().IntVar(&flags.ResponseDelayMS, "response-delay-ms", 0, "artificial delay per response in milliseconds")
	cmd.PersistentFlags().BoolVarP(&flags.Verbose, "verbose", "v", false, "enable verbose output")
	cmd.PersistentFlags().BoolVarP(&flags.Quiet, "quiet", "q", false, "suppress non-essential output")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	return cmd
}

// runMockAPI starts the mock server and blocks until the context is
// canceled.
func runMockAPI(ctx context.Context, flags *MockAPIFlags) error {
	// Negative knobs are clamped rather than rejected, matching how CI
	// scripts have always invoked the mock.
	failFirst := max(flags.FailFirst, 0)
	delayMS := max(flags.ResponseDelayMS, 0)

	state := mockapi.NewState(failFirst, flags.FailStatus, time.Duration(delayMS)*time.Millisecond)
	addr := net.JoinHostPort(flags.Host, strconv.Itoa(flags.Port))
	server := mockapi.NewServer(addr, state, mockapi.WithLogger(GetLogger()))

	return server.Run(ctx)
}

// ExecuteMockAPI runs the mock API command with the provided context and
// build info.
func ExecuteMockAPI(ctx context.Context, info BuildInfo) error {
	flags := &MockAPIFlags{}
	//nolint:contextcheck // Cobra command pattern uses cmd.Context() internally
	cmd := newMockAPICmd(flags, info)
	return cmd.ExecuteContext(ctx)
}
