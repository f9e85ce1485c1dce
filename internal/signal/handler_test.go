package signal_test

import (
	"context"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aloundoye/paritygate/internal/signal"
)

// The tests in this file send real signals to the test process, so none of
// them run in parallel.

func TestNewHandler_ContextStartsLive(t *testing.T) {
	h := signal.NewHandler(context.Background())
	defer h.Stop()

	require.NoError(t, h.Context().Err())
}

func TestHandler_CancelsOnInterrupt(t *testing.T) {
	tests := []struct {
		name string
		sig  syscall.Signal
	}{
		{name: "SIGINT", sig: syscall.SIGINT},
		{name: "SIGTERM", sig: syscall.SIGTERM},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := signal.NewHandler(context.Background())
			defer h.Stop()

			require.NoError(t, syscall.Kill(syscall.Getpid(), tt.sig))

			select {
			case <-h.Context().Done():
			case <-time.After(5 * time.Second):
				t.Fatalf("context not canceled after %s", tt.name)
			}

			assert.ErrorIs(t, h.Context().Err(), context.Canceled)
		})
	}
}

func TestHandler_StopCancelsContext(t *testing.T) {
	h := signal.NewHandler(context.Background())

	h.Stop()

	assert.ErrorIs(t, h.Context().Err(), context.Canceled)
}

func TestHandler_StopIsIdempotent(t *testing.T) {
	h := signal.NewHandler(context.Background())

	h.Stop()
	h.Stop()

	assert.ErrorIs(t, h.Context().Err(), context.Canceled)
}

func TestHandler_ParentCancellationPropagates(t *testing.T) {
	parent, cancel := context.WithCancel(context.Background())
	h := signal.NewHandler(parent)
	defer h.Stop()

	cancel()

	select {
	case <-h.Context().Done():
	case <-time.After(time.Second):
		t.Fatal("context not canceled after parent cancellation")
	}
}
