// Package signal ties process interrupt signals to context cancellation.
package signal

import (
	"context"
	"os/signal"
	"syscall"
)

// Handler cancels its context when the process receives SIGINT or SIGTERM,
// so in-flight API requests and artifact downloads stop promptly instead of
// being killed mid-read.
type Handler struct {
	ctx  context.Context //nolint:containedctx // the handler owns the context lifecycle
	stop context.CancelFunc
}

// NewHandler registers for SIGINT and SIGTERM and returns a handler whose
// context is canceled on the first signal. Callers run their work off
// Context and release the registration with Stop:
//
//	h := signal.NewHandler(context.Background())
//	defer h.Stop()
//	err := run(h.Context())
func NewHandler(parent context.Context) *Handler {
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	return &Handler{ctx: ctx, stop: stop}
}

// Context returns the context canceled on interrupt.
func (h *Handler) Context() context.Context {
	return h.ctx
}

// Stop unregisters the signal listener and cancels the context. Once the
// listener is gone, a later interrupt falls through to the default handler
// and terminates the process.
func (h *Handler) Stop() {
	h.stop()
}
