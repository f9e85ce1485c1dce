// Package ctxutil provides small context helpers shared across the gate.
package ctxutil

import "context"

// Canceled returns the context error when ctx is done, nil otherwise. It
// reads as a guard at the top of blocking operations:
//
//	if err := ctxutil.Canceled(ctx); err != nil {
//		return err
//	}
func Canceled(ctx context.Context) error {
	return ctx.Err()
}
