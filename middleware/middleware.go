// Package middleware provides composable middleware for action execution.
// Middleware wraps the synchronous phase of an action and can modify
// execution (recover from panics, enforce timeouts, log, add tracing,
// record metrics). A Deferred returned by an action settles outside the
// chain; middleware observes only the synchronous phase.
package middleware

import (
	"context"

	"github.com/xraph/statecraft"
)

// Handler is the terminal function that executes action logic.
type Handler func(ctx context.Context) (any, error)

// Middleware wraps a Handler with cross-cutting logic. It receives the
// current context, the invocation being executed, and the next handler
// to call. Middleware MUST call next to continue the chain (unless
// short-circuiting on error).
type Middleware func(ctx context.Context, inv *statecraft.Invocation, next Handler) (any, error)

// Chain composes multiple middleware into a single Middleware.
// Middleware are applied right-to-left: the first middleware in the
// list is the outermost wrapper.
//
// Example: Chain(logging, recover, timeout) executes as:
//
//	logging → recover → timeout → action
func Chain(mws ...Middleware) Middleware {
	return func(ctx context.Context, inv *statecraft.Invocation, next Handler) (any, error) {
		// Build the chain from the end backwards.
		h := next
		for i := len(mws) - 1; i >= 0; i-- {
			mw := mws[i]
			prev := h
			h = func(ctx context.Context) (any, error) {
				return mw(ctx, inv, prev)
			}
		}
		return h(ctx)
	}
}
