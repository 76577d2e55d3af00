package middleware

import (
	"context"
	"log/slog"

	"github.com/xraph/statecraft"
)

// Timeout returns middleware that enforces a per-dispatch deadline on the
// synchronous phase of the action. If the invocation has a non-zero
// Timeout, a context.WithTimeout wraps the handler call. When the
// deadline is exceeded the context is cancelled and the action should
// return context.DeadlineExceeded. Deferred work spawned by the action
// is not bounded by this middleware.
func Timeout(logger *slog.Logger) Middleware {
	return func(ctx context.Context, inv *statecraft.Invocation, next Handler) (any, error) {
		if inv.Timeout > 0 {
			logger.Debug("action timeout set",
				slog.String("dispatch_id", inv.ID.String()),
				slog.Duration("timeout", inv.Timeout),
			)
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, inv.Timeout)
			defer cancel()
		}
		return next(ctx)
	}
}
