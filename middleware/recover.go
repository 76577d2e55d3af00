package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/xraph/statecraft"
)

// Recover returns middleware that recovers from panics in the handler
// chain. Panics are converted to errors and logged with a stack trace.
func Recover(logger *slog.Logger) Middleware {
	return func(ctx context.Context, inv *statecraft.Invocation, next Handler) (out any, retErr error) {
		defer func() {
			if r := recover(); r != nil {
				stack := string(debug.Stack())
				logger.Error("action panicked",
					slog.String("model", inv.Model),
					slog.String("action", inv.Action),
					slog.String("dispatch_id", inv.ID.String()),
					slog.Any("panic", r),
					slog.String("stack", stack),
				)
				out = nil
				retErr = fmt.Errorf("panic in action %s: %v", inv.Action, r)
			}
		}()
		return next(ctx)
	}
}
