package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/xraph/statecraft"
)

// Logging returns middleware that logs action start and completion.
func Logging(logger *slog.Logger) Middleware {
	return func(ctx context.Context, inv *statecraft.Invocation, next Handler) (any, error) {
		logger.Info("action started",
			slog.String("model", inv.Model),
			slog.String("namespace", inv.Namespace),
			slog.String("action", inv.Action),
			slog.String("dispatch_id", inv.ID.String()),
		)

		start := time.Now()
		out, err := next(ctx)
		elapsed := time.Since(start)

		if err != nil {
			logger.Error("action failed",
				slog.String("model", inv.Model),
				slog.String("action", inv.Action),
				slog.String("dispatch_id", inv.ID.String()),
				slog.Duration("elapsed", elapsed),
				slog.String("error", err.Error()),
			)
		} else {
			logger.Info("action completed",
				slog.String("model", inv.Model),
				slog.String("action", inv.Action),
				slog.String("dispatch_id", inv.ID.String()),
				slog.Duration("elapsed", elapsed),
			)
		}

		return out, err
	}
}
