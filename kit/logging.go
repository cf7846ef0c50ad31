package kit

import (
	"context"
	"log/slog"
	"time"
)

// Logging returns middleware that records each call's name, duration, and
// outcome through slog.
func Logging(logger *slog.Logger, name string) Middleware {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next Endpoint) Endpoint {
		return func(ctx context.Context, req any) (any, error) {
			start := time.Now()
			resp, err := next(ctx, req)
			if err != nil {
				logger.Warn("kit: endpoint failed",
					"endpoint", name, "duration", time.Since(start), "error", err)
			} else {
				logger.Debug("kit: endpoint ok",
					"endpoint", name, "duration", time.Since(start))
			}
			return resp, err
		}
	}
}
