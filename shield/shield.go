// Package shield provides reusable HTTP hardening middleware for the
// domdrive HTTP surface: security headers, body limits, request tracing,
// and basic-auth verification.
//
// Usage:
//
//	r := chi.NewRouter()
//	r.Use(shield.SecurityHeaders(shield.DefaultHeaders()))
//	r.Use(shield.MaxJSONBody(1 << 20))
//	r.Use(shield.RequestID)
//	r.Use(shield.BasicAuth(passwordHash))
package shield

import (
	"context"
	"log/slog"
)

type contextKey string

// LoggerKey is the context key for the per-request structured logger.
const LoggerKey contextKey = "shield_logger"

// GetLogger retrieves the per-request logger from the context.
// Returns slog.Default() if no logger was set.
func GetLogger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(LoggerKey).(*slog.Logger); ok {
		return l
	}
	return slog.Default()
}
