package logger

import (
	"context"
	"log/slog"
)

// loggerKey is the private context key for logger values.
type loggerKey struct{}

// WithLogger returns a copy of ctx carrying the given logger. Handlers and
// middleware use this to propagate a request-scoped logger (with trace id
// and similar attributes) down through services and stores.
func WithLogger(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, log)
}

// FromContext extracts the logger from ctx, falling back to the process
// default logger. The return value is never nil.
func FromContext(ctx context.Context) *slog.Logger {
	if log, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok && log != nil {
		return log
	}
	return slog.Default()
}

// FromContextOrDefault extracts the logger from ctx, falling back to the
// given logger, or to the process default when that is nil too.
func FromContextOrDefault(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if log, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok && log != nil {
		return log
	}
	if fallback != nil {
		return fallback
	}
	return slog.Default()
}
