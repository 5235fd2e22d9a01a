package logger

import (
	"context"
	"log/slog"
)

type ctxKey string

const loggerKey ctxKey = "logger"

// With returns a context whose logger carries the extra fields, e.g. the
// request's trace id.
func With(ctx context.Context, fields ...any) context.Context {
	return context.WithValue(ctx, loggerKey, From(ctx).With(fields...))
}

// Scoped returns the logger attached to ctx by With, if any.
func Scoped(ctx context.Context) (*slog.Logger, bool) {
	if ctx == nil {
		return nil, false
	}
	l, ok := ctx.Value(loggerKey).(*slog.Logger)
	return l, ok
}

// From returns the request-scoped logger, or the process logger if none was attached.
func From(ctx context.Context) *slog.Logger {
	if l, ok := Scoped(ctx); ok {
		return l
	}
	return LoggerWrapper()
}
