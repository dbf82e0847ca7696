package logctx

import (
	"context"

	"github.com/commercelab/orderflow/internal/observability"
)

type loggerKey struct{}

// With attaches a request-scoped logger to the context. Handlers enrich the
// logger with request ids and trace ids before storing it here.
func With(ctx context.Context, logger observability.Logger) context.Context {
	if ctx == nil || logger == nil {
		return ctx
	}
	return context.WithValue(ctx, loggerKey{}, logger)
}

// From returns the logger stored on the context, or nil when none was set.
func From(ctx context.Context) observability.Logger {
	if ctx == nil {
		return nil
	}
	logger, _ := ctx.Value(loggerKey{}).(observability.Logger)
	return logger
}

// FromOr prefers the context logger and falls back to the given one.
func FromOr(ctx context.Context, fallback observability.Logger) observability.Logger {
	if logger := From(ctx); logger != nil {
		return logger
	}
	return fallback
}
