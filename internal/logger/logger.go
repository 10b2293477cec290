// Package logger provides structured logging using Zap.
package logger

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

var (
	sugar *zap.SugaredLogger
	once  sync.Once
)

type requestIDKey struct{}

// Init initializes the global logger for the given environment.
// For "production", it uses a JSON encoder. "test" discards output.
// All other environments get a human-readable console encoder.
func Init(env string) {
	once.Do(func() {
		var base *zap.Logger
		var err error

		switch env {
		case "production":
			base, err = zap.NewProduction()
		case "test":
			base = zap.NewNop()
		default:
			base, err = zap.NewDevelopment()
		}

		if err != nil {
			base = zap.NewNop()
		}

		sugar = base.Sugar().With("service", "budgetbuddy")
	})
}

// Get returns the global sugared logger.
// If Init has not been called, it initializes a development logger.
func Get() *zap.SugaredLogger {
	if sugar == nil {
		Init("development")
	}
	return sugar
}

// WithRequestID returns a context carrying the request id for FromContext.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// FromContext returns the global logger annotated with the request id
// stored in ctx, if any.
func FromContext(ctx context.Context) *zap.SugaredLogger {
	log := Get()
	if ctx == nil {
		return log
	}
	if id, ok := ctx.Value(requestIDKey{}).(string); ok && id != "" {
		return log.With("request_id", id)
	}
	return log
}

// Sync flushes any buffered log entries. Call this before application exit.
func Sync() {
	if sugar != nil {
		_ = sugar.Sync()
	}
}
