package log

import (
	"context"
	"os"

	"go.uber.org/zap"
)

type ctxKey string

const (
	RequestIDKey ctxKey = "request_id"
	RemoteIPKey  ctxKey = "remote_ip"
	ConnIDKey    ctxKey = "conn_id"
)

var contextKeys = []ctxKey{RequestIDKey, RemoteIPKey, ConnIDKey}

var logger *zap.Logger

func init() {
	if os.Getenv("DEBUG") == "true" {
		logger, _ = zap.NewDevelopment()
	} else {
		logger, _ = zap.NewProduction()
	}
}

// ContextWith stores a log field on ctx for later WithCtx calls.
func ContextWith(ctx context.Context, key ctxKey, value string) context.Context {
	if value == "" {
		return ctx
	}
	return context.WithValue(ctx, key, value)
}

func WithCtx(ctx context.Context) *zap.Logger {
	fields := []zap.Field{}

	for _, key := range contextKeys {
		if v, ok := ctx.Value(key).(string); ok {
			fields = append(fields, zap.String(string(key), v))
		}
	}

	return logger.With(fields...)
}

func With(fields ...zap.Field) *zap.Logger {
	return logger.With(fields...)
}

func Sync() error {
	return logger.Sync()
}
