package domain

import (
	"context"
	"log/slog"
)

type contextKey string

const loggerContextKey contextKey = "logger"

func ContextWithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerContextKey, logger)
}

func LoggerFromContext(ctx context.Context) *slog.Logger {
	logger := ctx.Value(loggerContextKey)
	if logger == nil {
		logger = slog.Default()
	}

	return logger.(*slog.Logger)
}

const readerContextKey contextKey = "reader"

func ContextWithReaderID(ctx context.Context, readerID string) context.Context {
	return context.WithValue(ctx, readerContextKey, readerID)
}

func ReaderIDFromContext(ctx context.Context) string {
	readerID := ctx.Value(readerContextKey)
	if readerID == nil {
		readerID = ""
	}
	return readerID.(string)
}

// AuthMethod records which validator authenticated the request.
type AuthMethod string

const (
	AuthMethodAuth0    AuthMethod = "auth0"
	AuthMethodAPIToken AuthMethod = "api_token"
)

const authMethodContextKey contextKey = "auth_method"

func ContextWithAuthMethod(ctx context.Context, method AuthMethod) context.Context {
	return context.WithValue(ctx, authMethodContextKey, method)
}

func AuthMethodFromContext(ctx context.Context) AuthMethod {
	method := ctx.Value(authMethodContextKey)
	if method == nil {
		return ""
	}
	return method.(AuthMethod)
}
