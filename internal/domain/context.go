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

// AuthMethod identifies which credential check admitted an admin request.
type AuthMethod string

const (
	AuthMethodSharedSecret AuthMethod = "shared_secret"
	AuthMethodAuth0        AuthMethod = "auth0"
)

const adminContextKey contextKey = "admin"
const authMethodContextKey contextKey = "auth_method"

// ContextWithAdmin records the authenticated admin subject.
func ContextWithAdmin(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, adminContextKey, subject)
}

// AdminFromContext returns the admin subject, or "" for unauthenticated requests.
func AdminFromContext(ctx context.Context) string {
	subject := ctx.Value(adminContextKey)
	if subject == nil {
		subject = ""
	}
	return subject.(string)
}

func ContextWithAuthMethod(ctx context.Context, method AuthMethod) context.Context {
	return context.WithValue(ctx, authMethodContextKey, method)
}

func AuthMethodFromContext(ctx context.Context) AuthMethod {
	method, _ := ctx.Value(authMethodContextKey).(AuthMethod)
	return method
}
