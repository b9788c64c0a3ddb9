package router

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"

	"github.com/soozu/stove-license/internal/domain"
)

const apiKeyHeader = "X-API-Key"

// AdminResult represents the result of a successful admin authentication.
type AdminResult struct {
	Subject string
	Method  domain.AuthMethod
}

// AdminValidator attempts to authenticate an admin from a request.
// Returns nil, nil if this validator doesn't apply (no matching credential).
// Returns AdminResult, nil on success.
// Returns nil, error if validation was attempted but failed.
type AdminValidator func(r *http.Request) (*AdminResult, error)

// NewAdminMiddleware creates a middleware that authenticates admin requests
// using a chain of validators. Requests that carry no recognised credential
// pass through unauthenticated; requireAdminMiddleware rejects them later.
func NewAdminMiddleware(validators []AdminValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, validate := range validators {
				result, err := validate(r)
				if result == nil && err == nil {
					continue
				}

				if err != nil {
					logger := domain.LoggerFromContext(r.Context())
					logger.WarnContext(r.Context(), "admin authentication failed", "error", err)
					writeUnauthorized(w)
					return
				}

				ctx := domain.ContextWithAdmin(r.Context(), result.Subject)
				ctx = domain.ContextWithAuthMethod(ctx, result.Method)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// NewSharedSecretValidator creates a validator comparing the X-API-Key header
// against a configured secret. An empty secret is refused so that a missing
// configuration can never admit requests.
func NewSharedSecretValidator(secret string) (AdminValidator, error) {
	if secret == "" {
		return nil, errors.New("shared secret must not be empty")
	}
	expected := []byte(secret)

	return func(r *http.Request) (*AdminResult, error) {
		values := r.Header.Values(apiKeyHeader)
		if len(values) == 0 {
			return nil, nil
		}

		if subtle.ConstantTimeCompare([]byte(values[0]), expected) != 1 {
			return nil, fmt.Errorf("invalid %s header", apiKeyHeader)
		}

		return &AdminResult{
			Subject: string(domain.AuthMethodSharedSecret),
			Method:  domain.AuthMethodSharedSecret,
		}, nil
	}, nil
}

func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"Unauthorized"}`))
}
