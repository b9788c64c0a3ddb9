package router

import (
	"net/http"

	"github.com/soozu/stove-license/internal/domain"
)

func requireAdminMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if domain.AdminFromContext(r.Context()) == "" {
			logger := domain.LoggerFromContext(r.Context())
			logger.WarnContext(r.Context(), "attempt to use admin endpoint without credentials")
			writeUnauthorized(w)
			return
		}

		next.ServeHTTP(w, r)
	})
}
