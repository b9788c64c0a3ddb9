package router

import (
	"fmt"
	"net/http"

	"github.com/soozu/stove-license/internal/domain"
)

func recoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			logger := domain.LoggerFromContext(r.Context())
			logger.ErrorContext(r.Context(), "panic while handling request", "panic", fmt.Sprint(rec))

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error":"Internal server error"}`))
		}()

		next.ServeHTTP(w, r)
	})
}
