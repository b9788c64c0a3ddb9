package router

import (
	"math"
	"net/http"

	"github.com/soozu/stove-license/internal/domain"
	"golang.org/x/time/rate"
)

// rateLimitMiddleware caps the request rate to perSecond across all callers.
// A non-positive rate disables limiting.
func rateLimitMiddleware(perSecond float64) func(http.Handler) http.Handler {
	if perSecond <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}

	burst := int(math.Ceil(perSecond))
	limiter := rate.NewLimiter(rate.Limit(perSecond), burst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				logger := domain.LoggerFromContext(r.Context())
				logger.WarnContext(r.Context(), "rate limit exceeded")
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("Retry-After", "1")
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte(`{"error":"Too many requests"}`))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
