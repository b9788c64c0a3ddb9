package router

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/soozu/stove-license/internal/domain"
)

const requestIDHeader = "X-Request-ID"

// statusRecorder captures the status code written by downstream handlers.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

func newStatusRecorder(w http.ResponseWriter) *statusRecorder {
	if rec, ok := w.(*statusRecorder); ok {
		return rec
	}
	return &statusRecorder{ResponseWriter: w, status: http.StatusOK}
}

// loggingMiddleware attaches a request-scoped logger carrying a request id,
// echoing any id supplied by the caller.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(requestIDHeader)
		if requestID == "" || len(requestID) > 128 {
			requestID = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, requestID)

		ctx := r.Context()
		logger := domain.LoggerFromContext(ctx).With(
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
		)
		ctx = domain.ContextWithLogger(ctx, logger)

		start := time.Now()
		rec := newStatusRecorder(w)
		next.ServeHTTP(rec, r.WithContext(ctx))

		logger.InfoContext(ctx, "request handled",
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}
