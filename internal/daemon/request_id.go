package daemon

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"slate/internal/logging"
)

const requestIDHeader = "X-Request-Id"

// requestIDMiddleware tags every request with an identifier. Client-supplied
// identifiers are honored so callers can correlate across retries; the header
// is echoed on the response either way.
func requestIDMiddleware(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, requestID)

		next.ServeHTTP(w, r)

		logger.Debug("request served",
			logging.String(logging.FieldRequestID, requestID),
			logging.String("method", r.Method),
			logging.String("path", r.URL.Path))
	})
}
