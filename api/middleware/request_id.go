package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/bazaarhq/bazaar-backend/pkg/logger"
)

const RequestIDHeader = "X-Request-Id"

// RequestID tags each request with an id, reusing the inbound header
// when the caller supplied one.
func RequestID(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get(RequestIDHeader)
			if requestID == "" {
				requestID = uuid.NewString()
			}

			w.Header().Set(RequestIDHeader, requestID)

			ctx := r.Context()
			if logg != nil {
				ctx = logg.WithRequestID(ctx, requestID)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
