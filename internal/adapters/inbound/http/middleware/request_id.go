package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/pitosalas/blogbridge-sub012/pkg/logger"
)

const RequestIDHeader = "X-Request-Id"

// RequestID reuses the caller's X-Request-Id or mints one, and stores it
// where logger.WithContext picks it up.
func RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get(RequestIDHeader)
			if requestID == "" {
				requestID = uuid.New().String()
			}

			ctx := context.WithValue(r.Context(), logger.ContextKeyRequestID, requestID)
			w.Header().Set(RequestIDHeader, requestID)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
