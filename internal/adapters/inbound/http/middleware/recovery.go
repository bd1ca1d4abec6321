package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/pitosalas/blogbridge-sub012/pkg/logger"
)

// Recovery turns a handler panic into a 500 response.
func Recovery(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rvr := recover()
				if rvr == nil {
					return
				}

				if rvr == http.ErrAbortHandler {
					panic(rvr)
				}

				var errMsg string
				switch v := rvr.(type) {
				case string:
					errMsg = v
				case error:
					errMsg = v.Error()
				default:
					errMsg = fmt.Sprintf("%v", v)
				}

				reqLogger := log.WithContext(r.Context())
				reqLogger.Error().
					Str("error", errMsg).
					Str("stack", string(debug.Stack())).
					Str("path", r.URL.Path).
					Str("method", r.Method).
					Msg("panic recovered")

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte(`{"code":"INTERNAL_ERROR","message":"internal server error"}`))
			}()

			next.ServeHTTP(w, r)
		})
	}
}
