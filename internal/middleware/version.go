package middleware

import (
	"net/http"

	"github.com/Dan9191/fintrack/internal/handler"
)

// APIVersion makes handlers answer with the versioned envelope
func APIVersion(version string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-API-Version", version)
			next.ServeHTTP(w, r.WithContext(handler.WithAPIVersion(r.Context(), version)))
		})
	}
}
