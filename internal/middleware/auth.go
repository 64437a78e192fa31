package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Dan9191/fintrack/internal/config"
	"github.com/Dan9191/fintrack/internal/handler"
	"github.com/Dan9191/fintrack/internal/service"
)

// AuthMiddleware validates the session JWT from the session cookie or a Bearer header
// and puts the user id into the request context.
func AuthMiddleware(cfg *config.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := sessionToken(r)
			if tokenString == "" {
				handler.WriteError(w, r, http.StatusUnauthorized, "authentication required", nil)
				return
			}

			userID, err := parseSession(tokenString, cfg.JWTSecret)
			if err != nil {
				handler.WriteError(w, r, http.StatusUnauthorized, "invalid or expired session", nil)
				return
			}

			if rec, ok := w.(interface{ SetUserID(int64) }); ok {
				rec.SetUserID(userID)
			}
			next.ServeHTTP(w, r.WithContext(service.WithUserID(r.Context(), userID)))
		})
	}
}

func sessionToken(r *http.Request) string {
	if c, err := r.Cookie(handler.SessionCookie); err == nil && c.Value != "" {
		return c.Value
	}
	parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

func parseSession(tokenString, secret string) (int64, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return 0, err
	}
	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return 0, errors.New("session subject is not a user id")
	}
	return userID, nil
}
