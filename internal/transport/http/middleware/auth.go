package middleware

import (
	"context"
	"net/http"
	"strings"

	"staffhub/internal/domain/auth"
	"staffhub/internal/transport/http/api"
)

type ctxKey string

const ctxKeyUser ctxKey = "user"

// RequireAuth gates a route on a valid bearer token. A missing token is
// unauthorized; a malformed, invalid or expired one is forbidden.
func RequireAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", GetRequestID(r.Context()))
				return
			}
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				api.Fail(w, http.StatusForbidden, "forbidden", "invalid bearer token", GetRequestID(r.Context()))
				return
			}

			claims, err := auth.ParseToken(secret, parts[1])
			if err != nil {
				api.Fail(w, http.StatusForbidden, "forbidden", "invalid or expired token", GetRequestID(r.Context()))
				return
			}

			ctx := context.WithValue(r.Context(), ctxKeyUser, auth.UserContext{
				UserID:   claims.UserID,
				Username: claims.Username,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetUser(ctx context.Context) (auth.UserContext, bool) {
	user, ok := ctx.Value(ctxKeyUser).(auth.UserContext)
	return user, ok
}
