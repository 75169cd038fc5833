package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/taskdeck/taskdeck/internal/models"
)

// UserLookup resolves a token subject to a user record.
type UserLookup interface {
	GetByEmail(ctx context.Context, email string) (models.User, error)
}

type contextKey string

const currentUserKey = contextKey("currentUser")

// CurrentUser returns the user resolved by Middleware for this request.
func CurrentUser(ctx context.Context) (models.User, bool) {
	user, ok := ctx.Value(currentUserKey).(models.User)
	return user, ok
}

// Middleware protects routes with bearer-token authentication. On every
// request it verifies the token and resolves its subject against the user
// directory; there is no session caching across requests. A missing or
// invalid token, or a subject that no longer exists, yields 401.
func Middleware(issuer *TokenIssuer, users UserLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var tokenStr string
			authHeader := r.Header.Get("Authorization")
			if authHeader != "" {
				parts := strings.SplitN(authHeader, " ", 2)
				if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
					tokenStr = parts[1]
				}
			}
			if tokenStr == "" {
				unauthorized(w, "missing auth token")
				return
			}

			email, err := issuer.Verify(tokenStr)
			if err != nil {
				unauthorized(w, "invalid auth token")
				return
			}

			user, err := users.GetByEmail(r.Context(), email)
			if err != nil {
				unauthorized(w, "invalid auth token")
				return
			}

			ctx := context.WithValue(r.Context(), currentUserKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error":"` + msg + `"}`))
}
