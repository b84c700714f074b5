package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"photo-booking-api/internal/auth"
	"photo-booking-api/internal/model"
)

type ctxKey string

const userKey ctxKey = "user"

// SessionCookie carries the signed session token.
const SessionCookie = "session"

// UserSource resolves a session's email to a live user row.
type UserSource interface {
	UserByEmail(ctx context.Context, email string) (*model.User, error)
}

// Identity resolves the caller before every request, from the session cookie
// or an Authorization bearer token. It fails open: a missing, malformed or
// stale token just leaves the request anonymous, and the gates below decide
// what anonymous callers may do.
func Identity(src UserSource, secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := ""
			if c, err := r.Cookie(SessionCookie); err == nil {
				raw = c.Value
			}
			if raw == "" {
				raw = strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
			}
			if raw == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := auth.ParseToken(raw, secret)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			u, err := src.UserByEmail(r.Context(), claims.Email)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userKey, u)))
		})
	}
}

// UserFrom returns the resolved user, if any.
func UserFrom(ctx context.Context) (*model.User, bool) {
	u, ok := ctx.Value(userKey).(*model.User)
	return u, ok
}

func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := UserFrom(r.Context()); !ok {
			deny(w, http.StatusUnauthorized, "login required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireType gates an operation to one side of the marketplace, e.g.
// photographers manage availability, clients book and leave feedback.
func RequireType(t model.UserType) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := UserFrom(r.Context())
			if !ok {
				deny(w, http.StatusUnauthorized, "login required")
				return
			}
			if u.Type != t {
				deny(w, http.StatusForbidden, string(t)+"s only")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func deny(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
