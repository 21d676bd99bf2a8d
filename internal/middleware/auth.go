package middleware

import (
	"context"
	"database/sql"
	"errors"
	"net/http"

	"growthlog/internal/auth"
)

// UserDirectory resolves a token subject to a stored user. A subject that no
// longer resolves must be reported as sql.ErrNoRows; that case is treated the
// same as an invalid token, while any other error is a store failure.
type UserDirectory interface {
	UserIDByEmail(ctx context.Context, email string) (string, error)
}

type AuthMiddleware struct {
	jwtSecret []byte
	users     UserDirectory
}

func NewAuthMiddleware(secret []byte, users UserDirectory) *AuthMiddleware {
	return &AuthMiddleware{jwtSecret: secret, users: users}
}

func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(auth.CookieName)
		if err != nil || cookie.Value == "" {
			http.Error(w, auth.ErrUnauthenticated.Error(), http.StatusUnauthorized)
			return
		}
		email, err := auth.SubjectFromToken(cookie.Value, m.jwtSecret)
		if err != nil {
			http.Error(w, auth.ErrUnauthenticated.Error(), http.StatusUnauthorized)
			return
		}
		userID, err := m.users.UserIDByEmail(r.Context(), email)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				http.Error(w, auth.ErrUnauthenticated.Error(), http.StatusUnauthorized)
				return
			}
			http.Error(w, "server error", http.StatusInternalServerError)
			return
		}
		ctx := context.WithValue(r.Context(), "userID", userID)
		ctx = context.WithValue(ctx, "userEmail", email)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
