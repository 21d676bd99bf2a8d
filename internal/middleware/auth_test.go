package middleware

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"growthlog/internal/auth"
)

type stubDirectory struct {
	users map[string]string
	err   error
}

func (d *stubDirectory) UserIDByEmail(ctx context.Context, email string) (string, error) {
	if d.err != nil {
		return "", d.err
	}
	id, ok := d.users[email]
	if !ok {
		return "", sql.ErrNoRows
	}
	return id, nil
}

var testSecret = []byte("test-secret")

func authedRequest(t *testing.T, token string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: token})
	}
	return req
}

func TestRequireAuth_ValidToken(t *testing.T) {
	t.Parallel()

	mw := NewAuthMiddleware(testSecret, &stubDirectory{users: map[string]string{"a@x.com": "u1"}})

	var gotUserID, gotEmail string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID = r.Context().Value("userID").(string)
		gotEmail = r.Context().Value("userEmail").(string)
	})

	token, err := auth.IssueToken("a@x.com", testSecret, time.Hour)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	mw.RequireAuth(next).ServeHTTP(rec, authedRequest(t, token))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "u1", gotUserID)
	require.Equal(t, "a@x.com", gotEmail)
}

func TestRequireAuth_MissingCookie(t *testing.T) {
	t.Parallel()

	mw := NewAuthMiddleware(testSecret, &stubDirectory{users: map[string]string{}})
	rec := httptest.NewRecorder()
	mw.RequireAuth(http.NotFoundHandler()).ServeHTTP(rec, authedRequest(t, ""))

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, auth.ErrUnauthenticated.Error(), strings.TrimSpace(rec.Body.String()))
}

func TestRequireAuth_SubjectDeleted(t *testing.T) {
	t.Parallel()

	// Token is valid but the user no longer exists; must be indistinguishable
	// from an invalid token.
	mw := NewAuthMiddleware(testSecret, &stubDirectory{users: map[string]string{}})
	token, err := auth.IssueToken("gone@x.com", testSecret, time.Hour)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	mw.RequireAuth(http.NotFoundHandler()).ServeHTTP(rec, authedRequest(t, token))

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, auth.ErrUnauthenticated.Error(), strings.TrimSpace(rec.Body.String()))
}

func TestRequireAuth_StoreUnavailable(t *testing.T) {
	t.Parallel()

	// A store failure is a service-level error, not an auth rejection.
	mw := NewAuthMiddleware(testSecret, &stubDirectory{err: errors.New("connection refused")})
	token, err := auth.IssueToken("a@x.com", testSecret, time.Hour)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	mw.RequireAuth(http.NotFoundHandler()).ServeHTTP(rec, authedRequest(t, token))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.NotContains(t, rec.Body.String(), auth.ErrUnauthenticated.Error())
}

func TestRequireAuth_GarbageToken(t *testing.T) {
	t.Parallel()

	mw := NewAuthMiddleware(testSecret, &stubDirectory{users: map[string]string{"a@x.com": "u1"}})
	rec := httptest.NewRecorder()
	mw.RequireAuth(http.NotFoundHandler()).ServeHTTP(rec, authedRequest(t, "garbage"))

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
