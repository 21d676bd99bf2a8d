package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"growthlog/internal/db"
	"growthlog/internal/models"
	"growthlog/internal/notify"
)

// These tests run against a real Postgres when TEST_DATABASE_URL is set and
// are skipped otherwise.

type noopJobs struct{}

func (noopJobs) Submit() {}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	conn, err := sqlx.Open("pgx", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	require.NoError(t, db.RunMigrations(conn))

	_, err = conn.Exec(`TRUNCATE users, entries, weekly_reflections, peer_feedback, integrations, quotes, articles, reflection_suggestions, calendar_insights CASCADE`)
	require.NoError(t, err)

	router := NewRouter(RouterConfig{
		DB:        conn,
		JWTSecret: []byte("test-secret"),
		TokenTTL:  30 * time.Minute,
		Hub:       notify.NewHub(zap.NewNop()),
		Jobs:      noopJobs{},
		AudioDir:  t.TempDir(),
		Logger:    zap.NewNop(),
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

type client struct {
	t    *testing.T
	base string
	http *http.Client
}

func newClient(t *testing.T, srv *httptest.Server) *client {
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &client{t: t, base: srv.URL, http: &http.Client{Jar: jar}}
}

func (c *client) do(method, path string, body any) *http.Response {
	c.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, c.base+path, &buf)
	require.NoError(c.t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.http.Do(req)
	require.NoError(c.t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func (c *client) signup(email, password string) {
	c.t.Helper()
	resp := c.do(http.MethodPost, "/api/v1/auth/signup", map[string]string{"email": email, "password": password})
	require.Equal(c.t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestSignupLoginMeLogoutFlow(t *testing.T) {
	srv := newTestServer(t)
	c := newClient(t, srv)

	c.signup("a@x.com", "p")

	resp := c.do(http.MethodPost, "/api/v1/auth/login", map[string]string{"email": "a@x.com", "password": "p"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	tok := decode[map[string]string](t, resp)
	require.NotEmpty(t, tok["access_token"])
	require.Equal(t, "bearer", tok["token_type"])

	resp = c.do(http.MethodGet, "/api/v1/auth/me", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	me := decode[map[string]string](t, resp)
	require.Equal(t, "a@x.com", me["email"])

	resp = c.do(http.MethodPost, "/api/v1/auth/logout", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = c.do(http.MethodGet, "/api/v1/auth/me", nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestSignupDuplicateEmailConflict(t *testing.T) {
	srv := newTestServer(t)
	c := newClient(t, srv)

	c.signup("dup@x.com", "p")
	resp := c.do(http.MethodPost, "/api/v1/auth/signup", map[string]string{"email": "dup@x.com", "password": "p"})
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()
}

func TestEntryRoundTripAndOwnershipIsolation(t *testing.T) {
	srv := newTestServer(t)

	alice := newClient(t, srv)
	alice.signup("alice@x.com", "p")
	bob := newClient(t, srv)
	bob.signup("bob@x.com", "p")

	resp := alice.do(http.MethodPost, "/api/v1/moments", map[string]string{"text": "alice moment"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	created := decode[models.Entry](t, resp)
	require.Equal(t, "alice moment", created.Text)

	resp = bob.do(http.MethodPost, "/api/v1/moments", map[string]string{"text": "bob moment"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	aliceMoments := decode[[]models.Entry](t, alice.do(http.MethodGet, "/api/v1/moments", nil))
	require.Len(t, aliceMoments, 1)
	require.Equal(t, "alice moment", aliceMoments[0].Text)

	bobMoments := decode[[]models.Entry](t, bob.do(http.MethodGet, "/api/v1/moments", nil))
	require.Len(t, bobMoments, 1)
	require.Equal(t, "bob moment", bobMoments[0].Text)
}

func TestIntegrationsUpsertIsIdempotent(t *testing.T) {
	srv := newTestServer(t)
	c := newClient(t, srv)
	c.signup("i@x.com", "p")

	payload := map[string]any{
		"email": map[string]any{"connected": true, "settings": map[string]any{"address": "i@x.com"}},
		"slack": map[string]any{"connected": false, "settings": map[string]any{}},
		"jira":  map[string]any{"connected": false, "settings": map[string]any{}},
	}

	first := decode[models.Integrations](t, c.do(http.MethodPut, "/api/v1/integrations", payload))
	second := decode[models.Integrations](t, c.do(http.MethodPut, "/api/v1/integrations", payload))
	require.Equal(t, first, second)

	stored := decode[models.Integrations](t, c.do(http.MethodGet, "/api/v1/integrations", nil))
	require.True(t, stored.Email.Connected)
	require.Equal(t, "i@x.com", stored.Email.Settings["address"])
}

func TestPeerFeedbackRecipientNotFound(t *testing.T) {
	srv := newTestServer(t)
	c := newClient(t, srv)
	c.signup("giver@x.com", "p")

	resp := c.do(http.MethodPost, "/api/v1/peer-feedback", map[string]string{
		"recipient_email": "missing@x.com",
		"text":            "great week",
	})
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestPeerFeedbackDelivery(t *testing.T) {
	srv := newTestServer(t)

	giver := newClient(t, srv)
	giver.signup("g@x.com", "p")
	recipient := newClient(t, srv)
	recipient.signup("r@x.com", "p")

	resp := giver.do(http.MethodPost, "/api/v1/peer-feedback", map[string]string{
		"recipient_email": "r@x.com",
		"text":            "thoughtful feedback",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	received := decode[[]models.PeerFeedback](t, recipient.do(http.MethodGet, "/api/v1/peer-feedback", nil))
	require.Len(t, received, 1)
	require.Equal(t, "thoughtful feedback", received[0].Text)
	require.Equal(t, "g@x.com", received[0].GiverEmail)

	// The giver received nothing.
	given := decode[[]models.PeerFeedback](t, giver.do(http.MethodGet, "/api/v1/peer-feedback", nil))
	require.Empty(t, given)
}

func TestDashboardFallbackQuote(t *testing.T) {
	srv := newTestServer(t)
	c := newClient(t, srv)
	c.signup("d@x.com", "p")

	resp := c.do(http.MethodGet, "/api/v1/dashboard", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	dash := decode[map[string]json.RawMessage](t, resp)

	var quote models.Quote
	require.NoError(t, json.Unmarshal(dash["dailyQuote"], &quote))
	require.Equal(t, "The only way to do great work is to love what you do.", quote.Quote)
}

func TestSettingsRoundTrip(t *testing.T) {
	srv := newTestServer(t)
	c := newClient(t, srv)
	c.signup("s@x.com", "p")

	payload := map[string]any{
		"priorityVirtues": []string{"resilience", "grit", "empathy"},
		"customVirtues":   []string{"patience"},
	}
	resp := c.do(http.MethodPut, "/api/v1/users/me/settings", payload)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	got := decode[map[string][]string](t, c.do(http.MethodGet, "/api/v1/users/me/settings", nil))
	require.Equal(t, []string{"resilience", "grit", "empathy"}, got["priorityVirtues"])
	require.Equal(t, []string{"patience"}, got["customVirtues"])
}

func TestManualTriggerAccepted(t *testing.T) {
	srv := newTestServer(t)
	c := newClient(t, srv)

	resp := c.do(http.MethodPost, "/api/v1/tasks/generate-reflections", nil)
	require.Equal(t, http.StatusAccepted, resp.StatusCode)
	resp.Body.Close()
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)
	c := newClient(t, srv)

	resp := c.do(http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode[map[string]string](t, resp)
	require.Equal(t, "ok", body["status"])
	require.Equal(t, "connected", body["database"])
}
