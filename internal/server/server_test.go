package server

import (
	"bytes"
	"context"
	"ctchen222/Chord-Dictionary/internal/api/controller"
	"ctchen222/Chord-Dictionary/internal/api/middleware"
	"ctchen222/Chord-Dictionary/internal/api/repository"
	"ctchen222/Chord-Dictionary/internal/api/service"
	"ctchen222/Chord-Dictionary/internal/db"
	"ctchen222/Chord-Dictionary/internal/mailer"
	"ctchen222/Chord-Dictionary/internal/security"
	"ctchen222/Chord-Dictionary/internal/session"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const alicePassword = "Secret123"

func init() {
	gin.SetMode(gin.TestMode)
}

type capturingMailer struct {
	mu   sync.Mutex
	sent []mailer.PasswordReset
}

func (m *capturingMailer) SendPasswordReset(_ context.Context, msg mailer.PasswordReset) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	return nil
}

func (m *capturingMailer) last(t *testing.T) mailer.PasswordReset {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	require.NotEmpty(t, m.sent)
	return m.sent[len(m.sent)-1]
}

type app struct {
	ts   *httptest.Server
	mail *capturingMailer
}

func newApp(t *testing.T, opts Options, extraChecks map[string]controller.Check) *app {
	t.Helper()
	ctx := context.Background()

	conn, err := db.Connect(ctx, db.DriverSQLite, filepath.Join(t.TempDir(), "e2e.db"))
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	users := repository.NewUserRepository(conn)
	mail := &capturingMailer{}
	credentials := service.NewCredentialService(users, security.NewHasher(bcrypt.MinCost))
	tokens := service.NewTokenService(users,
		repository.NewRememberTokenRepository(conn),
		repository.NewPasswordResetRepository(conn),
		credentials, mail, service.TokenOptions{})
	access := service.NewAccessTokenService("e2e-secret", time.Hour)
	progressions := service.NewProgressionService(repository.NewProgressionRepository(conn))

	sessions := session.NewManager(session.NewMemoryStore(), session.Options{
		TTL:         time.Hour,
		RememberTTL: service.DefaultRememberTTL,
	})
	auth := middleware.NewAuthenticator(sessions, tokens, access, credentials)

	checks := map[string]controller.Check{
		"database": conn.PingContext,
		"sessions": sessions.Ping,
	}
	for name, check := range extraChecks {
		checks[name] = check
	}

	if opts.ServiceName == "" {
		opts.ServiceName = "chord-dictionary-test"
	}
	srv := NewServer(sessions, auth, Handlers{
		Auth:         controller.NewAuthController(credentials, tokens, access, sessions, false),
		Progressions: controller.NewProgressionController(progressions, auth, false),
		Chords:       controller.NewChordController(),
		Health:       controller.NewHealthController(checks),
	}, opts)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return &app{ts: ts, mail: mail}
}

// client is a browser-like client with its own cookie jar.
type client struct {
	t       *testing.T
	base    string
	http    *http.Client
	headers map[string]string
}

func (a *app) client(t *testing.T) *client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &client{t: t, base: a.ts.URL, http: &http.Client{Jar: jar}, headers: map[string]string{}}
}

func (c *client) do(method, path string, body any) (int, map[string]any) {
	c.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, c.base+path, &buf)
	require.NoError(c.t, err)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	require.NoError(c.t, err)
	defer resp.Body.Close()

	var out map[string]any
	if resp.StatusCode != http.StatusNoContent {
		require.NoError(c.t, json.NewDecoder(resp.Body).Decode(&out))
	}
	return resp.StatusCode, out
}

func (c *client) cookie(name string) *http.Cookie {
	req, _ := http.NewRequest(http.MethodGet, c.base, nil)
	for _, ck := range c.http.Jar.Cookies(req.URL) {
		if ck.Name == name {
			return ck
		}
	}
	return nil
}

func (c *client) register(username string) {
	c.t.Helper()
	code, body := c.do(http.MethodPost, "/api/register", gin.H{
		"username": username,
		"email":    username + "@example.com",
		"password": alicePassword,
	})
	require.Equal(c.t, http.StatusCreated, code, body)
}

func (c *client) login(username string, remember bool) map[string]any {
	c.t.Helper()
	code, body := c.do(http.MethodPost, "/api/login", gin.H{
		"username": username,
		"password": alicePassword,
		"remember": remember,
	})
	require.Equal(c.t, http.StatusOK, code, body)
	return body
}

func (c *client) createProgression(name string, chords []string, public bool) int64 {
	c.t.Helper()
	code, body := c.do(http.MethodPost, "/api/progressions", gin.H{
		"name": name, "chords": chords, "is_public": public,
	})
	require.Equal(c.t, http.StatusCreated, code, body)
	return int64(body["progression_id"].(float64))
}

func TestScenario_PrivateThenPublicProgression(t *testing.T) {
	a := newApp(t, Options{}, nil)
	alice := a.client(t)
	anon := a.client(t)

	code, body := alice.do(http.MethodPost, "/api/register", gin.H{
		"username": "alice", "email": "alice@example.com", "password": alicePassword,
	})
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, "Registration successful", body["message"])
	assert.NotEmpty(t, body["csrf_token"])

	login := alice.login("alice", true)
	assert.Equal(t, "Login successful", login["message"])
	require.NotNil(t, alice.cookie(session.RememberCookieName))

	id := alice.createProgression("Blues", []string{"E", "A", "B7"}, false)
	path := fmt.Sprintf("/api/progressions?id=%d", id)

	code, body = anon.do(http.MethodGet, path, nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Progression not found or access denied", body["message"])

	code, _ = alice.do(http.MethodPut, "/api/progressions", gin.H{
		"id": id, "name": "Blues", "chords": []string{"E", "A", "B7"}, "is_public": true,
	})
	require.Equal(t, http.StatusOK, code)

	code, body = anon.do(http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, code)
	p := body["progression"].(map[string]any)
	assert.Equal(t, []any{"E", "A", "B7"}, p["chords"])
	assert.Equal(t, "alice", p["created_by"])
}

func TestAuth_RegisterValidation(t *testing.T) {
	a := newApp(t, Options{}, nil)
	c := a.client(t)
	c.register("alice")

	tests := []struct {
		name string
		body gin.H
		want string
	}{
		{"missing fields", gin.H{"username": "bob"}, "Username, email, and password are required"},
		{"bad email", gin.H{"username": "bob", "email": "nope", "password": alicePassword}, "Invalid email format"},
		{"weak password", gin.H{"username": "bob", "email": "bob@example.com", "password": "password"}, "Password must be at least 8 characters and contain uppercase, lowercase, and numbers"},
		{"duplicate username", gin.H{"username": "alice", "email": "other@example.com", "password": alicePassword}, "Username already exists"},
		{"duplicate email", gin.H{"username": "bob", "email": "alice@example.com", "password": alicePassword}, "Email already exists"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := a.client(t).do(http.MethodPost, "/api/register", tt.body)
			assert.Equal(t, http.StatusBadRequest, code)
			assert.Equal(t, "error", body["status"])
			assert.Equal(t, tt.want, body["message"])
		})
	}
}

func TestAuth_LoginFailures(t *testing.T) {
	a := newApp(t, Options{}, nil)
	a.client(t).register("alice")
	c := a.client(t)

	code, body := c.do(http.MethodPost, "/api/login", gin.H{"username": "alice"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Username and password are required", body["message"])

	code, body = c.do(http.MethodPost, "/api/login", gin.H{"username": "alice", "password": "Wrong1234"})
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Invalid credentials", body["message"])

	code, _ = c.do(http.MethodPost, "/api/login", gin.H{"username": "alice@example.com", "password": alicePassword})
	assert.Equal(t, http.StatusOK, code)
}

func TestAuth_LoginWithEscapedUsername(t *testing.T) {
	a := newApp(t, Options{}, nil)
	c := a.client(t)

	code, body := c.do(http.MethodPost, "/api/register", gin.H{
		"username": "Tom & Jerry", "email": "tj@example.com", "password": alicePassword,
	})
	require.Equal(t, http.StatusCreated, code, body)

	login := a.client(t).login("Tom & Jerry", false)
	assert.Equal(t, "Tom &amp; Jerry", login["user"].(map[string]any)["username"])

	code, body = a.client(t).do(http.MethodPost, "/api/token", gin.H{"username": "Tom & Jerry", "password": alicePassword})
	require.Equal(t, http.StatusOK, code, body)
	assert.NotEmpty(t, body["token"])
}

func TestAuth_UserAndLogout(t *testing.T) {
	a := newApp(t, Options{}, nil)
	c := a.client(t)

	code, body := c.do(http.MethodGet, "/api/user", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Not authenticated", body["message"])

	code, body = c.do(http.MethodPost, "/api/logout", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Not authenticated", body["message"])

	c.register("alice")
	code, body = c.do(http.MethodGet, "/api/user", nil)
	require.Equal(t, http.StatusOK, code)
	user := body["user"].(map[string]any)
	assert.Equal(t, "alice", user["username"])
	assert.NotContains(t, user, "password_hash")

	code, body = c.do(http.MethodPost, "/api/logout", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Logout successful", body["message"])

	code, _ = c.do(http.MethodGet, "/api/user", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestAuth_RememberCookieRestoresSession(t *testing.T) {
	a := newApp(t, Options{}, nil)
	alice := a.client(t)
	alice.register("alice")
	alice.login("alice", true)
	remember := alice.cookie(session.RememberCookieName)
	require.NotNil(t, remember)

	// A fresh browser holding only the remember cookie.
	returning := a.client(t)
	u, _ := http.NewRequest(http.MethodGet, a.ts.URL, nil)
	returning.http.Jar.SetCookies(u.URL, []*http.Cookie{{Name: remember.Name, Value: remember.Value, Path: "/"}})

	code, body := returning.do(http.MethodGet, "/api/user", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "alice", body["user"].(map[string]any)["username"])
	assert.NotNil(t, returning.cookie(session.CookieName))

	// Logging out revokes the token for every holder.
	code, _ = returning.do(http.MethodPost, "/api/logout", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Nil(t, returning.cookie(session.RememberCookieName))

	replay := a.client(t)
	replay.http.Jar.SetCookies(u.URL, []*http.Cookie{{Name: remember.Name, Value: remember.Value, Path: "/"}})
	code, _ = replay.do(http.MethodGet, "/api/user", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestAuth_ResetPassword(t *testing.T) {
	a := newApp(t, Options{}, nil)
	alice := a.client(t)
	alice.register("alice")
	anon := a.client(t)

	code, body := anon.do(http.MethodPost, "/api/reset-password", gin.H{})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Invalid request parameters", body["message"])

	code, body = anon.do(http.MethodPost, "/api/reset-password", gin.H{"email": "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Invalid email format", body["message"])

	code, body = anon.do(http.MethodPost, "/api/reset-password", gin.H{"email": "nobody@example.com"})
	assert.Equal(t, http.StatusOK, code)
	assert.NotContains(t, body, "token")

	code, body = anon.do(http.MethodPost, "/api/reset-password", gin.H{"email": "alice@example.com"})
	require.Equal(t, http.StatusOK, code)
	assert.NotContains(t, body, "token")
	token := a.mail.last(t).Token
	require.Len(t, token, 64)

	code, body = anon.do(http.MethodPost, "/api/reset-password", gin.H{"token": token, "password": "weak"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, body["message"], "Password must be at least 8 characters")

	code, body = anon.do(http.MethodPost, "/api/reset-password", gin.H{"token": token, "password": "NewSecret456"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Password reset successful", body["message"])

	// Existing sessions end with the old password.
	code, _ = alice.do(http.MethodGet, "/api/user", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, body = anon.do(http.MethodPost, "/api/reset-password", gin.H{"token": token, "password": "NewSecret789"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Invalid or expired token", body["message"])

	code, _ = anon.do(http.MethodPost, "/api/login", gin.H{"username": "alice", "password": alicePassword})
	assert.Equal(t, http.StatusUnauthorized, code)
	code, _ = anon.do(http.MethodPost, "/api/login", gin.H{"username": "alice", "password": "NewSecret456"})
	assert.Equal(t, http.StatusOK, code)
}

func TestProgressions_Ownership(t *testing.T) {
	a := newApp(t, Options{}, nil)
	alice := a.client(t)
	alice.register("alice")
	bob := a.client(t)
	bob.register("bob")

	id := alice.createProgression("Pop", []string{"C", "G", "Am", "F"}, false)

	code, body := bob.do(http.MethodPut, "/api/progressions", gin.H{
		"id": id, "name": "Stolen", "chords": []string{"C"},
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Progression not found or access denied", body["message"])

	code, _ = bob.do(http.MethodDelete, fmt.Sprintf("/api/progressions?id=%d", id), nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = bob.do(http.MethodGet, fmt.Sprintf("/api/progressions?id=%d", id), nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, body = alice.do(http.MethodDelete, "/api/progressions", nil)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Progression ID is required", body["message"])

	code, body = alice.do(http.MethodDelete, fmt.Sprintf("/api/progressions?id=%d", id), nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Progression deleted successfully", body["message"])

	code, _ = alice.do(http.MethodGet, fmt.Sprintf("/api/progressions?id=%d", id), nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestProgressions_Lists(t *testing.T) {
	a := newApp(t, Options{}, nil)
	alice := a.client(t)
	alice.register("alice")
	alice.createProgression("Private", []string{"Am"}, false)
	alice.createProgression("Shared", []string{"G", "D"}, true)

	code, body := alice.do(http.MethodGet, "/api/progressions", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, body["progressions"], 2)

	code, body = alice.do(http.MethodGet, "/api/progressions?scope=public", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, body["progressions"], 1)

	anon := a.client(t)
	code, body = anon.do(http.MethodGet, "/api/progressions?limit=10&offset=0", nil)
	require.Equal(t, http.StatusOK, code)
	list := body["progressions"].([]any)
	require.Len(t, list, 1)
	assert.Equal(t, "Shared", list[0].(map[string]any)["name"])

	code, body = anon.do(http.MethodGet, "/api/progressions?limit=500", nil)
	require.Equal(t, http.StatusOK, code, body)
	assert.Len(t, body["progressions"], 1)

	code, _ = anon.do(http.MethodGet, "/api/progressions?limit=-1", nil)
	assert.Equal(t, http.StatusBadRequest, code)

	for _, id := range []string{"abc", "0", "-3"} {
		code, body = alice.do(http.MethodGet, "/api/progressions?id="+id, nil)
		assert.Equal(t, http.StatusNotFound, code, id)
		assert.Equal(t, "Progression not found or access denied", body["message"], id)
	}
}

func TestProgressions_RequireAuth(t *testing.T) {
	a := newApp(t, Options{}, nil)
	anon := a.client(t)

	code, body := anon.do(http.MethodPost, "/api/progressions", gin.H{"name": "x", "chords": []string{"C"}})
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Authentication required", body["message"])

	alice := a.client(t)
	alice.register("alice")
	code, body = alice.do(http.MethodPost, "/api/progressions", gin.H{"name": "No chords"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Invalid input. Name and chords array are required.", body["message"])

	code, body = alice.do(http.MethodPut, "/api/progressions", gin.H{"name": "No id", "chords": []string{"C"}})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Invalid input. ID, name, and chords are required.", body["message"])
}

func TestBearerToken(t *testing.T) {
	a := newApp(t, Options{CSRFEnforce: true}, nil)
	a.client(t).register("alice")

	api := a.client(t)
	code, body := api.do(http.MethodPost, "/api/token", gin.H{"username": "alice", "password": alicePassword})
	require.Equal(t, http.StatusOK, code)
	token := body["token"].(string)
	assert.NotEmpty(t, body["expires_at"])

	code, _ = api.do(http.MethodPost, "/api/token", gin.H{"username": "alice", "password": "Wrong1234"})
	assert.Equal(t, http.StatusUnauthorized, code)

	api.headers["Authorization"] = "Bearer " + token
	code, body = api.do(http.MethodPost, "/api/progressions", gin.H{"name": "Via API", "chords": []string{"Em"}})
	assert.Equal(t, http.StatusCreated, code, body)
	assert.Nil(t, api.cookie(session.CookieName))
}

func TestCSRFEnforcement(t *testing.T) {
	a := newApp(t, Options{CSRFEnforce: true}, nil)
	alice := a.client(t)

	code, body := alice.do(http.MethodGet, "/api/csrf", nil)
	require.Equal(t, http.StatusOK, code)
	csrf := body["csrf_token"].(string)
	require.Len(t, csrf, 64)

	code, _ = alice.do(http.MethodGet, "/api/csrf", nil)
	require.Equal(t, http.StatusOK, code)

	code, body = alice.do(http.MethodPost, "/api/register", gin.H{
		"username": "alice", "email": "alice@example.com", "password": alicePassword,
	})
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "Invalid CSRF token", body["message"])

	alice.headers[middleware.CSRFHeader] = csrf
	code, body = alice.do(http.MethodPost, "/api/register", gin.H{
		"username": "alice", "email": "alice@example.com", "password": alicePassword,
	})
	require.Equal(t, http.StatusCreated, code, body)

	// The session was regenerated on login; the old token no longer applies.
	code, _ = alice.do(http.MethodPost, "/api/progressions", gin.H{"name": "x", "chords": []string{"C"}})
	assert.Equal(t, http.StatusForbidden, code)

	alice.headers[middleware.CSRFHeader] = body["csrf_token"].(string)
	code, _ = alice.do(http.MethodPost, "/api/progressions", gin.H{"name": "x", "chords": []string{"C"}})
	assert.Equal(t, http.StatusCreated, code)
}

func TestChords(t *testing.T) {
	a := newApp(t, Options{}, nil)
	c := a.client(t)

	code, body := c.do(http.MethodGet, "/api/chords", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, body["chords"], "Am")

	code, body = c.do(http.MethodGet, "/api/chords/Am", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Am", body["chord"].(map[string]any)["name"])

	code, body = c.do(http.MethodGet, "/api/chords/D%2FF%23", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "D/F#", body["chord"].(map[string]any)["name"])

	code, body = c.do(http.MethodGet, "/api/chords/H7", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Chord not found", body["message"])
}

func TestHealthAndIndex(t *testing.T) {
	a := newApp(t, Options{}, nil)
	c := a.client(t)

	code, body := c.do(http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, map[string]any{"database": "ok", "sessions": "ok"}, body["checks"])

	code, body = c.do(http.MethodGet, "/api", nil)
	require.Equal(t, http.StatusOK, code)
	assert.NotEmpty(t, body["api"].(map[string]any)["endpoints"])

	code, body = c.do(http.MethodPatch, "/api/progressions", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, code)
	assert.Equal(t, "Method not allowed", body["message"])

	down := newApp(t, Options{}, map[string]controller.Check{
		"redis": func(context.Context) error { return errors.New("connection refused") },
	})
	code, body = down.client(t).do(http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "unavailable", body["checks"].(map[string]any)["redis"])
}

func TestCORSPreflight(t *testing.T) {
	a := newApp(t, Options{AllowedOrigins: []string{"http://localhost:5173"}}, nil)

	req, err := http.NewRequest(http.MethodOptions, a.ts.URL+"/api/progressions", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "http://localhost:5173", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", resp.Header.Get("Access-Control-Allow-Credentials"))
}
