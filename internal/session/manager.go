package session

import (
	"context"
	"ctchen222/Chord-Dictionary/internal/security"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// Options configures a Manager.
type Options struct {
	TTL         time.Duration
	RememberTTL time.Duration
	Secure      bool
}

// Manager implements the session lifecycle on top of a Store.
type Manager struct {
	store Store
	opts  Options
	now   func() time.Time
}

// NewManager creates a new Manager.
func NewManager(store Store, opts Options) *Manager {
	return &Manager{store: store, opts: opts, now: time.Now}
}

// Load builds the RequestContext for r. Store failures degrade to an anonymous context.
func (m *Manager) Load(ctx context.Context, r *http.Request) *RequestContext {
	rc := &RequestContext{}
	if c, err := r.Cookie(RememberCookieName); err == nil {
		rc.RememberToken = c.Value
	}

	c, err := r.Cookie(CookieName)
	if err != nil || c.Value == "" {
		return rc
	}
	data, err := m.store.Get(ctx, c.Value)
	if err != nil {
		slog.WarnContext(ctx, "Failed to load session", "error", err)
		return rc
	}
	if data == nil {
		return rc
	}
	rc.ID = c.Value
	rc.Data = data
	return rc
}

// Start begins a new session for data, discarding any previous one.
// The session id is regenerated on every call.
func (m *Manager) Start(ctx context.Context, rc *RequestContext, data Data) error {
	if rc.ID != "" {
		if err := m.store.Delete(ctx, rc.ID); err != nil {
			return fmt.Errorf("failed to drop previous session: %w", err)
		}
		rc.ID, rc.Data = "", nil
	}

	id, err := security.GenerateToken(security.TokenBytes)
	if err != nil {
		return err
	}
	if data.CreatedAt.IsZero() {
		data.CreatedAt = m.now().UTC()
	}
	if err := m.store.Save(ctx, id, &data, m.opts.TTL); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	rc.ID = id
	rc.Data = &data
	rc.SetCookie(m.cookie(CookieName, id, m.opts.TTL))
	return nil
}

// Destroy ends the current session and expires its cookie.
func (m *Manager) Destroy(ctx context.Context, rc *RequestContext) error {
	if rc.ID != "" {
		if err := m.store.Delete(ctx, rc.ID); err != nil {
			return fmt.Errorf("failed to delete session: %w", err)
		}
	}
	rc.ID, rc.Data = "", nil
	rc.SetCookie(m.cookie(CookieName, "", -1))
	return nil
}

// IssueCSRFToken returns the session's CSRF token, creating it once per session.
// A request without a session gets an anonymous one.
func (m *Manager) IssueCSRFToken(ctx context.Context, rc *RequestContext) (string, error) {
	if rc.Data != nil && rc.Data.CSRFToken != "" {
		return rc.Data.CSRFToken, nil
	}

	token, err := security.GenerateToken(security.TokenBytes)
	if err != nil {
		return "", err
	}

	if rc.ID == "" {
		if err := m.Start(ctx, rc, Data{CSRFToken: token}); err != nil {
			return "", err
		}
		return token, nil
	}

	rc.Data.CSRFToken = token
	if err := m.store.Save(ctx, rc.ID, rc.Data, m.opts.TTL); err != nil {
		rc.Data.CSRFToken = ""
		return "", fmt.Errorf("failed to save csrf token: %w", err)
	}
	return token, nil
}

// VerifyCSRFToken reports whether candidate is byte-identical to the session's token.
func (m *Manager) VerifyCSRFToken(rc *RequestContext, candidate string) bool {
	if rc == nil || rc.Data == nil {
		return false
	}
	return security.TokensEqual(rc.Data.CSRFToken, candidate)
}

// SetRememberCookie queues the long-lived remember-me cookie.
func (m *Manager) SetRememberCookie(rc *RequestContext, token string) {
	rc.RememberToken = token
	rc.SetCookie(m.cookie(RememberCookieName, token, m.opts.RememberTTL))
}

// ClearRememberCookie expires the remember-me cookie.
func (m *Manager) ClearRememberCookie(rc *RequestContext) {
	rc.RememberToken = ""
	rc.SetCookie(m.cookie(RememberCookieName, "", -1))
}

// DestroyUserSessions drops every session of userID, e.g. after a password change.
func (m *Manager) DestroyUserSessions(ctx context.Context, userID int64) error {
	if err := m.store.DeleteUser(ctx, userID); err != nil {
		return fmt.Errorf("failed to delete user sessions: %w", err)
	}
	return nil
}

// Ping checks the backing store.
func (m *Manager) Ping(ctx context.Context) error {
	return m.store.Ping(ctx)
}

// cookie builds an auth cookie. A negative ttl expires it.
func (m *Manager) cookie(name, value string, ttl time.Duration) *http.Cookie {
	c := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.opts.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	if ttl < 0 {
		c.MaxAge = -1
		c.Expires = time.Unix(0, 0)
		return c
	}
	c.MaxAge = int(ttl.Seconds())
	c.Expires = m.now().Add(ttl)
	return c
}
