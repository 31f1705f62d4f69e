// Package session manages server-side sessions, CSRF tokens and auth cookies.
package session

import (
	"context"
	"net/http"
	"time"
)

const (
	CookieName         = "chord_dictionary_session"
	RememberCookieName = "remember_token"
)

// Data is the server-side state of one session. A zero UserID marks an anonymous session.
type Data struct {
	UserID    int64
	Username  string
	Email     string
	CSRFToken string
	CreatedAt time.Time
}

// Authenticated reports whether the session belongs to a user.
func (d *Data) Authenticated() bool {
	return d != nil && d.UserID != 0
}

// Store persists session data by id.
type Store interface {
	// Get returns (nil, nil) for unknown or expired ids.
	Get(ctx context.Context, id string) (*Data, error)
	Save(ctx context.Context, id string, data *Data, ttl time.Duration) error
	Delete(ctx context.Context, id string) error
	// DeleteUser removes every session belonging to userID.
	DeleteUser(ctx context.Context, userID int64) error
	Ping(ctx context.Context) error
}

// RequestContext carries one request's session state and the cookies to send back.
type RequestContext struct {
	// ID is the session id, empty when the request has no live session.
	ID   string
	Data *Data
	// RememberToken is the incoming remember cookie value, if any.
	RememberToken string
	// Bearer is set when the principal was resolved from an access token.
	Bearer bool

	cookies []*http.Cookie
}

// UserID returns the authenticated user id.
func (rc *RequestContext) UserID() (int64, bool) {
	if rc == nil || !rc.Data.Authenticated() {
		return 0, false
	}
	return rc.Data.UserID, true
}

// SetCookie queues a cookie. A later cookie with the same name replaces an earlier one.
func (rc *RequestContext) SetCookie(c *http.Cookie) {
	for i, existing := range rc.cookies {
		if existing.Name == c.Name {
			rc.cookies[i] = c
			return
		}
	}
	rc.cookies = append(rc.cookies, c)
}

// TakeCookies returns the queued cookies and clears the queue.
func (rc *RequestContext) TakeCookies() []*http.Cookie {
	out := rc.cookies
	rc.cookies = nil
	return out
}
