package middleware

import (
	"ctchen222/Chord-Dictionary/internal/api/response"
	"ctchen222/Chord-Dictionary/internal/api/service"
	"ctchen222/Chord-Dictionary/internal/session"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const authResolvedKey = "auth_resolved"

// Authenticator resolves the request principal from the session, a bearer
// access token or a remember-me cookie, in that order.
type Authenticator struct {
	sessions    *session.Manager
	tokens      service.TokenService
	access      service.AccessTokenService
	credentials service.CredentialService
}

// NewAuthenticator creates a new Authenticator.
func NewAuthenticator(
	sessions *session.Manager,
	tokens service.TokenService,
	access service.AccessTokenService,
	credentials service.CredentialService,
) *Authenticator {
	return &Authenticator{
		sessions:    sessions,
		tokens:      tokens,
		access:      access,
		credentials: credentials,
	}
}

// IsAuthenticated reports whether the request has an authenticated principal.
// A valid remember cookie silently starts a new session; a stale one is cleared.
// The outcome is cached on the gin context.
func (a *Authenticator) IsAuthenticated(c *gin.Context) bool {
	if v, ok := c.Get(authResolvedKey); ok {
		return v.(bool)
	}
	ok := a.resolve(c)
	c.Set(authResolvedKey, ok)
	return ok
}

func (a *Authenticator) resolve(c *gin.Context) bool {
	ctx := c.Request.Context()
	rc := SessionFrom(c)

	if rc.Data.Authenticated() {
		return true
	}

	if raw, ok := bearerToken(c.Request); ok {
		claims, err := a.access.Parse(raw)
		if err != nil {
			slog.DebugContext(ctx, "Rejected bearer token", "error", err)
			return false
		}
		userID, _ := claims.UserID()
		user, err := a.credentials.UserByID(ctx, userID)
		if err != nil {
			slog.WarnContext(ctx, "Bearer token user lookup failed", "user.id", userID, "error", err)
			return false
		}
		rc.Bearer = true
		rc.Data = &session.Data{UserID: user.ID, Username: user.Username, Email: user.Email}
		return true
	}

	if rc.RememberToken == "" {
		return false
	}
	user, err := a.tokens.VerifyRememberToken(ctx, rc.RememberToken)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to verify remember token", "error", err)
		return false
	}
	if user == nil {
		a.sessions.ClearRememberCookie(rc)
		return false
	}

	data := session.Data{UserID: user.ID, Username: user.Username, Email: user.Email}
	if err := a.sessions.Start(ctx, rc, data); err != nil {
		slog.ErrorContext(ctx, "Failed to start session from remember token", "user.id", user.ID, "error", err)
		return false
	}
	slog.InfoContext(ctx, "Session restored from remember token", "user.id", user.ID)
	return true
}

// Resolve runs IsAuthenticated for every request so handlers can read the principal from the session context.
func (a *Authenticator) Resolve() gin.HandlerFunc {
	return func(c *gin.Context) {
		a.IsAuthenticated(c)
		c.Next()
	}
}

// RequireAuth aborts with 401 and message when the request is anonymous.
func (a *Authenticator) RequireAuth(message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !a.IsAuthenticated(c) {
			response.ErrorResponse(c, http.StatusUnauthorized, message)
			return
		}
		c.Next()
	}
}

func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(h, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
