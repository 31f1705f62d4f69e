package controller

import (
	"ctchen222/Chord-Dictionary/internal/api/middleware"
	"ctchen222/Chord-Dictionary/internal/api/models"
	"ctchen222/Chord-Dictionary/internal/api/response"
	"ctchen222/Chord-Dictionary/internal/api/service"
	"ctchen222/Chord-Dictionary/internal/apperr"
	"ctchen222/Chord-Dictionary/internal/session"
	"ctchen222/Chord-Dictionary/internal/validator"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const msgWeakPassword = "Password must be at least 8 characters and contain uppercase, lowercase, and numbers"

var (
	registerMessages = map[string]string{
		"required":     "Username, email, and password are required",
		"Email.email":  "Invalid email format",
		"Email.max":    "Invalid email format",
		"password":     msgWeakPassword,
		"Username.max": "Username must be at most 50 characters",
	}
	loginMessages = map[string]string{
		"required": "Username and password are required",
	}
)

// AuthController handles registration, login and the session lifecycle.
type AuthController struct {
	credentials service.CredentialService
	tokens      service.TokenService
	access      service.AccessTokenService
	sessions    *session.Manager
	debug       bool
}

// NewAuthController creates a new AuthController.
func NewAuthController(
	credentials service.CredentialService,
	tokens service.TokenService,
	access service.AccessTokenService,
	sessions *session.Manager,
	debug bool,
) *AuthController {
	return &AuthController{
		credentials: credentials,
		tokens:      tokens,
		access:      access,
		sessions:    sessions,
		debug:       debug,
	}
}

// Register creates an account and logs the new user in.
func (ac *AuthController) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, bindMessage(err, registerMessages, registerMessages["required"]))
		return
	}

	ctx := c.Request.Context()
	user, err := ac.credentials.Register(ctx, req.Username, strings.TrimSpace(req.Email), req.Password)
	if err != nil {
		response.Error(c, err, ac.debug)
		return
	}

	rc := middleware.SessionFrom(c)
	csrf, err := ac.startSession(c, rc, user)
	if err != nil {
		response.Error(c, err, ac.debug)
		return
	}

	slog.InfoContext(ctx, "User registered", "user.id", user.ID)
	response.CreatedResponse(c, "Registration successful", gin.H{
		"user":       user.Public(),
		"csrf_token": csrf,
	})
}

// Login verifies credentials, starts a session and optionally sets the remember-me cookie.
func (ac *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, bindMessage(err, loginMessages, loginMessages["required"]))
		return
	}

	ctx := c.Request.Context()
	user, err := ac.credentials.Verify(ctx, strings.TrimSpace(req.Username), req.Password)
	if err != nil {
		response.Error(c, err, ac.debug)
		return
	}

	rc := middleware.SessionFrom(c)
	csrf, err := ac.startSession(c, rc, user)
	if err != nil {
		response.Error(c, err, ac.debug)
		return
	}

	if req.Remember {
		token, err := ac.tokens.IssueRememberToken(ctx, user.ID)
		if err != nil {
			// The session is already established; only the remember cookie is lost.
			slog.ErrorContext(ctx, "Failed to issue remember token", "user.id", user.ID, "error", err)
		} else {
			ac.sessions.SetRememberCookie(rc, token)
		}
	}

	response.SuccessResponse(c, "Login successful", gin.H{
		"user":       user.Public(),
		"csrf_token": csrf,
	})
}

// startSession regenerates the session for user and returns its CSRF token.
func (ac *AuthController) startSession(c *gin.Context, rc *session.RequestContext, user *models.User) (string, error) {
	ctx := c.Request.Context()
	data := session.Data{UserID: user.ID, Username: user.Username, Email: user.Email}
	if err := ac.sessions.Start(ctx, rc, data); err != nil {
		return "", apperr.Internal("Failed to start session", err)
	}
	csrf, err := ac.sessions.IssueCSRFToken(ctx, rc)
	if err != nil {
		return "", apperr.Internal("Failed to start session", err)
	}
	return csrf, nil
}

// Logout revokes the remember token and destroys the session.
func (ac *AuthController) Logout(c *gin.Context) {
	ctx := c.Request.Context()
	rc := middleware.SessionFrom(c)

	if rc.RememberToken != "" {
		if err := ac.tokens.RevokeRememberToken(ctx, rc.RememberToken); err != nil {
			response.Error(c, err, ac.debug)
			return
		}
		ac.sessions.ClearRememberCookie(rc)
	}

	if !rc.Bearer {
		if err := ac.sessions.Destroy(ctx, rc); err != nil {
			response.Error(c, apperr.Internal("Failed to end session", err), ac.debug)
			return
		}
	}

	response.SuccessResponse(c, "Logout successful", nil)
}

// User returns the authenticated user.
func (ac *AuthController) User(c *gin.Context) {
	rc := middleware.SessionFrom(c)
	if !rc.Data.Authenticated() {
		response.Error(c, apperr.ErrNotAuthenticated, ac.debug)
		return
	}
	response.SuccessResponse(c, "", gin.H{"user": models.PublicUser{
		ID:       rc.Data.UserID,
		Username: rc.Data.Username,
		Email:    rc.Data.Email,
	}})
}

// ResetPassword either mails a reset link ({email}) or redeems a reset token ({token, password}).
func (ac *AuthController) ResetPassword(c *gin.Context) {
	var req models.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "Invalid request parameters")
		return
	}

	switch {
	case req.Email != "" && req.Token == "":
		ac.requestReset(c, strings.TrimSpace(req.Email))
	case req.Token != "" && req.Password != "":
		ac.redeemReset(c, strings.TrimSpace(req.Token), req.Password)
	default:
		response.ErrorResponse(c, http.StatusBadRequest, "Invalid request parameters")
	}
}

func (ac *AuthController) requestReset(c *gin.Context, email string) {
	if !validator.IsEmail(email) {
		response.ErrorResponse(c, http.StatusBadRequest, "Invalid email format")
		return
	}

	ctx := c.Request.Context()
	if _, err := ac.tokens.RequestPasswordReset(ctx, email); err != nil {
		if !errors.Is(err, apperr.ErrEmailNotFound) {
			response.Error(c, err, ac.debug)
			return
		}
		// Same answer as for a known address so the endpoint cannot probe accounts.
		slog.InfoContext(ctx, "Password reset requested for unknown email")
	}

	response.SuccessResponse(c, "Password reset link sent", nil)
}

func (ac *AuthController) redeemReset(c *gin.Context, token, password string) {
	if !validator.IsStrongPassword(password) {
		response.ErrorResponse(c, http.StatusBadRequest, msgWeakPassword)
		return
	}

	ctx := c.Request.Context()
	user, err := ac.tokens.RedeemPasswordReset(ctx, token, password)
	if err != nil {
		response.Error(c, err, ac.debug)
		return
	}
	if err := ac.sessions.DestroyUserSessions(ctx, user.ID); err != nil {
		slog.WarnContext(ctx, "Failed to drop sessions after password reset", "user.id", user.ID, "error", err)
	}

	response.SuccessResponse(c, "Password reset successful", nil)
}

// CSRFToken returns the session's CSRF token, creating an anonymous session when needed.
func (ac *AuthController) CSRFToken(c *gin.Context) {
	token, err := ac.sessions.IssueCSRFToken(c.Request.Context(), middleware.SessionFrom(c))
	if err != nil {
		response.Error(c, apperr.Internal("Failed to issue CSRF token", err), ac.debug)
		return
	}
	response.SuccessResponse(c, "", gin.H{"csrf_token": token})
}

// Token exchanges credentials for a bearer access token.
func (ac *AuthController) Token(c *gin.Context) {
	var req models.TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, bindMessage(err, loginMessages, loginMessages["required"]))
		return
	}

	user, err := ac.credentials.Verify(c.Request.Context(), strings.TrimSpace(req.Username), req.Password)
	if err != nil {
		response.Error(c, err, ac.debug)
		return
	}

	token, expiresAt, err := ac.access.Issue(user)
	if err != nil {
		response.Error(c, err, ac.debug)
		return
	}

	response.SuccessResponse(c, "", gin.H{
		"token":      token,
		"expires_at": expiresAt.UTC(),
	})
}
