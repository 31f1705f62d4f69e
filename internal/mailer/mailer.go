// Package mailer delivers password reset tokens out-of-band.
package mailer

import (
	"context"
	"log/slog"
	"net/url"
	"time"
)

// PasswordReset is a reset token addressed to a user.
type PasswordReset struct {
	To        string
	Token     string
	ExpiresAt time.Time
}

// Mailer sends account emails.
type Mailer interface {
	SendPasswordReset(ctx context.Context, msg PasswordReset) error
}

// Options configures New.
type Options struct {
	SendgridAPIKey string
	From           string
	ResetURL       string
	// RevealTokens logs reset tokens at debug level from the log mailer.
	RevealTokens bool
}

// New returns a SendGrid mailer when an API key is configured, otherwise a LogMailer.
func New(opts Options, logger *slog.Logger) Mailer {
	if opts.SendgridAPIKey != "" {
		return NewSendGridMailer(opts.SendgridAPIKey, opts.From, opts.ResetURL)
	}
	return NewLogMailer(logger, opts.ResetURL, opts.RevealTokens)
}

// ResetLink appends the token to the reset page URL.
func ResetLink(base, token string) string {
	u, err := url.Parse(base)
	if err != nil || base == "" {
		return base + "?token=" + url.QueryEscape(token)
	}
	q := u.Query()
	q.Set("token", token)
	u.RawQuery = q.Encode()
	return u.String()
}

// LogMailer records sends in the application log instead of delivering them.
type LogMailer struct {
	logger       *slog.Logger
	resetURL     string
	revealTokens bool
}

// NewLogMailer creates a LogMailer. A nil logger uses slog.Default().
func NewLogMailer(logger *slog.Logger, resetURL string, revealTokens bool) *LogMailer {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogMailer{logger: logger, resetURL: resetURL, revealTokens: revealTokens}
}

func (m *LogMailer) SendPasswordReset(ctx context.Context, msg PasswordReset) error {
	m.logger.InfoContext(ctx, "Password reset email queued (log mailer)", "to", msg.To, "expires_at", msg.ExpiresAt)
	if m.revealTokens {
		m.logger.DebugContext(ctx, "Password reset link", "to", msg.To, "link", ResetLink(m.resetURL, msg.Token))
	}
	return nil
}
