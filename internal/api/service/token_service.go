package service

import (
	"context"
	"ctchen222/Chord-Dictionary/internal/api/models"
	"ctchen222/Chord-Dictionary/internal/api/repository"
	"ctchen222/Chord-Dictionary/internal/apperr"
	"ctchen222/Chord-Dictionary/internal/mailer"
	"ctchen222/Chord-Dictionary/internal/security"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	DefaultRememberTTL = 30 * 24 * time.Hour
	DefaultResetTTL    = time.Hour
)

// TokenService issues and redeems remember-me and password reset tokens.
type TokenService interface {
	IssueRememberToken(ctx context.Context, userID int64) (string, error)
	// VerifyRememberToken returns (nil, nil) when the token is unknown or expired.
	VerifyRememberToken(ctx context.Context, token string) (*models.User, error)
	RevokeRememberToken(ctx context.Context, token string) error
	RequestPasswordReset(ctx context.Context, email string) (*models.PasswordResetToken, error)
	RedeemPasswordReset(ctx context.Context, token, newPassword string) (*models.User, error)
	// PurgeExpired deletes every expired remember and reset token.
	PurgeExpired(ctx context.Context) (int64, error)
}

// TokenOptions sets token lifetimes. Zero values use the defaults.
type TokenOptions struct {
	RememberTTL time.Duration
	ResetTTL    time.Duration
}

type tokenService struct {
	users       repository.UserRepository
	remember    repository.RememberTokenRepository
	resets      repository.PasswordResetRepository
	credentials CredentialService
	mailer      mailer.Mailer
	opts        TokenOptions
	now         func() time.Time
	resetsSent  metric.Int64Counter
}

// NewTokenService creates a new TokenService.
func NewTokenService(
	users repository.UserRepository,
	remember repository.RememberTokenRepository,
	resets repository.PasswordResetRepository,
	credentials CredentialService,
	m mailer.Mailer,
	opts TokenOptions,
) TokenService {
	if opts.RememberTTL <= 0 {
		opts.RememberTTL = DefaultRememberTTL
	}
	if opts.ResetTTL <= 0 {
		opts.ResetTTL = DefaultResetTTL
	}
	return &tokenService{
		users:       users,
		remember:    remember,
		resets:      resets,
		credentials: credentials,
		mailer:      m,
		opts:        opts,
		now:         time.Now,
		resetsSent:  newCounter("auth.password_resets", "Password reset requests and redemptions"),
	}
}

// IssueRememberToken replaces every remember token of the user with a fresh one.
func (s *tokenService) IssueRememberToken(ctx context.Context, userID int64) (string, error) {
	ctx, span := tracer.Start(ctx, "TokenService.IssueRememberToken")
	defer span.End()

	token, err := security.GenerateToken(security.TokenBytes)
	if err != nil {
		return "", apperr.Internal("Failed to create remember token", err)
	}

	if err := s.remember.DeleteByUser(ctx, userID); err != nil {
		return "", apperr.Persistence("rotate remember token", err)
	}

	now := s.now().UTC()
	record := &models.RememberToken{
		UserID:    userID,
		Token:     token,
		ExpiresAt: now.Add(s.opts.RememberTTL),
		CreatedAt: now,
	}
	if err := s.remember.Create(ctx, record); err != nil {
		return "", apperr.Persistence("store remember token", err)
	}
	return token, nil
}

func (s *tokenService) VerifyRememberToken(ctx context.Context, token string) (*models.User, error) {
	ctx, span := tracer.Start(ctx, "TokenService.VerifyRememberToken")
	defer span.End()

	if token == "" {
		return nil, nil
	}

	record, err := s.remember.FindByToken(ctx, token)
	if err != nil {
		return nil, apperr.Persistence("verify remember token", err)
	}
	if record == nil {
		return nil, nil
	}
	if record.Expired(s.now()) {
		if err := s.remember.DeleteByToken(ctx, token); err != nil {
			slog.WarnContext(ctx, "Failed to delete expired remember token", "user.id", record.UserID, "error", err)
		}
		return nil, nil
	}

	user, err := s.users.GetUserByID(ctx, record.UserID)
	if err != nil {
		return nil, apperr.Persistence("verify remember token", err)
	}
	return user, nil
}

func (s *tokenService) RevokeRememberToken(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.remember.DeleteByToken(ctx, token); err != nil {
		return apperr.Persistence("revoke remember token", err)
	}
	return nil
}

// RequestPasswordReset replaces any pending reset for email and mails the new token.
func (s *tokenService) RequestPasswordReset(ctx context.Context, email string) (*models.PasswordResetToken, error) {
	ctx, span := tracer.Start(ctx, "TokenService.RequestPasswordReset")
	defer span.End()

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, apperr.Persistence("look up email", err)
	}
	if user == nil {
		return nil, apperr.ErrEmailNotFound
	}

	token, err := security.GenerateToken(security.TokenBytes)
	if err != nil {
		return nil, apperr.Internal("Password reset request failed", err)
	}

	if err := s.resets.DeleteByEmail(ctx, email); err != nil {
		return nil, apperr.Persistence("replace reset token", err)
	}

	now := s.now().UTC()
	record := &models.PasswordResetToken{
		Email:     email,
		Token:     token,
		ExpiresAt: now.Add(s.opts.ResetTTL),
		CreatedAt: now,
	}
	if err := s.resets.Create(ctx, record); err != nil {
		return nil, apperr.Persistence("store reset token", err)
	}

	err = s.mailer.SendPasswordReset(ctx, mailer.PasswordReset{
		To:        email,
		Token:     token,
		ExpiresAt: record.ExpiresAt,
	})
	if err != nil {
		return nil, apperr.Internal("Failed to send reset email", err)
	}

	s.resetsSent.Add(ctx, 1, metric.WithAttributes(attribute.String("stage", "requested")))
	slog.InfoContext(ctx, "Password reset requested", "user.id", user.ID)
	return record, nil
}

// RedeemPasswordReset sets a new password for a valid token, consumes the token
// and revokes the user's remember tokens.
func (s *tokenService) RedeemPasswordReset(ctx context.Context, token, newPassword string) (*models.User, error) {
	ctx, span := tracer.Start(ctx, "TokenService.RedeemPasswordReset")
	defer span.End()

	record, err := s.resets.FindByToken(ctx, token)
	if err != nil {
		return nil, apperr.Persistence("verify reset token", err)
	}
	if record == nil {
		return nil, apperr.ErrInvalidOrExpiredToken
	}
	if record.Expired(s.now()) {
		if err := s.resets.DeleteByToken(ctx, token); err != nil {
			slog.WarnContext(ctx, "Failed to delete expired reset token", "error", err)
		}
		return nil, apperr.ErrInvalidOrExpiredToken
	}

	if err := s.credentials.SetPassword(ctx, record.Email, newPassword); err != nil {
		if errors.Is(err, apperr.ErrEmailNotFound) {
			return nil, apperr.ErrInvalidOrExpiredToken
		}
		return nil, err
	}

	if err := s.resets.DeleteByToken(ctx, token); err != nil {
		return nil, apperr.Persistence("consume reset token", err)
	}

	user, err := s.users.GetUserByEmail(ctx, record.Email)
	if err != nil {
		return nil, apperr.Persistence("load user", err)
	}
	if user == nil {
		return nil, apperr.ErrInvalidOrExpiredToken
	}
	if err := s.remember.DeleteByUser(ctx, user.ID); err != nil {
		return nil, apperr.Persistence("revoke remember tokens", err)
	}

	s.resetsSent.Add(ctx, 1, metric.WithAttributes(attribute.String("stage", "redeemed")))
	slog.InfoContext(ctx, "Password reset completed", "user.id", user.ID)
	return user, nil
}

func (s *tokenService) PurgeExpired(ctx context.Context) (int64, error) {
	ctx, span := tracer.Start(ctx, "TokenService.PurgeExpired")
	defer span.End()

	now := s.now()
	remember, err := s.remember.DeleteExpired(ctx, now)
	if err != nil {
		return 0, apperr.Persistence("purge remember tokens", err)
	}
	resets, err := s.resets.DeleteExpired(ctx, now)
	if err != nil {
		return remember, apperr.Persistence("purge reset tokens", err)
	}
	return remember + resets, nil
}
