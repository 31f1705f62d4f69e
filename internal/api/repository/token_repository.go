package repository

import (
	"context"
	"ctchen222/Chord-Dictionary/internal/api/models"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// RememberTokenRepository persists remember-me tokens.
type RememberTokenRepository interface {
	Create(ctx context.Context, token *models.RememberToken) error
	FindByToken(ctx context.Context, token string) (*models.RememberToken, error)
	DeleteByToken(ctx context.Context, token string) error
	DeleteByUser(ctx context.Context, userID int64) error
	// DeleteExpired removes tokens whose expiry is at or before now and returns how many were removed.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// PasswordResetRepository persists password reset tokens.
type PasswordResetRepository interface {
	Create(ctx context.Context, token *models.PasswordResetToken) error
	FindByToken(ctx context.Context, token string) (*models.PasswordResetToken, error)
	DeleteByToken(ctx context.Context, token string) error
	DeleteByEmail(ctx context.Context, email string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type sqlRememberTokenRepository struct {
	db *sqlx.DB
}

// NewRememberTokenRepository creates a new SQL-backed RememberTokenRepository.
func NewRememberTokenRepository(db *sqlx.DB) RememberTokenRepository {
	return &sqlRememberTokenRepository{db: db}
}

func (r *sqlRememberTokenRepository) Create(ctx context.Context, token *models.RememberToken) error {
	ctx, span := tracer.Start(ctx, "RememberTokenRepository.Create")
	defer span.End()

	query := r.db.Rebind(`INSERT INTO remember_tokens (user_id, token, expires_at, created_at) VALUES (?, ?, ?, ?) RETURNING id`)
	err := r.db.GetContext(ctx, &token.ID, query, token.UserID, token.Token, token.ExpiresAt.UTC(), token.CreatedAt.UTC())
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to store remember token: %w", err)
	}
	return nil
}

// FindByToken returns the stored token or (nil, nil) when unknown. Expiry is not checked here.
func (r *sqlRememberTokenRepository) FindByToken(ctx context.Context, token string) (*models.RememberToken, error) {
	ctx, span := tracer.Start(ctx, "RememberTokenRepository.FindByToken")
	defer span.End()

	var t models.RememberToken
	query := r.db.Rebind(`SELECT id, user_id, token, expires_at, created_at FROM remember_tokens WHERE token = ?`)
	if err := r.db.GetContext(ctx, &t, query, token); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find remember token: %w", err)
	}
	return &t, nil
}

func (r *sqlRememberTokenRepository) DeleteByToken(ctx context.Context, token string) error {
	ctx, span := tracer.Start(ctx, "RememberTokenRepository.DeleteByToken")
	defer span.End()

	if _, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM remember_tokens WHERE token = ?`), token); err != nil {
		return fmt.Errorf("failed to delete remember token: %w", err)
	}
	return nil
}

func (r *sqlRememberTokenRepository) DeleteByUser(ctx context.Context, userID int64) error {
	ctx, span := tracer.Start(ctx, "RememberTokenRepository.DeleteByUser")
	defer span.End()

	if _, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM remember_tokens WHERE user_id = ?`), userID); err != nil {
		return fmt.Errorf("failed to delete remember tokens for user: %w", err)
	}
	return nil
}

func (r *sqlRememberTokenRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	ctx, span := tracer.Start(ctx, "RememberTokenRepository.DeleteExpired")
	defer span.End()

	res, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM remember_tokens WHERE expires_at <= ?`), now.UTC())
	if err != nil {
		span.RecordError(err)
		return 0, fmt.Errorf("failed to delete expired remember tokens: %w", err)
	}
	return res.RowsAffected()
}

type sqlPasswordResetRepository struct {
	db *sqlx.DB
}

// NewPasswordResetRepository creates a new SQL-backed PasswordResetRepository.
func NewPasswordResetRepository(db *sqlx.DB) PasswordResetRepository {
	return &sqlPasswordResetRepository{db: db}
}

func (r *sqlPasswordResetRepository) Create(ctx context.Context, token *models.PasswordResetToken) error {
	ctx, span := tracer.Start(ctx, "PasswordResetRepository.Create")
	defer span.End()

	query := r.db.Rebind(`INSERT INTO password_resets (email, token, expires_at, created_at) VALUES (?, ?, ?, ?) RETURNING id`)
	err := r.db.GetContext(ctx, &token.ID, query, token.Email, token.Token, token.ExpiresAt.UTC(), token.CreatedAt.UTC())
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to store reset token: %w", err)
	}
	return nil
}

func (r *sqlPasswordResetRepository) FindByToken(ctx context.Context, token string) (*models.PasswordResetToken, error) {
	ctx, span := tracer.Start(ctx, "PasswordResetRepository.FindByToken")
	defer span.End()

	var t models.PasswordResetToken
	query := r.db.Rebind(`SELECT id, email, token, expires_at, created_at FROM password_resets WHERE token = ?`)
	if err := r.db.GetContext(ctx, &t, query, token); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find reset token: %w", err)
	}
	return &t, nil
}

func (r *sqlPasswordResetRepository) DeleteByToken(ctx context.Context, token string) error {
	ctx, span := tracer.Start(ctx, "PasswordResetRepository.DeleteByToken")
	defer span.End()

	if _, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM password_resets WHERE token = ?`), token); err != nil {
		return fmt.Errorf("failed to delete reset token: %w", err)
	}
	return nil
}

func (r *sqlPasswordResetRepository) DeleteByEmail(ctx context.Context, email string) error {
	ctx, span := tracer.Start(ctx, "PasswordResetRepository.DeleteByEmail")
	defer span.End()

	if _, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM password_resets WHERE email = ?`), email); err != nil {
		return fmt.Errorf("failed to delete reset tokens for email: %w", err)
	}
	return nil
}

func (r *sqlPasswordResetRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	ctx, span := tracer.Start(ctx, "PasswordResetRepository.DeleteExpired")
	defer span.End()

	res, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM password_resets WHERE expires_at <= ?`), now.UTC())
	if err != nil {
		span.RecordError(err)
		return 0, fmt.Errorf("failed to delete expired reset tokens: %w", err)
	}
	return res.RowsAffected()
}
