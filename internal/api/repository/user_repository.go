package repository

//go:generate mockgen -destination=mocks/repository_mock.go -package=mocks ctchen222/Chord-Dictionary/internal/api/repository PasswordResetRepository,ProgressionRepository,RememberTokenRepository,UserRepository

import (
	"context"
	"ctchen222/Chord-Dictionary/internal/api/models"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("repository.api")

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	UpdateLastLogin(ctx context.Context, id int64, at time.Time) error
	UpdatePasswordByEmail(ctx context.Context, email, passwordHash string) (bool, error)
}

type sqlUserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new SQL-backed UserRepository.
func NewUserRepository(db *sqlx.DB) UserRepository {
	return &sqlUserRepository{db: db}
}

const userColumns = `id, username, email, password_hash, created_at, last_login`

// CreateUser inserts a new user and sets its generated ID.
// The password hash must already be set.
func (r *sqlUserRepository) CreateUser(ctx context.Context, user *models.User) error {
	ctx, span := tracer.Start(ctx, "UserRepository.CreateUser")
	defer span.End()

	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	query := r.db.Rebind(`INSERT INTO users (username, email, password_hash, created_at) VALUES (?, ?, ?, ?) RETURNING id`)
	err := r.db.GetContext(ctx, &user.ID, query, user.Username, user.Email, user.PasswordHash, user.CreatedAt)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetUserByID retrieves a user by primary key. A missing user is (nil, nil).
func (r *sqlUserRepository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	ctx, span := tracer.Start(ctx, "UserRepository.GetUserByID")
	defer span.End()

	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
}

// GetUserByUsername retrieves a user from the database by their username.
func (r *sqlUserRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	ctx, span := tracer.Start(ctx, "UserRepository.GetUserByUsername")
	defer span.End()

	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE username = ?`, username)
}

// GetUserByEmail retrieves a user from the database by their email.
func (r *sqlUserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	ctx, span := tracer.Start(ctx, "UserRepository.GetUserByEmail")
	defer span.End()

	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email)
}

func (r *sqlUserRepository) getOne(ctx context.Context, query string, arg any) (*models.User, error) {
	var user models.User
	err := r.db.GetContext(ctx, &user, r.db.Rebind(query), arg)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // No user found is not an application error
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// UsernameExists reports whether a user with exactly this username exists.
func (r *sqlUserRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	ctx, span := tracer.Start(ctx, "UserRepository.UsernameExists")
	defer span.End()

	return r.exists(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE username = ?)`, username)
}

// EmailExists reports whether a user with exactly this email exists.
func (r *sqlUserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	ctx, span := tracer.Start(ctx, "UserRepository.EmailExists")
	defer span.End()

	return r.exists(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE email = ?)`, email)
}

func (r *sqlUserRepository) exists(ctx context.Context, query string, arg any) (bool, error) {
	var exists bool
	if err := r.db.GetContext(ctx, &exists, r.db.Rebind(query), arg); err != nil {
		return false, fmt.Errorf("database error checking uniqueness: %w", err)
	}
	return exists, nil
}

// UpdateLastLogin stamps the user's last successful login.
func (r *sqlUserRepository) UpdateLastLogin(ctx context.Context, id int64, at time.Time) error {
	ctx, span := tracer.Start(ctx, "UserRepository.UpdateLastLogin")
	defer span.End()

	query := r.db.Rebind(`UPDATE users SET last_login = ? WHERE id = ?`)
	if _, err := r.db.ExecContext(ctx, query, at.UTC(), id); err != nil {
		return fmt.Errorf("error updating last login: %w", err)
	}
	return nil
}

// UpdatePasswordByEmail overwrites the password hash and reports whether a user matched.
func (r *sqlUserRepository) UpdatePasswordByEmail(ctx context.Context, email, passwordHash string) (bool, error) {
	ctx, span := tracer.Start(ctx, "UserRepository.UpdatePasswordByEmail")
	defer span.End()

	query := r.db.Rebind(`UPDATE users SET password_hash = ? WHERE email = ?`)
	res, err := r.db.ExecContext(ctx, query, passwordHash, email)
	if err != nil {
		return false, fmt.Errorf("failed to update user password: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return n > 0, nil
}
