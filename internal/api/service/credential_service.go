package service

import (
	"context"
	"ctchen222/Chord-Dictionary/internal/api/models"
	"ctchen222/Chord-Dictionary/internal/api/repository"
	"ctchen222/Chord-Dictionary/internal/apperr"
	"ctchen222/Chord-Dictionary/internal/security"
	"ctchen222/Chord-Dictionary/internal/validator"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// CredentialService defines user registration and password checks.
type CredentialService interface {
	Register(ctx context.Context, username, email, password string) (*models.User, error)
	Verify(ctx context.Context, identifier, password string) (*models.User, error)
	SetPassword(ctx context.Context, email, newPassword string) error
	UserByID(ctx context.Context, id int64) (*models.User, error)
}

type credentialService struct {
	users         repository.UserRepository
	hasher        *security.Hasher
	now           func() time.Time
	logins        metric.Int64Counter
	registrations metric.Int64Counter
}

// NewCredentialService creates a new CredentialService.
func NewCredentialService(users repository.UserRepository, hasher *security.Hasher) CredentialService {
	return &credentialService{
		users:         users,
		hasher:        hasher,
		now:           time.Now,
		logins:        newCounter("auth.logins", "Login attempts by outcome"),
		registrations: newCounter("auth.registrations", "Successful registrations"),
	}
}

// Register creates a user after checking that username and email are unused.
// The username is sanitised before the check; matching is exact and case-sensitive.
func (s *credentialService) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	ctx, span := tracer.Start(ctx, "CredentialService.Register")
	defer span.End()

	username = security.SanitizeInput(username)
	if username == "" {
		return nil, apperr.Validation("Username is required")
	}

	if err := s.checkAvailable(ctx, username, email); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, apperr.Internal("Registration failed", err)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		// A concurrent registration may have claimed the name between check and insert.
		if takenErr := s.checkAvailable(ctx, username, email); takenErr != nil {
			return nil, takenErr
		}
		return nil, apperr.Persistence("register user", err)
	}

	s.registrations.Add(ctx, 1)
	slog.InfoContext(ctx, "User registered", "user.id", user.ID, "user.name", user.Username)
	return user, nil
}

func (s *credentialService) checkAvailable(ctx context.Context, username, email string) error {
	taken, err := s.users.UsernameExists(ctx, username)
	if err != nil {
		return apperr.Persistence("check username", err)
	}
	if taken {
		return apperr.ErrUsernameTaken
	}

	taken, err = s.users.EmailExists(ctx, email)
	if err != nil {
		return apperr.Persistence("check email", err)
	}
	if taken {
		return apperr.ErrEmailTaken
	}
	return nil
}

// Verify checks a password for a username or email and stamps the login time.
// Unknown users and wrong passwords are indistinguishable to the caller.
func (s *credentialService) Verify(ctx context.Context, identifier, password string) (*models.User, error) {
	ctx, span := tracer.Start(ctx, "CredentialService.Verify")
	defer span.End()

	var (
		user *models.User
		err  error
	)
	if validator.IsEmail(identifier) {
		user, err = s.users.GetUserByEmail(ctx, identifier)
	} else {
		user, err = s.users.GetUserByUsername(ctx, security.SanitizeInput(identifier))
	}
	if err != nil {
		return nil, apperr.Persistence("look up user", err)
	}
	if user == nil {
		s.logins.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "unknown_user")))
		return nil, apperr.ErrInvalidCredentials
	}

	ok, err := s.hasher.Verify(user.PasswordHash, password)
	if err != nil {
		return nil, apperr.Internal("Login failed", err)
	}
	if !ok {
		s.logins.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "bad_password")))
		return nil, apperr.ErrInvalidCredentials
	}

	now := s.now().UTC()
	if err := s.users.UpdateLastLogin(ctx, user.ID, now); err != nil {
		slog.WarnContext(ctx, "Failed to record last login", "user.id", user.ID, "error", err)
	} else {
		user.LastLogin = &now
	}

	s.logins.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "success")))
	return user, nil
}

// SetPassword rehashes and stores a new password for the user with email.
func (s *credentialService) SetPassword(ctx context.Context, email, newPassword string) error {
	ctx, span := tracer.Start(ctx, "CredentialService.SetPassword")
	defer span.End()

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return apperr.Internal("Password reset failed", err)
	}
	matched, err := s.users.UpdatePasswordByEmail(ctx, email, hash)
	if err != nil {
		return apperr.Persistence("update password", err)
	}
	if !matched {
		return apperr.ErrEmailNotFound
	}
	return nil
}

// UserByID loads a user, reporting a missing one as not authenticated.
func (s *credentialService) UserByID(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		return nil, apperr.Persistence("load user", err)
	}
	if user == nil {
		return nil, apperr.ErrNotAuthenticated
	}
	return user, nil
}
