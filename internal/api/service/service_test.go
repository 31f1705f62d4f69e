package service

import (
	"context"
	"ctchen222/Chord-Dictionary/internal/api/repository"
	"ctchen222/Chord-Dictionary/internal/db"
	"ctchen222/Chord-Dictionary/internal/mailer"
	"ctchen222/Chord-Dictionary/internal/security"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const strongPassword = "Secret123"

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type recordingMailer struct {
	mu   sync.Mutex
	sent []mailer.PasswordReset
	err  error
}

func (m *recordingMailer) SendPasswordReset(_ context.Context, msg mailer.PasswordReset) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

type testEnv struct {
	conn         *sqlx.DB
	clock        *fakeClock
	mail         *recordingMailer
	users        repository.UserRepository
	remember     repository.RememberTokenRepository
	resets       repository.PasswordResetRepository
	progressions repository.ProgressionRepository
	credentials  *credentialService
	tokens       *tokenService
	progression  *progressionService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	conn, err := db.Connect(context.Background(), db.DriverSQLite, filepath.Join(t.TempDir(), "svc.db"))
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	env := &testEnv{
		conn:         conn,
		clock:        newFakeClock(),
		mail:         &recordingMailer{},
		users:        repository.NewUserRepository(conn),
		remember:     repository.NewRememberTokenRepository(conn),
		resets:       repository.NewPasswordResetRepository(conn),
		progressions: repository.NewProgressionRepository(conn),
	}

	env.credentials = NewCredentialService(env.users, security.NewHasher(bcrypt.MinCost)).(*credentialService)
	env.credentials.now = env.clock.Now
	env.tokens = NewTokenService(env.users, env.remember, env.resets, env.credentials, env.mail, TokenOptions{}).(*tokenService)
	env.tokens.now = env.clock.Now
	env.progression = NewProgressionService(env.progressions).(*progressionService)
	env.progression.now = env.clock.Now
	return env
}
