package repository

import (
	"context"
	"ctchen222/Chord-Dictionary/internal/api/models"
	"ctchen222/Chord-Dictionary/internal/db"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "chords.db")
	conn, err := db.Connect(context.Background(), db.DriverSQLite, path)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func seedUser(t *testing.T, repo UserRepository, username string) *models.User {
	t.Helper()
	u := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "$2a$04$hash",
	}
	require.NoError(t, repo.CreateUser(context.Background(), u))
	return u
}

var baseTime = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func seedlessUser() *models.User {
	return &models.User{Username: "alice", Email: "alice@example.com", PasswordHash: "x"}
}
