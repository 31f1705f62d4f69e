package db

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnect_SQLiteAppliesSchema(t *testing.T) {
	ctx := context.Background()
	pool, err := Connect(ctx, DriverSQLite, filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer pool.Close()

	for _, table := range []string{"users", "remember_tokens", "password_resets", "saved_progressions"} {
		var name string
		err := pool.GetContext(ctx, &name, "SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table)
		require.NoError(t, err, table)
		assert.Equal(t, table, name)
	}

	// Running migrations again is a no-op.
	require.NoError(t, Migrate(ctx, pool.DB, DriverSQLite))
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open(context.Background(), "mysql", "whatever")
	assert.Error(t, err)
}

func TestMigrationSource(t *testing.T) {
	dialect, dir, err := migrationSource(DriverPostgres)
	require.NoError(t, err)
	assert.Equal(t, "postgres", dialect)
	assert.Equal(t, "migrations/postgres", dir)

	_, _, err = migrationSource("oracle")
	assert.Error(t, err)
}

func TestMigrate_WrapsGooseError(t *testing.T) {
	orig := gooseUpContext
	defer func() { gooseUpContext = orig }()

	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return errors.New("boom")
	}

	err := Migrate(context.Background(), nil, DriverSQLite)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to run migrations")
}

func TestEmbeddedMigrationsPresent(t *testing.T) {
	for _, dir := range []string{"migrations/sqlite", "migrations/postgres"} {
		entries, err := migrations.ReadDir(dir)
		require.NoError(t, err)
		assert.NotEmpty(t, entries, dir)
	}
}

func TestOpen_SQLiteEnforcesForeignKeys(t *testing.T) {
	ctx := context.Background()
	pool, err := Open(ctx, DriverSQLite, filepath.Join(t.TempDir(), "fk.db"))
	require.NoError(t, err)
	defer pool.Close()

	var enabled int
	require.NoError(t, pool.GetContext(ctx, &enabled, "PRAGMA foreign_keys"))
	assert.Equal(t, 1, enabled)
}

func TestWithSQLitePragmas(t *testing.T) {
	assert.Equal(t, "a.db?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", withSQLitePragmas("a.db"))
	assert.Equal(t, "a.db?mode=rw&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", withSQLitePragmas("a.db?mode=rw"))
	assert.Equal(t, "a.db?_pragma=journal_mode(WAL)", withSQLitePragmas("a.db?_pragma=journal_mode(WAL)"))
}
