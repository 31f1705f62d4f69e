package db

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	_ "github.com/glebarez/go-sqlite"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "pgx"
)

func init() {
	// glebarez registers as "sqlite", which sqlx does not know as a "?" driver.
	sqlx.BindDriver(DriverSQLite, sqlx.QUESTION)
}

// Connect opens a connection pool for driver/dsn, verifies it and runs the
// embedded migrations for that dialect.
func Connect(ctx context.Context, driver, dsn string) (*sqlx.DB, error) {
	pool, err := Open(ctx, driver, dsn)
	if err != nil {
		return nil, err
	}
	if err := Migrate(ctx, pool.DB, driver); err != nil {
		pool.Close()
		return nil, err
	}
	slog.InfoContext(ctx, "DB connection initialized and schema verified.", "driver", driver)
	return pool, nil
}

// Open opens and pings a connection pool without touching the schema.
func Open(ctx context.Context, driver, dsn string) (*sqlx.DB, error) {
	if driver == DriverSQLite {
		dsn = withSQLitePragmas(dsn)
	}
	pool, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	switch driver {
	case DriverSQLite:
		// A single connection serialises writers the way SQLite wants anyway.
		pool.SetMaxOpenConns(1)
	case DriverPostgres:
		pool.SetMaxOpenConns(25)
		pool.SetMaxIdleConns(5)
		pool.SetConnMaxIdleTime(5 * time.Minute)
	default:
		pool.Close()
		return nil, fmt.Errorf("unsupported driver %q", driver)
	}

	if err := pool.PingContext(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return pool, nil
}

// withSQLitePragmas makes every pooled connection enforce foreign keys and wait on locks.
func withSQLitePragmas(dsn string) string {
	if strings.Contains(dsn, "_pragma=") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}
