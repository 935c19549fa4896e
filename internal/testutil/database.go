package testutil

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jsp1440/orchid-continuum-sub004/internal/database"
)

func NewTestDatabase(t *testing.T) *sql.DB {
	t.Helper()

	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrating test database: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// NewTestPostgres connects to TEST_DATABASE_URL and skips the test when it is unset.
// Tables are truncated before the test runs.
func NewTestPostgres(t *testing.T) *pgxpool.Pool {
	t.Helper()

	databaseURL := os.Getenv("TEST_DATABASE_URL")
	if databaseURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := database.OpenPostgres(ctx, databaseURL)
	if err != nil {
		t.Fatalf("opening test postgres: %v", err)
	}
	t.Cleanup(pool.Close)

	if err := database.MigratePostgres(ctx, pool); err != nil {
		t.Fatalf("migrating test postgres: %v", err)
	}
	if _, err := pool.Exec(ctx, "TRUNCATE calendars, orchids"); err != nil {
		t.Fatalf("truncating test postgres: %v", err)
	}

	return pool
}
