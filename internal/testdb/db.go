//go:build integration

package testdb

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver for database/sql
	"github.com/phrazzld/task-api/internal/ciutil"
	"github.com/phrazzld/task-api/internal/platform/postgres"
	"github.com/stretchr/testify/require"
)

// GetTestDatabaseURL returns the connection string for integration tests.
func GetTestDatabaseURL() string {
	return ciutil.GetTestDatabaseURL(slog.Default())
}

// SetupTestDatabase opens a connection to the test database and migrates it
// to the latest schema. The test is skipped when no database is configured.
// The connection is closed when the test finishes.
func SetupTestDatabase(t *testing.T) *sql.DB {
	t.Helper()

	dbURL := GetTestDatabaseURL()
	if dbURL == "" {
		t.Skip("no test database configured (set TASKAPI_TEST_DB_URL or DATABASE_URL), skipping integration test")
	}

	db, err := sql.Open("pgx", dbURL)
	require.NoError(t, err, "failed to open database connection")
	t.Cleanup(func() { _ = db.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	require.NoError(t, db.PingContext(ctx), "database ping failed")
	require.NoError(t, postgres.Migrate(ctx, db, postgres.MigrateUp, nil), "failed to apply migrations")

	return db
}

// WithTx runs fn inside a transaction that is always rolled back, so each
// test sees a clean database and leaves nothing behind.
func WithTx(t *testing.T, db *sql.DB, fn func(t *testing.T, tx *sql.Tx)) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err, "failed to begin transaction")

	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			t.Logf("Warning: failed to rollback transaction: %v", err)
		}
	}()

	fn(t, tx)
}
