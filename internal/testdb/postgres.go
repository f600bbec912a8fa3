package testdb

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	"github.com/phrazzld/taskflow-api/internal/platform/migrate"
	"github.com/stretchr/testify/require"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// GetTestDatabaseURL returns the PostgreSQL URL for integration tests, taken
// from TASKFLOW_TEST_DATABASE_URL or DATABASE_URL.
func GetTestDatabaseURL() string {
	if url := os.Getenv("TASKFLOW_TEST_DATABASE_URL"); url != "" {
		return url
	}
	return os.Getenv("DATABASE_URL")
}

// OpenPostgres connects to the integration database and applies migrations.
// The test is skipped when no database URL is configured.
func OpenPostgres(t *testing.T) *sql.DB {
	t.Helper()

	url := GetTestDatabaseURL()
	if url == "" {
		t.Skip("no PostgreSQL database configured; set TASKFLOW_TEST_DATABASE_URL or DATABASE_URL")
	}

	db, err := sql.Open("pgx", url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, db.PingContext(ctx), "failed to reach test database")

	m, err := migrate.New(db, migrate.DriverPostgres, nil)
	require.NoError(t, err)
	require.NoError(t, m.Up(ctx))

	return db
}

// BeginTx starts a transaction that is rolled back when the test ends, so
// tests sharing one database never observe each other's rows.
func BeginTx(t *testing.T, db *sql.DB) *sql.Tx {
	t.Helper()

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err, "failed to begin transaction")
	t.Cleanup(func() { _ = tx.Rollback() })

	return tx
}
