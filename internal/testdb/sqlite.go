package testdb

import (
	"context"
	"database/sql"
	"testing"

	"github.com/phrazzld/taskflow-api/internal/platform/migrate"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

// SQLiteDSN is an in-memory database with foreign keys enforced. Each
// connection to it sees a fresh database, so handles must be limited to a
// single connection.
const SQLiteDSN = ":memory:?_pragma=foreign_keys(1)"

// OpenSQLite returns a fully migrated in-memory SQLite database that is
// closed when the test ends.
func OpenSQLite(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", SQLiteDSN)
	require.NoError(t, err, "failed to open in-memory sqlite")

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	t.Cleanup(func() { _ = db.Close() })

	m, err := migrate.New(db, migrate.DriverSQLite, nil)
	require.NoError(t, err)
	require.NoError(t, m.Up(context.Background()), "failed to migrate in-memory sqlite")

	return db
}
