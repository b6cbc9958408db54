package testutil

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/pauta/internal/db"
	"github.com/stretchr/testify/require"
)

// NewTestDB opens a migrated in-memory database that is closed at cleanup.
// It holds a single connection, so every repository sees the same data.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	return openTestDB(t, ":memory:")
}

// NewTestFileDB is NewTestDB on a file under t.TempDir, for tests that need
// several pooled connections.
func NewTestFileDB(t *testing.T) *sql.DB {
	t.Helper()
	return openTestDB(t, filepath.Join(t.TempDir(), "pauta.db"))
}

func openTestDB(t *testing.T, path string) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(path)
	require.NoError(t, err, "opening test database %s", path)
	t.Cleanup(func() { _ = database.Close() })
	return database
}

func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}
