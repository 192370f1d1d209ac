package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/offthegrid/offthegrid/internal/config"
	"github.com/stretchr/testify/require"
)

// openTestDB opens a fresh SQLite file under t.TempDir and closes it on cleanup
func openTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := Open(context.Background(), config.DatabaseConfig{
		URL:      "sqlite://" + filepath.Join(t.TempDir(), "test.db"),
		MaxConns: 1,
	})
	require.NoError(t, err, "Failed to open test database")

	t.Cleanup(func() {
		db.Close()
	})
	return db
}

// setupTestDatabase opens a fresh database with the embedded migrations applied
func setupTestDatabase(t *testing.T) *DB {
	t.Helper()

	db := openTestDB(t)
	require.NoError(t, NewMigrationRunner(db, nil).RunMigrations(context.Background()))
	return db
}

func tableExists(t *testing.T, db *DB, name string) bool {
	t.Helper()

	var count int
	err := db.QueryRowContext(context.Background(),
		"SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?", name).Scan(&count)
	require.NoError(t, err)
	return count > 0
}

func indexExists(t *testing.T, db *DB, name string) bool {
	t.Helper()

	var count int
	err := db.QueryRowContext(context.Background(),
		"SELECT COUNT(*) FROM sqlite_master WHERE type = 'index' AND name = ?", name).Scan(&count)
	require.NoError(t, err)
	return count > 0
}
