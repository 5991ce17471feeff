package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSqliteCreatesMissingDirectory(t *testing.T) {
	// A fresh deployment points at storages/rules.db before the directory
	// exists; opening the store must create it.
	dsn := filepath.Join(t.TempDir(), "storages", "rules.db")

	db, err := New("sqlite", dsn)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	defer sqlDB.Close()

	require.NoError(t, sqlDB.Ping())
	assert.FileExists(t, dsn)
}

func TestNewRejectsUnknownDriver(t *testing.T) {
	_, err := New("oracle", "whatever")
	require.Error(t, err)
}

func TestEnsureDBDirSkipsMemoryDSNs(t *testing.T) {
	require.NoError(t, ensureDBDir(":memory:"))
	require.NoError(t, ensureDBDir("file::memory:?cache=shared"))
	require.NoError(t, ensureDBDir("rules.db"))
}
