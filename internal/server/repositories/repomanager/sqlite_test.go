package repomanager

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteOpen_SingleConnectionWithPragmas(t *testing.T) {
	m, dsn, err := ForDSN("sqlite:" + filepath.Join(t.TempDir(), "auth.db"))
	require.NoError(t, err)

	db, err := m.Open(dsn)
	require.NoError(t, err)
	defer db.Close()

	assert.Equal(t, 1, db.Stats().MaxOpenConnections)

	var mode string
	require.NoError(t, db.QueryRowContext(context.Background(), `PRAGMA journal_mode`).Scan(&mode))
	assert.Equal(t, "wal", mode)

	var timeout int
	require.NoError(t, db.QueryRowContext(context.Background(), `PRAGMA busy_timeout`).Scan(&timeout))
	assert.Equal(t, 5000, timeout)

	require.NoError(t, m.RunMigrations(context.Background(), db))
}
