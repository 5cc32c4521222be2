package db

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMigrate_CreatesSnapshotTable(t *testing.T) {
	database, err := OpenDB(":memory:")
	require.NoError(t, err)
	defer database.Close()

	var name string
	err = database.QueryRow(
		`SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'snapshots'`,
	).Scan(&name)
	require.NoError(t, err)
	require.Equal(t, "snapshots", name)
}

func TestMigrate_Rerunnable(t *testing.T) {
	database, err := OpenDB(":memory:")
	require.NoError(t, err)
	defer database.Close()

	require.NoError(t, Migrate(database))
	require.NoError(t, Migrate(database))
}
