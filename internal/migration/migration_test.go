package migration_test

import (
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/medexy/sandelia/internal/entity"
	"github.com/medexy/sandelia/internal/migration"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestEnsureTables_CreatesEverySchema(t *testing.T) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, migration.EnsureTables(conn))

	for _, table := range entity.Tables() {
		var count int64
		err := conn.Raw(
			"SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?",
			table.Name,
		).Scan(&count).Error
		require.NoError(t, err)
		assert.Equal(t, int64(1), count, "table %s missing", table.Name)
	}
}

func TestEnsureTables_Idempotent(t *testing.T) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, migration.EnsureTables(conn))

	// Existing data survives a re-run.
	require.NoError(t, conn.Exec(
		"INSERT INTO manager (manager_id, manager_name, manager_location, access, timestamp, status) VALUES (?, ?, ?, ?, ?, ?)",
		"m1", "Ona", "Vilnius", "user", "2024-03-01 10:00:00.000000", "I",
	).Error)

	require.NoError(t, migration.EnsureTables(conn))

	var count int64
	require.NoError(t, conn.Raw("SELECT COUNT(*) FROM manager").Scan(&count).Error)
	assert.Equal(t, int64(1), count)
}
