package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))
}

func TestMigrate_CreatesAllTables(t *testing.T) {
	db := openTestDB(t)

	for _, table := range []string{"schedule_runs", "scheduled_items", "feedback_entries"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_CreatesIndexes(t *testing.T) {
	db := openTestDB(t)

	for _, idx := range []string{"idx_schedule_runs_created", "idx_scheduled_items_original", "idx_feedback_entries_item"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name=?`, idx).Scan(&name)
		require.NoError(t, err, "index %s should exist", idx)
	}
}

func TestMigrate_AddsProviderColumn(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO schedule_runs (id, start_date, created_at, provider) VALUES ('r1', '2024-05-06', '2024-05-06T00:00:00Z', 'ollama')`)
	require.NoError(t, err)
}

func TestMigrate_ItemTypeConstraint(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO schedule_runs (id, start_date, created_at) VALUES ('r1', '2024-05-06', '2024-05-06T00:00:00Z')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO scheduled_items (run_id, position, name, start_time, end_time, type) VALUES ('r1', 0, 'x', 'a', 'b', 'meeting')`)
	assert.Error(t, err)
}

func TestMigrate_CascadeDeletesItems(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO schedule_runs (id, start_date, created_at) VALUES ('r1', '2024-05-06', '2024-05-06T00:00:00Z')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO scheduled_items (run_id, position, name, start_time, end_time, type) VALUES ('r1', 0, 'x', 'a', 'b', 'jira')`)
	require.NoError(t, err)

	_, err = db.Exec(`DELETE FROM schedule_runs WHERE id = 'r1'`)
	require.NoError(t, err)

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM scheduled_items`).Scan(&n))
	assert.Equal(t, 0, n)
}
