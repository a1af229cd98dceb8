package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate applies the schema. Every statement is safe to re-run.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ADD COLUMN has no IF NOT EXISTS form in SQLite.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS schedule_runs (
		id          TEXT PRIMARY KEY,
		start_date  TEXT NOT NULL,
		model       TEXT NOT NULL DEFAULT '',
		created_at  TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_schedule_runs_created ON schedule_runs(created_at)`,

	`CREATE TABLE IF NOT EXISTS scheduled_items (
		run_id      TEXT NOT NULL REFERENCES schedule_runs(id) ON DELETE CASCADE,
		position    INTEGER NOT NULL,
		name        TEXT NOT NULL,
		start_time  TEXT NOT NULL,
		end_time    TEXT NOT NULL,
		link        TEXT NOT NULL DEFAULT '',
		type        TEXT NOT NULL CHECK(type IN ('jira','calendar')),
		project_key TEXT NOT NULL DEFAULT '',
		deadline    TEXT NOT NULL DEFAULT '',
		original_id TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (run_id, position)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_scheduled_items_original ON scheduled_items(original_id)`,

	`CREATE TABLE IF NOT EXISTS feedback_entries (
		id                 TEXT PRIMARY KEY,
		jira_item_id       TEXT NOT NULL,
		estimated_hours    REAL NOT NULL,
		actual_hours       REAL NOT NULL CHECK(actual_hours > 0),
		manual_adjustments TEXT NOT NULL DEFAULT '',
		success            INTEGER NOT NULL DEFAULT 0,
		message            TEXT NOT NULL DEFAULT '',
		created_at         TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_feedback_entries_item ON feedback_entries(jira_item_id)`,

	// model provider recorded since the openai backend was added
	`ALTER TABLE schedule_runs ADD COLUMN provider TEXT NOT NULL DEFAULT ''`,
}
