package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/weekwise/internal/db"
	"github.com/alexanderramin/weekwise/internal/domain"
)

// SQLiteScheduleRunRepo implements ScheduleRunRepo using a SQLite database.
type SQLiteScheduleRunRepo struct {
	db db.DBTX
}

// NewSQLiteScheduleRunRepo creates a new SQLiteScheduleRunRepo.
func NewSQLiteScheduleRunRepo(conn db.DBTX) *SQLiteScheduleRunRepo {
	return &SQLiteScheduleRunRepo{db: conn}
}

// Create inserts the run and its items. Callers wanting atomicity pass a
// transaction-backed DBTX.
func (r *SQLiteScheduleRunRepo) Create(ctx context.Context, run *domain.ScheduleRun) error {
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO schedule_runs (id, start_date, model, provider, created_at) VALUES (?, ?, ?, ?, ?)`,
		run.ID, run.StartDate, run.Model, run.Provider, formatTimestamp(run.CreatedAt))
	if err != nil {
		return fmt.Errorf("inserting schedule run: %w", err)
	}

	for i, it := range run.Items {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO scheduled_items (run_id, position, name, start_time, end_time, link, type, project_key, deadline, original_id)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			run.ID, i, it.Name, it.StartTime, it.EndTime, it.Link, string(it.Type), it.ProjectKey, it.Deadline, it.OriginalID)
		if err != nil {
			return fmt.Errorf("inserting scheduled item %d: %w", i, err)
		}
	}
	return nil
}

func (r *SQLiteScheduleRunRepo) GetByID(ctx context.Context, id string) (*domain.ScheduleRun, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, start_date, model, provider, created_at FROM schedule_runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("schedule run %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning schedule run: %w", err)
	}
	if run.Items, err = r.listItems(ctx, id); err != nil {
		return nil, err
	}
	return run, nil
}

// ListRecent returns the newest runs first, items included.
func (r *SQLiteScheduleRunRepo) ListRecent(ctx context.Context, limit int) ([]*domain.ScheduleRun, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, start_date, model, provider, created_at FROM schedule_runs
		ORDER BY created_at DESC, rowid DESC LIMIT ?`, normalizeLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("listing schedule runs: %w", err)
	}
	var runs []*domain.ScheduleRun
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning schedule run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	// Items are loaded after the cursor is closed so a single-connection
	// pool is not asked for a second connection.
	for _, run := range runs {
		if run.Items, err = r.listItems(ctx, run.ID); err != nil {
			return nil, err
		}
	}
	return runs, nil
}

func (r *SQLiteScheduleRunRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM schedule_runs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting schedule run: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("schedule run %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *SQLiteScheduleRunRepo) listItems(ctx context.Context, runID string) ([]domain.ScheduledItem, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT name, start_time, end_time, link, type, project_key, deadline, original_id
		FROM scheduled_items WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, fmt.Errorf("listing scheduled items: %w", err)
	}
	defer rows.Close()

	items := []domain.ScheduledItem{}
	for rows.Next() {
		var it domain.ScheduledItem
		var typ string
		if err := rows.Scan(&it.Name, &it.StartTime, &it.EndTime, &it.Link, &typ,
			&it.ProjectKey, &it.Deadline, &it.OriginalID); err != nil {
			return nil, fmt.Errorf("scanning scheduled item: %w", err)
		}
		it.Type = domain.ItemType(typ)
		items = append(items, it)
	}
	return items, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(s rowScanner) (*domain.ScheduleRun, error) {
	var run domain.ScheduleRun
	var created string
	if err := s.Scan(&run.ID, &run.StartDate, &run.Model, &run.Provider, &created); err != nil {
		return nil, err
	}
	run.CreatedAt = parseTimestamp(created)
	return &run, nil
}
