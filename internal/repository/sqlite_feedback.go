package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/weekwise/internal/db"
	"github.com/alexanderramin/weekwise/internal/domain"
)

// SQLiteFeedbackRepo implements FeedbackRepo using a SQLite database.
type SQLiteFeedbackRepo struct {
	db db.DBTX
}

// NewSQLiteFeedbackRepo creates a new SQLiteFeedbackRepo.
func NewSQLiteFeedbackRepo(conn db.DBTX) *SQLiteFeedbackRepo {
	return &SQLiteFeedbackRepo{db: conn}
}

const feedbackColumns = `id, jira_item_id, estimated_hours, actual_hours, manual_adjustments, success, message, created_at`

func (r *SQLiteFeedbackRepo) Create(ctx context.Context, e *domain.FeedbackEntry) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO feedback_entries (`+feedbackColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID,
		e.Feedback.JiraItemID,
		e.Feedback.EstimatedTime,
		e.Feedback.ActualTime,
		e.Feedback.ManualAdjustments,
		boolToInt(e.Verdict.Success),
		e.Verdict.Message,
		formatTimestamp(e.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting feedback entry: %w", err)
	}
	return nil
}

func (r *SQLiteFeedbackRepo) ListByJiraItem(ctx context.Context, jiraItemID string) ([]*domain.FeedbackEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+feedbackColumns+` FROM feedback_entries WHERE jira_item_id = ?
		ORDER BY created_at DESC, rowid DESC`, jiraItemID)
	if err != nil {
		return nil, fmt.Errorf("listing feedback by item: %w", err)
	}
	defer rows.Close()
	return scanFeedbackEntries(rows)
}

func (r *SQLiteFeedbackRepo) ListRecent(ctx context.Context, limit int) ([]*domain.FeedbackEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+feedbackColumns+` FROM feedback_entries
		ORDER BY created_at DESC, rowid DESC LIMIT ?`, normalizeLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("listing recent feedback: %w", err)
	}
	defer rows.Close()
	return scanFeedbackEntries(rows)
}

func scanFeedbackEntries(rows *sql.Rows) ([]*domain.FeedbackEntry, error) {
	var out []*domain.FeedbackEntry
	for rows.Next() {
		var e domain.FeedbackEntry
		var success int
		var created string
		if err := rows.Scan(
			&e.ID,
			&e.Feedback.JiraItemID,
			&e.Feedback.EstimatedTime,
			&e.Feedback.ActualTime,
			&e.Feedback.ManualAdjustments,
			&success,
			&e.Verdict.Message,
			&created,
		); err != nil {
			return nil, fmt.Errorf("scanning feedback entry: %w", err)
		}
		e.Verdict.Success = intToBool(success)
		e.CreatedAt = parseTimestamp(created)
		out = append(out, &e)
	}
	return out, rows.Err()
}
