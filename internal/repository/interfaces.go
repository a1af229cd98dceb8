package repository

import (
	"context"

	"github.com/alexanderramin/weekwise/internal/domain"
)

// ScheduleRunRepo stores generated weeks. Runs are history only.
type ScheduleRunRepo interface {
	Create(ctx context.Context, run *domain.ScheduleRun) error
	GetByID(ctx context.Context, id string) (*domain.ScheduleRun, error)
	ListRecent(ctx context.Context, limit int) ([]*domain.ScheduleRun, error)
	Delete(ctx context.Context, id string) error
}

// FeedbackRepo stores evaluated feedback submissions.
type FeedbackRepo interface {
	Create(ctx context.Context, e *domain.FeedbackEntry) error
	ListByJiraItem(ctx context.Context, jiraItemID string) ([]*domain.FeedbackEntry, error)
	ListRecent(ctx context.Context, limit int) ([]*domain.FeedbackEntry, error)
}
