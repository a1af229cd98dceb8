package service

import (
	"context"

	"github.com/alexanderramin/weekwise/internal/contract"
	"github.com/alexanderramin/weekwise/internal/domain"
)

// TaskSource is satisfied by *jira.Client.
type TaskSource interface {
	FetchTasks(ctx context.Context) ([]domain.JiraTask, error)
}

// EventSource is satisfied by *gcal.Client.
type EventSource interface {
	FetchEvents(ctx context.Context, startDate string) ([]domain.CalendarEvent, error)
}

type PlannerService interface {
	FetchJiraTasks(ctx context.Context) ([]domain.JiraTask, error)
	FetchCalendarEvents(ctx context.Context, startDate string) ([]domain.CalendarEvent, error)
}

type ScheduleService interface {
	Generate(ctx context.Context, req contract.GenerateScheduleRequest) (*contract.GenerateScheduleResponse, error)
	Get(ctx context.Context, id string) (*domain.ScheduleRun, error)
	ListRecent(ctx context.Context, limit int) ([]*domain.ScheduleRun, error)
}

type FeedbackService interface {
	Submit(ctx context.Context, req contract.FeedbackRequest) (*contract.FeedbackResponse, error)
	ListRecent(ctx context.Context, limit int) ([]*domain.FeedbackEntry, error)
	ListByJiraItem(ctx context.Context, jiraItemID string) ([]*domain.FeedbackEntry, error)
}
