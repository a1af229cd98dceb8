package app

import (
	"context"

	"github.com/alexanderramin/weekwise/internal/domain"
)

type PlannerUseCase interface {
	FetchJiraTasks(ctx context.Context) ([]domain.JiraTask, error)
	FetchCalendarEvents(ctx context.Context, startDate string) ([]domain.CalendarEvent, error)
}

type GenerateScheduleUseCase interface {
	Generate(ctx context.Context, req GenerateScheduleRequest) (*GenerateScheduleResponse, error)
}

type ScheduleHistoryUseCase interface {
	Get(ctx context.Context, id string) (*domain.ScheduleRun, error)
	ListRecent(ctx context.Context, limit int) ([]*domain.ScheduleRun, error)
}

type SubmitFeedbackUseCase interface {
	Submit(ctx context.Context, req FeedbackRequest) (*FeedbackResponse, error)
}

type FeedbackHistoryUseCase interface {
	ListRecent(ctx context.Context, limit int) ([]*domain.FeedbackEntry, error)
	ListByJiraItem(ctx context.Context, jiraItemID string) ([]*domain.FeedbackEntry, error)
}

type ScheduleUseCase interface {
	GenerateScheduleUseCase
	ScheduleHistoryUseCase
}

type FeedbackUseCase interface {
	SubmitFeedbackUseCase
	FeedbackHistoryUseCase
}
