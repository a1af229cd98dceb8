package app

import (
	"time"

	"github.com/alexanderramin/weekwise/internal/domain"
)

type GenerateScheduleRequest struct {
	CurrentDate          string                   `json:"currentDate"`
	ManualJiraTasks      []domain.JiraTask        `json:"manualJiraTasks,omitempty"`
	ManualCalendarEvents []domain.CalendarEvent   `json:"manualCalendarEvents,omitempty"`
	UnavailableHours     []domain.UnavailableHour `json:"unavailableHours"`
	// Fetch pulls Jira tasks and the week's calendar events before the
	// manual entries; a manual entry with the same name replaces the fetched one.
	Fetch bool `json:"fetch,omitempty"`
}

func NewGenerateScheduleRequest(currentDate string) GenerateScheduleRequest {
	return GenerateScheduleRequest{
		CurrentDate:          currentDate,
		ManualJiraTasks:      []domain.JiraTask{},
		ManualCalendarEvents: []domain.CalendarEvent{},
		UnavailableHours:     []domain.UnavailableHour{},
	}
}

type GenerateScheduleResponse struct {
	ID       string                 `json:"id,omitempty"`
	Model    string                 `json:"model,omitempty"`
	Schedule []domain.ScheduledItem `json:"schedule"`
}

type ScheduleRunSummary struct {
	ID        string    `json:"id"`
	StartDate string    `json:"startDate"`
	Model     string    `json:"model"`
	Provider  string    `json:"provider,omitempty"`
	ItemCount int       `json:"itemCount"`
	CreatedAt time.Time `json:"createdAt"`
}

type ScheduleRunDetail struct {
	ScheduleRunSummary
	Schedule []domain.ScheduledItem `json:"schedule"`
}

func NewScheduleRunSummary(run *domain.ScheduleRun) ScheduleRunSummary {
	return ScheduleRunSummary{
		ID:        run.ID,
		StartDate: run.StartDate,
		Model:     run.Model,
		Provider:  run.Provider,
		ItemCount: len(run.Items),
		CreatedAt: run.CreatedAt,
	}
}

func NewScheduleRunDetail(run *domain.ScheduleRun) ScheduleRunDetail {
	items := run.Items
	if items == nil {
		items = []domain.ScheduledItem{}
	}
	return ScheduleRunDetail{ScheduleRunSummary: NewScheduleRunSummary(run), Schedule: items}
}
