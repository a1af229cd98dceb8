package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/weekwise/internal/domain"
)

var testIssueCounter atomic.Int64

// Jira task options
type TaskOption func(*domain.JiraTask)

func WithDeadline(d string) TaskOption {
	return func(t *domain.JiraTask) {
		t.Deadline = d
	}
}

func WithProjectKey(key string) TaskOption {
	return func(t *domain.JiraTask) {
		t.ProjectKey = key
	}
}

// NewTestJiraTask builds a valid task with a unique KAN issue key.
func NewTestJiraTask(summary string, opts ...TaskOption) domain.JiraTask {
	key := fmt.Sprintf("KAN-%d", testIssueCounter.Add(1))
	t := domain.JiraTask{
		Name:       fmt.Sprintf("[%s] %s", key, summary),
		Link:       "https://jira.example.com/browse/" + key,
		ProjectKey: "KAN",
	}
	for _, opt := range opts {
		opt(&t)
	}
	return t
}

// NewTestCalendarEvent builds an event starting at start and lasting d.
func NewTestCalendarEvent(name string, start time.Time, d time.Duration) domain.CalendarEvent {
	return domain.CalendarEvent{
		Name:      name,
		StartTime: domain.FormatISO(start),
		EndTime:   domain.FormatISO(start.Add(d)),
		Link:      "https://calendar.google.com",
	}
}

// Scheduled item options
type ItemOption func(*domain.ScheduledItem)

func AsCalendar() ItemOption {
	return func(it *domain.ScheduledItem) {
		it.Type = domain.ItemCalendar
		it.ProjectKey = ""
		it.OriginalID = ""
	}
}

func WithOriginalID(id string) ItemOption {
	return func(it *domain.ScheduledItem) {
		it.OriginalID = id
	}
}

// NewTestScheduledItem builds a one-hour jira item starting at start.
func NewTestScheduledItem(name string, start time.Time, opts ...ItemOption) domain.ScheduledItem {
	it := domain.ScheduledItem{
		Name:       name,
		StartTime:  domain.FormatISO(start),
		EndTime:    domain.FormatISO(start.Add(time.Hour)),
		Type:       domain.ItemJira,
		ProjectKey: "KAN",
	}
	for _, opt := range opts {
		opt(&it)
	}
	return it
}

// NewTestScheduleRun builds an unsaved run with a fresh ID.
func NewTestScheduleRun(startDate string, items ...domain.ScheduledItem) *domain.ScheduleRun {
	return &domain.ScheduleRun{
		ID:        uuid.New().String(),
		StartDate: startDate,
		Model:     "llama3.2",
		Provider:  "ollama",
		Items:     items,
		CreatedAt: time.Now().UTC(),
	}
}

// NewTestFeedbackEntry builds an unsaved feedback entry for itemID.
func NewTestFeedbackEntry(itemID string, actual float64, success bool) *domain.FeedbackEntry {
	return &domain.FeedbackEntry{
		ID: uuid.New().String(),
		Feedback: domain.LearningFeedback{
			JiraItemID:    itemID,
			EstimatedTime: domain.DefaultEstimatedHours,
			ActualTime:    actual,
		},
		Verdict: domain.FeedbackVerdict{
			Success: success,
			Message: fmt.Sprintf("%s took %.1fh", itemID, actual),
		},
		CreatedAt: time.Now().UTC(),
	}
}
