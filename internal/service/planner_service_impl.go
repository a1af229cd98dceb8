package service

import (
	"context"
	"time"

	"github.com/alexanderramin/weekwise/internal/domain"
)

type plannerService struct {
	tasks    TaskSource
	events   EventSource
	observer UseCaseObserver
}

// NewPlannerService wraps the fetch adapters. Either source may be nil, in
// which case its fetch returns ErrNoSources.
func NewPlannerService(tasks TaskSource, events EventSource, observers ...UseCaseObserver) PlannerService {
	return &plannerService{
		tasks:    tasks,
		events:   events,
		observer: combineObservers(observers),
	}
}

func (s *plannerService) FetchJiraTasks(ctx context.Context) (tasks []domain.JiraTask, err error) {
	fields := map[string]any{}
	defer observe(ctx, s.observer, "fetch-jira-tasks", time.Now().UTC(), fields, &err)

	if s.tasks == nil {
		return nil, ErrNoSources
	}
	tasks, err = s.tasks.FetchTasks(ctx)
	if err != nil {
		return nil, err
	}
	fields["task_count"] = len(tasks)
	return tasks, nil
}

func (s *plannerService) FetchCalendarEvents(ctx context.Context, startDate string) (events []domain.CalendarEvent, err error) {
	fields := map[string]any{"start_date": startDate}
	defer observe(ctx, s.observer, "fetch-calendar-events", time.Now().UTC(), fields, &err)

	if s.events == nil {
		return nil, ErrNoSources
	}
	events, err = s.events.FetchEvents(ctx, startDate)
	if err != nil {
		return nil, err
	}
	fields["event_count"] = len(events)
	return events, nil
}
