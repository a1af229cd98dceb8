package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/weekwise/internal/contract"
	"github.com/alexanderramin/weekwise/internal/db"
	"github.com/alexanderramin/weekwise/internal/domain"
	"github.com/alexanderramin/weekwise/internal/intelligence"
	"github.com/alexanderramin/weekwise/internal/repository"
	"github.com/google/uuid"
)

type scheduleService struct {
	generator intelligence.ScheduleService
	planner   PlannerService
	runs      repository.ScheduleRunRepo
	uow       db.UnitOfWork
	provider  string
	observer  UseCaseObserver
}

// NewScheduleService builds the schedule use case. planner is only needed for
// requests with Fetch set. When runs and uow are nil nothing is recorded and
// history reads return ErrHistoryDisabled.
func NewScheduleService(
	generator intelligence.ScheduleService,
	planner PlannerService,
	runs repository.ScheduleRunRepo,
	uow db.UnitOfWork,
	provider string,
	observers ...UseCaseObserver,
) ScheduleService {
	return &scheduleService{
		generator: generator,
		planner:   planner,
		runs:      runs,
		uow:       uow,
		provider:  provider,
		observer:  combineObservers(observers),
	}
}

func (s *scheduleService) Generate(ctx context.Context, req contract.GenerateScheduleRequest) (resp *contract.GenerateScheduleResponse, err error) {
	fields := map[string]any{
		"current_date": req.CurrentDate,
		"fetch":        req.Fetch,
	}
	defer observe(ctx, s.observer, "generate-schedule", time.Now().UTC(), fields, &err)

	in := intelligence.ScheduleInput{
		CurrentDate:      req.CurrentDate,
		UnavailableHours: req.UnavailableHours,
	}
	if req.Fetch {
		if s.planner == nil {
			return nil, ErrNoSources
		}
		if in.JiraTasks, err = s.planner.FetchJiraTasks(ctx); err != nil {
			return nil, fmt.Errorf("fetching jira tasks: %w", err)
		}
		if in.CalendarEvents, err = s.planner.FetchCalendarEvents(ctx, req.CurrentDate); err != nil {
			return nil, fmt.Errorf("fetching calendar events: %w", err)
		}
	}
	in.JiraTasks = append(in.JiraTasks, req.ManualJiraTasks...)
	in.CalendarEvents = append(in.CalendarEvents, req.ManualCalendarEvents...)
	fields["task_count"] = len(in.JiraTasks)
	fields["event_count"] = len(in.CalendarEvents)

	out, err := s.generator.Generate(ctx, in)
	if err != nil {
		return nil, err
	}
	fields["item_count"] = len(out.Schedule)
	fields["model"] = out.Model

	resp = &contract.GenerateScheduleResponse{Model: out.Model, Schedule: out.Schedule}
	if resp.Schedule == nil {
		resp.Schedule = []domain.ScheduledItem{}
	}
	if s.uow == nil {
		return resp, nil
	}

	run := &domain.ScheduleRun{
		ID:        uuid.New().String(),
		StartDate: req.CurrentDate,
		Model:     out.Model,
		Provider:  s.provider,
		Items:     resp.Schedule,
		CreatedAt: time.Now().UTC(),
	}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteScheduleRunRepo(tx).Create(ctx, run)
	})
	if err != nil {
		return nil, fmt.Errorf("recording schedule run: %w", err)
	}
	fields["run_id"] = run.ID
	resp.ID = run.ID
	return resp, nil
}

func (s *scheduleService) Get(ctx context.Context, id string) (*domain.ScheduleRun, error) {
	if s.runs == nil {
		return nil, ErrHistoryDisabled
	}
	return s.runs.GetByID(ctx, id)
}

func (s *scheduleService) ListRecent(ctx context.Context, limit int) ([]*domain.ScheduleRun, error) {
	if s.runs == nil {
		return nil, ErrHistoryDisabled
	}
	return s.runs.ListRecent(ctx, limit)
}
