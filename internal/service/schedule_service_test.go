package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/weekwise/internal/contract"
	"github.com/alexanderramin/weekwise/internal/domain"
	"github.com/alexanderramin/weekwise/internal/intelligence"
	"github.com/alexanderramin/weekwise/internal/jira"
	"github.com/alexanderramin/weekwise/internal/llm"
	"github.com/alexanderramin/weekwise/internal/repository"
	"github.com/alexanderramin/weekwise/internal/testutil"
)

var weekStart = time.Date(2024, 5, 6, 9, 0, 0, 0, time.UTC)

func generatedWeek() *intelligence.ScheduleOutput {
	return &intelligence.ScheduleOutput{
		Model: "llama3.2",
		Schedule: []domain.ScheduledItem{
			testutil.NewTestScheduledItem("[KAN-1] Build", weekStart, testutil.WithOriginalID("KAN-1")),
			testutil.NewTestScheduledItem("Standup", weekStart.Add(24*time.Hour), testutil.AsCalendar()),
		},
	}
}

func TestScheduleService_Generate_ManualOnly(t *testing.T) {
	gen := &fakeGenerator{out: generatedWeek()}
	obs := &recordingObserver{}
	svc := NewScheduleService(gen, nil, nil, nil, "ollama", obs)

	req := contract.NewGenerateScheduleRequest("2024-05-06")
	req.ManualJiraTasks = []domain.JiraTask{testutil.NewTestJiraTask("Build")}

	resp, err := svc.Generate(context.Background(), req)

	require.NoError(t, err)
	assert.Empty(t, resp.ID, "no id without history")
	assert.Equal(t, "llama3.2", resp.Model)
	assert.Len(t, resp.Schedule, 2)
	assert.Len(t, gen.lastIn.JiraTasks, 1)
	assert.Empty(t, gen.lastIn.CalendarEvents)
	assert.Equal(t, "generate-schedule", obs.last().Name)
	assert.Equal(t, 2, obs.last().Fields["item_count"])
}

func TestScheduleService_Generate_FetchPutsManualEntriesLast(t *testing.T) {
	fetched := testutil.NewTestJiraTask("Fetched")
	manual := testutil.NewTestJiraTask("Manual")
	event := testutil.NewTestCalendarEvent("Standup", weekStart, 15*time.Minute)
	events := &fakeEventSource{events: []domain.CalendarEvent{event}}
	planner := NewPlannerService(&fakeTaskSource{tasks: []domain.JiraTask{fetched}}, events)
	gen := &fakeGenerator{out: generatedWeek()}
	svc := NewScheduleService(gen, planner, nil, nil, "ollama")

	req := contract.NewGenerateScheduleRequest("2024-05-06")
	req.Fetch = true
	req.ManualJiraTasks = []domain.JiraTask{manual}

	_, err := svc.Generate(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, []domain.JiraTask{fetched, manual}, gen.lastIn.JiraTasks)
	assert.Equal(t, []domain.CalendarEvent{event}, gen.lastIn.CalendarEvents)
	assert.Equal(t, "2024-05-06", events.lastStart)
}

func TestScheduleService_Generate_FetchWithoutPlanner(t *testing.T) {
	gen := &fakeGenerator{out: generatedWeek()}
	svc := NewScheduleService(gen, nil, nil, nil, "ollama")

	req := contract.NewGenerateScheduleRequest("2024-05-06")
	req.Fetch = true

	_, err := svc.Generate(context.Background(), req)

	assert.ErrorIs(t, err, ErrNoSources)
	assert.Zero(t, gen.calls)
}

func TestScheduleService_Generate_FetchErrorStopsGeneration(t *testing.T) {
	planner := NewPlannerService(&fakeTaskSource{err: jira.ErrAuthFailed}, &fakeEventSource{})
	gen := &fakeGenerator{out: generatedWeek()}
	svc := NewScheduleService(gen, planner, nil, nil, "ollama")

	req := contract.NewGenerateScheduleRequest("2024-05-06")
	req.Fetch = true

	_, err := svc.Generate(context.Background(), req)

	assert.ErrorIs(t, err, jira.ErrAuthFailed)
	assert.Zero(t, gen.calls)
}

func TestScheduleService_Generate_LLMErrorPropagates(t *testing.T) {
	gen := &fakeGenerator{err: fmt.Errorf("llm schedule generation failed: %w", llm.ErrTimeout)}
	obs := &recordingObserver{}
	svc := NewScheduleService(gen, nil, nil, nil, "ollama", obs)

	_, err := svc.Generate(context.Background(), contract.NewGenerateScheduleRequest("2024-05-06"))

	assert.ErrorIs(t, err, llm.ErrTimeout)
	assert.False(t, obs.last().Success)
}

func TestScheduleService_Generate_NilScheduleBecomesEmpty(t *testing.T) {
	gen := &fakeGenerator{out: &intelligence.ScheduleOutput{Model: "m"}}
	svc := NewScheduleService(gen, nil, nil, nil, "ollama")

	resp, err := svc.Generate(context.Background(), contract.NewGenerateScheduleRequest("2024-05-06"))

	require.NoError(t, err)
	assert.NotNil(t, resp.Schedule)
	assert.Empty(t, resp.Schedule)
}

func TestScheduleService_Generate_RecordsRun(t *testing.T) {
	database := testutil.NewTestDB(t)
	runs := repository.NewSQLiteScheduleRunRepo(database)
	svc := NewScheduleService(&fakeGenerator{out: generatedWeek()}, nil, runs, testutil.NewTestUoW(database), "openai")
	ctx := context.Background()

	resp, err := svc.Generate(ctx, contract.NewGenerateScheduleRequest("2024-05-06"))
	require.NoError(t, err)
	require.NotEmpty(t, resp.ID)

	run, err := svc.Get(ctx, resp.ID)
	require.NoError(t, err)
	assert.Equal(t, "2024-05-06", run.StartDate)
	assert.Equal(t, "llama3.2", run.Model)
	assert.Equal(t, "openai", run.Provider)
	assert.Equal(t, resp.Schedule, run.Items)

	recent, err := svc.ListRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, resp.ID, recent[0].ID)
}

func TestScheduleService_Generate_RollbackOnItemInsertFailure(t *testing.T) {
	database := testutil.NewTestDB(t)
	runs := repository.NewSQLiteScheduleRunRepo(database)

	// ExecContext #1 = run insert, #2 = first item insert
	failUoW := &testutil.FailOnNthExecUoW{
		DB:     database,
		FailOn: 2,
		Err:    errors.New("injected item insert failure"),
	}
	svc := NewScheduleService(&fakeGenerator{out: generatedWeek()}, nil, runs, failUoW, "ollama")
	ctx := context.Background()

	_, err := svc.Generate(ctx, contract.NewGenerateScheduleRequest("2024-05-06"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "injected item insert failure")

	recent, err := runs.ListRecent(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, recent, "run insert must be rolled back")
}

func TestScheduleService_HistoryDisabled(t *testing.T) {
	svc := NewScheduleService(&fakeGenerator{}, nil, nil, nil, "ollama")

	_, err := svc.Get(context.Background(), "x")
	assert.ErrorIs(t, err, ErrHistoryDisabled)

	_, err = svc.ListRecent(context.Background(), 5)
	assert.ErrorIs(t, err, ErrHistoryDisabled)
}

func TestScheduleService_Get_NotFound(t *testing.T) {
	database := testutil.NewTestDB(t)
	svc := NewScheduleService(&fakeGenerator{}, nil,
		repository.NewSQLiteScheduleRunRepo(database), testutil.NewTestUoW(database), "ollama")

	_, err := svc.Get(context.Background(), "missing")

	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.Equal(t, contract.ErrCodeNotFound, ClassifyError(err))
}
