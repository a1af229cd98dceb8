package web

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/weekwise/internal/contract"
	"github.com/alexanderramin/weekwise/internal/domain"
	"github.com/alexanderramin/weekwise/internal/gcal"
	"github.com/alexanderramin/weekwise/internal/jira"
	"github.com/alexanderramin/weekwise/internal/llm"
	"github.com/alexanderramin/weekwise/internal/repository"
	"github.com/alexanderramin/weekwise/internal/testutil"
)

var monday = time.Date(2024, 5, 6, 9, 0, 0, 0, time.UTC)

type fakePlanner struct {
	tasks     []domain.JiraTask
	events    []domain.CalendarEvent
	err       error
	lastStart string
}

func (f *fakePlanner) FetchJiraTasks(context.Context) ([]domain.JiraTask, error) {
	return f.tasks, f.err
}

func (f *fakePlanner) FetchCalendarEvents(_ context.Context, startDate string) ([]domain.CalendarEvent, error) {
	f.lastStart = startDate
	return f.events, f.err
}

type fakeSchedules struct {
	resp    *contract.GenerateScheduleResponse
	err     error
	lastReq contract.GenerateScheduleRequest
	runs    []*domain.ScheduleRun
}

func (f *fakeSchedules) Generate(_ context.Context, req contract.GenerateScheduleRequest) (*contract.GenerateScheduleResponse, error) {
	f.lastReq = req
	return f.resp, f.err
}

func (f *fakeSchedules) Get(_ context.Context, id string) (*domain.ScheduleRun, error) {
	for _, r := range f.runs {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, fmt.Errorf("schedule run %s: %w", id, repository.ErrNotFound)
}

func (f *fakeSchedules) ListRecent(_ context.Context, limit int) ([]*domain.ScheduleRun, error) {
	if limit < len(f.runs) {
		return f.runs[:limit], nil
	}
	return f.runs, nil
}

type fakeFeedback struct {
	resp     *contract.FeedbackResponse
	err      error
	lastReq  contract.FeedbackRequest
	entries  []*domain.FeedbackEntry
	lastItem string
}

func (f *fakeFeedback) Submit(_ context.Context, req contract.FeedbackRequest) (*contract.FeedbackResponse, error) {
	f.lastReq = req
	return f.resp, f.err
}

func (f *fakeFeedback) ListRecent(context.Context, int) ([]*domain.FeedbackEntry, error) {
	return f.entries, nil
}

func (f *fakeFeedback) ListByJiraItem(_ context.Context, item string) ([]*domain.FeedbackEntry, error) {
	f.lastItem = item
	return f.entries, nil
}

type fakeHealth bool

func (h fakeHealth) Available(context.Context) bool { return bool(h) }

func newTestServer(deps Deps) *Server {
	deps.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	deps.Location = time.UTC
	deps.Now = func() time.Time { return monday }
	return NewServer(deps)
}

func do(t *testing.T, s *Server, method, target string, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rdr)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) contract.ErrorResponse {
	t.Helper()
	var er contract.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &er))
	return er
}

func TestHealth(t *testing.T) {
	s := newTestServer(Deps{LLM: fakeHealth(true)})

	rec := do(t, s, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","llm":true}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("Content-Type"))
}

func TestGetJiraTasks(t *testing.T) {
	planner := &fakePlanner{tasks: []domain.JiraTask{testutil.NewTestJiraTask("Build")}}
	s := newTestServer(Deps{Planner: planner})

	rec := do(t, s, http.MethodGet, "/api/jira/tasks", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var tasks []domain.JiraTask
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tasks))
	assert.Len(t, tasks, 1)
}

func TestGetJiraTasks_NilBecomesEmptyArray(t *testing.T) {
	s := newTestServer(Deps{Planner: &fakePlanner{}})

	rec := do(t, s, http.MethodGet, "/api/jira/tasks", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestGetCalendarEvents_DefaultsStartDateToToday(t *testing.T) {
	planner := &fakePlanner{}
	s := newTestServer(Deps{Planner: planner})

	rec := do(t, s, http.MethodGet, "/api/calendar/events", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2024-05-06", planner.lastStart)

	do(t, s, http.MethodGet, "/api/calendar/events?startDate=2024-06-01", "")
	assert.Equal(t, "2024-06-01", planner.lastStart)
}

func TestErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   contract.ErrorCode
	}{
		{"invalid", fmt.Errorf("start date: %w", domain.ErrInvalidInput), http.StatusBadRequest, contract.ErrCodeInvalidInput},
		{"jira auth", jira.ErrAuthFailed, http.StatusBadGateway, contract.ErrCodeUpstreamAuth},
		{"gcal access", gcal.ErrAccessNotConfigured, http.StatusBadGateway, contract.ErrCodeUpstreamAuth},
		{"calendar missing", gcal.ErrCalendarNotFound, http.StatusNotFound, contract.ErrCodeNotFound},
		{"llm down", llm.ErrUnavailable, http.StatusServiceUnavailable, contract.ErrCodeLLMUnavailable},
		{"llm timeout", llm.ErrTimeout, http.StatusGatewayTimeout, contract.ErrCodeLLMTimeout},
		{"llm output", llm.ErrInvalidOutput, http.StatusBadGateway, contract.ErrCodeLLMOutput},
		{"other", fmt.Errorf("boom"), http.StatusInternalServerError, contract.ErrCodeInternal},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestServer(Deps{Planner: &fakePlanner{err: tc.err}})

			rec := do(t, s, http.MethodGet, "/api/calendar/events?startDate=2024-05-06", "")

			assert.Equal(t, tc.status, rec.Code)
			er := decodeError(t, rec)
			assert.Equal(t, tc.code, er.Code)
			assert.Equal(t, tc.err.Error(), er.Error)
		})
	}
}

func TestMissingUseCase_ServiceUnavailable(t *testing.T) {
	s := newTestServer(Deps{})

	for _, target := range []string{"/api/jira/tasks", "/api/schedules", "/api/feedback"} {
		rec := do(t, s, http.MethodGet, target, "")
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code, target)
	}
}

func TestGenerateSchedule(t *testing.T) {
	schedules := &fakeSchedules{resp: &contract.GenerateScheduleResponse{
		ID:       "run-1",
		Schedule: []domain.ScheduledItem{testutil.NewTestScheduledItem("[KAN-1] Build", monday)},
	}}
	s := newTestServer(Deps{Schedules: schedules})

	body := `{"currentDate":"2024-05-06","unavailableHours":[{"dayOfWeek":"Friday","startTime":"16:00","endTime":"18:00"}]}`
	rec := do(t, s, http.MethodPost, "/api/schedule", body)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp contract.GenerateScheduleResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "run-1", resp.ID)
	assert.Len(t, resp.Schedule, 1)
	assert.Equal(t, "2024-05-06", schedules.lastReq.CurrentDate)
	require.Len(t, schedules.lastReq.UnavailableHours, 1)
	assert.Equal(t, domain.Friday, schedules.lastReq.UnavailableHours[0].DayOfWeek)
	assert.NotNil(t, schedules.lastReq.ManualJiraTasks)
}

func TestGenerateSchedule_DefaultsCurrentDate(t *testing.T) {
	schedules := &fakeSchedules{resp: &contract.GenerateScheduleResponse{Schedule: []domain.ScheduledItem{}}}
	s := newTestServer(Deps{Schedules: schedules})

	rec := do(t, s, http.MethodPost, "/api/schedule", `{}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2024-05-06", schedules.lastReq.CurrentDate)
}

func TestGenerateSchedule_MalformedBody(t *testing.T) {
	s := newTestServer(Deps{Schedules: &fakeSchedules{}})

	rec := do(t, s, http.MethodPost, "/api/schedule", `{"currentDate":`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeError(t, rec).Error, "malformed JSON body")
}

func TestListAndGetSchedules(t *testing.T) {
	run := testutil.NewTestScheduleRun("2024-05-06", testutil.NewTestScheduledItem("a", monday))
	s := newTestServer(Deps{Schedules: &fakeSchedules{runs: []*domain.ScheduleRun{run}}})

	rec := do(t, s, http.MethodGet, "/api/schedules?limit=5", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var summaries []contract.ScheduleRunSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summaries))
	require.Len(t, summaries, 1)
	assert.Equal(t, 1, summaries[0].ItemCount)

	rec = do(t, s, http.MethodGet, "/api/schedules/"+run.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var detail contract.ScheduleRunDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &detail))
	assert.Equal(t, run.ID, detail.ID)
	assert.Len(t, detail.Schedule, 1)

	rec = do(t, s, http.MethodGet, "/api/schedules/missing", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListSchedules_BadLimit(t *testing.T) {
	s := newTestServer(Deps{Schedules: &fakeSchedules{}})

	for _, limit := range []string{"abc", "0", "-3"} {
		rec := do(t, s, http.MethodGet, "/api/schedules?limit="+limit, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, limit)
	}
}

func TestSubmitFeedback(t *testing.T) {
	fb := &fakeFeedback{resp: &contract.FeedbackResponse{ID: "fb-1", Success: true, Message: "ok"}}
	s := newTestServer(Deps{Feedback: fb})

	rec := do(t, s, http.MethodPost, "/api/feedback",
		`{"jiraItemId":"KAN-1","estimatedTime":1,"actualTime":2.5,"manualAdjustments":"split"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":"fb-1","success":true,"message":"ok"}`, rec.Body.String())
	assert.Equal(t, contract.FeedbackRequest{
		JiraItemID: "KAN-1", EstimatedTime: 1, ActualTime: 2.5, ManualAdjustments: "split",
	}, fb.lastReq)
}

func TestListFeedback_ByItem(t *testing.T) {
	fb := &fakeFeedback{entries: []*domain.FeedbackEntry{testutil.NewTestFeedbackEntry("KAN-1", 2, true)}}
	s := newTestServer(Deps{Feedback: fb})

	rec := do(t, s, http.MethodGet, "/api/feedback?jiraItemId=KAN-1", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "KAN-1", fb.lastItem)
	var views []contract.FeedbackEntryView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &views))
	require.Len(t, views, 1)
	assert.Equal(t, 2.0, views[0].ActualTime)
}

func TestRequestLogger_WritesRequestLine(t *testing.T) {
	var buf bytes.Buffer
	s := NewServer(Deps{Logger: slog.New(slog.NewTextHandler(&buf, nil)), Location: time.UTC})

	do(t, s, http.MethodGet, "/health", "")

	out := buf.String()
	assert.Contains(t, out, "msg=http_request")
	assert.Contains(t, out, "path=/health")
	assert.Contains(t, out, "status=200")
	assert.Contains(t, out, "request_id=")
}

func TestUnknownRoute(t *testing.T) {
	s := newTestServer(Deps{})

	rec := do(t, s, http.MethodGet, "/api/nope", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
