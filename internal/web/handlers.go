package web

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/alexanderramin/weekwise/internal/contract"
	"github.com/alexanderramin/weekwise/internal/domain"
	"github.com/alexanderramin/weekwise/internal/repository"
)

func (s *Server) healthCheck(w http.ResponseWriter, r *http.Request) {
	resp := contract.HealthResponse{Status: "ok"}
	if s.deps.LLM != nil {
		resp.LLM = s.deps.LLM.Available(r.Context())
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) getJiraTasks(w http.ResponseWriter, r *http.Request) {
	if s.deps.Planner == nil {
		s.writeError(w, r, fmt.Errorf("jira: %w", errUseCaseMissing))
		return
	}
	tasks, err := s.deps.Planner.FetchJiraTasks(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if tasks == nil {
		tasks = []domain.JiraTask{}
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (s *Server) getCalendarEvents(w http.ResponseWriter, r *http.Request) {
	if s.deps.Planner == nil {
		s.writeError(w, r, fmt.Errorf("calendar: %w", errUseCaseMissing))
		return
	}
	startDate := r.URL.Query().Get("startDate")
	if startDate == "" {
		startDate = s.today()
	}
	events, err := s.deps.Planner.FetchCalendarEvents(r.Context(), startDate)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if events == nil {
		events = []domain.CalendarEvent{}
	}
	writeJSON(w, http.StatusOK, events)
}

func (s *Server) generateSchedule(w http.ResponseWriter, r *http.Request) {
	if s.deps.Schedules == nil {
		s.writeError(w, r, fmt.Errorf("schedule: %w", errUseCaseMissing))
		return
	}
	req := contract.NewGenerateScheduleRequest("")
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.CurrentDate == "" {
		req.CurrentDate = s.today()
	}
	resp, err := s.deps.Schedules.Generate(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) listSchedules(w http.ResponseWriter, r *http.Request) {
	if s.deps.Schedules == nil {
		s.writeError(w, r, fmt.Errorf("schedule history: %w", errUseCaseMissing))
		return
	}
	limit, err := limitParam(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	runs, err := s.deps.Schedules.ListRecent(r.Context(), limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	out := make([]contract.ScheduleRunSummary, 0, len(runs))
	for _, run := range runs {
		out = append(out, contract.NewScheduleRunSummary(run))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) getSchedule(w http.ResponseWriter, r *http.Request) {
	if s.deps.Schedules == nil {
		s.writeError(w, r, fmt.Errorf("schedule history: %w", errUseCaseMissing))
		return
	}
	run, err := s.deps.Schedules.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, contract.NewScheduleRunDetail(run))
}

func (s *Server) submitFeedback(w http.ResponseWriter, r *http.Request) {
	if s.deps.Feedback == nil {
		s.writeError(w, r, fmt.Errorf("feedback: %w", errUseCaseMissing))
		return
	}
	var req contract.FeedbackRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	resp, err := s.deps.Feedback.Submit(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) listFeedback(w http.ResponseWriter, r *http.Request) {
	if s.deps.Feedback == nil {
		s.writeError(w, r, fmt.Errorf("feedback: %w", errUseCaseMissing))
		return
	}
	var (
		entries []*domain.FeedbackEntry
		err     error
	)
	if item := r.URL.Query().Get("jiraItemId"); item != "" {
		entries, err = s.deps.Feedback.ListByJiraItem(r.Context(), item)
	} else {
		var limit int
		if limit, err = limitParam(r); err == nil {
			entries, err = s.deps.Feedback.ListRecent(r.Context(), limit)
		}
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	out := make([]contract.FeedbackEntryView, 0, len(entries))
	for _, e := range entries {
		out = append(out, contract.NewFeedbackEntryView(e))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) today() string {
	return s.deps.Now().In(s.deps.Location).Format(domain.DateLayout)
}

func limitParam(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return repository.DefaultListLimit, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: limit must be a positive integer, got %q", domain.ErrInvalidInput, raw)
	}
	return n, nil
}
