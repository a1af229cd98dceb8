package web

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"time"

	"github.com/alexanderramin/weekwise/internal/contract"
	"github.com/alexanderramin/weekwise/internal/domain"
	"github.com/alexanderramin/weekwise/internal/repository"
	"github.com/alexanderramin/weekwise/internal/scheduler"
)

//go:embed templates/*.html
var templateFS embed.FS

const recentRunsShown = 10

type pageRenderer struct {
	tmpl *template.Template
	loc  *time.Location
}

func newPageRenderer(loc *time.Location) *pageRenderer {
	p := &pageRenderer{loc: loc}
	p.tmpl = template.Must(template.New("").Funcs(template.FuncMap{
		"clock": p.clock,
		"day":   func(t time.Time) string { return t.Format("Mon 02 Jan") },
	}).ParseFS(templateFS, "templates/*.html"))
	return p
}

// clock renders an item time as HH:mm in the dashboard zone, or the raw value
// when it does not parse.
func (p *pageRenderer) clock(s string) string {
	t, err := domain.ParseInstant(s, p.loc)
	if err != nil {
		return s
	}
	return t.In(p.loc).Format("15:04")
}

type dashboardPage struct {
	Run    *contract.ScheduleRunSummary
	Grid   *scheduler.WeekGrid
	Recent []contract.ScheduleRunSummary
	Notice string
}

func (s *Server) dashboard(w http.ResponseWriter, r *http.Request) {
	page := dashboardPage{}
	if s.deps.Schedules == nil {
		page.Notice = "Schedule history is not enabled."
		s.renderPage(w, r, http.StatusOK, page)
		return
	}

	recent, err := s.deps.Schedules.ListRecent(r.Context(), recentRunsShown)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	for _, run := range recent {
		page.Recent = append(page.Recent, contract.NewScheduleRunSummary(run))
	}

	var run *domain.ScheduleRun
	if id := r.URL.Query().Get("runId"); id != "" {
		run, err = s.deps.Schedules.Get(r.Context(), id)
		if errors.Is(err, repository.ErrNotFound) {
			page.Notice = "Schedule " + id + " was not found."
			s.renderPage(w, r, http.StatusNotFound, page)
			return
		}
		if err != nil {
			s.writeError(w, r, err)
			return
		}
	} else if len(recent) > 0 {
		run = recent[0]
	}

	if run == nil {
		page.Notice = "No schedules yet. POST /api/schedule or run `weekwise plan` to generate one."
		s.renderPage(w, r, http.StatusOK, page)
		return
	}

	grid, err := scheduler.BuildWeekGrid(run.Items, run.StartDate, s.deps.Location)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	summary := contract.NewScheduleRunSummary(run)
	page.Run = &summary
	page.Grid = grid
	s.renderPage(w, r, http.StatusOK, page)
}

func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, status int, page dashboardPage) {
	var buf bytes.Buffer
	if err := s.pages.tmpl.ExecuteTemplate(&buf, "dashboard.html", page); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
