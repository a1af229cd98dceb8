package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/alexanderramin/weekwise/internal/cli/formatter"
	"github.com/alexanderramin/weekwise/internal/contract"
	"github.com/alexanderramin/weekwise/internal/domain"
)

type entryKind string

const (
	entryDone   entryKind = "done"
	entryTask   entryKind = "task"
	entryEvent  entryKind = "event"
	entryWindow entryKind = "unavailable"
)

// taskDraft holds the answers of the Jira task form.
type taskDraft struct {
	Name     string
	Link     string
	Deadline string
}

// task trims the answers and derives the project key from a .../browse/KEY-1 link.
func (d taskDraft) task() (domain.JiraTask, error) {
	t := domain.JiraTask{
		Name:     strings.TrimSpace(d.Name),
		Link:     strings.TrimSpace(d.Link),
		Deadline: strings.TrimSpace(d.Deadline),
	}
	if strings.Contains(t.Link, "/browse/") {
		t.ProjectKey = domain.ProjectKeyFromIssueKey(t.IssueKey())
	}
	if err := t.Validate(); err != nil {
		return domain.JiraTask{}, err
	}
	return t, nil
}

// eventDraft holds the answers of the calendar event form. Times without an
// offset are read in the configured location.
type eventDraft struct {
	Name  string
	Start string
	End   string
	Link  string
}

func (d eventDraft) event(loc *time.Location) (domain.CalendarEvent, error) {
	start, err := domain.ParseInstant(d.Start, loc)
	if err != nil {
		return domain.CalendarEvent{}, fmt.Errorf("event start: %w", err)
	}
	end, err := domain.ParseInstant(d.End, loc)
	if err != nil {
		return domain.CalendarEvent{}, fmt.Errorf("event end: %w", err)
	}
	if !end.After(start) {
		return domain.CalendarEvent{}, fmt.Errorf("%w: end time must be after start time", domain.ErrInvalidInput)
	}
	e := domain.CalendarEvent{
		Name:      strings.TrimSpace(d.Name),
		StartTime: domain.FormatISO(start),
		EndTime:   domain.FormatISO(end),
		Link:      strings.TrimSpace(d.Link),
	}
	if err := e.Validate(); err != nil {
		return domain.CalendarEvent{}, err
	}
	return e, nil
}

// windowDraft holds the answers of the unavailable hours form.
type windowDraft struct {
	Day   domain.DayOfWeek
	Start string
	End   string
}

func newWindowDraft() windowDraft {
	return windowDraft{Day: domain.Monday, Start: "09:00", End: "17:00"}
}

func (d windowDraft) window() (domain.UnavailableHour, error) {
	u := domain.UnavailableHour{DayOfWeek: d.Day, StartTime: strings.TrimSpace(d.Start), EndTime: strings.TrimSpace(d.End)}
	if err := u.Validate(); err != nil {
		return domain.UnavailableHour{}, err
	}
	if clockMinutes(u.EndTime) <= clockMinutes(u.StartTime) {
		return domain.UnavailableHour{}, fmt.Errorf("%w: end time must be after start time", domain.ErrInvalidInput)
	}
	return u, nil
}

// clockMinutes expects a string that already passed domain.ValidClock.
func clockMinutes(s string) int {
	var h, m int
	fmt.Sscanf(s, "%d:%d", &h, &m)
	return h*60 + m
}

func requiredText(label string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", label)
		}
		return nil
	}
}

func validateOptionalDate(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	if _, err := domain.ParseDate(s, nil); err != nil {
		return fmt.Errorf("use YYYY-MM-DD")
	}
	return nil
}

func validateInstant(s string) error {
	if _, err := domain.ParseInstant(s, nil); err != nil {
		return fmt.Errorf("use YYYY-MM-DD HH:mm")
	}
	return nil
}

func validateClock(s string) error {
	if !domain.ValidClock(strings.TrimSpace(s)) {
		return fmt.Errorf("use HH:mm, e.g. 09:00 or 14:30")
	}
	return nil
}

func newEntryMenuForm(kind *entryKind) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[entryKind]().
				Title("Add to this week").
				Options(
					huh.NewOption("Generate the schedule", entryDone),
					huh.NewOption("Jira task", entryTask),
					huh.NewOption("Calendar event", entryEvent),
					huh.NewOption("Unavailable hours", entryWindow),
				).
				Value(kind),
		),
	).WithShowHelp(false)
}

func newTaskForm(d *taskDraft) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Task name").Placeholder("e.g. Implement login page").
				Value(&d.Name).Validate(requiredText("task name")),
			huh.NewInput().Title("Task link").Placeholder("https://your-jira.atlassian.net/browse/PROJ-123").
				Value(&d.Link).Validate(requiredText("task link")),
			huh.NewInput().Title("Deadline (optional)").Placeholder("YYYY-MM-DD").
				Value(&d.Deadline).Validate(validateOptionalDate),
		),
	).WithShowHelp(false)
}

func newEventForm(d *eventDraft) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Event name").Placeholder("e.g. Team standup").
				Value(&d.Name).Validate(requiredText("event name")),
			huh.NewInput().Title("Start time").Placeholder("YYYY-MM-DD HH:mm").
				Value(&d.Start).Validate(validateInstant),
			huh.NewInput().Title("End time").Placeholder("YYYY-MM-DD HH:mm").
				Value(&d.End).Validate(validateInstant),
			huh.NewInput().Title("Event link (optional)").
				Value(&d.Link),
		),
	).WithShowHelp(false)
}

func newWindowForm(d *windowDraft) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[domain.DayOfWeek]().Title("Day of week").
				Options(huh.NewOptions(domain.AllDaysOfWeek...)...).
				Value(&d.Day),
			huh.NewInput().Title("Start time (HH:mm)").
				Value(&d.Start).Validate(validateClock),
			huh.NewInput().Title("End time (HH:mm)").
				Value(&d.End).Validate(validateClock),
		),
	).WithShowHelp(false)
}

// entrySession is shared by every copy of an entryModel; the forms write into
// its drafts and accepted entries land in req.
type entrySession struct {
	req       *contract.GenerateScheduleRequest
	loc       *time.Location
	kind      entryKind
	task      taskDraft
	event     eventDraft
	window    windowDraft
	added     int
	cancelled bool
}

// entryModel walks the user through adding tasks, events and unavailable
// windows before a schedule is generated.
type entryModel struct {
	s      *entrySession
	stage  entryKind // "" while the menu is showing
	form   *huh.Form
	status string
}

func newEntryModel(req *contract.GenerateScheduleRequest, loc *time.Location) entryModel {
	s := &entrySession{req: req, loc: loc, kind: entryDone}
	return entryModel{s: s, form: newEntryMenuForm(&s.kind)}
}

func (m entryModel) Init() tea.Cmd { return m.form.Init() }

func (m entryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.Type {
		case tea.KeyCtrlC:
			m.s.cancelled = true
			return m, tea.Quit
		case tea.KeyEsc:
			if m.stage == "" {
				return m, tea.Quit
			}
			m.status = "Discarded."
			return m.showMenu()
		}
	}

	next, cmd := m.form.Update(msg)
	if f, ok := next.(*huh.Form); ok {
		m.form = f
	}
	switch m.form.State {
	case huh.StateAborted:
		m.s.cancelled = true
		return m, tea.Quit
	case huh.StateCompleted:
		if m.stage == "" {
			return m.open(m.s.kind)
		}
		m.status = m.accept()
		menu, menuCmd := m.showMenu()
		return menu, tea.Batch(cmd, menuCmd)
	}
	return m, cmd
}

func (m entryModel) open(kind entryKind) (tea.Model, tea.Cmd) {
	m.stage = kind
	m.status = ""
	switch kind {
	case entryTask:
		m.s.task = taskDraft{}
		m.form = newTaskForm(&m.s.task)
	case entryEvent:
		m.s.event = eventDraft{}
		m.form = newEventForm(&m.s.event)
	case entryWindow:
		m.s.window = newWindowDraft()
		m.form = newWindowForm(&m.s.window)
	default:
		return m, tea.Quit
	}
	return m, m.form.Init()
}

func (m entryModel) showMenu() (entryModel, tea.Cmd) {
	m.stage = ""
	m.form = newEntryMenuForm(&m.s.kind)
	return m, m.form.Init()
}

// accept converts the current draft and appends it to the request.
func (m entryModel) accept() string {
	req := m.s.req
	switch m.stage {
	case entryTask:
		t, err := m.s.task.task()
		if err != nil {
			return err.Error()
		}
		req.ManualJiraTasks = append(req.ManualJiraTasks, t)
		m.s.added++
		return "Added task " + t.Name
	case entryEvent:
		e, err := m.s.event.event(m.s.loc)
		if err != nil {
			return err.Error()
		}
		req.ManualCalendarEvents = append(req.ManualCalendarEvents, e)
		m.s.added++
		return "Added event " + e.Name
	case entryWindow:
		u, err := m.s.window.window()
		if err != nil {
			return err.Error()
		}
		req.UnavailableHours = append(req.UnavailableHours, u)
		m.s.added++
		return "Blocked " + u.String()
	}
	return ""
}

func (m entryModel) View() string {
	var b strings.Builder
	b.WriteString(formatter.StyleHeader.Render("Plan your week"))
	b.WriteString("\n")
	b.WriteString(formatter.Dim(fmt.Sprintf("%d tasks, %d events, %d unavailable windows",
		len(m.s.req.ManualJiraTasks), len(m.s.req.ManualCalendarEvents), len(m.s.req.UnavailableHours))))
	b.WriteString("\n\n")
	b.WriteString(m.form.View())
	if m.status != "" {
		b.WriteString("\n" + m.status + "\n")
	}
	b.WriteString("\n" + formatter.Dim("esc back, ctrl+c cancel"))
	return b.String()
}

// collectEntries lets the user add manual entries to req on a terminal.
func collectEntries(app *App, req *contract.GenerateScheduleRequest) error {
	m := newEntryModel(req, app.location())
	if err := app.runTUI(m); err != nil {
		return err
	}
	if m.s.cancelled {
		return fmt.Errorf("plan cancelled")
	}
	app.logger().Debug("manual entries collected", "count", m.s.added)
	return nil
}
