package cli

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/weekwise/internal/contract"
	"github.com/alexanderramin/weekwise/internal/domain"
)

// submitEntry marks the active form as submitted and lets the model react.
func submitEntry(t *testing.T, m entryModel) (entryModel, tea.Cmd) {
	t.Helper()
	require.NotNil(t, m.form)
	m.form.State = huh.StateCompleted
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return next.(entryModel), cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestEntryModel_AddsTasksEventsAndWindows(t *testing.T) {
	req := contract.NewGenerateScheduleRequest("2024-05-06")
	m := newEntryModel(&req, time.UTC)
	assert.Equal(t, entryDone, m.s.kind)

	m.s.kind = entryTask
	m, _ = submitEntry(t, m)
	require.Equal(t, entryTask, m.stage)
	m.s.task = taskDraft{Name: " Write release notes ", Link: "https://acme.atlassian.net/browse/REL-7", Deadline: "2024-05-10"}
	m, _ = submitEntry(t, m)
	assert.Empty(t, m.stage)
	assert.Contains(t, m.status, "Added task Write release notes")

	m.s.kind = entryEvent
	m, _ = submitEntry(t, m)
	require.Equal(t, entryEvent, m.stage)
	m.s.event = eventDraft{Name: "Dentist", Start: "2024-05-08 15:00", End: "2024-05-08 16:00"}
	m, _ = submitEntry(t, m)

	m.s.kind = entryWindow
	m, _ = submitEntry(t, m)
	require.Equal(t, entryWindow, m.stage)
	assert.Equal(t, newWindowDraft(), m.s.window)
	m.s.window = windowDraft{Day: domain.Friday, Start: "13:00", End: "17:00"}
	m, _ = submitEntry(t, m)
	assert.Contains(t, m.status, "Blocked Friday 13:00-17:00")

	m.s.kind = entryDone
	_, cmd := submitEntry(t, m)
	assert.True(t, isQuit(cmd))

	require.Len(t, req.ManualJiraTasks, 1)
	assert.Equal(t, domain.JiraTask{
		Name:       "Write release notes",
		Link:       "https://acme.atlassian.net/browse/REL-7",
		Deadline:   "2024-05-10",
		ProjectKey: "REL",
	}, req.ManualJiraTasks[0])
	require.Len(t, req.ManualCalendarEvents, 1)
	assert.Equal(t, "2024-05-08T15:00:00.000Z", req.ManualCalendarEvents[0].StartTime)
	assert.Equal(t, "2024-05-08T16:00:00.000Z", req.ManualCalendarEvents[0].EndTime)
	assert.Equal(t, []domain.UnavailableHour{{DayOfWeek: domain.Friday, StartTime: "13:00", EndTime: "17:00"}}, req.UnavailableHours)
	assert.Equal(t, 3, m.s.added)
	assert.False(t, m.s.cancelled)
}

func TestEntryModel_RejectedDraftIsNotAdded(t *testing.T) {
	req := contract.NewGenerateScheduleRequest("2024-05-06")
	m := newEntryModel(&req, time.UTC)

	m.s.kind = entryEvent
	m, _ = submitEntry(t, m)
	m.s.event = eventDraft{Name: "Backwards", Start: "2024-05-08 16:00", End: "2024-05-08 15:00"}
	m, _ = submitEntry(t, m)

	assert.Empty(t, m.stage)
	assert.Contains(t, m.status, "end time must be after start time")
	assert.Empty(t, req.ManualCalendarEvents)
	assert.Zero(t, m.s.added)
}

func TestEntryModel_EscapeAndCancel(t *testing.T) {
	req := contract.NewGenerateScheduleRequest("2024-05-06")
	m := newEntryModel(&req, time.UTC)

	m.s.kind = entryTask
	m, _ = submitEntry(t, m)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(entryModel)
	assert.Empty(t, m.stage, "esc in a form goes back to the menu")
	assert.False(t, isQuit(cmd))
	assert.Empty(t, req.ManualJiraTasks)

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, isQuit(cmd), "esc on the menu finishes")
	assert.False(t, m.s.cancelled)

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.True(t, isQuit(cmd))
	assert.True(t, m.s.cancelled)
}

func TestEntryModel_ViewCountsEntries(t *testing.T) {
	req := contract.NewGenerateScheduleRequest("2024-05-06")
	req.UnavailableHours = []domain.UnavailableHour{{DayOfWeek: domain.Monday, StartTime: "12:00", EndTime: "13:00"}}
	m := newEntryModel(&req, time.UTC)

	view := m.View()
	assert.Contains(t, view, "Plan your week")
	assert.Contains(t, view, "0 tasks, 0 events, 1 unavailable windows")
}

func TestTaskDraft_ProjectKeyOnlyFromBrowseLinks(t *testing.T) {
	task, err := taskDraft{Name: "Tidy backlog", Link: "https://acme.atlassian.net/jira/boards/3"}.task()
	require.NoError(t, err)
	assert.Empty(t, task.ProjectKey)

	_, err = taskDraft{Name: "Tidy backlog", Link: "not a url"}.task()
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = taskDraft{Name: "Tidy backlog", Link: "https://acme.atlassian.net/browse/OPS-1", Deadline: "Friday"}.task()
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestEventDraft_ReadsLocalTimesInLocation(t *testing.T) {
	berlin := time.FixedZone("CEST", 2*60*60)

	e, err := eventDraft{Name: "Dentist", Start: "2024-05-08 15:00", End: "2024-05-08T16:30"}.event(berlin)
	require.NoError(t, err)
	assert.Equal(t, "2024-05-08T13:00:00.000Z", e.StartTime)
	assert.Equal(t, "2024-05-08T14:30:00.000Z", e.EndTime)

	e, err = eventDraft{Name: "Call", Start: "2024-05-08T09:00Z", End: "2024-05-08T09:30Z"}.event(berlin)
	require.NoError(t, err)
	assert.Equal(t, "2024-05-08T09:00:00.000Z", e.StartTime)

	_, err = eventDraft{Name: "Zero", Start: "2024-05-08 15:00", End: "2024-05-08 15:00"}.event(berlin)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestWindowDraft_Validation(t *testing.T) {
	tests := []struct {
		name    string
		draft   windowDraft
		wantErr bool
	}{
		{"defaults", newWindowDraft(), false},
		{"single digit hour", windowDraft{Day: domain.Tuesday, Start: "9:00", End: "10:30"}, false},
		{"end equals start", windowDraft{Day: domain.Tuesday, Start: "10:00", End: "10:00"}, true},
		{"end before start", windowDraft{Day: domain.Tuesday, Start: "14:00", End: "09:00"}, true},
		{"bad clock", windowDraft{Day: domain.Tuesday, Start: "25:00", End: "26:00"}, true},
		{"missing day", windowDraft{Start: "09:00", End: "10:00"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.draft.window()
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidInput)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestEntryFieldValidators(t *testing.T) {
	assert.Error(t, requiredText("task name")("  "))
	assert.NoError(t, requiredText("task name")("x"))
	assert.NoError(t, validateOptionalDate(""))
	assert.Error(t, validateOptionalDate("10/05/2024"))
	assert.NoError(t, validateInstant("2024-05-08 15:00"))
	assert.Error(t, validateInstant("tomorrow"))
	assert.NoError(t, validateClock("07:45"))
	assert.Error(t, validateClock("7.45"))
}
