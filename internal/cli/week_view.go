package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/weekwise/internal/cli/formatter"
	"github.com/alexanderramin/weekwise/internal/contract"
	"github.com/alexanderramin/weekwise/internal/domain"
	"github.com/alexanderramin/weekwise/internal/scheduler"
)

type weekKeyMap struct {
	Prev     key.Binding
	Next     key.Binding
	Up       key.Binding
	Down     key.Binding
	Feedback key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultWeekKeys() weekKeyMap {
	return weekKeyMap{
		Prev:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev day")),
		Next:     key.NewBinding(key.WithKeys("right", "l", "tab"), key.WithHelp("→/l", "next day")),
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Feedback: key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "feedback"), key.WithDisabled()),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:     key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k weekKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Feedback, k.Help, k.Quit}
}

func (k weekKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Prev, k.Next, k.Up, k.Down}, {k.Feedback, k.Help, k.Quit}}
}

// feedbackSubmitter turns a completed feedback form into a command whose
// message is a feedbackResultMsg.
type feedbackSubmitter func(contract.FeedbackRequest) tea.Cmd

type feedbackResultMsg struct {
	resp *contract.FeedbackResponse
	err  error
}

// weekModel browses a WeekGrid one day at a time. With a submitter attached,
// Jira items can be reported on without leaving the view.
type weekModel struct {
	title  string
	days   []scheduler.DayColumn
	loc    *time.Location
	day    int
	cursor int
	width  int
	keys   weekKeyMap
	help   help.Model

	submit feedbackSubmitter
	form   *huh.Form
	draft  *feedbackDraft
	status string
}

func newWeekModel(title string, grid *scheduler.WeekGrid, loc *time.Location) weekModel {
	days := append([]scheduler.DayColumn{}, grid.Columns...)
	days = append(days, grid.Extra...)
	return weekModel{
		title: title,
		days:  days,
		loc:   loc,
		keys:  defaultWeekKeys(),
		help:  help.New(),
	}
}

// withFeedback enables the feedback action. A nil submitter leaves it off.
func (m weekModel) withFeedback(submit feedbackSubmitter) weekModel {
	m.submit = submit
	m.keys.Feedback.SetEnabled(submit != nil)
	return m
}

func (m weekModel) Init() tea.Cmd { return nil }

func (m weekModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.form != nil {
		return m.updateFeedbackForm(msg)
	}
	switch msg := msg.(type) {
	case feedbackResultMsg:
		m.status = feedbackStatus(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, m.keys.Feedback):
			return m.startFeedback()
		case key.Matches(msg, m.keys.Next):
			if len(m.days) > 0 {
				m.day = (m.day + 1) % len(m.days)
				m.cursor = 0
			}
		case key.Matches(msg, m.keys.Prev):
			if len(m.days) > 0 {
				m.day = (m.day - 1 + len(m.days)) % len(m.days)
				m.cursor = 0
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.items())-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		}
	}
	return m, nil
}

// startFeedback opens the feedback form for the selected Jira item with its
// issue key filled in. Calendar items have nothing to report.
func (m weekModel) startFeedback() (tea.Model, tea.Cmd) {
	it, ok := m.selected()
	if !ok || it.Type != domain.ItemJira {
		return m, nil
	}
	m.draft = &feedbackDraft{Item: feedbackItemID(it)}
	m.form = newFeedbackForm(m.draft)
	m.status = ""
	return m, m.form.Init()
}

func (m weekModel) updateFeedbackForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.Type == tea.KeyEsc {
		m.form, m.draft = nil, nil
		m.status = "Feedback discarded."
		return m, nil
	}

	next, cmd := m.form.Update(msg)
	if f, ok := next.(*huh.Form); ok {
		m.form = f
	}
	switch m.form.State {
	case huh.StateAborted:
		m.form, m.draft = nil, nil
		return m, nil
	case huh.StateCompleted:
		req, err := m.draft.request()
		m.form, m.draft = nil, nil
		if err != nil {
			m.status = err.Error()
			return m, cmd
		}
		m.status = "Sending feedback for " + req.JiraItemID + "..."
		return m, tea.Batch(cmd, m.submit(req))
	}
	return m, cmd
}

// feedbackItemID prefers the Jira issue key; generated items that lost it fall
// back to their display name.
func feedbackItemID(it domain.ScheduledItem) string {
	if it.OriginalID != "" {
		return it.OriginalID
	}
	return it.Name
}

func feedbackStatus(msg feedbackResultMsg) string {
	if msg.err != nil {
		return formatter.VerdictIndicator(false) + " " + msg.err.Error()
	}
	return formatter.VerdictIndicator(msg.resp.Success) + " " + msg.resp.Message
}

func (a *App) feedbackSubmitter(ctx context.Context) feedbackSubmitter {
	feedback, err := a.feedbackUseCase()
	if err != nil {
		return nil
	}
	return func(req contract.FeedbackRequest) tea.Cmd {
		return func() tea.Msg {
			resp, err := feedback.Submit(ctx, req)
			return feedbackResultMsg{resp: resp, err: err}
		}
	}
}

func (m weekModel) items() []domain.ScheduledItem {
	if m.day >= len(m.days) {
		return nil
	}
	return m.days[m.day].Items
}

func (m weekModel) selected() (domain.ScheduledItem, bool) {
	items := m.items()
	if m.cursor >= len(items) {
		return domain.ScheduledItem{}, false
	}
	return items[m.cursor], true
}

var (
	tabStyle       = lipgloss.NewStyle().Padding(0, 1).Foreground(formatter.ColorDim)
	activeTabStyle = lipgloss.NewStyle().Padding(0, 1).Foreground(formatter.ColorHeader).Bold(true).Underline(true)
	cursorStyle    = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	detailStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(formatter.ColorDim).Padding(0, 1)
)

func (m weekModel) View() string {
	var b strings.Builder
	b.WriteString(formatter.StyleHeader.Render(m.title))
	b.WriteString("\n\n")

	tabs := make([]string, len(m.days))
	for i, col := range m.days {
		label := fmt.Sprintf("%s (%d)", col.Date.Format("Mon 02"), len(col.Items))
		if i == m.day {
			tabs[i] = activeTabStyle.Render(label)
		} else {
			tabs[i] = tabStyle.Render(label)
		}
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	b.WriteString("\n\n")

	if len(m.days) > 0 {
		b.WriteString(formatter.Bold(m.days[m.day].Date.Format("Monday 02 January")))
		b.WriteString("\n")
	}
	items := m.items()
	if len(items) == 0 {
		b.WriteString(formatter.Dim("  Nothing scheduled"))
		b.WriteString("\n")
	}
	for i, it := range items {
		prefix := "  "
		if i == m.cursor {
			prefix = cursorStyle.Render("▸ ")
		}
		b.WriteString(prefix + formatter.ItemLine(it, m.loc) + "\n")
	}

	if m.form != nil {
		b.WriteString("\n")
		b.WriteString(detailStyle.Render(m.form.View()))
		b.WriteString("\n")
	} else if it, ok := m.selected(); ok {
		b.WriteString("\n")
		b.WriteString(detailStyle.Render(itemDetail(it)))
		b.WriteString("\n")
	}
	if m.status != "" {
		b.WriteString("\n" + m.status + "\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func itemDetail(it domain.ScheduledItem) string {
	lines := []string{formatter.Bold(it.Name), formatter.ItemTypeBadge(it.Type)}
	if it.ProjectKey != "" {
		lines = append(lines, "Project:  "+it.ProjectKey)
	}
	if it.OriginalID != "" {
		lines = append(lines, "Issue:    "+it.OriginalID)
	}
	if it.Deadline != "" {
		lines = append(lines, "Deadline: "+it.Deadline)
	}
	if it.Link != "" {
		lines = append(lines, formatter.Dim(it.Link))
	}
	return strings.Join(lines, "\n")
}
