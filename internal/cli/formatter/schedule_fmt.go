package formatter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/weekwise/internal/contract"
	"github.com/alexanderramin/weekwise/internal/domain"
	"github.com/alexanderramin/weekwise/internal/scheduler"
)

// FormatTasks renders fetched Jira tasks as a table.
func FormatTasks(tasks []domain.JiraTask, now time.Time) string {
	if len(tasks) == 0 {
		return Dim("No Jira tasks found.") + "\n"
	}
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, []string{
			StyleBlue.Render(t.IssueKey()),
			Truncate(t.Name, 60),
			t.ProjectKey,
			DeadlineStyled(t.Deadline, now),
		})
	}
	return RenderTable([]string{"KEY", "NAME", "PROJECT", "DEADLINE"}, rows)
}

// FormatEvents renders calendar events as a table with times in loc.
func FormatEvents(events []domain.CalendarEvent, loc *time.Location) string {
	if len(events) == 0 {
		return Dim("No calendar events found.") + "\n"
	}
	rows := make([][]string, 0, len(events))
	for _, e := range events {
		rows = append(rows, []string{
			Truncate(e.Name, 50),
			clockRange(e.StartTime, e.EndTime, loc, "Mon 02 Jan 15:04"),
		})
	}
	return RenderTable([]string{"EVENT", "WHEN"}, rows)
}

// FormatWeek renders a week grid as one section per day.
func FormatWeek(grid *scheduler.WeekGrid, loc *time.Location) string {
	var b strings.Builder
	for _, col := range grid.Columns {
		b.WriteString(formatDay(col, loc))
	}
	if len(grid.Extra) > 0 {
		b.WriteString(StyleYellow.Render("Outside this week") + "\n\n")
		for _, col := range grid.Extra {
			b.WriteString(formatDay(col, loc))
		}
	}
	return b.String()
}

func formatDay(col scheduler.DayColumn, loc *time.Location) string {
	var b strings.Builder
	b.WriteString(Header(col.Date.Format("Monday 02 Jan")))
	b.WriteString("\n")
	if len(col.Items) == 0 {
		b.WriteString(Dim("  Nothing scheduled") + "\n\n")
		return b.String()
	}
	for _, it := range col.Items {
		b.WriteString("  ")
		b.WriteString(ItemLine(it, loc))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	return b.String()
}

// ItemLine renders one scheduled item on a single line.
func ItemLine(it domain.ScheduledItem, loc *time.Location) string {
	line := fmt.Sprintf("%s  %s  %s", StyleBold.Render(clockRange(it.StartTime, it.EndTime, loc, "15:04")),
		ItemTypeBadge(it.Type), it.Name)
	var tags []string
	if it.ProjectKey != "" {
		tags = append(tags, it.ProjectKey)
	}
	if it.Deadline != "" {
		tags = append(tags, "due "+it.Deadline)
	}
	if len(tags) > 0 {
		line += "  " + Dim(strings.Join(tags, " · "))
	}
	return line
}

// FormatScheduleSummary renders the header shown after a plan is generated.
func FormatScheduleSummary(id, model, startDate string, items int) string {
	parts := []string{"Week of " + startDate, strconv.Itoa(items) + " items"}
	if model != "" {
		parts = append(parts, "model "+model)
	}
	if id != "" {
		parts = append(parts, "run "+id)
	}
	return Bold(strings.Join(parts, " · "))
}

// FormatRunList renders stored schedule runs.
func FormatRunList(runs []contract.ScheduleRunSummary, now time.Time) string {
	if len(runs) == 0 {
		return Dim("No schedules recorded yet.") + "\n"
	}
	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		rows = append(rows, []string{
			TruncID(r.ID),
			r.StartDate,
			strconv.Itoa(r.ItemCount),
			r.Model,
			HumanTimestamp(r.CreatedAt, now),
		})
	}
	return RenderTable([]string{"ID", "WEEK OF", "ITEMS", "MODEL", "CREATED"}, rows)
}

// FormatVerdict renders the LLM's answer to a feedback submission.
func FormatVerdict(resp *contract.FeedbackResponse) string {
	return RenderBox("Feedback", VerdictIndicator(resp.Success)+"\n\n"+resp.Message)
}

// FormatFeedbackList renders stored feedback entries.
func FormatFeedbackList(entries []contract.FeedbackEntryView, now time.Time) string {
	if len(entries) == 0 {
		return Dim("No feedback recorded yet.") + "\n"
	}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			e.JiraItemID,
			FormatHours(e.EstimatedTime),
			FormatHours(e.ActualTime),
			VerdictIndicator(e.Success),
			Truncate(e.Message, 50),
			HumanTimestamp(e.CreatedAt, now),
		})
	}
	return RenderTable([]string{"ITEM", "EST", "ACTUAL", "VERDICT", "MESSAGE", "WHEN"}, rows)
}

func clockRange(start, end string, loc *time.Location, layout string) string {
	return clock(start, loc, layout) + "–" + clock(end, loc, "15:04")
}

func clock(s string, loc *time.Location, layout string) string {
	t, err := domain.ParseInstant(s, loc)
	if err != nil {
		return s
	}
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format(layout)
}
