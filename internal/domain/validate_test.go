package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnavailableHour_Validate(t *testing.T) {
	ok := UnavailableHour{DayOfWeek: Monday, StartTime: "9:00", EndTime: "17:30"}
	require.NoError(t, ok.Validate())
	assert.Equal(t, "Monday 9:00-17:30", ok.String())

	badClock := UnavailableHour{DayOfWeek: Monday, StartTime: "24:00", EndTime: "17:30"}
	assert.ErrorIs(t, badClock.Validate(), ErrInvalidInput)

	badDay := UnavailableHour{DayOfWeek: "Mon", StartTime: "09:00", EndTime: "10:00"}
	assert.ErrorIs(t, badDay.Validate(), ErrInvalidInput)
}

func TestCalendarEvent_Validate(t *testing.T) {
	ev := CalendarEvent{
		Name:      "Standup",
		StartTime: "2025-06-10T09:00:00Z",
		EndTime:   "2025-06-10T09:15:00Z",
		Link:      "https://calendar.google.com",
	}
	require.NoError(t, ev.Validate())

	ev.EndTime = "2025-06-10T08:00:00Z"
	assert.ErrorIs(t, ev.Validate(), ErrInvalidInput)

	ev.EndTime = "tomorrow"
	assert.ErrorIs(t, ev.Validate(), ErrInvalidInput)
}

func TestScheduledItem_Validate(t *testing.T) {
	item := ScheduledItem{Name: "x", StartTime: "2025-06-10T09:00:00Z", EndTime: "2025-06-10T10:00:00Z", Type: ItemJira}
	require.NoError(t, item.Validate())

	item.Type = "task"
	assert.ErrorIs(t, item.Validate(), ErrInvalidInput)

	item.Type = ItemCalendar
	item.EndTime = ""
	assert.ErrorIs(t, item.Validate(), ErrInvalidInput)
}

func TestLearningFeedback_NormalizeAndValidate(t *testing.T) {
	f := LearningFeedback{JiraItemID: " KAN-1 ", ActualTime: 2.5, ManualAdjustments: "  "}
	f.Normalize()
	assert.Equal(t, DefaultEstimatedHours, f.EstimatedTime)
	assert.Equal(t, "KAN-1", f.JiraItemID)
	assert.Empty(t, f.ManualAdjustments)
	require.NoError(t, f.Validate())

	f.ActualTime = 0
	assert.ErrorIs(t, f.Validate(), ErrInvalidInput)
}

func TestParseInstant(t *testing.T) {
	berlin := time.FixedZone("CEST", 2*3600)

	withZone, err := ParseInstant("2025-06-10T09:00:00.000Z", berlin)
	require.NoError(t, err)
	assert.Equal(t, time.UTC, withZone.Location())
	assert.Equal(t, 9, withZone.Hour())

	noZone, err := ParseInstant("2025-06-10T09:00:00", berlin)
	require.NoError(t, err)
	assert.Equal(t, "2025-06-10T07:00:00Z", noZone.UTC().Format(time.RFC3339))

	dateOnly, err := ParseInstant("2025-06-10", nil)
	require.NoError(t, err)
	assert.Equal(t, 10, dateOnly.Day())

	_, err = ParseInstant("next tuesday", nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestParseInstant_ShortAndColonlessOffsets(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "2025-06-10T09:00Z", want: "2025-06-10T09:00:00Z"},
		{in: "2025-06-10T09:00+02:00", want: "2025-06-10T07:00:00Z"},
		{in: "2025-06-10T09:00:00+0200", want: "2025-06-10T07:00:00Z"},
		{in: "2025-06-10T09:00:00.250-0130", want: "2025-06-10T10:30:00Z"},
		{in: "2025-06-10T09:00+0200", want: "2025-06-10T07:00:00Z"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseInstant(tt.in, time.FixedZone("X", 5*3600))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.UTC().Truncate(time.Second).Format(time.RFC3339))
		})
	}
}

func TestScheduledItem_ValidateParsesTimes(t *testing.T) {
	item := ScheduledItem{Name: "Standup", StartTime: "2025-06-10T09:00Z", EndTime: "2025-06-10T09:15+0000", Type: ItemCalendar}
	require.NoError(t, item.Validate())

	item.StartTime = "Tuesday morning"
	err := item.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), "startTime")

	item.StartTime = "2025-06-10T09:00Z"
	item.EndTime = "10am"
	assert.ErrorIs(t, item.Validate(), ErrInvalidInput)
}

func TestFormatISO(t *testing.T) {
	ts := time.Date(2025, 6, 10, 10, 0, 0, 0, time.FixedZone("X", 3600))
	assert.Equal(t, "2025-06-10T09:00:00.000Z", FormatISO(ts))
}

func TestScheduleRun_JiraItems(t *testing.T) {
	run := &ScheduleRun{Items: []ScheduledItem{
		{Name: "a", Type: ItemCalendar},
		{Name: "b", Type: ItemJira},
	}}
	items := run.JiraItems()
	require.Len(t, items, 1)
	assert.Equal(t, "b", items[0].Name)
}
