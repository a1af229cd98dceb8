package gcal

import (
	"time"

	"github.com/alexanderramin/weekwise/internal/domain"
)

const demoLink = "https://calendar.google.com"

// demoEvents places two fixed events in the week starting at start.
func demoEvents(start time.Time) []domain.CalendarEvent {
	at := func(days, hour int) time.Time {
		d := start.AddDate(0, 0, days)
		return time.Date(d.Year(), d.Month(), d.Day(), hour, 0, 0, 0, d.Location())
	}
	sync := at(1, 10)
	planning := at(3, 14)
	return []domain.CalendarEvent{
		{
			Name:      "Team Sync (Demo Event)",
			StartTime: domain.FormatISO(sync),
			EndTime:   domain.FormatISO(sync.Add(time.Hour)),
			Link:      demoLink,
		},
		{
			Name:      "Project Planning (Demo Event)",
			StartTime: domain.FormatISO(planning),
			EndTime:   domain.FormatISO(planning.Add(2 * time.Hour)),
			Link:      demoLink,
		},
	}
}
