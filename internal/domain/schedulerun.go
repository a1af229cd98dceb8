package domain

import "time"

// ScheduleRun records a generated week for later review.
type ScheduleRun struct {
	ID        string
	StartDate string
	Model     string
	Provider  string
	Items     []ScheduledItem
	CreatedAt time.Time
}

// JiraItems returns the run's items of type jira, in order.
func (r *ScheduleRun) JiraItems() []ScheduledItem {
	var out []ScheduledItem
	for _, it := range r.Items {
		if it.Type == ItemJira {
			out = append(out, it)
		}
	}
	return out
}
