package intelligence

import "github.com/alexanderramin/weekwise/internal/domain"

// dedupeByName collapses items sharing a name. The surviving entry sits at the
// position of the first occurrence and carries the value of the last one.
func dedupeByName[T any](items []T, name func(T) string) []T {
	index := make(map[string]int, len(items))
	out := make([]T, 0, len(items))
	for _, it := range items {
		key := name(it)
		if i, ok := index[key]; ok {
			out[i] = it
			continue
		}
		index[key] = len(out)
		out = append(out, it)
	}
	return out
}

// DedupeTasks removes Jira tasks that repeat an earlier task's name.
func DedupeTasks(tasks []domain.JiraTask) []domain.JiraTask {
	return dedupeByName(tasks, func(t domain.JiraTask) string { return t.Name })
}

// DedupeEvents removes calendar events that repeat an earlier event's name.
func DedupeEvents(events []domain.CalendarEvent) []domain.CalendarEvent {
	return dedupeByName(events, func(e domain.CalendarEvent) string { return e.Name })
}
