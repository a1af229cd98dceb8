package scheduler

import (
	"fmt"
	"sort"
	"time"

	"github.com/alexanderramin/weekwise/internal/domain"
)

// DaySchedule maps a yyyy-MM-dd key to the items starting on that date.
type DaySchedule map[string][]domain.ScheduledItem

// DayColumn is one column of the week grid.
type DayColumn struct {
	Date  time.Time
	Key   string
	Items []domain.ScheduledItem
}

type timedItem struct {
	item  domain.ScheduledItem
	start time.Time
}

// GroupByDay buckets items by the calendar date of their start time in loc
// and orders each bucket by start time. Items with equal start times keep
// their input order.
func GroupByDay(items []domain.ScheduledItem, loc *time.Location) (DaySchedule, error) {
	if loc == nil {
		loc = time.UTC
	}
	buckets := make(map[string][]timedItem)
	for _, it := range items {
		start, err := domain.ParseInstant(it.StartTime, loc)
		if err != nil {
			return nil, fmt.Errorf("scheduled item %q: %w", it.Name, err)
		}
		key := start.In(loc).Format(domain.DateLayout)
		buckets[key] = append(buckets[key], timedItem{item: it, start: start})
	}

	out := make(DaySchedule, len(buckets))
	for key, bucket := range buckets {
		sort.SliceStable(bucket, func(i, j int) bool {
			return bucket[i].start.Before(bucket[j].start)
		})
		day := make([]domain.ScheduledItem, len(bucket))
		for i, ti := range bucket {
			day[i] = ti.item
		}
		out[key] = day
	}
	return out, nil
}

// WeekDays returns start and the six dates after it.
func WeekDays(start time.Time) []time.Time {
	y, m, d := start.Date()
	first := time.Date(y, m, d, 0, 0, 0, 0, start.Location())
	days := make([]time.Time, 7)
	for i := range days {
		days[i] = first.AddDate(0, 0, i)
	}
	return days
}

// Week lays grouped items out over the seven days from start. Days without
// items are included with an empty list.
func Week(start time.Time, grouped DaySchedule) []DayColumn {
	days := WeekDays(start)
	cols := make([]DayColumn, len(days))
	for i, d := range days {
		key := d.Format(domain.DateLayout)
		cols[i] = DayColumn{Date: d, Key: key, Items: grouped[key]}
	}
	return cols
}

// Outside returns the keys of grouped days that fall outside the week from
// start, sorted. The generator is not forced to stay inside the week.
func Outside(start time.Time, grouped DaySchedule) []string {
	in := make(map[string]bool, 7)
	for _, d := range WeekDays(start) {
		in[d.Format(domain.DateLayout)] = true
	}
	var out []string
	for key := range grouped {
		if !in[key] {
			out = append(out, key)
		}
	}
	sort.Strings(out)
	return out
}

// WeekGrid is the seven-day view of a schedule. Extra holds any days the
// generator placed outside the week, in date order.
type WeekGrid struct {
	Columns []DayColumn
	Extra   []DayColumn
}

// BuildWeekGrid groups items in loc and lays them out over the week starting
// at startDate (YYYY-MM-DD).
func BuildWeekGrid(items []domain.ScheduledItem, startDate string, loc *time.Location) (*WeekGrid, error) {
	if loc == nil {
		loc = time.UTC
	}
	start, err := domain.ParseDate(startDate, loc)
	if err != nil {
		return nil, err
	}
	grouped, err := GroupByDay(items, loc)
	if err != nil {
		return nil, err
	}
	grid := &WeekGrid{Columns: Week(start, grouped)}
	for _, key := range Outside(start, grouped) {
		d, _ := domain.ParseDate(key, loc)
		grid.Extra = append(grid.Extra, DayColumn{Date: d, Key: key, Items: grouped[key]})
	}
	return grid, nil
}
