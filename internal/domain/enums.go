package domain

import (
	"fmt"
	"strings"
)

type DayOfWeek string

const (
	Monday    DayOfWeek = "Monday"
	Tuesday   DayOfWeek = "Tuesday"
	Wednesday DayOfWeek = "Wednesday"
	Thursday  DayOfWeek = "Thursday"
	Friday    DayOfWeek = "Friday"
	Saturday  DayOfWeek = "Saturday"
	Sunday    DayOfWeek = "Sunday"
)

// AllDaysOfWeek lists the days in the order the week grid and forms show them.
var AllDaysOfWeek = []DayOfWeek{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// Valid reports whether d is one of the seven canonical day names.
func (d DayOfWeek) Valid() bool {
	for _, day := range AllDaysOfWeek {
		if d == day {
			return true
		}
	}
	return false
}

// ParseDayOfWeek accepts a full or three-letter day name in any case.
func ParseDayOfWeek(s string) (DayOfWeek, error) {
	needle := strings.ToLower(strings.TrimSpace(s))
	if needle == "" {
		return "", fmt.Errorf("%w: empty day of week", ErrInvalidInput)
	}
	for _, day := range AllDaysOfWeek {
		name := strings.ToLower(string(day))
		if needle == name || (len(needle) == 3 && strings.HasPrefix(name, needle)) {
			return day, nil
		}
	}
	return "", fmt.Errorf("%w: unknown day of week %q", ErrInvalidInput, s)
}

type ItemType string

const (
	ItemJira     ItemType = "jira"
	ItemCalendar ItemType = "calendar"
)

// Valid reports whether t is a known scheduled item type.
func (t ItemType) Valid() bool {
	return t == ItemJira || t == ItemCalendar
}
