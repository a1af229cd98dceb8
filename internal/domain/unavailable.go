package domain

import "fmt"

// UnavailableHour is a recurring weekly window in which nothing may be scheduled.
// Enforcement is left to the schedule generator.
type UnavailableHour struct {
	DayOfWeek DayOfWeek `json:"dayOfWeek" jsonschema:"enum=Monday,enum=Tuesday,enum=Wednesday,enum=Thursday,enum=Friday,enum=Saturday,enum=Sunday"`
	StartTime string    `json:"startTime" jsonschema:"pattern=^([01]?[0-9]|2[0-3]):[0-5][0-9]$"`
	EndTime   string    `json:"endTime" jsonschema:"pattern=^([01]?[0-9]|2[0-3]):[0-5][0-9]$"`
}

func (u UnavailableHour) Validate() error {
	if !u.DayOfWeek.Valid() {
		return fmt.Errorf("%w: unknown day of week %q", ErrInvalidInput, u.DayOfWeek)
	}
	if !ValidClock(u.StartTime) {
		return fmt.Errorf("%w: start time %q must be HH:mm", ErrInvalidInput, u.StartTime)
	}
	if !ValidClock(u.EndTime) {
		return fmt.Errorf("%w: end time %q must be HH:mm", ErrInvalidInput, u.EndTime)
	}
	return nil
}

func (u UnavailableHour) String() string {
	return fmt.Sprintf("%s %s-%s", u.DayOfWeek, u.StartTime, u.EndTime)
}
