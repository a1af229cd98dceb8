package domain

import (
	"fmt"
	"strings"
)

// CalendarEvent is a fixed appointment the schedule has to honour.
type CalendarEvent struct {
	Name      string `json:"name"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Link      string `json:"link,omitempty"`
}

func (e CalendarEvent) Validate() error {
	if strings.TrimSpace(e.Name) == "" {
		return fmt.Errorf("%w: calendar event name is required", ErrInvalidInput)
	}
	start, err := ParseInstant(e.StartTime, nil)
	if err != nil {
		return fmt.Errorf("calendar event %q start: %w", e.Name, err)
	}
	end, err := ParseInstant(e.EndTime, nil)
	if err != nil {
		return fmt.Errorf("calendar event %q end: %w", e.Name, err)
	}
	if end.Before(start) {
		return fmt.Errorf("%w: calendar event %q ends before it starts", ErrInvalidInput, e.Name)
	}
	if e.Link != "" {
		return validateURL("calendar event link", e.Link)
	}
	return nil
}
