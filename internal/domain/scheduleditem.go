package domain

import (
	"fmt"
	"strings"
)

// ScheduledItem is one block of the generated week. Start and end times are
// whatever ISO strings the generator returned.
type ScheduledItem struct {
	Name       string   `json:"name" jsonschema:"description=The full name of the event or task."`
	StartTime  string   `json:"startTime" jsonschema:"description=The start time of the event or task (ISO format)."`
	EndTime    string   `json:"endTime" jsonschema:"description=The end time of the event or task (ISO format)."`
	Link       string   `json:"link,omitempty" jsonschema:"description=Link to original event resource. Must be a valid URL."`
	Type       ItemType `json:"type" jsonschema:"enum=jira,enum=calendar,description=The type of the scheduled item."`
	ProjectKey string   `json:"projectKey,omitempty" jsonschema:"description=For Jira tasks the project key (e.g. KAN or SZH)."`
	Deadline   string   `json:"deadline,omitempty" jsonschema:"description=The deadline of the task in YYYY-MM-DD format when applicable."`
	OriginalID string   `json:"originalId,omitempty" jsonschema:"-"`
}

// Validate checks the fields the generator is required to return.
func (s ScheduledItem) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("%w: scheduled item is missing a name", ErrInvalidInput)
	}
	if strings.TrimSpace(s.StartTime) == "" {
		return fmt.Errorf("%w: scheduled item %q is missing startTime", ErrInvalidInput, s.Name)
	}
	if strings.TrimSpace(s.EndTime) == "" {
		return fmt.Errorf("%w: scheduled item %q is missing endTime", ErrInvalidInput, s.Name)
	}
	if _, err := ParseInstant(s.StartTime, nil); err != nil {
		return fmt.Errorf("scheduled item %q startTime: %w", s.Name, err)
	}
	if _, err := ParseInstant(s.EndTime, nil); err != nil {
		return fmt.Errorf("scheduled item %q endTime: %w", s.Name, err)
	}
	if !s.Type.Valid() {
		return fmt.Errorf("%w: scheduled item %q has type %q, want jira or calendar", ErrInvalidInput, s.Name, s.Type)
	}
	return nil
}
