package domain

import (
	"fmt"
	"strings"
)

// JiraTask is a unit of Jira work to be placed in the week. Tasks are
// identified by name; two tasks with the same name are the same task.
type JiraTask struct {
	Name       string `json:"name"`
	Link       string `json:"link"`
	Deadline   string `json:"deadline,omitempty" jsonschema:"description=The due date of the task in YYYY-MM-DD format."`
	ProjectKey string `json:"projectKey" jsonschema:"description=The project key of the task (e.g. KAN)."`
}

func (t JiraTask) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("%w: jira task name is required", ErrInvalidInput)
	}
	if err := validateURL("jira task link", t.Link); err != nil {
		return err
	}
	if t.Deadline != "" {
		if _, err := ParseDate(t.Deadline, nil); err != nil {
			return fmt.Errorf("jira task %q deadline: %w", t.Name, err)
		}
	}
	return nil
}

// IssueKey extracts the issue key from a .../browse/KEY-123 link, falling back
// to the task name when the link has no browse segment.
func (t JiraTask) IssueKey() string {
	if i := strings.LastIndex(t.Link, "/browse/"); i >= 0 {
		key := t.Link[i+len("/browse/"):]
		key = strings.SplitN(key, "?", 2)[0]
		key = strings.TrimSuffix(key, "/")
		if key != "" {
			return key
		}
	}
	return t.Name
}

// ProjectKeyFromIssueKey returns the part of an issue key before the first dash.
func ProjectKeyFromIssueKey(issueKey string) string {
	return strings.SplitN(issueKey, "-", 2)[0]
}
