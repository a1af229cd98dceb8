package domain

import (
	"fmt"
	"strings"
	"time"
)

// DefaultEstimatedHours is the block length every Jira task is scheduled with.
const DefaultEstimatedHours = 1.0

// LearningFeedback reports how long a scheduled Jira item actually took.
type LearningFeedback struct {
	JiraItemID        string  `json:"jiraItemId"`
	EstimatedTime     float64 `json:"estimatedTime"`
	ActualTime        float64 `json:"actualTime"`
	ManualAdjustments string  `json:"manualAdjustments,omitempty"`
}

// Normalize fills the fixed estimate when the caller left it unset.
func (f *LearningFeedback) Normalize() {
	if f.EstimatedTime == 0 {
		f.EstimatedTime = DefaultEstimatedHours
	}
	f.JiraItemID = strings.TrimSpace(f.JiraItemID)
	f.ManualAdjustments = strings.TrimSpace(f.ManualAdjustments)
}

func (f LearningFeedback) Validate() error {
	if strings.TrimSpace(f.JiraItemID) == "" {
		return fmt.Errorf("%w: jira item id is required", ErrInvalidInput)
	}
	if f.EstimatedTime <= 0 {
		return fmt.Errorf("%w: estimated time must be positive", ErrInvalidInput)
	}
	if f.ActualTime <= 0 {
		return fmt.Errorf("%w: actual time must be a positive number of hours", ErrInvalidInput)
	}
	return nil
}

// FeedbackVerdict is the generator's judgement on a feedback submission.
type FeedbackVerdict struct {
	Success bool   `json:"success" jsonschema:"description=Whether the learning process was successful."`
	Message string `json:"message" jsonschema:"description=A message indicating the outcome of the learning process."`
}

// FeedbackEntry records one evaluated submission.
type FeedbackEntry struct {
	ID        string
	Feedback  LearningFeedback
	Verdict   FeedbackVerdict
	CreatedAt time.Time
}
