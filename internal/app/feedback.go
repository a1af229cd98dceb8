package app

import (
	"time"

	"github.com/alexanderramin/weekwise/internal/domain"
)

type FeedbackRequest struct {
	JiraItemID        string  `json:"jiraItemId"`
	EstimatedTime     float64 `json:"estimatedTime"`
	ActualTime        float64 `json:"actualTime"`
	ManualAdjustments string  `json:"manualAdjustments,omitempty"`
}

// NewFeedbackRequest fixes the estimate at the default one-hour block.
func NewFeedbackRequest(jiraItemID string, actualHours float64) FeedbackRequest {
	return FeedbackRequest{
		JiraItemID:    jiraItemID,
		EstimatedTime: domain.DefaultEstimatedHours,
		ActualTime:    actualHours,
	}
}

func (r FeedbackRequest) Feedback() domain.LearningFeedback {
	return domain.LearningFeedback{
		JiraItemID:        r.JiraItemID,
		EstimatedTime:     r.EstimatedTime,
		ActualTime:        r.ActualTime,
		ManualAdjustments: r.ManualAdjustments,
	}
}

type FeedbackResponse struct {
	ID      string `json:"id,omitempty"`
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type FeedbackEntryView struct {
	ID                string    `json:"id"`
	JiraItemID        string    `json:"jiraItemId"`
	EstimatedTime     float64   `json:"estimatedTime"`
	ActualTime        float64   `json:"actualTime"`
	ManualAdjustments string    `json:"manualAdjustments,omitempty"`
	Success           bool      `json:"success"`
	Message           string    `json:"message"`
	CreatedAt         time.Time `json:"createdAt"`
}

func NewFeedbackEntryView(e *domain.FeedbackEntry) FeedbackEntryView {
	return FeedbackEntryView{
		ID:                e.ID,
		JiraItemID:        e.Feedback.JiraItemID,
		EstimatedTime:     e.Feedback.EstimatedTime,
		ActualTime:        e.Feedback.ActualTime,
		ManualAdjustments: e.Feedback.ManualAdjustments,
		Success:           e.Verdict.Success,
		Message:           e.Verdict.Message,
		CreatedAt:         e.CreatedAt,
	}
}
