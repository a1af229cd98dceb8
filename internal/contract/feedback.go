package contract

import (
	"github.com/alexanderramin/weekwise/internal/app"
	"github.com/alexanderramin/weekwise/internal/domain"
)

type FeedbackRequest = app.FeedbackRequest

func NewFeedbackRequest(jiraItemID string, actualHours float64) FeedbackRequest {
	return app.NewFeedbackRequest(jiraItemID, actualHours)
}

type FeedbackResponse = app.FeedbackResponse

type FeedbackEntryView = app.FeedbackEntryView

func NewFeedbackEntryView(e *domain.FeedbackEntry) FeedbackEntryView {
	return app.NewFeedbackEntryView(e)
}
