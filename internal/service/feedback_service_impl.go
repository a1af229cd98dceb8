package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/weekwise/internal/contract"
	"github.com/alexanderramin/weekwise/internal/db"
	"github.com/alexanderramin/weekwise/internal/domain"
	"github.com/alexanderramin/weekwise/internal/intelligence"
	"github.com/alexanderramin/weekwise/internal/repository"
	"github.com/google/uuid"
)

type feedbackService struct {
	evaluator intelligence.FeedbackService
	entries   repository.FeedbackRepo
	uow       db.UnitOfWork
	observer  UseCaseObserver
}

// NewFeedbackService builds the feedback use case. Entries are recorded for
// history only; nothing stored here is read back into a prompt.
func NewFeedbackService(
	evaluator intelligence.FeedbackService,
	entries repository.FeedbackRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) FeedbackService {
	return &feedbackService{
		evaluator: evaluator,
		entries:   entries,
		uow:       uow,
		observer:  combineObservers(observers),
	}
}

func (s *feedbackService) Submit(ctx context.Context, req contract.FeedbackRequest) (resp *contract.FeedbackResponse, err error) {
	fields := map[string]any{"jira_item_id": req.JiraItemID}
	defer observe(ctx, s.observer, "submit-feedback", time.Now().UTC(), fields, &err)

	fb := req.Feedback()
	fb.Normalize()
	if err = fb.Validate(); err != nil {
		return nil, err
	}

	verdict, err := s.evaluator.Evaluate(ctx, fb)
	if err != nil {
		return nil, err
	}
	fields["verdict_success"] = verdict.Success

	resp = &contract.FeedbackResponse{Success: verdict.Success, Message: verdict.Message}
	if s.uow == nil {
		return resp, nil
	}

	entry := &domain.FeedbackEntry{
		ID:        uuid.New().String(),
		Feedback:  fb,
		Verdict:   *verdict,
		CreatedAt: time.Now().UTC(),
	}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteFeedbackRepo(tx).Create(ctx, entry)
	})
	if err != nil {
		return nil, fmt.Errorf("recording feedback: %w", err)
	}
	resp.ID = entry.ID
	return resp, nil
}

func (s *feedbackService) ListRecent(ctx context.Context, limit int) ([]*domain.FeedbackEntry, error) {
	if s.entries == nil {
		return nil, ErrHistoryDisabled
	}
	return s.entries.ListRecent(ctx, limit)
}

func (s *feedbackService) ListByJiraItem(ctx context.Context, jiraItemID string) ([]*domain.FeedbackEntry, error) {
	if s.entries == nil {
		return nil, ErrHistoryDisabled
	}
	return s.entries.ListByJiraItem(ctx, jiraItemID)
}
