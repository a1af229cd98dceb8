package intelligence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/weekwise/internal/domain"
	"github.com/alexanderramin/weekwise/internal/llm"
)

var verdictSchema = llm.GenerateSchema[domain.FeedbackVerdict]()

// FeedbackService asks the LLM to judge actual-vs-estimated feedback.
// Verdicts are returned to the caller only and never shape later schedules.
type FeedbackService interface {
	Evaluate(ctx context.Context, fb domain.LearningFeedback) (*domain.FeedbackVerdict, error)
}

type feedbackService struct {
	client   llm.LLMClient
	observer llm.Observer
}

// NewFeedbackService creates a FeedbackService backed by an LLM client.
func NewFeedbackService(client llm.LLMClient, observer llm.Observer) FeedbackService {
	if observer == nil {
		observer = llm.NoopObserver{}
	}
	return &feedbackService{client: client, observer: observer}
}

func (s *feedbackService) Evaluate(ctx context.Context, fb domain.LearningFeedback) (*domain.FeedbackVerdict, error) {
	prompt, err := BuildFeedbackPrompt(fb)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskLearn,
		SystemPrompt: feedbackSystemPrompt,
		UserPrompt:   prompt,
		SchemaName:   "learning_verdict",
		Schema:       verdictSchema,
	})
	if err != nil {
		return nil, fmt.Errorf("llm feedback evaluation failed: %w", err)
	}

	verdict, err := llm.ExtractJSON(resp.Text, validateVerdict)
	if err != nil {
		reportUnparsed(s.observer, llm.TaskLearn, resp, err)
		return nil, fmt.Errorf("failed to extract verdict: %w", err)
	}
	return &verdict, nil
}

// BuildFeedbackPrompt normalizes and validates fb, then renders the learning prompt.
func BuildFeedbackPrompt(fb domain.LearningFeedback) (string, error) {
	fb.Normalize()
	if err := fb.Validate(); err != nil {
		return "", err
	}
	var b strings.Builder
	if err := feedbackTemplate.Execute(&b, fb); err != nil {
		return "", fmt.Errorf("rendering feedback prompt: %w", err)
	}
	return b.String(), nil
}

func validateVerdict(v domain.FeedbackVerdict) error {
	if strings.TrimSpace(v.Message) == "" {
		return errors.New("verdict message is required")
	}
	return nil
}
