package intelligence

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/weekwise/internal/domain"
	"github.com/alexanderramin/weekwise/internal/llm"
)

func TestBuildFeedbackPrompt_DefaultsEstimate(t *testing.T) {
	prompt, err := BuildFeedbackPrompt(domain.LearningFeedback{
		JiraItemID:        " KAN-101 ",
		ActualTime:        2.5,
		ManualAdjustments: "Moved to Thursday because of a client call",
	})

	require.NoError(t, err)
	assert.Contains(t, prompt, "Jira Item ID: KAN-101\n")
	assert.Contains(t, prompt, "Estimated Time: 1 hours")
	assert.Contains(t, prompt, "Actual Time: 2.5 hours")
	assert.Contains(t, prompt, "Manual Adjustments: Moved to Thursday because of a client call")
}

func TestBuildFeedbackPrompt_Invalid(t *testing.T) {
	_, err := BuildFeedbackPrompt(domain.LearningFeedback{JiraItemID: "KAN-1", ActualTime: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = BuildFeedbackPrompt(domain.LearningFeedback{ActualTime: 2})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestFeedbackService_Evaluate(t *testing.T) {
	client := &mockLLMClient{response: `Sure! {"success": true, "message": "Tasks like KAN-101 take 2.5x longer than planned."}`}

	verdict, err := NewFeedbackService(client, llm.NoopObserver{}).Evaluate(context.Background(), domain.LearningFeedback{
		JiraItemID: "KAN-101",
		ActualTime: 2.5,
	})

	require.NoError(t, err)
	assert.True(t, verdict.Success)
	assert.Contains(t, verdict.Message, "2.5x")
	assert.Equal(t, llm.TaskLearn, client.lastReq.Task)
	assert.Equal(t, "learning_verdict", client.lastReq.SchemaName)
}

func TestFeedbackService_Evaluate_MissingMessage(t *testing.T) {
	client := &mockLLMClient{response: `{"success": false}`}
	obs := &recordingLLMObserver{}

	_, err := NewFeedbackService(client, obs).Evaluate(context.Background(), domain.LearningFeedback{
		JiraItemID: "KAN-101",
		ActualTime: 1,
	})

	assert.ErrorIs(t, err, llm.ErrInvalidOutput)
	require.Len(t, obs.events, 1)
	assert.Equal(t, llm.TaskLearn, obs.events[0].Task)
	assert.Equal(t, "INVALID_OUTPUT", obs.events[0].ErrorCode)
}

func TestFeedbackService_NilObserver(t *testing.T) {
	client := &mockLLMClient{response: `not json`}

	_, err := NewFeedbackService(client, nil).Evaluate(context.Background(), domain.LearningFeedback{
		JiraItemID: "KAN-101",
		ActualTime: 1,
	})

	assert.ErrorIs(t, err, llm.ErrInvalidOutput)
}

func TestFeedbackService_Evaluate_LLMTimeout(t *testing.T) {
	client := &mockLLMClient{err: llm.ErrTimeout}

	_, err := NewFeedbackService(client, llm.NoopObserver{}).Evaluate(context.Background(), domain.LearningFeedback{
		JiraItemID: "KAN-101",
		ActualTime: 1,
	})

	assert.ErrorIs(t, err, llm.ErrTimeout)
}
