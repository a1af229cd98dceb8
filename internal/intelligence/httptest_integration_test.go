package intelligence

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/weekwise/internal/domain"
	"github.com/alexanderramin/weekwise/internal/llm"
)

func newHTTPTestServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()

	var srv *httptest.Server
	func() {
		defer func() {
			if r := recover(); r != nil {
				t.Skipf("skipping HTTP integration test: local listener unavailable (%v)", r)
			}
		}()
		srv = httptest.NewServer(handler)
	}()
	return srv
}

func ollamaTestConfig(endpoint string) llm.LLMConfig {
	cfg := llm.DefaultConfig()
	cfg.Endpoint = endpoint
	cfg.Model = "test-model"
	cfg.MaxRetries = 0
	return cfg
}

// TestScheduleService_Generate_WithHTTPTestServer runs the whole path from
// prompt rendering through the Ollama wire format to schedule parsing.
func TestScheduleService_Generate_WithHTTPTestServer(t *testing.T) {
	schedule := scheduleJSON(
		domain.ScheduledItem{Name: "[SZH-2] Docs", StartTime: "2024-05-06T10:00:00Z", EndTime: "2024-05-06T11:00:00Z", Type: domain.ItemJira, ProjectKey: "SZH"},
	)

	srv := newHTTPTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Contains(t, body["prompt"], "[SZH-2] Docs")
		format, ok := body["format"].(map[string]any)
		require.True(t, ok)
		props, _ := format["properties"].(map[string]any)
		assert.Contains(t, props, "schedule")

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"model": "test-model", "response": schedule})
	}))
	defer srv.Close()

	client := llm.NewOllamaClient(ollamaTestConfig(srv.URL), llm.NoopObserver{})
	out, err := NewScheduleService(client, llm.NoopObserver{}).Generate(context.Background(), sampleInput())

	require.NoError(t, err)
	require.Len(t, out.Schedule, 1)
	assert.Equal(t, "SZH-2", out.Schedule[0].OriginalID)
	assert.Equal(t, "test-model", out.Model)
}

// TestFeedbackService_Evaluate_Timeout verifies a slow model surfaces
// ErrTimeout instead of hanging.
func TestFeedbackService_Evaluate_Timeout(t *testing.T) {
	srv := newHTTPTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(10 * time.Second):
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()

	cfg := ollamaTestConfig(srv.URL)
	learn := cfg.Tasks[llm.TaskLearn]
	learn.TimeoutMs = 200
	cfg.Tasks[llm.TaskLearn] = learn

	client := llm.NewOllamaClient(cfg, llm.NoopObserver{})
	start := time.Now()
	_, err := NewFeedbackService(client, llm.NoopObserver{}).Evaluate(context.Background(), domain.LearningFeedback{
		JiraItemID: "KAN-1",
		ActualTime: 2,
	})

	assert.ErrorIs(t, err, llm.ErrTimeout)
	assert.Less(t, time.Since(start), 3*time.Second)
}
