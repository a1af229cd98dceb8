package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// openaiClient implements LLMClient on the OpenAI chat completions API.
type openaiClient struct {
	cfg      LLMConfig
	client   openai.Client
	observer Observer
}

// NewOpenAIClient creates an LLMClient backed by an OpenAI-compatible API.
// Endpoint, when set, replaces the SDK's default base URL.
func NewOpenAIClient(cfg LLMConfig, observer Observer) (LLMClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: openai provider requires an API key", ErrNotConfigured)
	}
	if observer == nil {
		observer = NoopObserver{}
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(cfg.MaxRetries),
	}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithBaseURL(cfg.Endpoint))
	}
	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}

	return &openaiClient{
		cfg:      cfg,
		client:   openai.NewClient(opts...),
		observer: observer,
	}, nil
}

func (c *openaiClient) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	start := time.Now()
	temp, maxTok := c.cfg.taskParams(req)

	timeoutMs := c.cfg.TaskTimeout(req.Task)
	ctx, cancel := context.WithTimeout(ctx, time.Duration(timeoutMs)*time.Millisecond)
	defer cancel()

	messages := []openai.ChatCompletionMessageParamUnion{}
	if req.SystemPrompt != "" {
		messages = append(messages, openai.SystemMessage(req.SystemPrompt))
	}
	messages = append(messages, openai.UserMessage(req.UserPrompt))

	params := openai.ChatCompletionNewParams{
		Model:       c.cfg.Model,
		Messages:    messages,
		Temperature: openai.Float(temp),
	}
	if maxTok > 0 {
		params.MaxTokens = openai.Int(int64(maxTok))
	}
	if req.Schema != nil {
		name := req.SchemaName
		if name == "" {
			name = string(req.Task)
		}
		params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{
				JSONSchema: openai.ResponseFormatJSONSchemaJSONSchemaParam{
					Name:        name,
					Description: openai.String("Structured response schema"),
					Schema:      req.Schema,
					Strict:      openai.Bool(false),
				},
			},
		}
	}

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err == nil && len(resp.Choices) == 0 {
		err = fmt.Errorf("%w: no choices in response", ErrInvalidOutput)
	}
	latency := time.Since(start).Milliseconds()
	if err != nil {
		err = c.mapError(ctx, err)
		c.observer.OnCallComplete(LLMCallEvent{
			Task:      req.Task,
			Provider:  ProviderOpenAI,
			Model:     c.cfg.Model,
			LatencyMs: latency,
			Attempts:  1 + c.cfg.MaxRetries,
			Success:   false,
			ErrorCode: ErrorCode(err),
		})
		return nil, err
	}

	c.observer.OnCallComplete(LLMCallEvent{
		Task:      req.Task,
		Provider:  ProviderOpenAI,
		Model:     c.cfg.Model,
		LatencyMs: latency,
		Attempts:  1,
		Success:   true,
	})
	model := resp.Model
	if model == "" {
		model = c.cfg.Model
	}
	return &GenerateResponse{
		Text:      resp.Choices[0].Message.Content,
		Model:     model,
		LatencyMs: latency,
	}, nil
}

// Available reports whether a key is configured. The API is not probed.
func (c *openaiClient) Available(ctx context.Context) bool {
	return c.cfg.APIKey != ""
}

func (c *openaiClient) mapError(ctx context.Context, err error) error {
	if errors.Is(err, ErrInvalidOutput) {
		return err
	}
	if ctx.Err() != nil || errors.Is(err, context.DeadlineExceeded) {
		return ErrTimeout
	}
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.StatusCode == 401 || apiErr.StatusCode == 403:
			return fmt.Errorf("%w: openai rejected credentials (status %d)", ErrNotConfigured, apiErr.StatusCode)
		case apiErr.StatusCode == 429 || apiErr.StatusCode >= 500:
			return fmt.Errorf("%w: openai status %d", ErrRetryExhausted, apiErr.StatusCode)
		default:
			return fmt.Errorf("%w: openai status %d: %s", ErrRetryExhausted, apiErr.StatusCode, apiErr.Message)
		}
	}
	if isConnectionError(err) {
		return ErrUnavailable
	}
	return fmt.Errorf("%w: %v", ErrRetryExhausted, err)
}
