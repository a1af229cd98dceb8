package contract

import "github.com/alexanderramin/weekwise/internal/app"

type ErrorCode = app.ErrorCode

const (
	ErrCodeInvalidInput   ErrorCode = app.ErrCodeInvalidInput
	ErrCodeNotFound       ErrorCode = app.ErrCodeNotFound
	ErrCodeUpstream       ErrorCode = app.ErrCodeUpstream
	ErrCodeUpstreamAuth   ErrorCode = app.ErrCodeUpstreamAuth
	ErrCodeLLMUnavailable ErrorCode = app.ErrCodeLLMUnavailable
	ErrCodeLLMTimeout     ErrorCode = app.ErrCodeLLMTimeout
	ErrCodeLLMOutput      ErrorCode = app.ErrCodeLLMOutput
	ErrCodeHistoryOff     ErrorCode = app.ErrCodeHistoryOff
	ErrCodeInternal       ErrorCode = app.ErrCodeInternal
)

type ErrorResponse = app.ErrorResponse

type HealthResponse struct {
	Status string `json:"status"`
	LLM    bool   `json:"llm"`
}
