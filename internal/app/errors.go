package app

type ErrorCode string

const (
	ErrCodeInvalidInput   ErrorCode = "INVALID_INPUT"
	ErrCodeNotFound       ErrorCode = "NOT_FOUND"
	ErrCodeUpstream       ErrorCode = "UPSTREAM_ERROR"
	ErrCodeUpstreamAuth   ErrorCode = "UPSTREAM_AUTH"
	ErrCodeLLMUnavailable ErrorCode = "LLM_UNAVAILABLE"
	ErrCodeLLMTimeout     ErrorCode = "LLM_TIMEOUT"
	ErrCodeLLMOutput      ErrorCode = "LLM_INVALID_OUTPUT"
	ErrCodeHistoryOff     ErrorCode = "HISTORY_DISABLED"
	ErrCodeInternal       ErrorCode = "INTERNAL_ERROR"
)

type ErrorResponse struct {
	Error string    `json:"error"`
	Code  ErrorCode `json:"code,omitempty"`
}
