package service

import (
	"errors"

	"github.com/alexanderramin/weekwise/internal/contract"
	"github.com/alexanderramin/weekwise/internal/domain"
	"github.com/alexanderramin/weekwise/internal/gcal"
	"github.com/alexanderramin/weekwise/internal/jira"
	"github.com/alexanderramin/weekwise/internal/llm"
	"github.com/alexanderramin/weekwise/internal/repository"
)

var (
	// ErrHistoryDisabled is returned by history reads when no database is wired.
	ErrHistoryDisabled = errors.New("schedule history is not enabled")

	// ErrNoSources is returned when a fetch is requested without fetch adapters.
	ErrNoSources = errors.New("no jira or calendar source configured")
)

// ClassifyError maps an error from any use case to its API error code.
func ClassifyError(err error) contract.ErrorCode {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, domain.ErrInvalidInput):
		return contract.ErrCodeInvalidInput
	case errors.Is(err, repository.ErrNotFound),
		errors.Is(err, gcal.ErrCalendarNotFound):
		return contract.ErrCodeNotFound
	case errors.Is(err, jira.ErrAuthFailed),
		errors.Is(err, gcal.ErrAuthFailed),
		errors.Is(err, gcal.ErrAccessNotConfigured):
		return contract.ErrCodeUpstreamAuth
	case errors.Is(err, jira.ErrUpstream),
		errors.Is(err, jira.ErrBadConfig),
		errors.Is(err, gcal.ErrUpstream),
		errors.Is(err, gcal.ErrMissingAPIKey),
		errors.Is(err, ErrNoSources):
		return contract.ErrCodeUpstream
	case errors.Is(err, llm.ErrTimeout):
		return contract.ErrCodeLLMTimeout
	case errors.Is(err, llm.ErrUnavailable),
		errors.Is(err, llm.ErrRetryExhausted),
		errors.Is(err, llm.ErrNotConfigured):
		return contract.ErrCodeLLMUnavailable
	case errors.Is(err, ErrHistoryDisabled):
		return contract.ErrCodeHistoryOff
	case errors.Is(err, llm.ErrInvalidOutput):
		return contract.ErrCodeLLMOutput
	default:
		return contract.ErrCodeInternal
	}
}
