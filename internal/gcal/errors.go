package gcal

import "errors"

var (
	ErrMissingAPIKey       = errors.New("google calendar API key (GOOGLE_CALENDAR_API_KEY) is not set")
	ErrAccessNotConfigured = errors.New("google calendar API access is not configured")
	ErrAuthFailed          = errors.New("google calendar request forbidden")
	ErrCalendarNotFound    = errors.New("google calendar not found")
	ErrUpstream            = errors.New("google calendar request failed")
)
