package jira

import "errors"

var (
	// ErrAuthFailed is returned when Jira rejects the credentials.
	ErrAuthFailed = errors.New("jira authentication failed")

	// ErrBadConfig is returned when Jira rejects the query, usually because
	// of an unknown project key or instance URL.
	ErrBadConfig = errors.New("jira configuration error")

	// ErrUpstream covers every other failed or malformed Jira response.
	ErrUpstream = errors.New("jira request failed")
)
