package jira

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/alexanderramin/weekwise/internal/domain"
)

// Client fetches open Jira issues for the configured projects.
type Client struct {
	cfg    Config
	http   *http.Client
	now    func() time.Time
	logger *slog.Logger
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithClock replaces time.Now, used for demo deadlines.
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// WithLogger sets the logger used for configuration warnings.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// NewClient creates a Jira client for cfg.
func NewClient(cfg Config, opts ...Option) *Client {
	c := &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: 30 * time.Second},
		now:    time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type searchResponse struct {
	Issues *[]struct {
		Key    string `json:"key"`
		Fields struct {
			Summary string  `json:"summary"`
			DueDate *string `json:"duedate"`
		} `json:"fields"`
	} `json:"issues"`
}

type errorResponse struct {
	ErrorMessages []string `json:"errorMessages"`
}

// FetchTasks returns the open issues of the configured projects, newest first.
// The demo key yields canned tasks. An incomplete configuration yields no
// tasks and no error.
func (c *Client) FetchTasks(ctx context.Context) ([]domain.JiraTask, error) {
	if c.cfg.Demo() {
		return demoTasks(c.cfg.InstanceURL, c.now()), nil
	}
	if !c.cfg.Complete() {
		c.logger.Warn("jira not fully configured, skipping fetch",
			"need", "JIRA_USER_EMAIL, JIRA_API_KEY, JIRA_INSTANCE_URL, JIRA_PROJECT_KEY")
		return []domain.JiraTask{}, nil
	}

	c.logger.Debug("fetching jira tasks", "instance", c.cfg.InstanceURL, "projects", c.cfg.ProjectKeys)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.searchURL(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: creating request: %v", ErrUpstream, err)
	}
	req.SetBasicAuth(c.cfg.UserEmail, c.cfg.APIKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", ErrUpstream, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.statusError(resp, body)
	}

	var sr searchResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", ErrUpstream, err)
	}
	if sr.Issues == nil {
		return nil, fmt.Errorf("%w: response did not contain 'issues': %s", ErrUpstream, string(body))
	}

	tasks := make([]domain.JiraTask, 0, len(*sr.Issues))
	for _, issue := range *sr.Issues {
		task := domain.JiraTask{
			Name:       fmt.Sprintf("[%s] %s", issue.Key, issue.Fields.Summary),
			Link:       fmt.Sprintf("%s/browse/%s", c.cfg.InstanceURL, issue.Key),
			ProjectKey: domain.ProjectKeyFromIssueKey(issue.Key),
		}
		if issue.Fields.DueDate != nil {
			task.Deadline = *issue.Fields.DueDate
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

// JQL returns the query used to select open issues.
func (c *Client) JQL() string {
	quoted := make([]string, len(c.cfg.ProjectKeys))
	for i, k := range c.cfg.ProjectKeys {
		quoted[i] = `"` + k + `"`
	}
	return fmt.Sprintf(`project in (%s) AND status != "DONE" ORDER BY created DESC`, strings.Join(quoted, ","))
}

func (c *Client) searchURL() string {
	q := url.Values{}
	q.Set("jql", c.JQL())
	q.Set("fields", "summary,key,duedate")
	return c.cfg.InstanceURL + "/rest/api/latest/search?" + q.Encode()
}

func (c *Client) statusError(resp *http.Response, body []byte) error {
	details := errorDetails(body)
	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w (Status: %d): check JIRA_USER_EMAIL and JIRA_API_KEY", ErrAuthFailed, resp.StatusCode)
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s: check JIRA_PROJECT_KEY (%s) and JIRA_INSTANCE_URL",
			ErrBadConfig, details, strings.Join(c.cfg.ProjectKeys, ","))
	default:
		return fmt.Errorf("%w with status %d: %s. Details: %s",
			ErrUpstream, resp.StatusCode, http.StatusText(resp.StatusCode), details)
	}
}

// errorDetails prefers Jira's errorMessages, then the raw body.
func errorDetails(body []byte) string {
	var er errorResponse
	if err := json.Unmarshal(body, &er); err == nil && len(er.ErrorMessages) > 0 {
		return strings.Join(er.ErrorMessages, " ")
	}
	if s := strings.TrimSpace(string(body)); s != "" {
		return s
	}
	return "could not retrieve error details"
}
