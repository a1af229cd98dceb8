package gcal

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

// Client reads events from a public Google Calendar with an API key.
type Client struct {
	cfg    Config
	http   *http.Client
	loc    *time.Location
	logger *slog.Logger
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLocation sets the zone start dates are interpreted in.
func WithLocation(loc *time.Location) Option {
	return func(c *Client) { c.loc = loc }
}

// WithLogger sets the client logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// NewClient creates a calendar client for cfg.
func NewClient(cfg Config, opts ...Option) *Client {
	c := &Client{
		cfg:    cfg.withDefaults(),
		http:   &http.Client{Timeout: 30 * time.Second},
		loc:    time.Local,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type eventTime struct {
	DateTime string `json:"dateTime"`
	Date     string `json:"date"`
}

func (t eventTime) value() string {
	return domain.CoalesceStr(t.DateTime, t.Date)
}

type eventsResponse struct {
	Items []struct {
		Status   string    `json:"status"`
		Summary  string    `json:"summary"`
		HTMLLink string    `json:"htmlLink"`
		Start    eventTime `json:"start"`
		End      eventTime `json:"end"`
	} `json:"items"`
}

type apiErrorResponse struct {
	Error struct {
		Message string `json:"message"`
		Errors  []struct {
			Reason string `json:"reason"`
		} `json:"errors"`
	} `json:"error"`
}

// FetchEvents returns the non-cancelled events in the 7 days starting at
// startDate (YYYY-MM-DD).
func (c *Client) FetchEvents(ctx context.Context, startDate string) ([]domain.CalendarEvent, error) {
	start, err := domain.ParseDate(startDate, c.loc)
	if err != nil {
		return nil, fmt.Errorf("start date: %w", err)
	}
	if c.cfg.Demo() {
		c.logger.Debug("serving demo calendar events", "calendar", c.cfg.CalendarID)
		return demoEvents(start), nil
	}
	if c.cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: cannot fetch events", ErrMissingAPIKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.eventsURL(start), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: creating request: %v", ErrUpstream, err)
	}
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
		return nil, c.statusError(resp.StatusCode, body)
	}

	var er eventsResponse
	if err := json.Unmarshal(body, &er); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", ErrUpstream, err)
	}

	events := make([]domain.CalendarEvent, 0, len(er.Items))
	for _, item := range er.Items {
		if item.Status == "cancelled" {
			continue
		}
		events = append(events, domain.CalendarEvent{
			Name:      domain.CoalesceStr(item.Summary, "No Title"),
			StartTime: item.Start.value(),
			EndTime:   item.End.value(),
			Link:      item.HTMLLink,
		})
	}
	return events, nil
}

func (c *Client) eventsURL(start time.Time) string {
	q := url.Values{}
	q.Set("key", c.cfg.APIKey)
	q.Set("timeMin", domain.FormatISO(start))
	q.Set("timeMax", domain.FormatISO(start.AddDate(0, 0, 7)))
	q.Set("singleEvents", "true")
	q.Set("orderBy", "startTime")
	return fmt.Sprintf("%s/calendars/%s/events?%s", c.cfg.BaseURL, url.PathEscape(c.cfg.CalendarID), q.Encode())
}

func (c *Client) statusError(status int, body []byte) error {
	var ae apiErrorResponse
	parsed := json.Unmarshal(body, &ae) == nil

	switch {
	case status == http.StatusForbidden && parsed && len(ae.Error.Errors) > 0 && ae.Error.Errors[0].Reason == "accessNotConfigured":
		return fmt.Errorf("%w: enable the Calendar API in your Google Cloud project and check the API key", ErrAccessNotConfigured)
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return fmt.Errorf("%w (status %d): check GOOGLE_CALENDAR_API_KEY and its permissions", ErrAuthFailed, status)
	case status == http.StatusNotFound:
		return fmt.Errorf("%w (404): the calendar with ID '%s' is not shared publicly. "+
			"In the calendar's settings set 'Access permissions for events' to 'Make available to public'",
			ErrCalendarNotFound, c.cfg.CalendarID)
	}

	details := strings.TrimSpace(string(body))
	if parsed && ae.Error.Message != "" {
		details = ae.Error.Message
	}
	if details == "" {
		details = "could not retrieve error details"
	}
	return fmt.Errorf("%w with status %d: %s", ErrUpstream, status, details)
}
