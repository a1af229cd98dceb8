package gcal

import (
	"os"
	"strings"
)

const (
	// DemoAPIKey switches the client to canned demo events.
	DemoAPIKey = "DEMO_GCAL_KEY"

	DefaultBaseURL    = "https://www.googleapis.com/calendar/v3"
	DefaultCalendarID = "primary"
)

// Config holds Google Calendar settings.
type Config struct {
	APIKey     string
	CalendarID string
	BaseURL    string
}

// LoadConfig reads calendar settings from the environment.
func LoadConfig() Config {
	cfg := Config{
		APIKey:     strings.TrimSpace(os.Getenv("GOOGLE_CALENDAR_API_KEY")),
		CalendarID: strings.TrimSpace(os.Getenv("GOOGLE_CALENDAR_ID")),
		BaseURL:    strings.TrimRight(strings.TrimSpace(os.Getenv("WEEKWISE_GCAL_BASE_URL")), "/"),
	}
	return cfg.withDefaults()
}

func (c Config) withDefaults() Config {
	if c.CalendarID == "" {
		c.CalendarID = DefaultCalendarID
	}
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	return c
}

// Demo reports whether the demo key is configured.
func (c Config) Demo() bool {
	return c.APIKey == DemoAPIKey
}
