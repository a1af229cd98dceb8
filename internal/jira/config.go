package jira

import (
	"os"
	"strings"
)

// DemoAPIKey switches the client to canned demo tasks.
const DemoAPIKey = "DEMO_JIRA_KEY"

// Config holds Jira connection settings.
type Config struct {
	UserEmail   string
	APIKey      string
	InstanceURL string
	ProjectKeys []string
}

// LoadConfig reads Jira settings from the environment.
func LoadConfig() Config {
	return Config{
		UserEmail:   strings.TrimSpace(os.Getenv("JIRA_USER_EMAIL")),
		APIKey:      strings.TrimSpace(os.Getenv("JIRA_API_KEY")),
		InstanceURL: strings.TrimRight(strings.TrimSpace(os.Getenv("JIRA_INSTANCE_URL")), "/"),
		ProjectKeys: splitKeys(os.Getenv("JIRA_PROJECT_KEY")),
	}
}

// Demo reports whether the demo key is configured.
func (c Config) Demo() bool {
	return c.APIKey == DemoAPIKey
}

// Complete reports whether every setting needed for a live fetch is present.
func (c Config) Complete() bool {
	return c.UserEmail != "" && c.APIKey != "" && c.InstanceURL != "" && len(c.ProjectKeys) > 0
}

func splitKeys(raw string) []string {
	var keys []string
	for _, k := range strings.Split(raw, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}
