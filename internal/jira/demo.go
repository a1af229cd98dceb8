package jira

import (
	"time"

	"github.com/alexanderramin/weekwise/internal/domain"
)

const demoInstanceURL = "https://jira.example.com"

// demoTasks returns the fixed demo task list with deadlines relative to today.
func demoTasks(instanceURL string, today time.Time) []domain.JiraTask {
	base := domain.CoalesceStr(instanceURL, demoInstanceURL)
	day := func(offset int) string {
		return today.AddDate(0, 0, offset).Format(domain.DateLayout)
	}
	return []domain.JiraTask{
		{Name: "[KAN] Design new dashboard (Demo Task)", Link: base + "/browse/KAN-101", Deadline: day(5), ProjectKey: "KAN"},
		{Name: "[KAN] Implement login feature (Demo Task)", Link: base + "/browse/KAN-102", Deadline: day(2), ProjectKey: "KAN"},
		{Name: "[SZH] Write API documentation (OVERDUE Demo Task)", Link: base + "/browse/SZH-103", Deadline: day(-3), ProjectKey: "SZH"},
		{Name: "[SZH] Deploy to staging (Demo Task)", Link: base + "/browse/SZH-104", ProjectKey: "SZH"},
	}
}
