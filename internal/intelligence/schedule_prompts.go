package intelligence

import "text/template"

const scheduleSystemPrompt = `You are an AI scheduling assistant. You reply with a single JSON object and nothing else.`

var scheduleTemplate = template.Must(template.New("schedule").Parse(
	`You are an AI scheduling assistant. Your goal is to create a balanced 7-day schedule for the user, starting from {{.CurrentDate}}.
You need to integrate their Jira tasks and Google Calendar appointments, while respecting their unavailable hours and task deadlines.

Current Date for planning: {{.CurrentDate}}

User's Jira tasks to schedule (each Jira task should be allocated 1 hour):
{{- if .JiraTasks}}
{{- range .JiraTasks}}
- Name: {{.Name}}, Project: {{.ProjectKey}}{{if .Link}}, Link: {{.Link}}{{end}}{{if .Deadline}}, Deadline: {{.Deadline}}{{end}}
{{- end}}
{{- else}}
- No Jira tasks provided or fetched.
{{- end}}

User's Google Calendar appointments to schedule:
{{- if .CalendarEvents}}
{{- range .CalendarEvents}}
- Name: {{.Name}}, Start Time: {{.StartTime}}, End Time: {{.EndTime}}{{if .Link}}, Link: {{.Link}}{{end}}
{{- end}}
{{- else}}
- No calendar events provided or fetched.
{{- end}}

User's unavailable hours (these are times they CANNOT work or have events):
{{- range .UnavailableHours}}
- Day: {{.DayOfWeek}}, Start Time: {{.StartTime}}, End Time: {{.EndTime}}
{{- end}}

Create a 7-day schedule starting from {{.CurrentDate}}.
- Each Jira task must be scheduled for a 1-hour block.
- Calendar events must be scheduled at their specified times.
- For each scheduled item, you must include its original name in the 'name' field.
- For each scheduled Jira item, you must include its 'projectKey' in the output.
- When scheduling a Jira task, you MUST copy its original 'deadline' from the input data to the 'deadline' field in the output JSON if one exists.
- Unavailable hours must be respected.
- Ensure the output times are in ISO 8601 format.
- Prioritize scheduling existing calendar events first.
- Next, you MUST schedule tasks to be completed before their specified deadlines.
- If a task's deadline has already passed (the deadline is before {{.CurrentDate}}), you must schedule it as soon as possible, ignoring the rule about distributing tasks evenly.
- For all other tasks with deadlines, schedule them before their deadline while trying to distribute them throughout the week to create a balanced workload.
- For tasks with no deadline, distribute them evenly throughout available slots in the 7 days.

Return the schedule in the following JSON format:
{{.OutputSchema}}
`))
