package intelligence

import "text/template"

const feedbackSystemPrompt = `You are an AI assistant that learns user scheduling patterns to improve future schedule accuracy. You reply with a single JSON object and nothing else.`

var feedbackTemplate = template.Must(template.New("feedback").Parse(
	`You will analyze the provided data to understand the user's velocity of completing Jira items and the impact of manual schedule adjustments.

Based on the data, you will determine whether the learning process was successful and provide a message indicating the outcome.

Jira Item ID: {{.JiraItemID}}
Estimated Time: {{printf "%g" .EstimatedTime}} hours
Actual Time: {{printf "%g" .ActualTime}} hours
Manual Adjustments: {{.ManualAdjustments}}

Consider these factors when determining success:
- Significant difference between estimated and actual time, indicating a need to adjust velocity estimates.
- Clear reasons for manual adjustments, suggesting predictable scheduling conflicts or preferences.

Return a JSON object with "success" set to true if the learning process resulted in valuable insights, and false otherwise. Include a descriptive "message" explaining the outcome.
`))
