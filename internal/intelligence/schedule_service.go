package intelligence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/weekwise/internal/domain"
	"github.com/alexanderramin/weekwise/internal/llm"
)

// ScheduleInput is everything the generator gets to plan a week.
type ScheduleInput struct {
	CurrentDate      string
	JiraTasks        []domain.JiraTask
	CalendarEvents   []domain.CalendarEvent
	UnavailableHours []domain.UnavailableHour
}

// ScheduleOutput is a parsed, shape-checked schedule.
type ScheduleOutput struct {
	Schedule []domain.ScheduledItem
	Model    string
}

// SchedulePrompt is the deduplicated data rendered into the prompt.
type SchedulePrompt struct {
	CurrentDate      string
	JiraTasks        []domain.JiraTask
	CalendarEvents   []domain.CalendarEvent
	UnavailableHours []domain.UnavailableHour
	OutputSchema     string
	Text             string
}

// scheduleEnvelope is the JSON document the model must return.
type scheduleEnvelope struct {
	Schedule []domain.ScheduledItem `json:"schedule" jsonschema:"description=A 7-day schedule of tasks and events."`
}

var scheduleSchema = llm.GenerateSchema[scheduleEnvelope]()

// ScheduleService turns tasks and events into a week plan via the LLM.
type ScheduleService interface {
	Generate(ctx context.Context, in ScheduleInput) (*ScheduleOutput, error)
}

type scheduleService struct {
	client   llm.LLMClient
	observer llm.Observer
}

// NewScheduleService creates a ScheduleService backed by an LLM client.
func NewScheduleService(client llm.LLMClient, observer llm.Observer) ScheduleService {
	if observer == nil {
		observer = llm.NoopObserver{}
	}
	return &scheduleService{client: client, observer: observer}
}

func (s *scheduleService) Generate(ctx context.Context, in ScheduleInput) (*ScheduleOutput, error) {
	prompt, err := BuildSchedulePrompt(in)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskSchedule,
		SystemPrompt: scheduleSystemPrompt,
		UserPrompt:   prompt.Text,
		SchemaName:   "weekly_schedule",
		Schema:       scheduleSchema,
	})
	if err != nil {
		return nil, fmt.Errorf("llm schedule generation failed: %w", err)
	}

	env, err := llm.ExtractJSON(resp.Text, validateScheduleEnvelope)
	if err != nil {
		reportUnparsed(s.observer, llm.TaskSchedule, resp, err)
		return nil, fmt.Errorf("failed to extract schedule: %w", err)
	}

	linkOriginalIDs(env.Schedule, prompt.JiraTasks)
	return &ScheduleOutput{Schedule: env.Schedule, Model: resp.Model}, nil
}

// BuildSchedulePrompt validates in, deduplicates tasks and events by name and
// renders the planning prompt.
func BuildSchedulePrompt(in ScheduleInput) (*SchedulePrompt, error) {
	if err := validateScheduleInput(in); err != nil {
		return nil, err
	}

	p := &SchedulePrompt{
		CurrentDate:      in.CurrentDate,
		JiraTasks:        DedupeTasks(in.JiraTasks),
		CalendarEvents:   DedupeEvents(in.CalendarEvents),
		UnavailableHours: in.UnavailableHours,
		OutputSchema:     llm.SchemaJSON(scheduleSchema),
	}

	var b strings.Builder
	if err := scheduleTemplate.Execute(&b, p); err != nil {
		return nil, fmt.Errorf("rendering schedule prompt: %w", err)
	}
	p.Text = b.String()
	return p, nil
}

func validateScheduleInput(in ScheduleInput) error {
	if _, err := domain.ParseDate(in.CurrentDate, nil); err != nil {
		return fmt.Errorf("current date: %w", err)
	}
	var errs []error
	for i, t := range in.JiraTasks {
		if err := t.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("jira task %d: %w", i, err))
		}
	}
	for i, e := range in.CalendarEvents {
		if err := e.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("calendar event %d: %w", i, err))
		}
	}
	for i, u := range in.UnavailableHours {
		if err := u.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("unavailable hour %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

func validateScheduleEnvelope(env scheduleEnvelope) error {
	if env.Schedule == nil {
		return errors.New("missing schedule array")
	}
	for i, item := range env.Schedule {
		if err := item.Validate(); err != nil {
			return fmt.Errorf("item %d: %w", i, err)
		}
	}
	return nil
}

// linkOriginalIDs points each jira item back at the task it was planned from.
func linkOriginalIDs(items []domain.ScheduledItem, tasks []domain.JiraTask) {
	byName := make(map[string]domain.JiraTask, len(tasks))
	for _, t := range tasks {
		byName[t.Name] = t
	}
	for i := range items {
		if items[i].Type != domain.ItemJira {
			continue
		}
		if t, ok := byName[items[i].Name]; ok {
			items[i].OriginalID = t.IssueKey()
		}
	}
}

// reportUnparsed records a reply that arrived but could not be used.
func reportUnparsed(obs llm.Observer, task llm.TaskType, resp *llm.GenerateResponse, err error) {
	obs.OnCallComplete(llm.LLMCallEvent{
		Task:      task,
		Model:     resp.Model,
		LatencyMs: resp.LatencyMs,
		Attempts:  1,
		Success:   false,
		ErrorCode: llm.ErrorCode(err),
	})
}
