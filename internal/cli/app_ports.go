package cli

import (
	"fmt"

	"github.com/alexanderramin/weekwise/internal/app"
)

func (a *App) plannerUseCase() (app.PlannerUseCase, error) {
	if a.Planner == nil {
		return nil, fmt.Errorf("jira/calendar fetching is not configured")
	}
	return a.Planner, nil
}

func (a *App) scheduleUseCase() (app.ScheduleUseCase, error) {
	if a.Schedules == nil {
		return nil, fmt.Errorf("schedule generation is not configured")
	}
	return a.Schedules, nil
}

func (a *App) feedbackUseCase() (app.FeedbackUseCase, error) {
	if a.Feedback == nil {
		return nil, fmt.Errorf("feedback is not configured")
	}
	return a.Feedback, nil
}
