package contract

import (
	"github.com/alexanderramin/weekwise/internal/app"
	"github.com/alexanderramin/weekwise/internal/domain"
)

type GenerateScheduleRequest = app.GenerateScheduleRequest

func NewGenerateScheduleRequest(currentDate string) GenerateScheduleRequest {
	return app.NewGenerateScheduleRequest(currentDate)
}

type GenerateScheduleResponse = app.GenerateScheduleResponse

type ScheduleRunSummary = app.ScheduleRunSummary

type ScheduleRunDetail = app.ScheduleRunDetail

func NewScheduleRunSummary(run *domain.ScheduleRun) ScheduleRunSummary {
	return app.NewScheduleRunSummary(run)
}

func NewScheduleRunDetail(run *domain.ScheduleRun) ScheduleRunDetail {
	return app.NewScheduleRunDetail(run)
}
