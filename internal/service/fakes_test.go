package service

import (
	"context"
	"sync"

	"github.com/alexanderramin/weekwise/internal/domain"
	"github.com/alexanderramin/weekwise/internal/intelligence"
)

type fakeGenerator struct {
	out    *intelligence.ScheduleOutput
	err    error
	lastIn intelligence.ScheduleInput
	calls  int
}

func (f *fakeGenerator) Generate(_ context.Context, in intelligence.ScheduleInput) (*intelligence.ScheduleOutput, error) {
	f.calls++
	f.lastIn = in
	if f.err != nil {
		return nil, f.err
	}
	return f.out, nil
}

type fakeEvaluator struct {
	verdict *domain.FeedbackVerdict
	err     error
	lastFb  domain.LearningFeedback
}

func (f *fakeEvaluator) Evaluate(_ context.Context, fb domain.LearningFeedback) (*domain.FeedbackVerdict, error) {
	f.lastFb = fb
	if f.err != nil {
		return nil, f.err
	}
	return f.verdict, nil
}

type fakeTaskSource struct {
	tasks []domain.JiraTask
	err   error
}

func (f *fakeTaskSource) FetchTasks(context.Context) ([]domain.JiraTask, error) {
	return f.tasks, f.err
}

type fakeEventSource struct {
	events    []domain.CalendarEvent
	err       error
	lastStart string
}

func (f *fakeEventSource) FetchEvents(_ context.Context, startDate string) ([]domain.CalendarEvent, error) {
	f.lastStart = startDate
	return f.events, f.err
}

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, e)
}

func (o *recordingObserver) last() UseCaseEvent {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.events[len(o.events)-1]
}
