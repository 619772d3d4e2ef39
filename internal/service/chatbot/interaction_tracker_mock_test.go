package chatbot

import (
	"context"
	"sync"
	"time"
)

var _ interactionTracker = &interactionTrackerMock{}

type interactionTrackerMock struct {
	IsFirstInteractionTodayFunc func(ctx context.Context, identity string, day time.Time) (bool, error)
	RecordInteractionFunc       func(ctx context.Context, identity string, day time.Time) error

	calls struct {
		IsFirstInteractionToday []struct {
			Ctx      context.Context
			Identity string
			Day      time.Time
		}
		RecordInteraction []struct {
			Ctx      context.Context
			Identity string
			Day      time.Time
		}
	}
	lockIsFirstInteractionToday sync.RWMutex
	lockRecordInteraction       sync.RWMutex
}

func (mock *interactionTrackerMock) IsFirstInteractionToday(ctx context.Context, identity string, day time.Time) (bool, error) {
	if mock.IsFirstInteractionTodayFunc == nil {
		panic("interactionTrackerMock.IsFirstInteractionTodayFunc: method is nil but interactionTracker.IsFirstInteractionToday was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		Identity string
		Day      time.Time
	}{Ctx: ctx, Identity: identity, Day: day}
	mock.lockIsFirstInteractionToday.Lock()
	mock.calls.IsFirstInteractionToday = append(mock.calls.IsFirstInteractionToday, callInfo)
	mock.lockIsFirstInteractionToday.Unlock()
	return mock.IsFirstInteractionTodayFunc(ctx, identity, day)
}

func (mock *interactionTrackerMock) IsFirstInteractionTodayCalls() []struct {
	Ctx      context.Context
	Identity string
	Day      time.Time
} {
	mock.lockIsFirstInteractionToday.RLock()
	calls := mock.calls.IsFirstInteractionToday
	mock.lockIsFirstInteractionToday.RUnlock()
	return calls
}

func (mock *interactionTrackerMock) RecordInteraction(ctx context.Context, identity string, day time.Time) error {
	if mock.RecordInteractionFunc == nil {
		panic("interactionTrackerMock.RecordInteractionFunc: method is nil but interactionTracker.RecordInteraction was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		Identity string
		Day      time.Time
	}{Ctx: ctx, Identity: identity, Day: day}
	mock.lockRecordInteraction.Lock()
	mock.calls.RecordInteraction = append(mock.calls.RecordInteraction, callInfo)
	mock.lockRecordInteraction.Unlock()
	return mock.RecordInteractionFunc(ctx, identity, day)
}

func (mock *interactionTrackerMock) RecordInteractionCalls() []struct {
	Ctx      context.Context
	Identity string
	Day      time.Time
} {
	mock.lockRecordInteraction.RLock()
	calls := mock.calls.RecordInteraction
	mock.lockRecordInteraction.RUnlock()
	return calls
}
