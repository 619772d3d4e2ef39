package housekeeping

import (
	"context"
	"sync"
	"time"
)

var _ conversationRepo = &conversationRepoMock{}

type conversationRepoMock struct {
	CompleteIdleEndingFunc    func(ctx context.Context, cutoff time.Time, now time.Time) (int64, error)
	CompleteInactiveFunc      func(ctx context.Context, cutoff time.Time, now time.Time) (int64, error)
	DeleteCompletedBeforeFunc func(ctx context.Context, cutoff time.Time) (int64, error)

	calls struct {
		CompleteIdleEnding []struct {
			Ctx    context.Context
			Cutoff time.Time
			Now    time.Time
		}
		CompleteInactive []struct {
			Ctx    context.Context
			Cutoff time.Time
			Now    time.Time
		}
		DeleteCompletedBefore []struct {
			Ctx    context.Context
			Cutoff time.Time
		}
	}
	lockCompleteIdleEnding    sync.RWMutex
	lockCompleteInactive      sync.RWMutex
	lockDeleteCompletedBefore sync.RWMutex
}

func (mock *conversationRepoMock) CompleteIdleEnding(ctx context.Context, cutoff time.Time, now time.Time) (int64, error) {
	if mock.CompleteIdleEndingFunc == nil {
		panic("conversationRepoMock.CompleteIdleEndingFunc: method is nil but conversationRepo.CompleteIdleEnding was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Cutoff time.Time
		Now    time.Time
	}{Ctx: ctx, Cutoff: cutoff, Now: now}
	mock.lockCompleteIdleEnding.Lock()
	mock.calls.CompleteIdleEnding = append(mock.calls.CompleteIdleEnding, callInfo)
	mock.lockCompleteIdleEnding.Unlock()
	return mock.CompleteIdleEndingFunc(ctx, cutoff, now)
}

func (mock *conversationRepoMock) CompleteIdleEndingCalls() []struct {
	Ctx    context.Context
	Cutoff time.Time
	Now    time.Time
} {
	mock.lockCompleteIdleEnding.RLock()
	calls := mock.calls.CompleteIdleEnding
	mock.lockCompleteIdleEnding.RUnlock()
	return calls
}

func (mock *conversationRepoMock) CompleteInactive(ctx context.Context, cutoff time.Time, now time.Time) (int64, error) {
	if mock.CompleteInactiveFunc == nil {
		panic("conversationRepoMock.CompleteInactiveFunc: method is nil but conversationRepo.CompleteInactive was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Cutoff time.Time
		Now    time.Time
	}{Ctx: ctx, Cutoff: cutoff, Now: now}
	mock.lockCompleteInactive.Lock()
	mock.calls.CompleteInactive = append(mock.calls.CompleteInactive, callInfo)
	mock.lockCompleteInactive.Unlock()
	return mock.CompleteInactiveFunc(ctx, cutoff, now)
}

func (mock *conversationRepoMock) CompleteInactiveCalls() []struct {
	Ctx    context.Context
	Cutoff time.Time
	Now    time.Time
} {
	mock.lockCompleteInactive.RLock()
	calls := mock.calls.CompleteInactive
	mock.lockCompleteInactive.RUnlock()
	return calls
}

func (mock *conversationRepoMock) DeleteCompletedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	if mock.DeleteCompletedBeforeFunc == nil {
		panic("conversationRepoMock.DeleteCompletedBeforeFunc: method is nil but conversationRepo.DeleteCompletedBefore was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Cutoff time.Time
	}{Ctx: ctx, Cutoff: cutoff}
	mock.lockDeleteCompletedBefore.Lock()
	mock.calls.DeleteCompletedBefore = append(mock.calls.DeleteCompletedBefore, callInfo)
	mock.lockDeleteCompletedBefore.Unlock()
	return mock.DeleteCompletedBeforeFunc(ctx, cutoff)
}

func (mock *conversationRepoMock) DeleteCompletedBeforeCalls() []struct {
	Ctx    context.Context
	Cutoff time.Time
} {
	mock.lockDeleteCompletedBefore.RLock()
	calls := mock.calls.DeleteCompletedBefore
	mock.lockDeleteCompletedBefore.RUnlock()
	return calls
}
