package housekeeping

import (
	"context"
	"sync"
	"time"
)

var _ messageRepo = &messageRepoMock{}

type messageRepoMock struct {
	DeleteUnlinkedBeforeFunc func(ctx context.Context, cutoff time.Time) (int64, error)

	calls struct {
		DeleteUnlinkedBefore []struct {
			Ctx    context.Context
			Cutoff time.Time
		}
	}
	lockDeleteUnlinkedBefore sync.RWMutex
}

func (mock *messageRepoMock) DeleteUnlinkedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	if mock.DeleteUnlinkedBeforeFunc == nil {
		panic("messageRepoMock.DeleteUnlinkedBeforeFunc: method is nil but messageRepo.DeleteUnlinkedBefore was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Cutoff time.Time
	}{Ctx: ctx, Cutoff: cutoff}
	mock.lockDeleteUnlinkedBefore.Lock()
	mock.calls.DeleteUnlinkedBefore = append(mock.calls.DeleteUnlinkedBefore, callInfo)
	mock.lockDeleteUnlinkedBefore.Unlock()
	return mock.DeleteUnlinkedBeforeFunc(ctx, cutoff)
}

func (mock *messageRepoMock) DeleteUnlinkedBeforeCalls() []struct {
	Ctx    context.Context
	Cutoff time.Time
} {
	mock.lockDeleteUnlinkedBefore.RLock()
	calls := mock.calls.DeleteUnlinkedBefore
	mock.lockDeleteUnlinkedBefore.RUnlock()
	return calls
}
