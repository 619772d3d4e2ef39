package app

import (
	"context"
	"sync"
	"time"

	"github.com/heartmarshall/rastreio-bot/internal/service/housekeeping"
)

var _ housekeeper = &housekeeperMock{}

type housekeeperMock struct {
	CompleteIdleEndingFunc func(ctx context.Context, now time.Time) (int64, error)
	CloseInactiveFunc      func(ctx context.Context, now time.Time) (int64, error)
	PurgeOldFunc           func(ctx context.Context, now time.Time) (housekeeping.PurgeResult, error)

	calls struct {
		CompleteIdleEnding []struct {
			Ctx context.Context
			Now time.Time
		}
		CloseInactive []struct {
			Ctx context.Context
			Now time.Time
		}
		PurgeOld []struct {
			Ctx context.Context
			Now time.Time
		}
	}
	lockCompleteIdleEnding sync.RWMutex
	lockCloseInactive      sync.RWMutex
	lockPurgeOld           sync.RWMutex
}

func (mock *housekeeperMock) CompleteIdleEnding(ctx context.Context, now time.Time) (int64, error) {
	if mock.CompleteIdleEndingFunc == nil {
		panic("housekeeperMock.CompleteIdleEndingFunc: method is nil but housekeeper.CompleteIdleEnding was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Now time.Time
	}{Ctx: ctx, Now: now}
	mock.lockCompleteIdleEnding.Lock()
	mock.calls.CompleteIdleEnding = append(mock.calls.CompleteIdleEnding, callInfo)
	mock.lockCompleteIdleEnding.Unlock()
	return mock.CompleteIdleEndingFunc(ctx, now)
}

func (mock *housekeeperMock) CompleteIdleEndingCalls() []struct {
	Ctx context.Context
	Now time.Time
} {
	mock.lockCompleteIdleEnding.RLock()
	calls := mock.calls.CompleteIdleEnding
	mock.lockCompleteIdleEnding.RUnlock()
	return calls
}

func (mock *housekeeperMock) CloseInactive(ctx context.Context, now time.Time) (int64, error) {
	if mock.CloseInactiveFunc == nil {
		panic("housekeeperMock.CloseInactiveFunc: method is nil but housekeeper.CloseInactive was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Now time.Time
	}{Ctx: ctx, Now: now}
	mock.lockCloseInactive.Lock()
	mock.calls.CloseInactive = append(mock.calls.CloseInactive, callInfo)
	mock.lockCloseInactive.Unlock()
	return mock.CloseInactiveFunc(ctx, now)
}

func (mock *housekeeperMock) CloseInactiveCalls() []struct {
	Ctx context.Context
	Now time.Time
} {
	mock.lockCloseInactive.RLock()
	calls := mock.calls.CloseInactive
	mock.lockCloseInactive.RUnlock()
	return calls
}

func (mock *housekeeperMock) PurgeOld(ctx context.Context, now time.Time) (housekeeping.PurgeResult, error) {
	if mock.PurgeOldFunc == nil {
		panic("housekeeperMock.PurgeOldFunc: method is nil but housekeeper.PurgeOld was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Now time.Time
	}{Ctx: ctx, Now: now}
	mock.lockPurgeOld.Lock()
	mock.calls.PurgeOld = append(mock.calls.PurgeOld, callInfo)
	mock.lockPurgeOld.Unlock()
	return mock.PurgeOldFunc(ctx, now)
}

func (mock *housekeeperMock) PurgeOldCalls() []struct {
	Ctx context.Context
	Now time.Time
} {
	mock.lockPurgeOld.RLock()
	calls := mock.calls.PurgeOld
	mock.lockPurgeOld.RUnlock()
	return calls
}
