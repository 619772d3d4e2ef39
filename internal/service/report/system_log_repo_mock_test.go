package report

import (
	"context"
	"sync"

	"github.com/heartmarshall/rastreio-bot/internal/domain"
)

var _ systemLogRepo = &systemLogRepoMock{}

type systemLogRepoMock struct {
	ListRecentFunc func(ctx context.Context, limit int) ([]domain.SystemLog, error)

	calls struct {
		ListRecent []struct {
			Ctx   context.Context
			Limit int
		}
	}
	lockListRecent sync.RWMutex
}

func (mock *systemLogRepoMock) ListRecent(ctx context.Context, limit int) ([]domain.SystemLog, error) {
	if mock.ListRecentFunc == nil {
		panic("systemLogRepoMock.ListRecentFunc: method is nil but systemLogRepo.ListRecent was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Limit int
	}{Ctx: ctx, Limit: limit}
	mock.lockListRecent.Lock()
	mock.calls.ListRecent = append(mock.calls.ListRecent, callInfo)
	mock.lockListRecent.Unlock()
	return mock.ListRecentFunc(ctx, limit)
}

func (mock *systemLogRepoMock) ListRecentCalls() []struct {
	Ctx   context.Context
	Limit int
} {
	mock.lockListRecent.RLock()
	calls := mock.calls.ListRecent
	mock.lockListRecent.RUnlock()
	return calls
}
