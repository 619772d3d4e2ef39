package housekeeping

import (
	"context"
	"sync"
	"time"

	"github.com/heartmarshall/rastreio-bot/internal/domain"
)

var _ systemLogRepo = &systemLogRepoMock{}

type systemLogRepoMock struct {
	LogFunc          func(ctx context.Context, level domain.LogLevel, message string, data any) error
	DeleteBeforeFunc func(ctx context.Context, cutoff time.Time) (int64, error)

	calls struct {
		Log []struct {
			Ctx     context.Context
			Level   domain.LogLevel
			Message string
			Data    any
		}
		DeleteBefore []struct {
			Ctx    context.Context
			Cutoff time.Time
		}
	}
	lockLog          sync.RWMutex
	lockDeleteBefore sync.RWMutex
}

func (mock *systemLogRepoMock) Log(ctx context.Context, level domain.LogLevel, message string, data any) error {
	if mock.LogFunc == nil {
		panic("systemLogRepoMock.LogFunc: method is nil but systemLogRepo.Log was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		Level   domain.LogLevel
		Message string
		Data    any
	}{Ctx: ctx, Level: level, Message: message, Data: data}
	mock.lockLog.Lock()
	mock.calls.Log = append(mock.calls.Log, callInfo)
	mock.lockLog.Unlock()
	return mock.LogFunc(ctx, level, message, data)
}

func (mock *systemLogRepoMock) LogCalls() []struct {
	Ctx     context.Context
	Level   domain.LogLevel
	Message string
	Data    any
} {
	mock.lockLog.RLock()
	calls := mock.calls.Log
	mock.lockLog.RUnlock()
	return calls
}

func (mock *systemLogRepoMock) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	if mock.DeleteBeforeFunc == nil {
		panic("systemLogRepoMock.DeleteBeforeFunc: method is nil but systemLogRepo.DeleteBefore was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Cutoff time.Time
	}{Ctx: ctx, Cutoff: cutoff}
	mock.lockDeleteBefore.Lock()
	mock.calls.DeleteBefore = append(mock.calls.DeleteBefore, callInfo)
	mock.lockDeleteBefore.Unlock()
	return mock.DeleteBeforeFunc(ctx, cutoff)
}

func (mock *systemLogRepoMock) DeleteBeforeCalls() []struct {
	Ctx    context.Context
	Cutoff time.Time
} {
	mock.lockDeleteBefore.RLock()
	calls := mock.calls.DeleteBefore
	mock.lockDeleteBefore.RUnlock()
	return calls
}
