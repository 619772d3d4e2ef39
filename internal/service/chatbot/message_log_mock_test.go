package chatbot

import (
	"context"
	"sync"

	"github.com/heartmarshall/rastreio-bot/internal/domain"
)

var _ messageLog = &messageLogMock{}

type messageLogMock struct {
	LogFunc func(ctx context.Context, m domain.MessageLog) error

	calls struct {
		Log []struct {
			Ctx context.Context
			M   domain.MessageLog
		}
	}
	lockLog sync.RWMutex
}

func (mock *messageLogMock) Log(ctx context.Context, m domain.MessageLog) error {
	if mock.LogFunc == nil {
		panic("messageLogMock.LogFunc: method is nil but messageLog.Log was just called")
	}
	callInfo := struct {
		Ctx context.Context
		M   domain.MessageLog
	}{Ctx: ctx, M: m}
	mock.lockLog.Lock()
	mock.calls.Log = append(mock.calls.Log, callInfo)
	mock.lockLog.Unlock()
	return mock.LogFunc(ctx, m)
}

func (mock *messageLogMock) LogCalls() []struct {
	Ctx context.Context
	M   domain.MessageLog
} {
	mock.lockLog.RLock()
	calls := mock.calls.Log
	mock.lockLog.RUnlock()
	return calls
}
