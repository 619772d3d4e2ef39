package chatbot

import (
	"context"
	"sync"

	"github.com/heartmarshall/rastreio-bot/internal/domain"
)

var _ systemLog = &systemLogMock{}

type systemLogMock struct {
	LogFunc func(ctx context.Context, level domain.LogLevel, message string, data any) error

	calls struct {
		Log []struct {
			Ctx     context.Context
			Level   domain.LogLevel
			Message string
			Data    any
		}
	}
	lockLog sync.RWMutex
}

func (mock *systemLogMock) Log(ctx context.Context, level domain.LogLevel, message string, data any) error {
	if mock.LogFunc == nil {
		panic("systemLogMock.LogFunc: method is nil but systemLog.Log was just called")
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

func (mock *systemLogMock) LogCalls() []struct {
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
