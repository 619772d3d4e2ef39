package chatbot

import (
	"context"
	"sync"
)

var _ sender = &senderMock{}

type senderMock struct {
	SendTextFunc func(ctx context.Context, identity string, text string) error

	calls struct {
		SendText []struct {
			Ctx      context.Context
			Identity string
			Text     string
		}
	}
	lockSendText sync.RWMutex
}

func (mock *senderMock) SendText(ctx context.Context, identity string, text string) error {
	if mock.SendTextFunc == nil {
		panic("senderMock.SendTextFunc: method is nil but sender.SendText was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		Identity string
		Text     string
	}{Ctx: ctx, Identity: identity, Text: text}
	mock.lockSendText.Lock()
	mock.calls.SendText = append(mock.calls.SendText, callInfo)
	mock.lockSendText.Unlock()
	return mock.SendTextFunc(ctx, identity, text)
}

func (mock *senderMock) SendTextCalls() []struct {
	Ctx      context.Context
	Identity string
	Text     string
} {
	mock.lockSendText.RLock()
	calls := mock.calls.SendText
	mock.lockSendText.RUnlock()
	return calls
}
