package report

import (
	"context"
	"sync"

	"github.com/heartmarshall/rastreio-bot/internal/domain"
)

var _ messageRepo = &messageRepoMock{}

type messageRepoMock struct {
	ListByConversationFunc func(ctx context.Context, conversationID int64) ([]domain.MessageLog, error)

	calls struct {
		ListByConversation []struct {
			Ctx            context.Context
			ConversationID int64
		}
	}
	lockListByConversation sync.RWMutex
}

func (mock *messageRepoMock) ListByConversation(ctx context.Context, conversationID int64) ([]domain.MessageLog, error) {
	if mock.ListByConversationFunc == nil {
		panic("messageRepoMock.ListByConversationFunc: method is nil but messageRepo.ListByConversation was just called")
	}
	callInfo := struct {
		Ctx            context.Context
		ConversationID int64
	}{Ctx: ctx, ConversationID: conversationID}
	mock.lockListByConversation.Lock()
	mock.calls.ListByConversation = append(mock.calls.ListByConversation, callInfo)
	mock.lockListByConversation.Unlock()
	return mock.ListByConversationFunc(ctx, conversationID)
}

func (mock *messageRepoMock) ListByConversationCalls() []struct {
	Ctx            context.Context
	ConversationID int64
} {
	mock.lockListByConversation.RLock()
	calls := mock.calls.ListByConversation
	mock.lockListByConversation.RUnlock()
	return calls
}
