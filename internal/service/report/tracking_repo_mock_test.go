package report

import (
	"context"
	"sync"

	"github.com/heartmarshall/rastreio-bot/internal/domain"
)

var _ trackingRepo = &trackingRepoMock{}

type trackingRepoMock struct {
	ListByConversationFunc func(ctx context.Context, conversationID int64) ([]domain.TrackingRequest, error)

	calls struct {
		ListByConversation []struct {
			Ctx            context.Context
			ConversationID int64
		}
	}
	lockListByConversation sync.RWMutex
}

func (mock *trackingRepoMock) ListByConversation(ctx context.Context, conversationID int64) ([]domain.TrackingRequest, error) {
	if mock.ListByConversationFunc == nil {
		panic("trackingRepoMock.ListByConversationFunc: method is nil but trackingRepo.ListByConversation was just called")
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

func (mock *trackingRepoMock) ListByConversationCalls() []struct {
	Ctx            context.Context
	ConversationID int64
} {
	mock.lockListByConversation.RLock()
	calls := mock.calls.ListByConversation
	mock.lockListByConversation.RUnlock()
	return calls
}
