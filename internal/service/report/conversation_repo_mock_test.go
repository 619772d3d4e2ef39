package report

import (
	"context"
	"sync"

	"github.com/heartmarshall/rastreio-bot/internal/domain"
)

var _ conversationRepo = &conversationRepoMock{}

type conversationRepoMock struct {
	GetByIDFunc func(ctx context.Context, id int64) (*domain.Conversation, error)

	calls struct {
		GetByID []struct {
			Ctx context.Context
			Id  int64
		}
	}
	lockGetByID sync.RWMutex
}

func (mock *conversationRepoMock) GetByID(ctx context.Context, id int64) (*domain.Conversation, error) {
	if mock.GetByIDFunc == nil {
		panic("conversationRepoMock.GetByIDFunc: method is nil but conversationRepo.GetByID was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Id  int64
	}{Ctx: ctx, Id: id}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, callInfo)
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, id)
}

func (mock *conversationRepoMock) GetByIDCalls() []struct {
	Ctx context.Context
	Id  int64
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}
