package chatbot

import (
	"context"
	"sync"

	"github.com/heartmarshall/rastreio-bot/internal/domain"
)

var _ conversationStore = &conversationStoreMock{}

type conversationStoreMock struct {
	CreateFunc     func(ctx context.Context, c domain.Conversation) (*domain.Conversation, error)
	FindActiveFunc func(ctx context.Context, q domain.IdentityQuery) (*domain.Conversation, error)
	FindLatestFunc func(ctx context.Context, q domain.IdentityQuery) (*domain.Conversation, error)
	UpdateFunc     func(ctx context.Context, id int64, patch domain.ConversationPatch) (bool, error)
	TouchFunc      func(ctx context.Context, id int64) error

	calls struct {
		Create []struct {
			Ctx context.Context
			C   domain.Conversation
		}
		FindActive []struct {
			Ctx context.Context
			Q   domain.IdentityQuery
		}
		FindLatest []struct {
			Ctx context.Context
			Q   domain.IdentityQuery
		}
		Update []struct {
			Ctx   context.Context
			Id    int64
			Patch domain.ConversationPatch
		}
		Touch []struct {
			Ctx context.Context
			Id  int64
		}
	}
	lockCreate     sync.RWMutex
	lockFindActive sync.RWMutex
	lockFindLatest sync.RWMutex
	lockUpdate     sync.RWMutex
	lockTouch      sync.RWMutex
}

func (mock *conversationStoreMock) Create(ctx context.Context, c domain.Conversation) (*domain.Conversation, error) {
	if mock.CreateFunc == nil {
		panic("conversationStoreMock.CreateFunc: method is nil but conversationStore.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		C   domain.Conversation
	}{Ctx: ctx, C: c}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, c)
}

func (mock *conversationStoreMock) CreateCalls() []struct {
	Ctx context.Context
	C   domain.Conversation
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *conversationStoreMock) FindActive(ctx context.Context, q domain.IdentityQuery) (*domain.Conversation, error) {
	if mock.FindActiveFunc == nil {
		panic("conversationStoreMock.FindActiveFunc: method is nil but conversationStore.FindActive was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Q   domain.IdentityQuery
	}{Ctx: ctx, Q: q}
	mock.lockFindActive.Lock()
	mock.calls.FindActive = append(mock.calls.FindActive, callInfo)
	mock.lockFindActive.Unlock()
	return mock.FindActiveFunc(ctx, q)
}

func (mock *conversationStoreMock) FindActiveCalls() []struct {
	Ctx context.Context
	Q   domain.IdentityQuery
} {
	mock.lockFindActive.RLock()
	calls := mock.calls.FindActive
	mock.lockFindActive.RUnlock()
	return calls
}

func (mock *conversationStoreMock) FindLatest(ctx context.Context, q domain.IdentityQuery) (*domain.Conversation, error) {
	if mock.FindLatestFunc == nil {
		panic("conversationStoreMock.FindLatestFunc: method is nil but conversationStore.FindLatest was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Q   domain.IdentityQuery
	}{Ctx: ctx, Q: q}
	mock.lockFindLatest.Lock()
	mock.calls.FindLatest = append(mock.calls.FindLatest, callInfo)
	mock.lockFindLatest.Unlock()
	return mock.FindLatestFunc(ctx, q)
}

func (mock *conversationStoreMock) FindLatestCalls() []struct {
	Ctx context.Context
	Q   domain.IdentityQuery
} {
	mock.lockFindLatest.RLock()
	calls := mock.calls.FindLatest
	mock.lockFindLatest.RUnlock()
	return calls
}

func (mock *conversationStoreMock) Update(ctx context.Context, id int64, patch domain.ConversationPatch) (bool, error) {
	if mock.UpdateFunc == nil {
		panic("conversationStoreMock.UpdateFunc: method is nil but conversationStore.Update was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Id    int64
		Patch domain.ConversationPatch
	}{Ctx: ctx, Id: id, Patch: patch}
	mock.lockUpdate.Lock()
	mock.calls.Update = append(mock.calls.Update, callInfo)
	mock.lockUpdate.Unlock()
	return mock.UpdateFunc(ctx, id, patch)
}

func (mock *conversationStoreMock) UpdateCalls() []struct {
	Ctx   context.Context
	Id    int64
	Patch domain.ConversationPatch
} {
	mock.lockUpdate.RLock()
	calls := mock.calls.Update
	mock.lockUpdate.RUnlock()
	return calls
}

func (mock *conversationStoreMock) Touch(ctx context.Context, id int64) error {
	if mock.TouchFunc == nil {
		panic("conversationStoreMock.TouchFunc: method is nil but conversationStore.Touch was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Id  int64
	}{Ctx: ctx, Id: id}
	mock.lockTouch.Lock()
	mock.calls.Touch = append(mock.calls.Touch, callInfo)
	mock.lockTouch.Unlock()
	return mock.TouchFunc(ctx, id)
}

func (mock *conversationStoreMock) TouchCalls() []struct {
	Ctx context.Context
	Id  int64
} {
	mock.lockTouch.RLock()
	calls := mock.calls.Touch
	mock.lockTouch.RUnlock()
	return calls
}
