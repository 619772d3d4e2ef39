package chatbot

import (
	"context"
	"sync"

	"github.com/heartmarshall/rastreio-bot/internal/domain"
)

var _ trackingGateway = &trackingGatewayMock{}

type trackingGatewayMock struct {
	LookupByDocumentKeyFunc func(ctx context.Context, key string) domain.TrackingResult
	LookupByPersonalIDFunc  func(ctx context.Context, id string) domain.TrackingResult

	calls struct {
		LookupByDocumentKey []struct {
			Ctx context.Context
			Key string
		}
		LookupByPersonalID []struct {
			Ctx context.Context
			Id  string
		}
	}
	lockLookupByDocumentKey sync.RWMutex
	lockLookupByPersonalID  sync.RWMutex
}

func (mock *trackingGatewayMock) LookupByDocumentKey(ctx context.Context, key string) domain.TrackingResult {
	if mock.LookupByDocumentKeyFunc == nil {
		panic("trackingGatewayMock.LookupByDocumentKeyFunc: method is nil but trackingGateway.LookupByDocumentKey was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Key string
	}{Ctx: ctx, Key: key}
	mock.lockLookupByDocumentKey.Lock()
	mock.calls.LookupByDocumentKey = append(mock.calls.LookupByDocumentKey, callInfo)
	mock.lockLookupByDocumentKey.Unlock()
	return mock.LookupByDocumentKeyFunc(ctx, key)
}

func (mock *trackingGatewayMock) LookupByDocumentKeyCalls() []struct {
	Ctx context.Context
	Key string
} {
	mock.lockLookupByDocumentKey.RLock()
	calls := mock.calls.LookupByDocumentKey
	mock.lockLookupByDocumentKey.RUnlock()
	return calls
}

func (mock *trackingGatewayMock) LookupByPersonalID(ctx context.Context, id string) domain.TrackingResult {
	if mock.LookupByPersonalIDFunc == nil {
		panic("trackingGatewayMock.LookupByPersonalIDFunc: method is nil but trackingGateway.LookupByPersonalID was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Id  string
	}{Ctx: ctx, Id: id}
	mock.lockLookupByPersonalID.Lock()
	mock.calls.LookupByPersonalID = append(mock.calls.LookupByPersonalID, callInfo)
	mock.lockLookupByPersonalID.Unlock()
	return mock.LookupByPersonalIDFunc(ctx, id)
}

func (mock *trackingGatewayMock) LookupByPersonalIDCalls() []struct {
	Ctx context.Context
	Id  string
} {
	mock.lockLookupByPersonalID.RLock()
	calls := mock.calls.LookupByPersonalID
	mock.lockLookupByPersonalID.RUnlock()
	return calls
}
