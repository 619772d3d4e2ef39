package rest

import (
	"context"
	"sync"

	"github.com/heartmarshall/rastreio-bot/internal/domain"
	"github.com/heartmarshall/rastreio-bot/internal/service/report"
)

var _ reportService = &reportServiceMock{}

type reportServiceMock struct {
	StatsFunc             func(ctx context.Context) (domain.Stats, error)
	ListConversationsFunc func(ctx context.Context, in report.ConversationsInput) (domain.ConversationPage, error)
	HistoryFunc           func(ctx context.Context, id int64) (domain.ConversationHistory, error)
	TrackingReportFunc    func(ctx context.Context, in report.TrackingInput) (domain.TrackingReport, error)
	SystemLogsFunc        func(ctx context.Context, limit int) ([]domain.SystemLog, error)

	calls struct {
		Stats []struct {
			Ctx context.Context
		}
		ListConversations []struct {
			Ctx context.Context
			In  report.ConversationsInput
		}
		History []struct {
			Ctx context.Context
			Id  int64
		}
		TrackingReport []struct {
			Ctx context.Context
			In  report.TrackingInput
		}
		SystemLogs []struct {
			Ctx   context.Context
			Limit int
		}
	}
	lockStats             sync.RWMutex
	lockListConversations sync.RWMutex
	lockHistory           sync.RWMutex
	lockTrackingReport    sync.RWMutex
	lockSystemLogs        sync.RWMutex
}

func (mock *reportServiceMock) Stats(ctx context.Context) (domain.Stats, error) {
	if mock.StatsFunc == nil {
		panic("reportServiceMock.StatsFunc: method is nil but reportService.Stats was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockStats.Lock()
	mock.calls.Stats = append(mock.calls.Stats, callInfo)
	mock.lockStats.Unlock()
	return mock.StatsFunc(ctx)
}

func (mock *reportServiceMock) StatsCalls() []struct {
	Ctx context.Context
} {
	mock.lockStats.RLock()
	calls := mock.calls.Stats
	mock.lockStats.RUnlock()
	return calls
}

func (mock *reportServiceMock) ListConversations(ctx context.Context, in report.ConversationsInput) (domain.ConversationPage, error) {
	if mock.ListConversationsFunc == nil {
		panic("reportServiceMock.ListConversationsFunc: method is nil but reportService.ListConversations was just called")
	}
	callInfo := struct {
		Ctx context.Context
		In  report.ConversationsInput
	}{Ctx: ctx, In: in}
	mock.lockListConversations.Lock()
	mock.calls.ListConversations = append(mock.calls.ListConversations, callInfo)
	mock.lockListConversations.Unlock()
	return mock.ListConversationsFunc(ctx, in)
}

func (mock *reportServiceMock) ListConversationsCalls() []struct {
	Ctx context.Context
	In  report.ConversationsInput
} {
	mock.lockListConversations.RLock()
	calls := mock.calls.ListConversations
	mock.lockListConversations.RUnlock()
	return calls
}

func (mock *reportServiceMock) History(ctx context.Context, id int64) (domain.ConversationHistory, error) {
	if mock.HistoryFunc == nil {
		panic("reportServiceMock.HistoryFunc: method is nil but reportService.History was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Id  int64
	}{Ctx: ctx, Id: id}
	mock.lockHistory.Lock()
	mock.calls.History = append(mock.calls.History, callInfo)
	mock.lockHistory.Unlock()
	return mock.HistoryFunc(ctx, id)
}

func (mock *reportServiceMock) HistoryCalls() []struct {
	Ctx context.Context
	Id  int64
} {
	mock.lockHistory.RLock()
	calls := mock.calls.History
	mock.lockHistory.RUnlock()
	return calls
}

func (mock *reportServiceMock) TrackingReport(ctx context.Context, in report.TrackingInput) (domain.TrackingReport, error) {
	if mock.TrackingReportFunc == nil {
		panic("reportServiceMock.TrackingReportFunc: method is nil but reportService.TrackingReport was just called")
	}
	callInfo := struct {
		Ctx context.Context
		In  report.TrackingInput
	}{Ctx: ctx, In: in}
	mock.lockTrackingReport.Lock()
	mock.calls.TrackingReport = append(mock.calls.TrackingReport, callInfo)
	mock.lockTrackingReport.Unlock()
	return mock.TrackingReportFunc(ctx, in)
}

func (mock *reportServiceMock) TrackingReportCalls() []struct {
	Ctx context.Context
	In  report.TrackingInput
} {
	mock.lockTrackingReport.RLock()
	calls := mock.calls.TrackingReport
	mock.lockTrackingReport.RUnlock()
	return calls
}

func (mock *reportServiceMock) SystemLogs(ctx context.Context, limit int) ([]domain.SystemLog, error) {
	if mock.SystemLogsFunc == nil {
		panic("reportServiceMock.SystemLogsFunc: method is nil but reportService.SystemLogs was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Limit int
	}{Ctx: ctx, Limit: limit}
	mock.lockSystemLogs.Lock()
	mock.calls.SystemLogs = append(mock.calls.SystemLogs, callInfo)
	mock.lockSystemLogs.Unlock()
	return mock.SystemLogsFunc(ctx, limit)
}

func (mock *reportServiceMock) SystemLogsCalls() []struct {
	Ctx   context.Context
	Limit int
} {
	mock.lockSystemLogs.RLock()
	calls := mock.calls.SystemLogs
	mock.lockSystemLogs.RUnlock()
	return calls
}
