package report

import (
	"context"
	"sync"
	"time"

	"github.com/heartmarshall/rastreio-bot/internal/domain"
)

var _ reportRepo = &reportRepoMock{}

type reportRepoMock struct {
	StatsFunc             func(ctx context.Context, todayStart time.Time) (domain.Stats, error)
	ListConversationsFunc func(ctx context.Context, f domain.ConversationFilter) (domain.ConversationPage, error)
	TrackingReportFunc    func(ctx context.Context, f domain.TrackingFilter) (domain.TrackingReport, error)

	calls struct {
		Stats []struct {
			Ctx        context.Context
			TodayStart time.Time
		}
		ListConversations []struct {
			Ctx context.Context
			F   domain.ConversationFilter
		}
		TrackingReport []struct {
			Ctx context.Context
			F   domain.TrackingFilter
		}
	}
	lockStats             sync.RWMutex
	lockListConversations sync.RWMutex
	lockTrackingReport    sync.RWMutex
}

func (mock *reportRepoMock) Stats(ctx context.Context, todayStart time.Time) (domain.Stats, error) {
	if mock.StatsFunc == nil {
		panic("reportRepoMock.StatsFunc: method is nil but reportRepo.Stats was just called")
	}
	callInfo := struct {
		Ctx        context.Context
		TodayStart time.Time
	}{Ctx: ctx, TodayStart: todayStart}
	mock.lockStats.Lock()
	mock.calls.Stats = append(mock.calls.Stats, callInfo)
	mock.lockStats.Unlock()
	return mock.StatsFunc(ctx, todayStart)
}

func (mock *reportRepoMock) StatsCalls() []struct {
	Ctx        context.Context
	TodayStart time.Time
} {
	mock.lockStats.RLock()
	calls := mock.calls.Stats
	mock.lockStats.RUnlock()
	return calls
}

func (mock *reportRepoMock) ListConversations(ctx context.Context, f domain.ConversationFilter) (domain.ConversationPage, error) {
	if mock.ListConversationsFunc == nil {
		panic("reportRepoMock.ListConversationsFunc: method is nil but reportRepo.ListConversations was just called")
	}
	callInfo := struct {
		Ctx context.Context
		F   domain.ConversationFilter
	}{Ctx: ctx, F: f}
	mock.lockListConversations.Lock()
	mock.calls.ListConversations = append(mock.calls.ListConversations, callInfo)
	mock.lockListConversations.Unlock()
	return mock.ListConversationsFunc(ctx, f)
}

func (mock *reportRepoMock) ListConversationsCalls() []struct {
	Ctx context.Context
	F   domain.ConversationFilter
} {
	mock.lockListConversations.RLock()
	calls := mock.calls.ListConversations
	mock.lockListConversations.RUnlock()
	return calls
}

func (mock *reportRepoMock) TrackingReport(ctx context.Context, f domain.TrackingFilter) (domain.TrackingReport, error) {
	if mock.TrackingReportFunc == nil {
		panic("reportRepoMock.TrackingReportFunc: method is nil but reportRepo.TrackingReport was just called")
	}
	callInfo := struct {
		Ctx context.Context
		F   domain.TrackingFilter
	}{Ctx: ctx, F: f}
	mock.lockTrackingReport.Lock()
	mock.calls.TrackingReport = append(mock.calls.TrackingReport, callInfo)
	mock.lockTrackingReport.Unlock()
	return mock.TrackingReportFunc(ctx, f)
}

func (mock *reportRepoMock) TrackingReportCalls() []struct {
	Ctx context.Context
	F   domain.TrackingFilter
} {
	mock.lockTrackingReport.RLock()
	calls := mock.calls.TrackingReport
	mock.lockTrackingReport.RUnlock()
	return calls
}
