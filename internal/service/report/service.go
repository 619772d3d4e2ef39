// Package report serves the read-only dashboard views: headline stats,
// the conversation list, per-conversation history and the tracking report.
package report

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/heartmarshall/rastreio-bot/internal/domain"
)

type reportRepo interface {
	Stats(ctx context.Context, todayStart time.Time) (domain.Stats, error)
	ListConversations(ctx context.Context, f domain.ConversationFilter) (domain.ConversationPage, error)
	TrackingReport(ctx context.Context, f domain.TrackingFilter) (domain.TrackingReport, error)
}

type conversationRepo interface {
	GetByID(ctx context.Context, id int64) (*domain.Conversation, error)
}

type messageRepo interface {
	ListByConversation(ctx context.Context, conversationID int64) ([]domain.MessageLog, error)
}

type trackingRepo interface {
	ListByConversation(ctx context.Context, conversationID int64) ([]domain.TrackingRequest, error)
}

type systemLogRepo interface {
	ListRecent(ctx context.Context, limit int) ([]domain.SystemLog, error)
}

const (
	defaultSystemLogLimit = 50
	maxSystemLogLimit     = 500
)

// Service implements the dashboard read model.
type Service struct {
	log           *slog.Logger
	reports       reportRepo
	conversations conversationRepo
	messages      messageRepo
	lookups       trackingRepo
	syslog        systemLogRepo
	loc           *time.Location
	now           func() time.Time
}

// NewService creates a report Service. Calendar days ("today", date filters)
// are interpreted in loc; nil means UTC.
func NewService(
	log *slog.Logger,
	reports reportRepo,
	conversations conversationRepo,
	messages messageRepo,
	lookups trackingRepo,
	syslog systemLogRepo,
	loc *time.Location,
) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		log:           log.With("service", "report"),
		reports:       reports,
		conversations: conversations,
		messages:      messages,
		lookups:       lookups,
		syslog:        syslog,
		loc:           loc,
		now:           time.Now,
	}
}

// Stats returns the headline numbers; "today" starts at local midnight.
func (s *Service) Stats(ctx context.Context) (domain.Stats, error) {
	stats, err := s.reports.Stats(ctx, startOfDay(s.now(), s.loc))
	if err != nil {
		return domain.Stats{}, fmt.Errorf("stats: %w", err)
	}
	return stats, nil
}

// ListConversations returns one page of conversations, newest first.
func (s *Service) ListConversations(ctx context.Context, in ConversationsInput) (domain.ConversationPage, error) {
	if err := in.Validate(); err != nil {
		return domain.ConversationPage{}, err
	}
	page, err := s.reports.ListConversations(ctx, in.filter(s.loc))
	if err != nil {
		return domain.ConversationPage{}, fmt.Errorf("list conversations: %w", err)
	}
	return page, nil
}

// History returns a conversation with its messages and tracking requests.
func (s *Service) History(ctx context.Context, id int64) (domain.ConversationHistory, error) {
	if id <= 0 {
		return domain.ConversationHistory{}, domain.NewValidationError("id", "must be positive")
	}

	conv, err := s.conversations.GetByID(ctx, id)
	if err != nil {
		return domain.ConversationHistory{}, fmt.Errorf("get conversation %d: %w", id, err)
	}
	messages, err := s.messages.ListByConversation(ctx, id)
	if err != nil {
		return domain.ConversationHistory{}, fmt.Errorf("list messages: %w", err)
	}
	requests, err := s.lookups.ListByConversation(ctx, id)
	if err != nil {
		return domain.ConversationHistory{}, fmt.Errorf("list tracking requests: %w", err)
	}

	return domain.ConversationHistory{
		Conversation:     *conv,
		Messages:         messages,
		TrackingRequests: requests,
	}, nil
}

// TrackingReport returns recent tracking requests with top distributions.
func (s *Service) TrackingReport(ctx context.Context, in TrackingInput) (domain.TrackingReport, error) {
	if err := in.Validate(); err != nil {
		return domain.TrackingReport{}, err
	}
	rep, err := s.reports.TrackingReport(ctx, in.filter(s.loc))
	if err != nil {
		return domain.TrackingReport{}, fmt.Errorf("tracking report: %w", err)
	}
	s.log.DebugContext(ctx, "tracking report", slog.Int("rows", len(rep.Rows)))
	return rep, nil
}

// SystemLogs returns the newest operational log entries. A zero limit means
// the default.
func (s *Service) SystemLogs(ctx context.Context, limit int) ([]domain.SystemLog, error) {
	switch {
	case limit == 0:
		limit = defaultSystemLogLimit
	case limit < 0 || limit > maxSystemLogLimit:
		return nil, domain.NewValidationError("limit", fmt.Sprintf("must be between 1 and %d", maxSystemLogLimit))
	}

	logs, err := s.syslog.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list system logs: %w", err)
	}
	return logs, nil
}

func startOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
