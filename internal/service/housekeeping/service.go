// Package housekeeping runs the periodic maintenance jobs: completing
// unrated conversations, closing abandoned ones and purging old data.
package housekeeping

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/heartmarshall/rastreio-bot/internal/config"
	"github.com/heartmarshall/rastreio-bot/internal/domain"
	"github.com/heartmarshall/rastreio-bot/internal/metrics"
)

// Job names, used as metric labels and scheduler entries.
const (
	JobIdleEnding = "idle_ending"
	JobInactive   = "inactive"
	JobPurge      = "purge"
)

type conversationRepo interface {
	CompleteIdleEnding(ctx context.Context, cutoff, now time.Time) (int64, error)
	CompleteInactive(ctx context.Context, cutoff, now time.Time) (int64, error)
	DeleteCompletedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type messageRepo interface {
	DeleteUnlinkedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type interactionRepo interface {
	DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type systemLogRepo interface {
	Log(ctx context.Context, level domain.LogLevel, message string, data any) error
	DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// PurgeResult counts the rows removed by one retention purge.
type PurgeResult struct {
	Conversations int64 `json:"conversations"`
	Messages      int64 `json:"messages"`
	SystemLogs    int64 `json:"system_logs"`
	Interactions  int64 `json:"interactions"`
}

// Total is the number of rows removed across all tables.
func (r PurgeResult) Total() int64 {
	return r.Conversations + r.Messages + r.SystemLogs + r.Interactions
}

// Service implements the housekeeping jobs.
type Service struct {
	log           *slog.Logger
	conversations conversationRepo
	messages      messageRepo
	interactions  interactionRepo
	syslog        systemLogRepo
	tx            txManager
	metrics       *metrics.Metrics
	idleWindow    time.Duration
	cfg           config.HousekeepingConfig
}

// NewService creates a housekeeping Service. m may be nil.
func NewService(
	log *slog.Logger,
	conversations conversationRepo,
	messages messageRepo,
	interactions interactionRepo,
	syslog systemLogRepo,
	tx txManager,
	m *metrics.Metrics,
	idleWindow time.Duration,
	cfg config.HousekeepingConfig,
) *Service {
	return &Service{
		log:           log.With("service", "housekeeping"),
		conversations: conversations,
		messages:      messages,
		interactions:  interactions,
		syslog:        syslog,
		tx:            tx,
		metrics:       m,
		idleWindow:    idleWindow,
		cfg:           cfg,
	}
}

// CompleteIdleEnding completes conversations that were asked for a rating
// more than the idle window ago and never answered. No message is sent.
func (s *Service) CompleteIdleEnding(ctx context.Context, now time.Time) (int64, error) {
	n, err := s.conversations.CompleteIdleEnding(ctx, now.Add(-s.idleWindow), now)
	if err != nil {
		return 0, fmt.Errorf("complete idle ending conversations: %w", err)
	}
	s.record(ctx, JobIdleEnding, n)
	return n, nil
}

// CloseInactive completes open conversations with no activity within the
// inactivity window. A zero window disables the job.
func (s *Service) CloseInactive(ctx context.Context, now time.Time) (int64, error) {
	if s.cfg.InactivityWindow <= 0 {
		return 0, nil
	}
	n, err := s.conversations.CompleteInactive(ctx, now.Add(-s.cfg.InactivityWindow), now)
	if err != nil {
		return 0, fmt.Errorf("close inactive conversations: %w", err)
	}
	s.record(ctx, JobInactive, n)
	return n, nil
}

// PurgeOld deletes data older than the retention period in one transaction:
// completed conversations with their messages and tracking requests, messages
// never linked to a conversation, system logs and daily interaction counters.
func (s *Service) PurgeOld(ctx context.Context, now time.Time) (PurgeResult, error) {
	cutoff := s.cfg.RetentionCutoff(now)

	var res PurgeResult
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		if res.Conversations, err = s.conversations.DeleteCompletedBefore(ctx, cutoff); err != nil {
			return fmt.Errorf("delete conversations: %w", err)
		}
		if res.Messages, err = s.messages.DeleteUnlinkedBefore(ctx, cutoff); err != nil {
			return fmt.Errorf("delete messages: %w", err)
		}
		if res.SystemLogs, err = s.syslog.DeleteBefore(ctx, cutoff); err != nil {
			return fmt.Errorf("delete system logs: %w", err)
		}
		if res.Interactions, err = s.interactions.DeleteBefore(ctx, cutoff); err != nil {
			return fmt.Errorf("delete interactions: %w", err)
		}
		return nil
	})
	if err != nil {
		return PurgeResult{}, fmt.Errorf("purge before %s: %w", cutoff.Format(time.DateOnly), err)
	}

	s.record(ctx, JobPurge, res.Total())
	if res.Total() > 0 {
		if err := s.syslog.Log(ctx, domain.LogLevelInfo, "retention purge", res); err != nil {
			s.log.WarnContext(ctx, "system log write failed", slog.String("error", err.Error()))
		}
	}
	return res, nil
}

func (s *Service) record(ctx context.Context, job string, rows int64) {
	s.metrics.Housekeeping(job, rows)
	if rows == 0 {
		s.log.DebugContext(ctx, "job finished", slog.String("job", job))
		return
	}
	s.log.InfoContext(ctx, "job finished",
		slog.String("job", job),
		slog.Int64("rows", rows),
	)
}
