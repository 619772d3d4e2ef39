// Package chatbot implements the conversation state machine and the message
// router that drives it.
//
// Every inbound event becomes one turn. Turns for the same identity are
// serialized; each turn re-reads the conversation from the store, applies at
// most a few narrow field updates and sends its replies as it goes.
package chatbot

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"github.com/heartmarshall/rastreio-bot/internal/config"
	"github.com/heartmarshall/rastreio-bot/internal/domain"
	"github.com/heartmarshall/rastreio-bot/internal/metrics"
	"github.com/heartmarshall/rastreio-bot/pkg/keymutex"
)

type conversationStore interface {
	Create(ctx context.Context, c domain.Conversation) (*domain.Conversation, error)
	FindActive(ctx context.Context, q domain.IdentityQuery) (*domain.Conversation, error)
	FindLatest(ctx context.Context, q domain.IdentityQuery) (*domain.Conversation, error)
	Update(ctx context.Context, id int64, patch domain.ConversationPatch) (bool, error)
	Touch(ctx context.Context, id int64) error
}

type messageLog interface {
	Log(ctx context.Context, m domain.MessageLog) error
}

type trackingLog interface {
	Log(ctx context.Context, req domain.TrackingRequest) (domain.TrackingRequest, error)
	LastForConversation(ctx context.Context, conversationID int64) (*domain.TrackingRequest, error)
}

type interactionTracker interface {
	IsFirstInteractionToday(ctx context.Context, identity string, day time.Time) (bool, error)
	RecordInteraction(ctx context.Context, identity string, day time.Time) error
}

type systemLog interface {
	Log(ctx context.Context, level domain.LogLevel, message string, data any) error
}

type trackingGateway interface {
	LookupByDocumentKey(ctx context.Context, key string) domain.TrackingResult
	LookupByPersonalID(ctx context.Context, id string) domain.TrackingResult
}

type sender interface {
	SendText(ctx context.Context, identity, text string) error
}

// Service routes inbound chat events through the conversation state machine.
type Service struct {
	conversations conversationStore
	messages      messageLog
	lookups       trackingLog
	interactions  interactionTracker
	syslog        systemLog
	gateway       trackingGateway
	transport     sender
	out           *outbox
	notifier      *Notifier
	metrics       *metrics.Metrics
	cfg           config.BotConfig
	locks         *keymutex.KeyMutex
	now           func() time.Time
	log           *slog.Logger
}

// NewService creates a chatbot Service. m may be nil.
func NewService(
	log *slog.Logger,
	conversations conversationStore,
	messages messageLog,
	lookups trackingLog,
	interactions interactionTracker,
	syslog systemLog,
	gateway trackingGateway,
	transport sender,
	m *metrics.Metrics,
	cfg config.BotConfig,
) *Service {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.HistoryLimit <= 0 {
		cfg.HistoryLimit = defaultHistoryLimit
	}
	log = log.With("service", "chatbot")

	s := &Service{
		conversations: conversations,
		messages:      messages,
		lookups:       lookups,
		interactions:  interactions,
		syslog:        syslog,
		gateway:       gateway,
		transport:     transport,
		notifier:      NewNotifier(log, transport, messages, syslog, m, cfg),
		metrics:       m,
		cfg:           cfg,
		locks:         keymutex.New(),
		now:           time.Now,
		log:           log,
	}
	s.out = &outbox{transport: transport, messages: messages, now: func() time.Time { return s.now() }, log: log}
	return s
}

// isOperator reports whether identity is the configured operator.
func (s *Service) isOperator(identity string) bool {
	op := domain.IdentityVariants(s.cfg.OperatorIdentity, s.cfg.CountryCode)
	for _, v := range domain.IdentityVariants(identity, s.cfg.CountryCode) {
		if slices.Contains(op, v) {
			return true
		}
	}
	return false
}
