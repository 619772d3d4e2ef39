package chatbot

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/heartmarshall/rastreio-bot/internal/config"
	"github.com/heartmarshall/rastreio-bot/internal/domain"
	"github.com/heartmarshall/rastreio-bot/internal/metrics"
)

// Notifier delivers operator-facing notices: attendant handoffs and system
// alerts. Its failures never affect the customer conversation.
type Notifier struct {
	out     *outbox
	syslog  systemLog
	metrics *metrics.Metrics
	cfg     config.BotConfig
	log     *slog.Logger
}

// NewNotifier creates a Notifier. m may be nil.
func NewNotifier(log *slog.Logger, transport sender, messages messageLog, syslog systemLog, m *metrics.Metrics, cfg config.BotConfig) *Notifier {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	return &Notifier{
		out:     &outbox{transport: transport, messages: messages, now: time.Now, log: log},
		syslog:  syslog,
		metrics: m,
		cfg:     cfg,
		log:     log,
	}
}

// NotifyHandoff tells the operator that conv asked for a human attendant.
// The notice carries the protocol, the customer identity and a link that
// pre-fills the force-close command.
func (n *Notifier) NotifyHandoff(ctx context.Context, conv domain.Conversation) (Reply, error) {
	customer := domain.CanonicalIdentity(conv.Identity)
	r := Reply{
		To:   domain.CanonicalIdentity(n.cfg.OperatorIdentity),
		Text: renderHandoffNotice(conv.ProtocolID, customer, n.cfg.BotIdentity),
	}

	if err := n.out.send(ctx, r.To, nil, r.Text); err != nil {
		return Reply{}, fmt.Errorf("handoff notice for %s: %w", conv.ProtocolID, err)
	}

	n.metrics.Handoff()
	n.log.InfoContext(ctx, "handoff notified",
		slog.String("protocol", conv.ProtocolID),
		slog.String("customer", customer),
	)
	return r, nil
}

// Alert sends a system alert to the alert identity and records it in the
// system log. The log entry is written even when delivery fails.
func (n *Notifier) Alert(ctx context.Context, reason string, data map[string]any) (Reply, error) {
	r := Reply{
		To:   domain.CanonicalIdentity(n.cfg.AlertTarget()),
		Text: renderAlert(reason, n.out.now().In(n.cfg.Location)),
	}

	if err := n.syslog.Log(ctx, domain.LogLevelError, reason, data); err != nil {
		n.log.WarnContext(ctx, "system log write failed", slog.String("error", err.Error()))
	}

	if err := n.out.send(ctx, r.To, nil, r.Text); err != nil {
		return Reply{}, fmt.Errorf("alert %q: %w", reason, err)
	}

	n.metrics.Alert()
	n.log.WarnContext(ctx, "operator alerted", slog.String("reason", reason))
	return r, nil
}
