// Package natsbus bridges the chat transport over NATS: inbound chat events
// arrive on one subject and outbound texts are published on another.
package natsbus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/heartmarshall/rastreio-bot/internal/config"
	"github.com/heartmarshall/rastreio-bot/internal/domain"
	"github.com/heartmarshall/rastreio-bot/pkg/retry"
)

const clientName = "rastreio-bot"

// ErrNotConnected is returned by SendText when the connection is not usable.
var ErrNotConnected = errors.New("chat transport not connected")

// Handler processes one inbound event. It runs on its own goroutine.
type Handler func(ctx context.Context, ev domain.InboundEvent)

// OutboundMessage is the payload published for every bot reply.
type OutboundMessage struct {
	To     string    `json:"to"`
	Text   string    `json:"text"`
	SentAt time.Time `json:"sent_at"`
}

// Bus is the NATS-backed chat transport.
type Bus struct {
	nc  *nats.Conn
	cfg config.NATSConfig
	log *slog.Logger
	now func() time.Time

	mu     sync.Mutex
	sub    *nats.Subscription
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// Connect dials NATS, retrying up to cfg.ConnectAttempts times.
func Connect(ctx context.Context, log *slog.Logger, cfg config.NATSConfig) (*Bus, error) {
	log = log.With("adapter", "nats")

	opts := []nats.Option{
		nats.Name(clientName),
		nats.Timeout(cfg.ConnectTimeout),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				log.Warn("nats disconnected", slog.String("error", err.Error()))
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info("nats reconnected", slog.String("url", nc.ConnectedUrlRedacted()))
		}),
	}

	nc, err := retry.Do(ctx, log, retry.Config{MaxAttempts: cfg.ConnectAttempts}, "nats connect",
		func(ctx context.Context) (*nats.Conn, error) {
			return nats.Connect(cfg.URL, opts...)
		})
	if err != nil {
		return nil, err
	}

	log.Info("connected to nats", slog.String("url", nc.ConnectedUrlRedacted()))
	return New(log, nc, cfg), nil
}

// New wraps an established connection.
func New(log *slog.Logger, nc *nats.Conn, cfg config.NATSConfig) *Bus {
	return &Bus{
		nc:  nc,
		cfg: cfg,
		log: log,
		now: time.Now,
	}
}

// Subscribe starts consuming inbound events. Instances sharing the queue
// group split the stream between them. Every event is handled in its own
// goroutine. Handlers keep ctx's values but not its cancellation: they are
// cancelled only when Close runs out of time waiting for them.
func (b *Bus) Subscribe(ctx context.Context, h Handler) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.sub != nil {
		return errors.New("natsbus: already subscribed")
	}

	ctx, cancel := context.WithCancel(context.WithoutCancel(ctx))

	sub, err := b.nc.QueueSubscribe(b.cfg.InboundSubject, b.cfg.QueueGroup, func(msg *nats.Msg) {
		var ev domain.InboundEvent
		if err := json.Unmarshal(msg.Data, &ev); err != nil {
			b.log.Warn("dropping malformed inbound event",
				slog.String("subject", msg.Subject),
				slog.String("error", err.Error()),
			)
			return
		}

		b.wg.Add(1)
		go func() {
			defer b.wg.Done()
			h(ctx, ev)
		}()
	})
	if err != nil {
		cancel()
		return fmt.Errorf("subscribe %s: %w", b.cfg.InboundSubject, err)
	}

	b.sub = sub
	b.cancel = cancel
	b.log.Info("listening for chat events",
		slog.String("subject", b.cfg.InboundSubject),
		slog.String("queue", b.cfg.QueueGroup),
	)
	return nil
}

// SendText publishes a text message addressed to identity.
func (b *Bus) SendText(ctx context.Context, identity, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !b.nc.IsConnected() {
		return ErrNotConnected
	}

	data, err := json.Marshal(OutboundMessage{
		To:     domain.TransportAddress(identity),
		Text:   text,
		SentAt: b.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("marshal outbound message: %w", err)
	}

	if err := b.nc.Publish(b.cfg.OutboundSubject, data); err != nil {
		return fmt.Errorf("publish %s: %w", b.cfg.OutboundSubject, err)
	}
	return nil
}

// Ping reports whether the connection is up.
func (b *Bus) Ping(ctx context.Context) error {
	if !b.nc.IsConnected() {
		return ErrNotConnected
	}
	return b.nc.FlushWithContext(ctx)
}

// Close stops consuming, waits for in-flight handlers until ctx is done,
// cancels the ones still running and drains the connection.
func (b *Bus) Close(ctx context.Context) error {
	b.mu.Lock()
	sub, cancel := b.sub, b.cancel
	b.sub, b.cancel = nil, nil
	b.mu.Unlock()
	if cancel != nil {
		defer cancel()
	}

	if sub != nil {
		if err := sub.Unsubscribe(); err != nil && !errors.Is(err, nats.ErrConnectionClosed) {
			b.log.Warn("unsubscribe failed", slog.String("error", err.Error()))
		}
	}

	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		b.log.Warn("shutdown timed out waiting for in-flight chat events")
		if cancel != nil {
			cancel()
		}
	}

	if err := b.nc.Drain(); err != nil && !errors.Is(err, nats.ErrConnectionClosed) {
		b.nc.Close()
		return fmt.Errorf("drain nats: %w", err)
	}
	return nil
}
