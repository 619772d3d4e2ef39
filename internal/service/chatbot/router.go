package chatbot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/heartmarshall/rastreio-bot/internal/domain"
	"github.com/heartmarshall/rastreio-bot/pkg/ctxutil"
)

// failureReplyTimeout bounds the apology sent after a failed turn, which may
// run after the turn's own context expired.
const failureReplyTimeout = 10 * time.Second

// HandleEvent processes one inbound transport event as one turn. It never
// returns an error: failures are logged, answered with a generic apology
// and reported through the outcome's EffectFailed.
func (s *Service) HandleEvent(ctx context.Context, ev domain.InboundEvent) (out Outcome) {
	identity := domain.CanonicalIdentity(ev.Sender)
	if !ev.IsActionable() || identity == "" || strings.TrimSpace(ev.Text) == "" {
		s.metrics.Inbound("ignored")
		return Outcome{Identity: identity, Ignored: true}
	}

	ctx = ctxutil.WithIdentity(ctx, identity)
	ctx, cancel := context.WithTimeout(ctx, s.cfg.TurnTimeout)
	defer cancel()

	out = Outcome{Identity: identity}
	t := &turn{identity: identity, text: ev.Text, input: domain.NormalizeText(ev.Text), out: &out}

	defer func() {
		if r := recover(); r != nil {
			s.fail(ctx, t, fmt.Errorf("panic: %v", r))
		}
		s.finish(ctx, &out)
	}()

	if s.isOperator(identity) && isAdminCommand(ev.Text) {
		s.logInbound(ctx, identity, nil, ev.Text)
		if err := s.forceClose(ctx, identity, ev.Text, &out); err != nil {
			s.fail(ctx, t, err)
		}
		return out
	}

	unlock := s.locks.Lock(s.lockKey(identity))
	defer unlock()

	if err := s.runTurn(ctx, t); err != nil {
		s.fail(ctx, t, err)
	}
	return out
}

// runTurn loads or opens the identity's conversation and runs the state
// machine on it.
func (s *Service) runTurn(ctx context.Context, t *turn) error {
	conv, err := s.conversations.FindActive(ctx, domain.ExactIdentity(t.identity, s.cfg.CountryCode))
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return s.openConversation(ctx, t)
	case err != nil:
		return fmt.Errorf("find active conversation: %w", err)
	}

	t.conv = conv
	t.out.ProtocolID = conv.ProtocolID
	s.logInbound(ctx, t.identity, &conv.ID, t.text)
	s.recordInteraction(ctx, t.identity)

	if err := s.conversations.Touch(ctx, conv.ID); err != nil {
		return fmt.Errorf("touch conversation %d: %w", conv.ID, err)
	}
	if err := s.handle(ctx, t); err != nil {
		return err
	}
	t.out.Mode = t.conv.Mode()
	return nil
}

// openConversation creates a conversation for an identity with none open.
// The first contact of the day gets the welcome menu and nothing else;
// later contacts have their message handled from the menu.
func (s *Service) openConversation(ctx context.Context, t *turn) error {
	day := s.now().In(s.cfg.Location)
	first, err := s.interactions.IsFirstInteractionToday(ctx, t.identity, day)
	if err != nil {
		return fmt.Errorf("check first interaction: %w", err)
	}

	conv, err := s.conversations.Create(ctx, domain.NewConversation(t.identity, s.now()))
	if errors.Is(err, domain.ErrAlreadyExists) {
		// A concurrent turn from another replica opened it first.
		conv, err = s.conversations.FindActive(ctx, domain.ExactIdentity(t.identity, s.cfg.CountryCode))
		first = false
	} else if err == nil {
		t.out.add(EffectConversationCreated)
	}
	if err != nil {
		return fmt.Errorf("create conversation: %w", err)
	}

	t.conv = conv
	t.out.ProtocolID = conv.ProtocolID
	s.logInbound(ctx, t.identity, &conv.ID, t.text)
	s.recordInteraction(ctx, t.identity)

	s.log.InfoContext(ctx, "conversation opened",
		slog.String("protocol", conv.ProtocolID),
		slog.Bool("first_today", first),
	)

	if first {
		s.reply(ctx, t, textWelcome)
		t.out.add(EffectWelcomeSent)
		t.out.Mode = domain.ModeWelcomeSent
		return nil
	}

	if err := s.handle(ctx, t); err != nil {
		return err
	}
	t.out.Mode = t.conv.Mode()
	return nil
}

func (s *Service) logInbound(ctx context.Context, identity string, conversationID *int64, text string) {
	err := s.messages.Log(ctx, domain.MessageLog{
		Identity:       identity,
		ConversationID: conversationID,
		Text:           text,
		Timestamp:      s.now(),
	})
	if err != nil {
		s.log.WarnContext(ctx, "log inbound message failed", slog.String("error", err.Error()))
	}
}

func (s *Service) recordInteraction(ctx context.Context, identity string) {
	if err := s.interactions.RecordInteraction(ctx, identity, s.now().In(s.cfg.Location)); err != nil {
		s.log.WarnContext(ctx, "record interaction failed", slog.String("error", err.Error()))
	}
}

// fail reports a failed turn and apologizes to the sender.
func (s *Service) fail(ctx context.Context, t *turn, err error) {
	s.log.ErrorContext(ctx, "turn failed",
		slog.String("identity", t.identity),
		slog.String("protocol", t.out.ProtocolID),
		slog.String("error", err.Error()),
	)

	replyCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), failureReplyTimeout)
	defer cancel()
	s.reply(replyCtx, t, textUnexpectedError)
	t.out.add(EffectFailed)
}

func (s *Service) finish(ctx context.Context, out *Outcome) {
	switch {
	case out.Has(EffectFailed):
		s.metrics.Inbound("failed")
	case out.Has(EffectForceClosed) || out.Mode == "":
		s.metrics.Inbound("command")
	default:
		s.metrics.Inbound("handled")
		s.metrics.Turn(string(out.Mode))
	}

	s.log.InfoContext(ctx, "turn handled",
		slog.String("identity", out.Identity),
		slog.String("protocol", out.ProtocolID),
		slog.String("mode", string(out.Mode)),
		slog.Int("replies", len(out.Replies)),
		slog.Any("effects", out.Effects),
	)
}

// lockKey maps every spelling of a number to one key so that turns for the
// same customer never interleave.
func (s *Service) lockKey(identity string) string {
	d := domain.CanonicalIdentity(identity)
	if cc := s.cfg.CountryCode; cc != "" && strings.HasPrefix(d, cc) && len(d)-len(cc) >= 10 {
		return d[len(cc):]
	}
	return d
}
