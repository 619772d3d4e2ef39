package chatbot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/rastreio-bot/internal/domain"
)

// AdminCloseCommand force-closes a customer's open conversation. Only the
// operator identity may issue it: "!encerrar <customer number>".
const AdminCloseCommand = "!encerrar"

func isAdminCommand(text string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(text)), AdminCloseCommand)
}

// forceClose moves the target customer's open conversation to ending and
// sends them the rating prompt. The operator gets a confirmation or the
// precise reason nothing was closed.
func (s *Service) forceClose(ctx context.Context, operator, text string, out *Outcome) error {
	op := &turn{identity: operator, text: text, input: domain.NormalizeText(text), out: out}

	fields := strings.Fields(text)
	target := ""
	if len(fields) > 1 {
		target = domain.DigitsOnly(strings.Join(fields[1:], ""))
	}
	if target == "" {
		s.reply(ctx, op, textAdminUsage)
		return nil
	}

	q := domain.LooseIdentity(target, s.cfg.CountryCode)
	conv, err := s.conversations.FindActive(ctx, q)
	if errors.Is(err, domain.ErrNotFound) {
		return s.explainNotClosed(ctx, op, target, q)
	}
	if err != nil {
		return fmt.Errorf("find conversation for %s: %w", target, err)
	}

	// Serialize with the customer's own turns and re-read under the lock.
	customer := domain.CanonicalIdentity(conv.Identity)
	unlock := s.locks.Lock(s.lockKey(customer))
	defer unlock()

	conv, err = s.conversations.FindActive(ctx, domain.ExactIdentity(customer, s.cfg.CountryCode))
	if errors.Is(err, domain.ErrNotFound) {
		return s.explainNotClosed(ctx, op, target, q)
	}
	if err != nil {
		return fmt.Errorf("reload conversation for %s: %w", target, err)
	}

	ct := &turn{identity: customer, conv: conv, out: out}
	now := s.now()
	err = s.update(ctx, ct, domain.ConversationPatch{
		Status:        domain.Ptr(domain.StatusEnding),
		AwaitingInput: domain.Ptr(domain.AwaitingRating),
		EndingAt:      &now,
	})
	if err != nil {
		return err
	}
	out.ProtocolID = ct.conv.ProtocolID

	s.reply(ctx, ct, textForcedRatingPrompt)
	s.reply(ctx, op, renderAdminClosed(target))
	out.add(EffectForceClosed)

	s.log.InfoContext(ctx, "conversation force-closed",
		slog.String("protocol", ct.conv.ProtocolID),
		slog.String("customer", customer),
	)
	return nil
}

// explainNotClosed tells the operator whether the target never had a
// conversation or only has finished ones.
func (s *Service) explainNotClosed(ctx context.Context, op *turn, target string, q domain.IdentityQuery) error {
	latest, err := s.conversations.FindLatest(ctx, q)
	if errors.Is(err, domain.ErrNotFound) {
		s.reply(ctx, op, renderAdminNotFound(target))
		return nil
	}
	if err != nil {
		return fmt.Errorf("find latest conversation for %s: %w", target, err)
	}
	s.reply(ctx, op, renderAdminNotActive(target, latest.ProtocolID))
	return nil
}
