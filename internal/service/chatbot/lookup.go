package chatbot

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/heartmarshall/rastreio-bot/internal/domain"
)

const (
	documentKeyDigits = 44
	personalIDDigits  = 11
)

const alertInvalidAccess = "Erro de Acesso Inválido na API SSW"

// lookupKind describes one of the two tracking lookups offered by the menu.
type lookupKind struct {
	kind    domain.TrackingKind
	digits  int
	invalid string
	call    func(gw trackingGateway, ctx context.Context, value string) domain.TrackingResult
}

var (
	documentKeyLookup = lookupKind{
		kind:    domain.TrackingByDanfe,
		digits:  documentKeyDigits,
		invalid: textInvalidDanfe,
		call:    trackingGateway.LookupByDocumentKey,
	}
	personalIDLookup = lookupKind{
		kind:    domain.TrackingByCPF,
		digits:  personalIDDigits,
		invalid: textInvalidCPF,
		call:    trackingGateway.LookupByPersonalID,
	}
)

// handleLookup validates the awaited identifier and, when it has the right
// number of digits, queries the tracking gateway. Invalid input keeps the
// conversation waiting for the same identifier.
func (s *Service) handleLookup(ctx context.Context, t *turn, k lookupKind) error {
	value := domain.DigitsOnly(t.text)
	if len(value) != k.digits {
		s.reply(ctx, t, k.invalid)
		t.out.add(EffectValidationFailed)
		return nil
	}

	s.reply(ctx, t, textSearching)

	start := time.Now()
	res := k.call(s.gateway, ctx, value)
	s.metrics.Lookup(string(k.kind), string(res.Reason), time.Since(start))
	t.out.add(EffectTrackingLookup)

	s.log.InfoContext(ctx, "tracking lookup",
		slog.String("protocol", t.conv.ProtocolID),
		slog.String("kind", string(k.kind)),
		slog.Bool("success", res.Success),
		slog.String("reason", string(res.Reason)),
		slog.Duration("elapsed", time.Since(start)),
	)

	if _, err := s.lookups.Log(ctx, domain.NewTrackingRequest(t.conv.ID, k.kind, value, res)); err != nil {
		return fmt.Errorf("log tracking request: %w", err)
	}

	if res.Reason == domain.ReasonInvalidAccess {
		s.alert(ctx, t, alertInvalidAccess, map[string]any{
			"protocol": t.conv.ProtocolID,
			"kind":     string(k.kind),
			"message":  res.Message,
		})
	}

	if err := s.update(ctx, t, domain.ConversationPatch{ClearAwaitingInput: true}); err != nil {
		return err
	}

	if res.Success && res.Data != nil {
		s.reply(ctx, t, renderResult(*res.Data, s.cfg.Location))
	} else {
		s.reply(ctx, t, renderFailure(res))
	}

	if res.OffersFollowUp() {
		s.reply(ctx, t, textFollowUp)
	}
	return nil
}

// alert raises an operator alert on behalf of the turn. Failures are logged.
func (s *Service) alert(ctx context.Context, t *turn, reason string, data map[string]any) {
	r, err := s.notifier.Alert(ctx, reason, data)
	if err != nil {
		s.log.ErrorContext(ctx, "operator alert failed",
			slog.String("reason", reason),
			slog.String("error", err.Error()),
		)
		return
	}
	t.out.Replies = append(t.out.Replies, r)
	t.out.add(EffectOperatorAlert)
}
