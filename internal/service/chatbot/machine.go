package chatbot

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/rastreio-bot/internal/domain"
)

// turn is the working state of one inbound message for one identity.
type turn struct {
	identity string
	text     string
	input    string // normalized text used for matching
	conv     *domain.Conversation
	out      *Outcome
}

// reply sends text to the turn's identity and records it on the outcome.
// A failed send is logged and otherwise ignored: the state change that
// preceded it stays in place.
func (s *Service) reply(ctx context.Context, t *turn, text string) {
	var convID *int64
	if t.conv != nil {
		convID = &t.conv.ID
	}
	_ = s.out.send(ctx, t.identity, convID, text)
	t.out.Replies = append(t.out.Replies, Reply{To: t.identity, Text: text})
}

// update persists patch and mirrors it onto the in-memory conversation.
// A conversation that stopped being open since it was read yields ErrConflict.
func (s *Service) update(ctx context.Context, t *turn, patch domain.ConversationPatch) error {
	ok, err := s.conversations.Update(ctx, t.conv.ID, patch)
	if err != nil {
		return fmt.Errorf("update conversation %d: %w", t.conv.ID, err)
	}
	if !ok {
		return fmt.Errorf("conversation %d is no longer open: %w", t.conv.ID, domain.ErrConflict)
	}
	next := patch.Apply(*t.conv, s.now())
	t.conv = &next
	return nil
}

// handle dispatches the turn on the conversation's current mode.
func (s *Service) handle(ctx context.Context, t *turn) error {
	switch mode := t.conv.Mode(); mode {
	case domain.ModeWaitingAttendant:
		return s.handleWaiting(ctx, t)
	case domain.ModeAwaitDanfe:
		return s.handleLookup(ctx, t, documentKeyLookup)
	case domain.ModeAwaitCPF:
		return s.handleLookup(ctx, t, personalIDLookup)
	case domain.ModeAwaitRating:
		return s.handleRating(ctx, t)
	case domain.ModeMenu:
		return s.handleMenu(ctx, t)
	default:
		return fmt.Errorf("conversation %d in unexpected mode %s", t.conv.ID, mode)
	}
}

// handleWaiting keeps a handed-off conversation parked until the customer
// asks for the menu again.
func (s *Service) handleWaiting(ctx context.Context, t *turn) error {
	if t.input != "menu" {
		s.reply(ctx, t, renderWaitingAck(t.conv.ProtocolID))
		return nil
	}

	err := s.update(ctx, t, domain.ConversationPatch{
		Status:             domain.Ptr(domain.StatusActive),
		ClearAwaitingInput: true,
	})
	if err != nil {
		return err
	}
	s.reply(ctx, t, textWelcome)
	return nil
}

// startHandoff parks the conversation for a human attendant and notifies
// the operator. Notification failures leave the handoff in place.
func (s *Service) startHandoff(ctx context.Context, t *turn) error {
	err := s.update(ctx, t, domain.ConversationPatch{
		Status:             domain.Ptr(domain.StatusWaitingAttendant),
		ClearAwaitingInput: true,
		Notes:              domain.Ptr(handoffNote),
	})
	if err != nil {
		return err
	}
	s.reply(ctx, t, renderHandoffAck(t.conv.ProtocolID))

	r, err := s.notifier.NotifyHandoff(ctx, *t.conv)
	if err != nil {
		s.log.ErrorContext(ctx, "handoff notice failed",
			slog.String("protocol", t.conv.ProtocolID),
			slog.String("error", err.Error()),
		)
		return nil
	}
	t.out.Replies = append(t.out.Replies, r)
	t.out.add(EffectHandoffNotified)
	return nil
}

// startEnding asks the customer for a rating. Conversations left unrated
// are completed by the idle sweep.
func (s *Service) startEnding(ctx context.Context, t *turn) error {
	now := s.now()
	err := s.update(ctx, t, domain.ConversationPatch{
		Status:        domain.Ptr(domain.StatusEnding),
		AwaitingInput: domain.Ptr(domain.AwaitingRating),
		EndingAt:      &now,
	})
	if err != nil {
		return err
	}
	s.reply(ctx, t, textRatingPrompt)
	t.out.add(EffectEndingStarted)
	return nil
}
