package chatbot

import (
	"context"
	"errors"
	"fmt"

	"github.com/heartmarshall/rastreio-bot/internal/domain"
)

// showHistory re-renders the event history of the conversation's most
// recent lookup.
func (s *Service) showHistory(ctx context.Context, t *turn) error {
	last, err := s.lookups.LastForConversation(ctx, t.conv.ID)
	if errors.Is(err, domain.ErrNotFound) {
		s.reply(ctx, t, textNoHistory)
		return nil
	}
	if err != nil {
		return fmt.Errorf("last tracking request: %w", err)
	}

	res := last.Result
	if !res.Success || res.Data == nil || len(res.Data.History) == 0 {
		s.reply(ctx, t, textHistoryUnavailable)
		return nil
	}

	s.reply(ctx, t, renderHistory(*res.Data, s.cfg.HistoryLimit, s.cfg.Location))
	s.reply(ctx, t, textFollowUp)
	return nil
}
