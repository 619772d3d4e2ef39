package chatbot

import (
	"context"
	"log/slog"
	"strings"

	"github.com/heartmarshall/rastreio-bot/internal/domain"
)

// handleRating records a 1..5 rating and completes the conversation.
// Anything else re-prompts and leaves the conversation waiting.
func (s *Service) handleRating(ctx context.Context, t *turn) error {
	rating, ok := parseRating(t.text)
	if !ok {
		s.reply(ctx, t, textRatingReprompt)
		return nil
	}

	now := s.now()
	err := s.update(ctx, t, domain.ConversationPatch{
		Status:             domain.Ptr(domain.StatusCompleted),
		ClearAwaitingInput: true,
		Rating:             domain.Ptr(rating),
		EndTime:            &now,
	})
	if err != nil {
		return err
	}

	s.reply(ctx, t, renderThanks(rating))
	t.out.add(EffectRatingRecorded)
	s.log.InfoContext(ctx, "conversation rated",
		slog.String("protocol", t.conv.ProtocolID),
		slog.Int("rating", rating),
	)
	return nil
}

// parseRating reads the leading integer of text, so "5 estrelas" counts as 5.
func parseRating(text string) (int, bool) {
	text = strings.TrimSpace(text)
	n, digits := 0, 0
	for _, r := range text {
		if r < '0' || r > '9' {
			break
		}
		n = n*10 + int(r-'0')
		digits++
		if digits > 2 {
			return 0, false
		}
	}
	if digits == 0 || n < domain.MinRating || n > domain.MaxRating {
		return 0, false
	}
	return n, true
}
