package chatbot

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/heartmarshall/rastreio-bot/internal/domain"
)

// outbox sends a text through the transport and records it in the message
// log. Delivery is best effort: failures are logged and returned, never retried.
type outbox struct {
	transport sender
	messages  messageLog
	now       func() time.Time
	log       *slog.Logger
}

func (o *outbox) send(ctx context.Context, to string, conversationID *int64, text string) error {
	sendErr := o.transport.SendText(ctx, to, text)
	if sendErr != nil {
		o.log.WarnContext(ctx, "send failed",
			slog.String("to", to),
			slog.String("error", sendErr.Error()),
		)
	}

	err := o.messages.Log(ctx, domain.MessageLog{
		Identity:       to,
		ConversationID: conversationID,
		Text:           text,
		IsFromBot:      true,
		Timestamp:      o.now(),
	})
	if err != nil {
		o.log.WarnContext(ctx, "log outbound message failed",
			slog.String("to", to),
			slog.String("error", err.Error()),
		)
	}

	if sendErr != nil {
		return fmt.Errorf("send to %s: %w", to, sendErr)
	}
	return nil
}
