package chatbot

import (
	"slices"

	"github.com/heartmarshall/rastreio-bot/internal/domain"
)

// Effect names a side effect a turn performed besides replying.
type Effect string

const (
	EffectConversationCreated Effect = "conversation_created"
	EffectWelcomeSent         Effect = "welcome_sent"
	EffectValidationFailed    Effect = "validation_failed"
	EffectTrackingLookup      Effect = "tracking_lookup"
	EffectOperatorAlert       Effect = "operator_alert"
	EffectHandoffNotified     Effect = "handoff_notified"
	EffectEndingStarted       Effect = "ending_started"
	EffectRatingRecorded      Effect = "rating_recorded"
	EffectForceClosed         Effect = "force_closed"
	EffectFailed              Effect = "failed"
)

// Reply is one outbound text produced by a turn.
type Reply struct {
	To   string
	Text string
}

// Outcome describes what a turn did. Mode is the conversation mode after
// the turn; it is empty for ignored events and operator commands.
type Outcome struct {
	Identity   string
	ProtocolID string
	Mode       domain.Mode
	Replies    []Reply
	Effects    []Effect
	Ignored    bool
}

// Has reports whether the turn performed effect e.
func (o *Outcome) Has(e Effect) bool {
	return slices.Contains(o.Effects, e)
}

func (o *Outcome) add(e Effect) {
	o.Effects = append(o.Effects, e)
}

// RepliesTo returns the texts sent to identity, in order.
func (o *Outcome) RepliesTo(identity string) []string {
	var out []string
	for _, r := range o.Replies {
		if r.To == identity {
			out = append(out, r.Text)
		}
	}
	return out
}
