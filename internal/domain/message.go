package domain

import (
	"encoding/json"
	"time"
)

// EventKindNotify is the transport event kind for a freshly delivered message.
const EventKindNotify = "notify"

// InboundEvent is one message event delivered by the chat transport.
type InboundEvent struct {
	Sender   string `json:"sender"`
	Text     string `json:"text"`
	FromSelf bool   `json:"from_self"`
	Kind     string `json:"kind"`
}

// IsActionable reports whether the event should be routed at all.
func (e InboundEvent) IsActionable() bool {
	return !e.FromSelf && e.Kind == EventKindNotify
}

// MessageLog is one persisted chat message in either direction.
type MessageLog struct {
	ID             int64
	Identity       string
	ConversationID *int64
	Text           string
	IsFromBot      bool
	Timestamp      time.Time
}

// SystemLog is one persisted operational log entry.
type SystemLog struct {
	ID        int64
	Level     LogLevel
	Message   string
	Data      json.RawMessage
	CreatedAt time.Time
}
