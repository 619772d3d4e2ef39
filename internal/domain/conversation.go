package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	MinRating = 1
	MaxRating = 5
)

// Conversation is one support interaction lifecycle for one contact identity.
type Conversation struct {
	ID            int64
	Identity      string
	ProtocolID    string
	Status        Status
	ServiceType   ServiceType
	AwaitingInput AwaitingInput
	Rating        *int
	Notes         *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
	EndingAt      *time.Time
	EndTime       *time.Time
}

// Mode derives the state machine mode from the stored status and awaiting input.
func (c *Conversation) Mode() Mode {
	if c == nil {
		return ModeNew
	}
	switch c.Status {
	case StatusCompleted:
		return ModeCompleted
	case StatusWaitingAttendant:
		return ModeWaitingAttendant
	}
	switch c.AwaitingInput {
	case AwaitingDanfeKey:
		return ModeAwaitDanfe
	case AwaitingCPF:
		return ModeAwaitCPF
	case AwaitingRating:
		return ModeAwaitRating
	}
	if c.Status == StatusEnding {
		return ModeAwaitRating
	}
	return ModeMenu
}

// IsOpen reports whether the conversation is in a non-terminal status.
func (c *Conversation) IsOpen() bool {
	return c != nil && !c.Status.IsTerminal()
}

// NewConversation builds a fresh active conversation for identity.
// ID and timestamps are assigned by the store.
func NewConversation(identity string, now time.Time) Conversation {
	return Conversation{
		Identity:   identity,
		ProtocolID: NewProtocolID(now),
		Status:     StatusActive,
	}
}

// NewProtocolID returns a human-readable ticket reference: YYYYMMDD-HHMMSS-XXXXXXXX.
func NewProtocolID(now time.Time) string {
	short := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("%s-%s", now.Format("20060102-150405"), short)
}

// ConversationPatch is a partial update of a conversation. Nil fields are left
// untouched. ClearAwaitingInput resets the awaited input.
type ConversationPatch struct {
	Status             *Status
	ServiceType        *ServiceType
	AwaitingInput      *AwaitingInput
	ClearAwaitingInput bool
	Rating             *int
	Notes              *string
	EndingAt           *time.Time
	EndTime            *time.Time
}

// IsEmpty reports whether the patch changes nothing.
func (p ConversationPatch) IsEmpty() bool {
	return p.Status == nil &&
		p.ServiceType == nil &&
		p.AwaitingInput == nil &&
		!p.ClearAwaitingInput &&
		p.Rating == nil &&
		p.Notes == nil &&
		p.EndingAt == nil &&
		p.EndTime == nil
}

// Validate checks enum values and the rating range.
func (p ConversationPatch) Validate() error {
	var errs []FieldError

	if p.Status != nil && !p.Status.IsValid() {
		errs = append(errs, FieldError{Field: "status", Message: fmt.Sprintf("invalid value %q", *p.Status)})
	}
	if p.ServiceType != nil && !p.ServiceType.IsValid() {
		errs = append(errs, FieldError{Field: "service_type", Message: fmt.Sprintf("invalid value %q", *p.ServiceType)})
	}
	if p.AwaitingInput != nil {
		if !p.AwaitingInput.IsValid() {
			errs = append(errs, FieldError{Field: "awaiting_input", Message: fmt.Sprintf("invalid value %q", *p.AwaitingInput)})
		}
		if p.ClearAwaitingInput {
			errs = append(errs, FieldError{Field: "awaiting_input", Message: "cannot set and clear at once"})
		}
		if p.Status != nil && p.Status.IsTerminal() && *p.AwaitingInput != AwaitingNone {
			errs = append(errs, FieldError{Field: "awaiting_input", Message: "must be empty on a completed conversation"})
		}
	}
	if p.Rating != nil && (*p.Rating < MinRating || *p.Rating > MaxRating) {
		errs = append(errs, FieldError{Field: "rating", Message: fmt.Sprintf("must be between %d and %d", MinRating, MaxRating)})
	}

	if len(errs) > 0 {
		return NewValidationErrors(errs)
	}
	return nil
}

// Apply returns a copy of c with the patch applied. Used by in-memory stores
// and tests; the postgres store applies patches in SQL.
func (p ConversationPatch) Apply(c Conversation, now time.Time) Conversation {
	if p.Status != nil {
		c.Status = *p.Status
	}
	if p.ServiceType != nil {
		c.ServiceType = *p.ServiceType
	}
	if p.AwaitingInput != nil {
		c.AwaitingInput = *p.AwaitingInput
	}
	if p.ClearAwaitingInput {
		c.AwaitingInput = AwaitingNone
	}
	if p.Rating != nil {
		r := *p.Rating
		c.Rating = &r
	}
	if p.Notes != nil {
		n := *p.Notes
		c.Notes = &n
	}
	if p.EndingAt != nil {
		t := *p.EndingAt
		c.EndingAt = &t
	}
	if p.EndTime != nil {
		t := *p.EndTime
		c.EndTime = &t
	}
	c.UpdatedAt = now
	return c
}

// Ptr returns a pointer to v. Handy for building patches.
func Ptr[T any](v T) *T { return &v }
