package rest

import (
	"encoding/json"
	"time"

	"github.com/heartmarshall/rastreio-bot/internal/domain"
)

type conversationDTO struct {
	ID            int64      `json:"id"`
	PhoneNumber   string     `json:"phone_number"`
	ProtocolID    string     `json:"protocol_id"`
	Status        string     `json:"status"`
	ServiceType   *string    `json:"service_type"`
	AwaitingInput *string    `json:"awaiting_input"`
	Rating        *int       `json:"rating"`
	Notes         *string    `json:"notes"`
	StartTime     time.Time  `json:"start_time"`
	UpdatedAt     time.Time  `json:"updated_at"`
	EndingAt      *time.Time `json:"ending_at"`
	EndTime       *time.Time `json:"end_time"`
}

type conversationPageDTO struct {
	Conversations []conversationDTO `json:"conversations"`
	Pagination    paginationDTO     `json:"pagination"`
}

type paginationDTO struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

type messageDTO struct {
	ID          int64     `json:"id"`
	PhoneNumber string    `json:"phone_number"`
	MessageText string    `json:"message_text"`
	IsFromBot   bool      `json:"is_from_bot"`
	Timestamp   time.Time `json:"timestamp"`
}

type trackingRequestDTO struct {
	ID             int64                 `json:"id"`
	TrackingType   string                `json:"tracking_type"`
	TrackingValue  string                `json:"tracking_value"`
	Success        bool                  `json:"success"`
	Result         domain.TrackingResult `json:"result"`
	City           *string               `json:"city"`
	Sender         *string               `json:"sender"`
	DocumentNumber *string               `json:"nf"`
	Status         *string               `json:"status"`
	CreatedAt      time.Time             `json:"created_at"`
}

type historyDTO struct {
	Conversation     conversationDTO      `json:"conversation"`
	Messages         []messageDTO         `json:"messages"`
	TrackingRequests []trackingRequestDTO `json:"trackingRequests"`
}

type systemLogDTO struct {
	ID        int64           `json:"id"`
	Level     string          `json:"level"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func toConversation(c domain.Conversation) conversationDTO {
	return conversationDTO{
		ID:            c.ID,
		PhoneNumber:   c.Identity,
		ProtocolID:    c.ProtocolID,
		Status:        string(c.Status),
		ServiceType:   optional(string(c.ServiceType)),
		AwaitingInput: optional(string(c.AwaitingInput)),
		Rating:        c.Rating,
		Notes:         c.Notes,
		StartTime:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
		EndingAt:      c.EndingAt,
		EndTime:       c.EndTime,
	}
}

func toConversationPage(p domain.ConversationPage) conversationPageDTO {
	out := conversationPageDTO{
		Conversations: make([]conversationDTO, 0, len(p.Conversations)),
		Pagination: paginationDTO{
			Page:       p.Page,
			Limit:      p.Limit,
			Total:      p.Total,
			TotalPages: p.TotalPages,
		},
	}
	for _, c := range p.Conversations {
		out.Conversations = append(out.Conversations, toConversation(c))
	}
	return out
}

func toHistory(h domain.ConversationHistory) historyDTO {
	out := historyDTO{
		Conversation:     toConversation(h.Conversation),
		Messages:         make([]messageDTO, 0, len(h.Messages)),
		TrackingRequests: make([]trackingRequestDTO, 0, len(h.TrackingRequests)),
	}
	for _, m := range h.Messages {
		out.Messages = append(out.Messages, messageDTO{
			ID:          m.ID,
			PhoneNumber: m.Identity,
			MessageText: m.Text,
			IsFromBot:   m.IsFromBot,
			Timestamp:   m.Timestamp,
		})
	}
	for _, t := range h.TrackingRequests {
		out.TrackingRequests = append(out.TrackingRequests, trackingRequestDTO{
			ID:             t.ID,
			TrackingType:   string(t.Kind),
			TrackingValue:  t.Value,
			Success:        t.Success,
			Result:         t.Result,
			City:           t.City,
			Sender:         t.Sender,
			DocumentNumber: t.DocumentNumber,
			Status:         t.Status,
			CreatedAt:      t.CreatedAt,
		})
	}
	return out
}

func toSystemLogs(logs []domain.SystemLog) []systemLogDTO {
	out := make([]systemLogDTO, 0, len(logs))
	for _, l := range logs {
		out = append(out, systemLogDTO{
			ID:        l.ID,
			Level:     string(l.Level),
			Message:   l.Message,
			Data:      l.Data,
			CreatedAt: l.CreatedAt,
		})
	}
	return out
}
