package domain

import "time"

// ReasonCode classifies a failed tracking lookup.
type ReasonCode string

const (
	ReasonNoDocumentFound          ReasonCode = "NoDocumentFound"
	ReasonInvalidAccess            ReasonCode = "InvalidAccess"
	ReasonConnectionError          ReasonCode = "ConnectionError"
	ReasonUnexpectedServerResponse ReasonCode = "UnexpectedServerResponse"
	ReasonUnrecognizedFormat       ReasonCode = "UnrecognizedFormat"
	ReasonInvalidResponseFormat    ReasonCode = "InvalidResponseFormat"
)

func (r ReasonCode) String() string { return string(r) }

// IsBenign reports whether the customer should still be offered the follow-up
// menu after a failure with this reason.
func (r ReasonCode) IsBenign() bool {
	return r == ReasonNoDocumentFound || r == ReasonInvalidAccess
}

// DefaultMessage is the human-readable text used when the upstream gave none.
func (r ReasonCode) DefaultMessage() string {
	switch r {
	case ReasonNoDocumentFound:
		return "Nenhum documento localizado"
	case ReasonInvalidAccess:
		return "Acesso invalido"
	case ReasonConnectionError:
		return "Erro de conexão com o serviço de rastreamento"
	case ReasonUnexpectedServerResponse:
		return "Resposta inesperada do servidor"
	case ReasonUnrecognizedFormat:
		return "Erro ao processar resposta do servidor"
	case ReasonInvalidResponseFormat:
		return "Formato de resposta inválido"
	}
	return "Erro desconhecido"
}

// TrackingResult is the canonical outcome of one lookup. Exactly one of Data
// (Success) or Reason (failure) is meaningful.
type TrackingResult struct {
	Success bool          `json:"success"`
	Data    *TrackingData `json:"data,omitempty"`
	Reason  ReasonCode    `json:"reason_code,omitempty"`
	Message string        `json:"message,omitempty"`
}

// Succeeded builds a successful result.
func Succeeded(data TrackingData) TrackingResult {
	return TrackingResult{Success: true, Data: &data}
}

// Failed builds a failed result. An empty message falls back to the reason default.
func Failed(reason ReasonCode, message string) TrackingResult {
	if message == "" {
		message = reason.DefaultMessage()
	}
	return TrackingResult{Reason: reason, Message: message}
}

// OffersFollowUp reports whether the follow-up menu is shown after this result.
func (r TrackingResult) OffersFollowUp() bool {
	return r.Success || r.Reason.IsBenign()
}

// TrackingData is the normalized shipment information. Fields absent upstream
// stay empty.
type TrackingData struct {
	Sender          string          `json:"sender,omitempty"`
	Recipient       string          `json:"recipient,omitempty"`
	DocumentNumber  string          `json:"document_number,omitempty"`
	OrderRef        string          `json:"order_ref,omitempty"`
	PersonalID      string          `json:"personal_id,omitempty"`
	PersonName      string          `json:"person_name,omitempty"`
	City            string          `json:"city,omitempty"`
	EventTime       string          `json:"event_time,omitempty"`
	EventType       string          `json:"event_type,omitempty"`
	Status          string          `json:"status,omitempty"`
	Description     string          `json:"description,omitempty"`
	Forecast        string          `json:"forecast,omitempty"`
	ProofOfDelivery string          `json:"proof_of_delivery,omitempty"`
	History         []TrackingEvent `json:"history,omitempty"`
}

// TrackingEvent is one historical shipment event, oldest first in History.
type TrackingEvent struct {
	Time        string `json:"time,omitempty"`
	City        string `json:"city,omitempty"`
	Type        string `json:"type,omitempty"`
	Label       string `json:"label,omitempty"`
	Description string `json:"description,omitempty"`
}

// TrackingRequest is the append-only audit entry written after every lookup.
type TrackingRequest struct {
	ID             int64
	ConversationID int64
	Kind           TrackingKind
	Value          string
	Result         TrackingResult
	Success        bool
	City           *string
	Sender         *string
	DocumentNumber *string
	Status         *string
	CreatedAt      time.Time
}

// NewTrackingRequest builds the audit entry for result, copying the indexed
// columns out of a successful result.
func NewTrackingRequest(conversationID int64, kind TrackingKind, value string, result TrackingResult) TrackingRequest {
	req := TrackingRequest{
		ConversationID: conversationID,
		Kind:           kind,
		Value:          value,
		Result:         result,
		Success:        result.Success,
	}
	if result.Success && result.Data != nil {
		req.City = nonEmpty(result.Data.City)
		req.Sender = nonEmpty(result.Data.Sender)
		req.DocumentNumber = nonEmpty(result.Data.DocumentNumber)
		req.Status = nonEmpty(result.Data.Status)
	}
	return req
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
