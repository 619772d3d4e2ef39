// Package tracking turns raw payloads returned by the SSW tracking API into
// canonical domain.TrackingResult values.
//
// The upstream answers in several shapes depending on endpoint and failure
// mode: a JSON document list, a flat legacy JSON object, an XML <tracking>
// element or plain text. Normalize accepts all of them and never fails.
package tracking

import (
	"encoding/json"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/heartmarshall/rastreio-bot/internal/domain"
)

// Upstream field names.
const (
	keySuccess   = "success"
	keyMessage   = "message"
	keyDocuments = "documentos"
	keyHeader    = "header"
	keyEvents    = "tracking"

	keySender    = "remetente"
	keyRecipient = "destinatario"
	keyDocNumber = "nro_nf"
	keyOrder     = "pedido"

	keyEventTime   = "data_hora_efetiva"
	keyCity        = "cidade"
	keyType        = "tipo"
	keyOccurrence  = "ocorrencia"
	keyDescription = "descricao"

	keyLegacyNF        = "nf"
	keyLegacyCPF       = "cpf"
	keyLegacyName      = "nome"
	keyLegacyStatus    = "status"
	keyLegacyForecast  = "previsao_entrega"
	keyLegacyProof     = "comprovante"
	keyLegacyEventTime = "data_hora"
)

// Delivery markers used by the upstream system.
const (
	DeliveryEventType = "Entrega"
	DeliveredKeyword  = "ENTREGUE"
	// LegacyDeliveredStatus is the flat-format status that carries a proof of delivery.
	LegacyDeliveredStatus = "ENTREGA REALIZADA"
)

// legacyKeys are the flat fields whose presence marks a legacy success object.
var legacyKeys = []string{keyLegacyNF, keyLegacyCPF, keySender, keyLegacyName}

// Normalize converts a raw API payload into a TrackingResult.
//
// raw may be a decoded JSON object (map[string]any), a string or []byte body,
// or anything else, in which case the result is InvalidResponseFormat.
// The function is pure: the same input always yields an equal result.
func Normalize(raw any) domain.TrackingResult {
	switch v := raw.(type) {
	case map[string]any:
		return fromObject(v)
	case string:
		return fromString(v)
	case []byte:
		return fromString(string(v))
	case json.RawMessage:
		return fromString(string(v))
	default:
		return domain.Failed(domain.ReasonInvalidResponseFormat, "")
	}
}

// IsDelivered reports whether the current event of data marks the shipment as delivered.
func IsDelivered(data domain.TrackingData) bool {
	return data.EventType == DeliveryEventType || strings.Contains(data.Status, DeliveredKeyword)
}

// HasProofOfDelivery reports whether a legacy result should show its proof link.
func HasProofOfDelivery(data domain.TrackingData) bool {
	return data.Status == LegacyDeliveredStatus && data.ProofOfDelivery != ""
}

// ---------------------------------------------------------------------------
// Structured objects
// ---------------------------------------------------------------------------

func fromObject(obj map[string]any) domain.TrackingResult {
	success, _ := obj[keySuccess].(bool)

	if success {
		if data, ok := fromDocuments(obj[keyDocuments]); ok {
			return domain.Succeeded(data)
		}
	}

	msg := text(obj[keyMessage])
	if _, isBool := obj[keySuccess].(bool); isBool && !success && msg != "" {
		return classified(msg)
	}

	for _, k := range legacyKeys {
		if text(obj[k]) != "" {
			return domain.Succeeded(fromLegacy(obj))
		}
	}

	if msg != "" {
		return classified(msg)
	}

	return domain.Failed(domain.ReasonNoDocumentFound, "")
}

func fromDocuments(v any) (domain.TrackingData, bool) {
	docs, ok := v.([]any)
	if !ok || len(docs) == 0 {
		return domain.TrackingData{}, false
	}
	doc, ok := docs[0].(map[string]any)
	if !ok {
		return domain.TrackingData{}, false
	}
	header, ok := doc[keyHeader].(map[string]any)
	if !ok {
		return domain.TrackingData{}, false
	}
	events, ok := doc[keyEvents].([]any)
	if !ok || len(events) == 0 {
		return domain.TrackingData{}, false
	}

	history := make([]domain.TrackingEvent, len(events))
	for i, e := range events {
		history[i] = toEvent(e)
	}
	current := history[len(history)-1]

	return domain.TrackingData{
		Sender:         text(header[keySender]),
		Recipient:      text(header[keyRecipient]),
		DocumentNumber: text(header[keyDocNumber]),
		OrderRef:       text(header[keyOrder]),
		City:           current.City,
		EventTime:      current.Time,
		EventType:      current.Type,
		Status:         current.Label,
		Description:    current.Description,
		History:        history,
	}, true
}

func toEvent(v any) domain.TrackingEvent {
	e, _ := v.(map[string]any)
	return domain.TrackingEvent{
		Time:        text(e[keyEventTime]),
		City:        text(e[keyCity]),
		Type:        text(e[keyType]),
		Label:       text(e[keyOccurrence]),
		Description: text(e[keyDescription]),
	}
}

func fromLegacy(obj map[string]any) domain.TrackingData {
	return domain.TrackingData{
		Sender:          text(obj[keySender]),
		Recipient:       text(obj[keyRecipient]),
		DocumentNumber:  text(obj[keyLegacyNF]),
		OrderRef:        text(obj[keyOrder]),
		PersonalID:      text(obj[keyLegacyCPF]),
		PersonName:      text(obj[keyLegacyName]),
		City:            text(obj[keyCity]),
		EventTime:       text(obj[keyLegacyEventTime]),
		EventType:       text(obj[keyType]),
		Status:          text(obj[keyLegacyStatus]),
		Description:     text(obj[keyDescription]),
		Forecast:        text(obj[keyLegacyForecast]),
		ProofOfDelivery: text(obj[keyLegacyProof]),
	}
}

// ---------------------------------------------------------------------------
// Strings
// ---------------------------------------------------------------------------

func fromString(s string) domain.TrackingResult {
	s = strings.TrimPrefix(s, "\ufeff")
	if strings.Contains(s, "<"+xmlRoot) {
		if res, ok := fromXML(s); ok {
			return res
		}
	}

	if v, err := decodeJSON(s); err == nil {
		switch parsed := v.(type) {
		case map[string]any:
			return fromObject(parsed)
		case string:
			return fromString(parsed)
		default:
			return domain.Failed(domain.ReasonInvalidResponseFormat, "")
		}
	}

	return classified(s)
}

// decodeJSON parses s as exactly one JSON value, keeping numbers as json.Number.
func decodeJSON(s string) (any, error) {
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("trailing data after JSON value")
	}
	return v, nil
}

// Classify maps a free-text upstream message to a reason code.
func Classify(message string) domain.ReasonCode {
	lower := strings.ToLower(message)
	switch {
	case strings.Contains(lower, "acesso inv"):
		return domain.ReasonInvalidAccess
	case strings.Contains(lower, "documento") && strings.Contains(lower, "localizado"):
		return domain.ReasonNoDocumentFound
	default:
		return domain.ReasonUnexpectedServerResponse
	}
}

func classified(message string) domain.TrackingResult {
	reason := Classify(message)
	if reason == domain.ReasonInvalidAccess {
		return domain.Failed(reason, domain.ReasonInvalidAccess.DefaultMessage())
	}
	return domain.Failed(reason, message)
}

// text renders a scalar JSON value as a string. Objects and arrays yield "".
func text(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		if t {
			return "true"
		}
		return ""
	default:
		return ""
	}
}
