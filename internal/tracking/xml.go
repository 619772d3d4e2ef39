package tracking

import (
	"encoding/xml"
	"errors"
	"io"
	"strings"

	"github.com/heartmarshall/rastreio-bot/internal/domain"
)

const xmlRoot = "tracking"

// xmlTracking mirrors the <tracking> element of the legacy XML responses.
// Every field is optional.
type xmlTracking struct {
	XMLName         xml.Name `xml:"tracking"`
	Success         string   `xml:"success"`
	Message         string   `xml:"message"`
	NF              string   `xml:"nf"`
	CPF             string   `xml:"cpf"`
	Sender          string   `xml:"remetente"`
	Name            string   `xml:"nome"`
	City            string   `xml:"cidade"`
	Status          string   `xml:"status"`
	Forecast        string   `xml:"previsao_entrega"`
	ProofOfDelivery string   `xml:"comprovante"`
}

// fromXML decodes s when its root element is <tracking>. ok is false when the
// document has another root, so callers continue with the next rule.
func fromXML(s string) (domain.TrackingResult, bool) {
	dec := xml.NewDecoder(strings.NewReader(s))

	for {
		tok, err := dec.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return domain.TrackingResult{}, false
			}
			return domain.Failed(domain.ReasonUnrecognizedFormat, ""), true
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if start.Name.Local != xmlRoot {
			return domain.TrackingResult{}, false
		}

		var doc xmlTracking
		if err := dec.DecodeElement(&doc, &start); err != nil {
			return domain.Failed(domain.ReasonUnrecognizedFormat, ""), true
		}
		return doc.result(), true
	}
}

func (t xmlTracking) result() domain.TrackingResult {
	if strings.TrimSpace(t.Success) != "true" {
		msg := strings.TrimSpace(t.Message)
		if msg == "" {
			return domain.Failed(domain.ReasonUnexpectedServerResponse, "Erro desconhecido")
		}
		return classified(msg)
	}

	return domain.Succeeded(domain.TrackingData{
		DocumentNumber:  strings.TrimSpace(t.NF),
		PersonalID:      strings.TrimSpace(t.CPF),
		Sender:          strings.TrimSpace(t.Sender),
		PersonName:      strings.TrimSpace(t.Name),
		City:            strings.TrimSpace(t.City),
		Status:          strings.TrimSpace(t.Status),
		Forecast:        strings.TrimSpace(t.Forecast),
		ProofOfDelivery: strings.TrimSpace(t.ProofOfDelivery),
	})
}
