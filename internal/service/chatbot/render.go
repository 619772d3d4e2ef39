package chatbot

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/heartmarshall/rastreio-bot/internal/domain"
	"github.com/heartmarshall/rastreio-bot/internal/tracking"
)

// HistoryCommand is the free-text command that re-renders the last lookup.
const HistoryCommand = "historico"

// defaultHistoryLimit is how many of the newest events the history view
// shows when the bot config leaves it unset.
const defaultHistoryLimit = 10

const displayLayout = "02/01/2006 15:04:05"

var eventLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"02/01/06 15:04",
}

const (
	textWelcome = `👋 *Olá! Bem-vindo ao nosso atendimento automatizado.*
Escolha uma das opções de atendimento:
1️⃣ Rastreio DANFE
2️⃣ Rastreio Destinatário (pessoa física)
3️⃣ Falar com atendente
4️⃣ Encerrar Atendimento`

	textDanfePrompt = `🔑 *Rastreio por DANFE*
Por favor, envie a chave da DANFE (44 dígitos) que deseja rastrear.
Exemplo: 43160400850257000132550010000083991000083990`

	textCPFPrompt = `👤 *Rastreio por Destinatário*
Por favor, envie o CPF do destinatário (apenas números).
Exemplo: 02602602655`

	textInvalidDanfe = `❌ *Chave DANFE inválida*
A chave deve conter exatamente 44 dígitos. Por favor, verifique e envie novamente.`

	textInvalidCPF = `❌ *CPF inválido*
O CPF deve conter 11 dígitos. Por favor, verifique e envie novamente.`

	textSearching = "🔍 Consultando rastreamento... Aguarde um momento."

	textFollowUp = `✅ *Consulta realizada com sucesso!*
Posso ajudar com mais alguma coisa?
1️⃣ Rastreio DANFE
2️⃣ Rastreio por CPF
3️⃣ Falar com atendente
4️⃣ Encerrar atendimento`

	textMenuReminder = `🤖 *Assistente Virtual*
Entendi sua mensagem, para melhor atendimento use nosso menu:
1️⃣ Rastreio DANFE
2️⃣ Rastreio por CPF
3️⃣ Falar com atendente
4️⃣ Encerrar atendimento
*Dica:* Digite apenas o número da opção desejada.`

	textRatingPrompt = `🙏 *Obrigado por utilizar nosso atendimento* 🚚✨
Como você avalia nossa experiência hoje?
⭐ Digite um número de 1 a 5 estrelas:
1 = (Muito insatisfeito)
2 = (Insatisfeito)
3 = (Regular)
4 = (Satisfeito)
5 = (Muito satisfeito)`

	textForcedRatingPrompt = `🙏 *Atendimento encerrado!*
Como você avalia nossa experiência hoje?
⭐ Digite um número de 1 a 5 estrelas:
1️⃣ Muito insatisfeito
2️⃣ Insatisfeito
3️⃣ Regular
4️⃣ Satisfeito
5️⃣ Muito satisfeito`

	textRatingReprompt = "Por favor, digite um número de 1 a 5 para avaliar nosso atendimento."

	textUnavailable = `❌ *Sistema de rastreamento indisponível*
Nossos serviços estão temporariamente em manutenção.
Tente novamente em alguns minutos.
Para urgências, digite *3* para falar com atendente.`

	textNotFound = `📋 *Documento não encontrado*
O número informado não foi localizado em nossa base de dados.
• Verifique se digitou corretamente
• Confirme se o documento está dentro do prazo de consulta
• Para mais informações, digite *3* para falar com atendente`

	textNoHistory          = "❌ Nenhum histórico de rastreamento encontrado para esta conversa."
	textHistoryUnavailable = "❌ Histórico de rastreamento não disponível."

	textUnexpectedError = `❌ Ocorreu um erro inesperado. Tente novamente mais tarde ou digite "3" para falar com um atendente.`

	textAdminUsage = "⚠️ Uso correto: !encerrar <telefone_do_cliente>"

	handoffNote = "Cliente solicitou atendimento humano"
)

func renderHandoffAck(protocolID string) string {
	return fmt.Sprintf(`👨‍💼 *Falar com Atendente*
Em breve um de nossos atendentes entrará em contato com você.
Protocolo de atendimento: *%s*
Aguarde um momento por favor...`, protocolID)
}

func renderWaitingAck(protocolID string) string {
	return fmt.Sprintf(`Sua mensagem foi registrada no protocolo *%s*.
Um atendente entrará em contato em breve.
Digite *menu* para voltar ao atendimento automatizado.`, protocolID)
}

func renderThanks(rating int) string {
	return strings.Repeat("⭐", rating) + ` *Obrigado pela sua avaliação!*
Sua opinião é muito importante para melhorarmos nosso atendimento.
Agradecemos por escolher nossos serviços!
Tenha um ótimo dia! 😊`
}

func renderHandoffNotice(protocolID, customer, botIdentity string) string {
	return fmt.Sprintf(`📞 *Novo Atendimento Solicitado*

📋 Protocolo: %s
👤 Cliente: %s

👉 *Clique abaixo para encerrar o atendimento:*
%s`, protocolID, customer, closeLink(botIdentity, customer))
}

// closeLink builds a wa.me deep link that opens a chat with the bot with the
// force-close command for customer already typed.
func closeLink(botIdentity, customer string) string {
	return fmt.Sprintf("https://wa.me/%s?text=%s%%20%s",
		domain.CanonicalIdentity(botIdentity), AdminCloseCommand, domain.CanonicalIdentity(customer))
}

func renderAlert(reason string, at time.Time) string {
	return fmt.Sprintf("⚠️ *ALERTA DE SISTEMA*\n\n%s\n\nHorário: %s", reason, at.Format(displayLayout))
}

func renderAdminNotFound(target string) string {
	return fmt.Sprintf("⚠️ Nenhum atendimento encontrado para o número *%s*.\nVerifique o número ou pesquise no painel.", target)
}

func renderAdminNotActive(target, protocolID string) string {
	return fmt.Sprintf("⚠️ O atendimento *%s* do número *%s* já foi finalizado. Nenhuma conversa ativa para encerrar.", protocolID, target)
}

func renderAdminClosed(target string) string {
	return fmt.Sprintf("✅ Atendimento com o número *%s* encerrado e enquete enviada.", target)
}

// renderFailure is the customer text for a failed lookup.
func renderFailure(res domain.TrackingResult) string {
	switch res.Reason {
	case domain.ReasonInvalidAccess:
		return textUnavailable
	case domain.ReasonNoDocumentFound:
		return textNotFound
	default:
		msg := res.Message
		if msg == "" {
			msg = res.Reason.DefaultMessage()
		}
		return fmt.Sprintf("❌ *%s*\n\nTente novamente ou digite *3* para falar com atendente.", msg)
	}
}

// renderResult is the customer text for a successful lookup.
func renderResult(data domain.TrackingData, loc *time.Location) string {
	var b strings.Builder

	switch {
	case data.DocumentNumber != "" || data.Sender != "":
		b.WriteString("📦 *Resultado do Rastreamento*\n\n")
		fmt.Fprintf(&b, "🏢 *Remetente:* %s\n", data.Sender)
		fmt.Fprintf(&b, "👤 *Destinatário:* %s\n", data.Recipient)
		fmt.Fprintf(&b, "🔢 *NF:* %s\n", data.DocumentNumber)
		fmt.Fprintf(&b, "📦 *Pedido:* %s\n", orNA(data.OrderRef))
		fmt.Fprintf(&b, "📍 *Cidade:* %s\n", data.City)
		fmt.Fprintf(&b, "📅 *Data/Hora:* %s\n\n", formatEventTime(data.EventTime, loc))
		fmt.Fprintf(&b, "📊 *Status Atual:* %s\n", data.Status)
		fmt.Fprintf(&b, "📝 *Detalhes:* %s", firstClause(data.Description))

		if tracking.IsDelivered(data) {
			b.WriteString("\n✅ *ENTREGA REALIZADA!*")
		}
		if len(data.History) > 1 {
			fmt.Fprintf(&b, "\n\n💡 *Digite \"%s\" para ver o rastreamento completo*", HistoryCommand)
		}

	case data.PersonalID != "" || data.PersonName != "":
		b.WriteString("👤 *Resultado do Rastreamento por CPF*\n\n")
		fmt.Fprintf(&b, "🆔 *CPF:* %s\n", data.PersonalID)
		fmt.Fprintf(&b, "👨‍💼 *Nome:* %s\n", data.PersonName)
		fmt.Fprintf(&b, "📍 *Cidade:* %s\n", data.City)
		fmt.Fprintf(&b, "📊 *Status:* %s", data.Status)

		if tracking.HasProofOfDelivery(data) {
			fmt.Fprintf(&b, "\n📄 *Comprovante:* %s", data.ProofOfDelivery)
		}

	default:
		status := data.Status
		if status == "" {
			status = "Informações disponíveis"
		}
		details, _ := json.MarshalIndent(data, "", "  ")
		b.WriteString("📋 *Resultado do Rastreamento*\n\n")
		fmt.Fprintf(&b, "📊 *Status:* %s\n", status)
		fmt.Fprintf(&b, "📝 *Detalhes:* %s", details)
	}

	return b.String()
}

// renderHistory lists the newest limit events of data, oldest first.
func renderHistory(data domain.TrackingData, limit int, loc *time.Location) string {
	var b strings.Builder
	b.WriteString("📋 *Histórico Completo de Rastreamento*\n\n")
	fmt.Fprintf(&b, "🏢 *Remetente:* %s\n", data.Sender)
	fmt.Fprintf(&b, "👤 *Destinatário:* %s\n", data.Recipient)
	fmt.Fprintf(&b, "🔢 *NF:* %s\n\n", data.DocumentNumber)
	b.WriteString("📍 *Movimentações:*")

	events := data.History
	if len(events) > limit {
		events = events[len(events)-limit:]
	}
	for _, e := range events {
		fmt.Fprintf(&b, "\n\n%s *%s*", eventIcon(e.Type), formatEventTime(e.Time, loc))
		fmt.Fprintf(&b, "\n📍 %s", e.City)
		fmt.Fprintf(&b, "\n📝 %s", e.Label)
		if e.Description != "" && e.Description != e.Label {
			fmt.Fprintf(&b, "\n💬 %s", e.Description)
		}
	}

	if extra := len(data.History) - limit; extra > 0 {
		fmt.Fprintf(&b, "\n\n*... e mais %d eventos anteriores*", extra)
	}
	return b.String()
}

func eventIcon(eventType string) string {
	switch eventType {
	case tracking.DeliveryEventType:
		return "✅"
	case "Informativo":
		return "ℹ️"
	default:
		return "📦"
	}
}

// formatEventTime renders an upstream timestamp in loc. Unknown layouts are
// shown as received.
func formatEventTime(raw string, loc *time.Location) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "N/A"
	}
	for _, layout := range eventLayouts {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return t.In(loc).Format(displayLayout)
		}
	}
	return raw
}

func firstClause(s string) string {
	if i := strings.IndexByte(s, ','); i >= 0 {
		return s[:i]
	}
	return s
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
