package chatbot

import (
	"context"
	"slices"
	"strings"

	"github.com/heartmarshall/rastreio-bot/internal/domain"
)

// matcher decides whether normalized input selects an entry.
type matcher func(input string) bool

func exactly(options ...string) matcher {
	return func(input string) bool { return slices.Contains(options, input) }
}

func containing(keywords ...string) matcher {
	return func(input string) bool {
		for _, k := range keywords {
			if strings.Contains(input, k) {
				return true
			}
		}
		return false
	}
}

type menuOption struct {
	name   string
	match  matcher
	handle func(s *Service, ctx context.Context, t *turn) error
}

// menuOptions are tried in order; the first exact match wins.
var menuOptions = []menuOption{
	{
		name:   "danfe",
		match:  exactly("1", "rastreio danfe", "danfe"),
		handle: (*Service).selectDocumentKey,
	},
	{
		name:   "cpf",
		match:  exactly("2", "rastreio destinatario", "rastreio destinatário", "destinatario", "destinatário", "cpf"),
		handle: (*Service).selectPersonalID,
	},
	{
		name:   "attendant",
		match:  exactly("3", "atendente", "falar com atendente"),
		handle: (*Service).startHandoff,
	},
	{
		name:   "end",
		match:  exactly("4", "encerrar", "encerrar atendimento"),
		handle: (*Service).startEnding,
	},
	{
		name:   "history",
		match:  exactly(HistoryCommand, "histórico"),
		handle: (*Service).showHistory,
	},
}

type cannedReply struct {
	match matcher
	text  string
}

// cannedReplies answer common free-text questions. Checked after menuOptions.
var cannedReplies = []cannedReply{
	{
		match: containing("horario", "horário"),
		text:  `Nosso atendimento funciona 24h através deste chat automatizado. Para atendimento humano, digite "3" ou "atendente".`,
	},
	{
		match: containing("prazo"),
		text:  "Os prazos de entrega variam conforme o destino. Use nosso sistema de rastreamento para acompanhar sua encomenda.",
	},
	{
		match: containing("problema"),
		text:  `Para resolver problemas específicos, digite "3" para falar com um atendente humano.`,
	},
	{
		match: containing("ajuda"),
		text:  `Posso ajudar você com rastreamento de encomendas. Digite "1" para rastrear por DANFE ou "2" para rastrear por CPF.`,
	},
	{
		match: containing("obrigado", "obrigada"),
		text:  "Fico feliz em ajudar! 😊 Precisa de mais alguma coisa?",
	},
}

// handleMenu resolves a menu selection, then canned keyword answers, and
// falls back to the menu reminder. Free text never changes state.
func (s *Service) handleMenu(ctx context.Context, t *turn) error {
	for _, opt := range menuOptions {
		if opt.match(t.input) {
			return opt.handle(s, ctx, t)
		}
	}
	for _, c := range cannedReplies {
		if c.match(t.input) {
			s.reply(ctx, t, c.text)
			return nil
		}
	}
	s.reply(ctx, t, textMenuReminder)
	return nil
}

func (s *Service) selectDocumentKey(ctx context.Context, t *turn) error {
	err := s.update(ctx, t, domain.ConversationPatch{
		ServiceType:   domain.Ptr(domain.ServiceDanfe),
		AwaitingInput: domain.Ptr(domain.AwaitingDanfeKey),
	})
	if err != nil {
		return err
	}
	s.reply(ctx, t, textDanfePrompt)
	return nil
}

func (s *Service) selectPersonalID(ctx context.Context, t *turn) error {
	err := s.update(ctx, t, domain.ConversationPatch{
		ServiceType:   domain.Ptr(domain.ServiceCPF),
		AwaitingInput: domain.Ptr(domain.AwaitingCPF),
	})
	if err != nil {
		return err
	}
	s.reply(ctx, t, textCPFPrompt)
	return nil
}
