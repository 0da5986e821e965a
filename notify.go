package main

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog"
)

// messageSender is the part of *bot.Bot the notifier needs.
type messageSender interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
}

type Notifier struct {
	b      messageSender
	chatID any
	log    zerolog.Logger
}

func NewNotifier(b messageSender, chatID any, log zerolog.Logger) *Notifier {
	return &Notifier{b: b, chatID: chatID, log: log}
}

// Send delivers text once. A failed delivery is logged and reported as
// false, it is never retried.
func (n *Notifier) Send(ctx context.Context, text string) bool {
	if _, err := n.b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: n.chatID,
		Text:   text,
	}); err != nil {
		n.log.Error().Err(err).Msg("message wasn't sent")
		return false
	}

	n.log.Debug().Str("text", text).Msg("message sent")
	return true
}
