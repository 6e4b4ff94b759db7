// Package notify pushes operator alerts to Telegram chats.
package notify

import (
	"context"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	tele "gopkg.in/telebot.v3"
)

// Notifier delivers a short operator alert. Delivery is best effort.
type Notifier interface {
	Notify(ctx context.Context, text string)
}

// Nop discards every alert.
type Nop struct{}

func (Nop) Notify(context.Context, string) {}

// Sender is the part of a telebot bot used to deliver alerts.
type Sender interface {
	Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error)
}

// Telegram sends alerts to a fixed set of chats.
type Telegram struct {
	bot   Sender
	chats []tele.ChatID
	log   zerolog.Logger
}

// NewTelegram creates a notifier for a bot token. The bot runs offline: it
// only sends.
func NewTelegram(token string, chatIDs []string, log zerolog.Logger) (*Telegram, error) {
	bot, err := tele.NewBot(tele.Settings{Token: token, Offline: true})
	if err != nil {
		return nil, errors.Wrap(err, "creating telegram bot")
	}
	return NewTelegramWithSender(bot, chatIDs, log)
}

func NewTelegramWithSender(bot Sender, chatIDs []string, log zerolog.Logger) (*Telegram, error) {
	t := &Telegram{bot: bot, log: log}
	for _, raw := range chatIDs {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "parsing chat id %q", raw)
		}
		t.chats = append(t.chats, tele.ChatID(id))
	}
	return t, nil
}

func (t *Telegram) Notify(_ context.Context, text string) {
	for _, chat := range t.chats {
		if _, err := t.bot.Send(chat, text); err != nil {
			t.log.Warn().Err(err).Int64("chat_id", int64(chat)).Msg("sending alert")
		}
	}
}
