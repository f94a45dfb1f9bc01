package main

import (
	"context"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/go-telegram/ui/keyboard/inline"
)

// how long self-deleting confirmations stay on screen
const confirmationTTL = 5 * time.Second

type button struct {
	label string
	data  string
}

func sendText(ctx context.Context, b *bot.Bot, chatID int64, text string) *models.Message {
	msg, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	if err != nil {
		log.Errorw("could not send message", "chat", chatID, "err", err)
	}
	return msg
}

func sendMarkdown(ctx context.Context, b *bot.Bot, chatID int64, text string) *models.Message {
	msg, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      text,
		ParseMode: models.ParseModeMarkdownV1,
	})
	if err != nil {
		log.Errorw("could not send message", "chat", chatID, "err", err)
	}
	return msg
}

// sendKeyboard sends a Markdown prompt with inline buttons. All buttons
// of one keyboard share the onSelect callback and are told apart by
// their data payload.
func sendKeyboard(ctx context.Context, b *bot.Bot, chatID int64, text string, rows [][]button, onSelect inline.OnSelect) *models.Message {
	kb := inline.New(b, inline.NoDeleteAfterClick())
	for _, row := range rows {
		r := kb.Row()
		for _, btn := range row {
			r.Button(btn.label, []byte(btn.data), onSelect)
		}
	}

	msg, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        text,
		ParseMode:   models.ParseModeMarkdownV1,
		ReplyMarkup: kb,
	})
	if err != nil {
		log.Errorw("could not send keyboard", "chat", chatID, "err", err)
	}
	return msg
}

func deleteMsg(ctx context.Context, b *bot.Bot, chatID int64, messageID int) {
	if messageID == 0 {
		return
	}
	if _, err := b.DeleteMessage(ctx, &bot.DeleteMessageParams{
		ChatID:    chatID,
		MessageID: messageID,
	}); err != nil {
		// already deleted or too old, nothing to do
		log.Debugw("could not delete message", "chat", chatID, "msg", messageID, "err", err)
	}
}

// sendTransient sends a short confirmation that removes itself. A UX
// nicety, failures are ignored.
func sendTransient(ctx context.Context, b *bot.Bot, chatID int64, text string, ttl time.Duration) {
	msg := sendText(ctx, b, chatID, text)
	if msg == nil {
		return
	}
	time.AfterFunc(ttl, func() {
		deleteMsg(context.Background(), b, chatID, msg.ID)
	})
}

// broadcast sends the text to every configured public channel.
func broadcast(ctx context.Context, b *bot.Bot, text string) {
	for _, channel := range cfg.BroadcastChannels {
		if _, err := b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: channel,
			Text:   text,
		}); err != nil {
			log.Errorw("could not broadcast", "channel", channel, "err", err)
		}
	}
}
