package main

import (
	"context"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// handle all non-command messages. Free text belongs to whichever flow
// is awaiting input for this chat; with no live session it is a silent
// no-op.
func messageHandler(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Text == "" {
		return
	}
	// commands have their own handlers and never feed a form
	if strings.HasPrefix(update.Message.Text, "/") {
		return
	}
	chatID := update.Message.Chat.ID

	editSession, found, err := getEditSession(chatID)
	if err != nil {
		log.Errorw("could not check for edit session", "chat", chatID, "err", err)
		return
	}
	if found && editSession.Field != "" {
		if sessionExpired(editSession.UpdatedAt) {
			deleteMsg(ctx, b, chatID, editSession.PromptMessageID)
			if err := deleteEditSession(chatID); err != nil {
				log.Errorw("could not drop expired edit session", "chat", chatID, "err", err)
			}
			sendTransient(ctx, b, chatID, "⌛ Edit expired. Use /my_loads to start over.", confirmationTTL)
			return
		}
		handleEditText(ctx, b, update, editSession)
		return
	}

	session, found, err := getSession(chatID)
	if err != nil {
		log.Errorw("could not check for submission session", "chat", chatID, "err", err)
		return
	}
	if found {
		if sessionExpired(session.UpdatedAt) {
			expireSubmission(ctx, b, session)
			return
		}
		handleSubmitText(ctx, b, update, session)
	}
}
