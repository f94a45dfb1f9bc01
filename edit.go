package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

var editFieldRows = [][]button{
	{{"📍 Pickup ZIP", "pickup"}},
	{{"📍 Delivery ZIP", "delivery"}},
	{{"📏 Total Miles", "miles"}},
	{{"💵 Rate", "rate"}},
	{{"🚛 Trailer", "trailer"}},
	{{"💬 Comment", "comment"}},
	{{"❌ Cancel", "cancel"}},
}

// when user typed `/my_loads`: the five most recent own records, each
// with an Edit button.
func myLoadsHandler(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID := update.Message.Chat.ID
	userID := itoa(update.Message.From.ID)

	loads, err := recentUserLoads(userID, 5)
	if err != nil {
		log.Errorw("could not list loads", "chat", chatID, "err", err)
		sendText(ctx, b, chatID, "❌ Could not load your postings.")
		return
	}
	if len(loads) == 0 {
		sendText(ctx, b, chatID, "You have no posted loads yet. Use /submit to post one.")
		return
	}

	for _, l := range loads {
		loadID := l.ID
		sendKeyboard(ctx, b, chatID, loadCardText(l), [][]button{{{"✏️ Edit", "edit"}}},
			func(ctx context.Context, b *bot.Bot, mes models.MaybeInaccessibleMessage, data []byte) {
				startEdit(ctx, b, chatID, loadID)
			})
	}
}

func loadCardText(l Load) string {
	return fmt.Sprintf(
		"🗓 %s\n📍 %s → %s\n📏 Miles: %s\n💵 Rate: $%s | RPM: %s\n🚛 Trailer: %s\n💬 Comment: %s",
		l.Date, l.PickupZip, l.DeliveryZip,
		formatNumber(l.TotalMiles), formatNumber(l.Rate), formatRPM(l),
		l.Trailer, orDash(l.Comment),
	)
}

// startEdit loads the record snapshot into a fresh edit session and
// shows the field menu. One live edit session per user, a new Edit
// press replaces the previous one.
func startEdit(ctx context.Context, b *bot.Bot, chatID int64, loadID string) {
	load, found, err := getLoad(loadID)
	if err != nil {
		log.Errorw("could not get load", "load", loadID, "err", err)
		return
	}
	if !found {
		sendText(ctx, b, chatID, "❌ Load not found.")
		return
	}

	if old, found, err := getEditSession(chatID); err == nil && found {
		deleteMsg(ctx, b, chatID, old.PromptMessageID)
	}

	menuText := fmt.Sprintf(
		"🛠 *Edit Load — %s*\n📍 %s → %s\n🚛 %s | 💵 $%s | %s mi\n\nChoose field to edit:",
		load.Date, load.PickupZip, load.DeliveryZip,
		load.Trailer, formatNumber(load.Rate), formatNumber(load.TotalMiles),
	)

	msg := sendKeyboard(ctx, b, chatID, menuText, editFieldRows,
		func(ctx context.Context, b *bot.Bot, mes models.MaybeInaccessibleMessage, data []byte) {
			handleEditField(ctx, b, chatID, string(data))
		})
	if msg == nil {
		return
	}

	session := EditSession{
		LoadID:          loadID,
		Load:            load,
		ChatID:          chatID,
		PromptMessageID: msg.ID,
	}
	if err := putEditSession(session); err != nil {
		log.Errorw("could not store edit session", "chat", chatID, "err", err)
	}
}

// handleEditField consumes the field choice and prompts for the new
// value.
func handleEditField(ctx context.Context, b *bot.Bot, chatID int64, field string) {
	session, found, err := getEditSession(chatID)
	if err != nil {
		log.Errorw("could not get edit session", "chat", chatID, "err", err)
		return
	}
	if !found {
		return
	}
	if sessionExpired(session.UpdatedAt) {
		deleteMsg(ctx, b, chatID, session.PromptMessageID)
		if err := deleteEditSession(chatID); err != nil {
			log.Errorw("could not drop expired edit session", "chat", chatID, "err", err)
		}
		sendTransient(ctx, b, chatID, "⌛ Edit expired. Use /my_loads to start over.", confirmationTTL)
		return
	}

	deleteMsg(ctx, b, chatID, session.PromptMessageID)

	if field == "cancel" {
		if err := deleteEditSession(chatID); err != nil {
			log.Errorw("could not discard edit session", "chat", chatID, "err", err)
		}
		sendTransient(ctx, b, chatID, "❌ Edit canceled.", confirmationTTL)
		return
	}

	msg := sendMarkdown(ctx, b, chatID, fmt.Sprintf("✏️ Enter new value for *%s*:", field))
	if msg == nil {
		return
	}

	session.Field = field
	session.PromptMessageID = msg.ID
	if err := putEditSession(session); err != nil {
		log.Errorw("could not store edit session", "chat", chatID, "err", err)
	}
}

// handleEditText consumes the replacement value. One field per session:
// success or failure, the session is gone afterwards.
func handleEditText(ctx context.Context, b *bot.Bot, update *models.Update, session EditSession) {
	if session.Field == "" {
		// still at the field menu, which is button-driven
		return
	}
	chatID := session.ChatID
	value := strings.TrimSpace(update.Message.Text)

	deleteMsg(ctx, b, chatID, session.PromptMessageID)
	deleteMsg(ctx, b, chatID, update.Message.ID)
	if err := deleteEditSession(chatID); err != nil {
		log.Errorw("could not clear edit session", "chat", chatID, "err", err)
	}

	upd, err := applyFieldEdit(session.Load, session.Field, value)
	if err != nil {
		log.Infow("edit rejected", "chat", chatID, "field", session.Field, "err", err)
		sendTransient(ctx, b, chatID, "❌ Invalid number format.", confirmationTTL)
		return
	}

	if _, err := updateLoad(session.LoadID, upd); err != nil {
		log.Errorw("could not update load", "load", session.LoadID, "err", err)
		sendText(ctx, b, chatID, "❌ Could not update load.")
		return
	}

	sendTransient(ctx, b, chatID, "✅ Value updated.", confirmationTTL)
}

// applyFieldEdit builds the partial update for one replaced field. When
// miles or rate change, the derived rate-per-mile is recomputed from
// the new value and the snapshot's other one, with the usual
// zero-distance guard.
func applyFieldEdit(l Load, field, value string) (LoadUpdate, error) {
	var u LoadUpdate

	switch field {
	case "pickup":
		u.PickupZip = &value
	case "delivery":
		u.DeliveryZip = &value
	case "miles":
		v, err := parseAmount(value)
		if err != nil {
			return LoadUpdate{}, err
		}
		u.TotalMiles = &v
	case "rate":
		v, err := parseAmount(value)
		if err != nil {
			return LoadUpdate{}, err
		}
		u.Rate = &v
	case "trailer":
		u.Trailer = &value
	case "comment":
		u.Comment = &value
	default:
		return LoadUpdate{}, fmt.Errorf("unknown field: %q", field)
	}

	if u.TotalMiles != nil || u.Rate != nil {
		miles := l.TotalMiles
		if u.TotalMiles != nil {
			miles = *u.TotalMiles
		}
		rate := l.Rate
		if u.Rate != nil {
			rate = *u.Rate
		}
		u.RPMTotal = floatPtr(ratePerMile(rate, miles))
	}

	return u, nil
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
