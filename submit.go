package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/google/uuid"
)

// ordered submission steps. the step list, prompts and keyboards are
// data; the control flow below is the same for every step.
const (
	stepPickup = iota
	stepDelivery
	stepMiles
	stepRate
	stepTrailer
	stepComment
	stepCount
)

var submitFields = [stepCount]string{
	"pickup_zip", "delivery_zip", "total_miles", "rate", "trailer", "comment",
}

var submitPrompts = [stepCount]string{
	"📍 *Step 1/6* — Enter pickup ZIP or State abbreviation (e.g., CA):",
	"📍 *Step 2/6* — Enter delivery ZIP or State abbreviation:",
	"📏 *Step 3/6* — Enter total miles:",
	"💵 *Step 4/6* — Enter total rate ($):",
	"🚛 *Step 5/6* — Choose trailer type:",
	"💬 *Step 6/6* — Add comment (or press 'Skip')",
}

var trailerRows = [][]button{
	{{"Dry Van", "Dry Van"}, {"Reefer", "Reefer"}, {"Flatbed", "Flatbed"}},
	{{"Power Only", "Power Only"}, {"Step Deck", "Step Deck"}, {"Conestoga", "Conestoga"}},
	{{"Other", "Other"}},
}

// when user typed `/submit`. an already running submission is
// overwritten, its prompt removed.
func submitHandler(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID := update.Message.Chat.ID

	if old, found, err := getSession(chatID); err != nil {
		log.Errorw("could not check for running submission", "chat", chatID, "err", err)
		return
	} else if found {
		deleteMsg(ctx, b, chatID, old.PromptMessageID)
	}

	session := Session{
		Step:   0,
		Fields: map[string]string{},
		ChatID: chatID,
		User:   displayHandle(update.Message.From),
		UserID: itoa(update.Message.From.ID),
	}
	sendSubmitStep(ctx, b, session)
}

// sendSubmitStep renders the prompt for the session's current step and
// stores the session with the prompt's message id, so the prompt can be
// removed once the step is answered.
func sendSubmitStep(ctx context.Context, b *bot.Bot, session Session) {
	chatID := session.ChatID

	var rows [][]button
	switch session.Step {
	case stepTrailer:
		rows = append(rows, trailerRows...)
		rows = append(rows, []button{{"❌ Cancel", "cancel"}})
	case stepComment:
		rows = [][]button{{{"➡️ Skip", "skip"}, {"❌ Cancel", "cancel"}}}
	default:
		rows = [][]button{{{"❌ Cancel", "cancel"}}}
	}

	msg := sendKeyboard(ctx, b, chatID, submitPrompts[session.Step], rows,
		func(ctx context.Context, b *bot.Bot, mes models.MaybeInaccessibleMessage, data []byte) {
			handleSubmitButton(ctx, b, chatID, string(data))
		})
	if msg == nil {
		// without a live prompt the form cannot continue; leaving the
		// prior step stored would point at an already-deleted prompt
		if err := deleteSession(chatID); err != nil {
			log.Errorw("could not abort submission", "chat", chatID, "err", err)
		}
		sendText(ctx, b, chatID, "❌ Something went wrong. Use /submit to start over.")
		return
	}

	session.PromptMessageID = msg.ID
	if err := putSession(session); err != nil {
		log.Errorw("could not store submission session", "chat", chatID, "err", err)
	}
}

// handleSubmitText consumes a free-text reply for the session's current
// step. Trailer is button-only, text sent there is ignored.
func handleSubmitText(ctx context.Context, b *bot.Bot, update *models.Update, session Session) {
	if session.Step == stepTrailer {
		return
	}
	chatID := session.ChatID

	session.Fields[submitFields[session.Step]] = strings.TrimSpace(update.Message.Text)

	deleteMsg(ctx, b, chatID, session.PromptMessageID)
	deleteMsg(ctx, b, chatID, update.Message.ID)

	advanceSubmit(ctx, b, session)
}

// handleSubmitButton consumes a button press on the current prompt.
// Cancel wins over everything else at any step and never advances the
// step counter.
func handleSubmitButton(ctx context.Context, b *bot.Bot, chatID int64, data string) {
	session, found, err := getSession(chatID)
	if err != nil {
		log.Errorw("could not get submission session", "chat", chatID, "err", err)
		return
	}
	if !found {
		// stale keyboard, nothing to do
		return
	}
	if sessionExpired(session.UpdatedAt) {
		expireSubmission(ctx, b, session)
		return
	}

	switch data {
	case "cancel":
		deleteMsg(ctx, b, chatID, session.PromptMessageID)
		if err := deleteSession(chatID); err != nil {
			log.Errorw("could not discard submission session", "chat", chatID, "err", err)
		}
		sendTransient(ctx, b, chatID, "❌ Submission canceled.", confirmationTTL)
	case "skip":
		if session.Step != stepComment {
			return
		}
		session.Fields[submitFields[session.Step]] = ""
		deleteMsg(ctx, b, chatID, session.PromptMessageID)
		advanceSubmit(ctx, b, session)
	default:
		if session.Step != stepTrailer {
			return
		}
		session.Fields[submitFields[session.Step]] = data
		deleteMsg(ctx, b, chatID, session.PromptMessageID)
		advanceSubmit(ctx, b, session)
	}
}

func advanceSubmit(ctx context.Context, b *bot.Bot, session Session) {
	session.Step++
	if session.Step < stepCount {
		sendSubmitStep(ctx, b, session)
		return
	}
	finalizeSubmission(ctx, b, session)
}

// finalizeSubmission runs exactly once, after the last step. The
// numeric parse is the only validation gate and gates the whole
// submission: on failure nothing is persisted and the session is gone.
func finalizeSubmission(ctx context.Context, b *bot.Bot, session Session) {
	chatID := session.ChatID

	if err := deleteSession(chatID); err != nil {
		log.Errorw("could not clear submission session", "chat", chatID, "err", err)
	}

	load, text, err := composeLoad(session.Fields, session.User, session.UserID, time.Now())
	if err != nil {
		log.Infow("submission rejected", "chat", chatID, "err", err)
		sendTransient(ctx, b, chatID, "❌ Invalid number format.", confirmationTTL)
		return
	}

	if err := insertLoad(load); err != nil {
		log.Errorw("could not persist load", "chat", chatID, "err", err)
		sendText(ctx, b, chatID, "❌ Could not save load.")
		return
	}
	if err := appendLedgerRow(load); err != nil {
		log.Errorw("could not append ledger row", "load", load.ID, "err", err)
	}

	broadcast(ctx, b, text)
	sendTransient(ctx, b, chatID, "✅ Load submitted and published!", confirmationTTL)
}

// composeLoad turns the collected raw answers into a persistable record
// plus its broadcast text. Pure except for the location table lookup.
func composeLoad(fields map[string]string, user, userID string, now time.Time) (Load, string, error) {
	miles, err := parseAmount(fields["total_miles"])
	if err != nil {
		return Load{}, "", err
	}
	rate, err := parseAmount(fields["rate"])
	if err != nil {
		return Load{}, "", err
	}

	load := Load{
		ID:          uuid.NewString(),
		Date:        now.Format(dateLayout),
		PickupZip:   fields["pickup_zip"],
		DeliveryZip: fields["delivery_zip"],
		TotalMiles:  miles,
		Rate:        rate,
		RPMTotal:    ratePerMile(rate, miles),
		Trailer:     fields["trailer"],
		Comment:     fields["comment"],
		User:        user,
		UserID:      userID,
		CreatedAt:   now,
	}

	pickup := formatLocation(resolveLocation(load.PickupZip))
	delivery := formatLocation(resolveLocation(load.DeliveryZip))

	return load, broadcastText(load, pickup, delivery), nil
}

func broadcastText(l Load, pickup, delivery string) string {
	return fmt.Sprintf(
		"🗓 %s\n"+
			"🧑‍✈️ Posted by: %s\n"+
			"📍 %s → %s\n"+
			"📏 Miles: %d\n"+
			"💵 Rate: $%d | RPM: Total — %s\n"+
			"🚛 Trailer: %s\n"+
			"💬 Comment: %s",
		l.Date, l.User, pickup, delivery, int(l.TotalMiles), int(l.Rate),
		formatRPM(l), l.Trailer, orDash(l.Comment),
	)
}

func expireSubmission(ctx context.Context, b *bot.Bot, session Session) {
	deleteMsg(ctx, b, session.ChatID, session.PromptMessageID)
	if err := deleteSession(session.ChatID); err != nil {
		log.Errorw("could not drop expired session", "chat", session.ChatID, "err", err)
	}
	sendTransient(ctx, b, session.ChatID, "⌛ Submission expired. Use /submit to start over.", confirmationTTL)
}

func displayHandle(u *models.User) string {
	if u == nil {
		return ""
	}
	if u.Username != "" {
		return "@" + u.Username
	}
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

func sessionExpired(updatedAt time.Time) bool {
	return cfg.SessionTTL > 0 && time.Since(updatedAt) > cfg.SessionTTL
}
