package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// FMCSA QCMobile carrier registry
var fmcsaBaseURL = "https://mobile.fmcsa.dot.gov/qc/services/carriers/docket-number"

var registryClient = &http.Client{Timeout: 10 * time.Second}

type carrierInfo struct {
	LegalName        string `json:"legalName"`
	DotNumber        int64  `json:"dotNumber"`
	Telephone        string `json:"telephone"`
	StatusCode       string `json:"statusCode"`
	AllowedToOperate string `json:"allowedToOperate"`
}

type carrierResponse struct {
	Content []struct {
		Carrier carrierInfo `json:"carrier"`
	} `json:"content"`
}

// when user typed `/broker <MC number>`
func brokerHandler(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID := update.Message.Chat.ID

	args := strings.Fields(update.Message.Text)
	if len(args) < 2 {
		sendText(ctx, b, chatID, "Usage: /broker <MC number>")
		return
	}
	number := args[1]
	if _, err := strconv.Atoi(number); err != nil {
		sendText(ctx, b, chatID, "Usage: /broker <MC number>")
		return
	}

	carrier, found, err := lookupCarrier(ctx, number)
	if err != nil {
		log.Errorw("carrier lookup failed", "number", number, "err", err)
		sendText(ctx, b, chatID, "❌ Error contacting carrier registry.")
		return
	}
	if !found {
		sendText(ctx, b, chatID, "❌ Carrier not found.")
		return
	}

	sendText(ctx, b, chatID, carrierText(number, carrier))
}

func lookupCarrier(ctx context.Context, number string) (carrierInfo, bool, error) {
	url := fmt.Sprintf("%s/%s?webKey=%s", fmcsaBaseURL, number, cfg.FMCSAWebKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return carrierInfo{}, false, err
	}
	resp, err := registryClient.Do(req)
	if err != nil {
		return carrierInfo{}, false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return carrierInfo{}, false, nil
	}
	if resp.StatusCode != http.StatusOK {
		return carrierInfo{}, false, fmt.Errorf("registry returned %s", resp.Status)
	}

	var parsed carrierResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return carrierInfo{}, false, err
	}
	if len(parsed.Content) == 0 {
		return carrierInfo{}, false, nil
	}
	return parsed.Content[0].Carrier, true, nil
}

func carrierText(number string, c carrierInfo) string {
	status := "⛔️ Not allowed to operate"
	if c.AllowedToOperate == "Y" {
		status = "✅ Allowed to operate"
	}
	return fmt.Sprintf(
		"🏢 %s\n🆔 MC: %s | DOT: %d\n📞 Phone: %s\n%s",
		c.LegalName, number, c.DotNumber, orDash(c.Telephone), status,
	)
}
