package main

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

var weekdayNumbers = map[string]int{
	"monday": 0, "tuesday": 1, "wednesday": 2, "thursday": 3,
	"friday": 4, "saturday": 5, "sunday": 6,
}

// periodStart computes the inclusive start of a canonical global stats
// period relative to now.
func periodStart(period string, now time.Time) (time.Time, string, bool) {
	switch period {
	case "today":
		return truncateToDay(now), "Today", true
	case "this_week":
		// week starts Monday
		daysSinceMonday := (int(now.Weekday()) + 6) % 7
		return truncateToDay(now.AddDate(0, 0, -daysSinceMonday)), "This Week", true
	case "this_month":
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()), "This Month", true
	}
	return time.Time{}, "", false
}

// personalWeekStart computes the start of a rolling personal week for
// the chosen start weekday. When today is the chosen weekday the range
// collapses to a single day.
func personalWeekStart(day string, now time.Time) (time.Time, bool) {
	dayNum, ok := weekdayNumbers[day]
	if !ok {
		return time.Time{}, false
	}
	todayNum := (int(now.Weekday()) + 6) % 7
	daysSinceStart := (todayNum - dayNum + 7) % 7
	return truncateToDay(now.AddDate(0, 0, -daysSinceStart)), true
}

func averageRPMByTrailer(loads []Load) map[string]float64 {
	sums := map[string]float64{}
	counts := map[string]int{}
	for _, l := range loads {
		sums[l.Trailer] += l.RPMTotal
		counts[l.Trailer]++
	}
	avgs := make(map[string]float64, len(sums))
	for trailer, sum := range sums {
		avgs[trailer] = round2(sum / float64(counts[trailer]))
	}
	return avgs
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// statsMessage renders the global report: average RPM by trailer type,
// then RPM broken down by length category and trailer.
func statsMessage(label string, loads []Load) string {
	if len(loads) == 0 {
		return fmt.Sprintf("📊 Load Stats — %s\nNo loads found for this period.", label)
	}

	lines := []string{fmt.Sprintf("📊 Load Stats — %s\n", label)}

	lines = append(lines, "🚛 Average RPM by Trailer Type:")
	avgs := averageRPMByTrailer(loads)
	for _, trailer := range sortedKeys(avgs) {
		lines = append(lines, fmt.Sprintf("• %s: %.2f", trailer, avgs[trailer]))
	}

	lines = append(lines, "\n📏 RPM by Load Length & Trailer:")
	for _, category := range []string{"Short", "Medium", "Long"} {
		var catLoads []Load
		for _, l := range loads {
			if l.LengthCategory() == category {
				catLoads = append(catLoads, l)
			}
		}
		lines = append(lines, fmt.Sprintf("%s Loads:", category))
		catAvgs := averageRPMByTrailer(catLoads)
		for _, trailer := range sortedKeys(catAvgs) {
			lines = append(lines, fmt.Sprintf("  • %s: %.2f", trailer, catAvgs[trailer]))
		}
		lines = append(lines, "")
	}

	return strings.Join(lines, "\n")
}

// myStatsMessage renders the personal rolling-week totals.
func myStatsMessage(label string, loads []Load) string {
	if len(loads) == 0 {
		return fmt.Sprintf("📊 %s\nNo loads found for this period.", label)
	}

	var totalMiles, totalRate float64
	for _, l := range loads {
		totalMiles += l.TotalMiles
		totalRate += l.Rate
	}
	avgRPM := "—"
	if totalMiles > 0 {
		avgRPM = fmt.Sprintf("%.2f", round2(totalRate/totalMiles))
	}

	return fmt.Sprintf(
		"📊 %s\n📦 Total Loads: %d\n📏 Total Miles: %d\n💰 Total Rate: $%d\n📈 Average RPM: %s",
		label, len(loads), int(totalMiles), int(totalRate), avgRPM,
	)
}

// when user typed `/stats`
func statsHandler(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID := update.Message.Chat.ID

	rows := [][]button{{
		{"Today", "today"},
		{"This Week", "this_week"},
		{"This Month", "this_month"},
	}}

	sendKeyboard(ctx, b, chatID, "📊 Choose stats period:", rows,
		func(ctx context.Context, b *bot.Bot, mes models.MaybeInaccessibleMessage, data []byte) {
			if mes.Message != nil {
				deleteMsg(ctx, b, chatID, mes.Message.ID)
			}

			now := time.Now()
			start, label, ok := periodStart(string(data), now)
			if !ok {
				sendText(ctx, b, chatID, "❌ Invalid selection.")
				return
			}

			loads, err := loadsInRange("", start, now)
			if err != nil {
				log.Errorw("stats query failed", "err", err)
				sendText(ctx, b, chatID, "❌ Could not load stats.")
				return
			}
			sendText(ctx, b, chatID, statsMessage(label, loads))
		})
}

// when user typed `/my_stats`
func myStatsHandler(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID := update.Message.Chat.ID
	userID := itoa(update.Message.From.ID)

	rows := [][]button{
		{{"Monday", "monday"}, {"Tuesday", "tuesday"}, {"Wednesday", "wednesday"}, {"Thursday", "thursday"}},
		{{"Friday", "friday"}, {"Saturday", "saturday"}, {"Sunday", "sunday"}},
	}

	sendKeyboard(ctx, b, chatID, "📆 Choose start of your week:", rows,
		func(ctx context.Context, b *bot.Bot, mes models.MaybeInaccessibleMessage, data []byte) {
			if mes.Message != nil {
				deleteMsg(ctx, b, chatID, mes.Message.ID)
			}

			now := time.Now()
			day := string(data)
			start, ok := personalWeekStart(day, now)
			if !ok {
				sendText(ctx, b, chatID, "❌ Invalid day.")
				return
			}

			loads, err := loadsInRange(userID, start, now)
			if err != nil {
				log.Errorw("my_stats query failed", "err", err)
				sendText(ctx, b, chatID, "❌ Could not load stats.")
				return
			}

			label := fmt.Sprintf("My Stats (from %s) — %s to %s",
				titleCase(day), start.Format("Jan 02"), now.Format("Jan 02"))
			sendText(ctx, b, chatID, myStatsMessage(label, loads))
		})
}
