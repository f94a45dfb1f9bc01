package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Mon Dec 1 2025
var monday = time.Date(2025, 12, 1, 14, 30, 0, 0, time.Local)

func TestPeriodStartToday(t *testing.T) {
	start, label, ok := periodStart("today", monday)
	require.True(t, ok)
	assert.Equal(t, "Today", label)
	assert.Equal(t, time.Date(2025, 12, 1, 0, 0, 0, 0, time.Local), start)
}

func TestPeriodStartThisWeek(t *testing.T) {
	wednesday := time.Date(2025, 12, 3, 9, 0, 0, 0, time.Local)
	start, label, ok := periodStart("this_week", wednesday)
	require.True(t, ok)
	assert.Equal(t, "This Week", label)
	assert.Equal(t, time.Date(2025, 12, 1, 0, 0, 0, 0, time.Local), start, "week starts Monday")

	// Monday itself starts a fresh week
	start, _, ok = periodStart("this_week", monday)
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 12, 1, 0, 0, 0, 0, time.Local), start)
}

func TestPeriodStartThisMonth(t *testing.T) {
	mid := time.Date(2025, 12, 15, 18, 0, 0, 0, time.Local)
	start, label, ok := periodStart("this_month", mid)
	require.True(t, ok)
	assert.Equal(t, "This Month", label)
	assert.Equal(t, time.Date(2025, 12, 1, 0, 0, 0, 0, time.Local), start)
}

func TestPeriodStartUnknown(t *testing.T) {
	_, _, ok := periodStart("last_year", monday)
	assert.False(t, ok)
}

func TestPersonalWeekStartSameDay(t *testing.T) {
	// today is Monday and the chosen start is Monday: single-day range
	start, ok := personalWeekStart("monday", monday)
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 12, 1, 0, 0, 0, 0, time.Local), start)
}

func TestPersonalWeekStartRolling(t *testing.T) {
	// today is Monday, week chosen to start Friday: rolls back 3 days
	start, ok := personalWeekStart("friday", monday)
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 11, 28, 0, 0, 0, 0, time.Local), start)

	_, ok = personalWeekStart("someday", monday)
	assert.False(t, ok)
}

func TestStatsMessage(t *testing.T) {
	loads := []Load{
		{Trailer: "Dry Van", TotalMiles: 400, RPMTotal: 2.0},
		{Trailer: "Dry Van", TotalMiles: 600, RPMTotal: 3.0},
		{Trailer: "Reefer", TotalMiles: 1200, RPMTotal: 2.5},
	}

	msg := statsMessage("Today", loads)
	assert.Contains(t, msg, "📊 Load Stats — Today")
	assert.Contains(t, msg, "• Dry Van: 2.50")
	assert.Contains(t, msg, "• Reefer: 2.50")
	assert.Contains(t, msg, "Short Loads:")
	assert.Contains(t, msg, "Medium Loads:")
	assert.Contains(t, msg, "Long Loads:")
	// the 400mi load is the only Short one
	assert.Contains(t, msg, "Short Loads:\n  • Dry Van: 2.00")
}

func TestStatsMessageEmpty(t *testing.T) {
	msg := statsMessage("This Week", nil)
	assert.Contains(t, msg, "No loads found for this period.")
}

func TestMyStatsMessage(t *testing.T) {
	loads := []Load{
		{TotalMiles: 1000, Rate: 2500},
		{TotalMiles: 500, Rate: 1250},
	}
	msg := myStatsMessage("My Stats", loads)
	assert.Contains(t, msg, "📦 Total Loads: 2")
	assert.Contains(t, msg, "📏 Total Miles: 1500")
	assert.Contains(t, msg, "💰 Total Rate: $3750")
	assert.Contains(t, msg, "📈 Average RPM: 2.50")
}

func TestMyStatsMessageZeroMiles(t *testing.T) {
	msg := myStatsMessage("My Stats", []Load{{TotalMiles: 0, Rate: 500}})
	assert.Contains(t, msg, "📈 Average RPM: —", "no arithmetic fault on zero miles")
}
