package main

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// misc
func floatPtr(f float64) *float64 { return &f }

// parseAmount parses a user-entered number after stripping currency
// symbols, thousands separators and surrounding whitespace.
// "$2,500.00" -> 2500. Negative amounts are rejected.
func parseAmount(s string) (float64, error) {
	cleaned := strings.TrimSpace(s)
	cleaned = strings.ReplaceAll(cleaned, "$", "")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", s)
	}
	if v < 0 {
		return 0, fmt.Errorf("negative amount: %q", s)
	}
	return v, nil
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

// ratePerMile is the core derived metric. Zero distance yields 0, the
// undefined marker, never a division error.
func ratePerMile(rate, miles float64) float64 {
	if miles == 0 {
		return 0
	}
	return round2(rate / miles)
}

// classifyDistance buckets a load by distance. Boundaries 500 and 1000
// are both Medium.
func classifyDistance(miles float64) string {
	switch {
	case miles < 500:
		return "Short"
	case miles <= 1000:
		return "Medium"
	default:
		return "Long"
	}
}

// isStateCode reports whether the token is exactly two letters.
func isStateCode(s string) bool {
	if len(s) != 2 {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// formatRPM renders the derived metric for chat messages, em-dash when
// undefined.
func formatRPM(l Load) string {
	if !l.HasRPM() {
		return "—"
	}
	return fmt.Sprintf("%.2f", l.RPMTotal)
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}
