package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

type zipInfo struct {
	City  string `json:"city"`
	State string `json:"state"`
}

// US ZIP -> place table, loaded once at boot
var zipTable map[string]zipInfo

func loadZipTable(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading zip table: %w", err)
	}

	if err := json.Unmarshal(data, &zipTable); err != nil {
		return fmt.Errorf("unmarshalling zip table: %w", err)
	}

	return nil
}

// resolveLocation maps a user-entered token to a (city, state) pair.
// A two-letter token is treated as a state code directly and returned
// uppercased with no city. Anything else is looked up as a postal code;
// an unknown code degrades to ("", token) so the caller always has a
// non-empty second component. Never fails.
func resolveLocation(token string) (city, state string) {
	if isStateCode(token) {
		return "", strings.ToUpper(token)
	}
	info, ok := zipTable[token]
	if !ok {
		log.Debugw("zip not found", "token", token)
		return "", token
	}
	if info.State == "" {
		return info.City, token
	}
	return info.City, info.State
}

// formatLocation renders "City, ST" when a city is known, else the bare
// state code or raw token.
func formatLocation(city, state string) string {
	if city == "" {
		return state
	}
	return city + ", " + state
}
