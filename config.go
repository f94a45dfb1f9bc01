package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	BotToken          string
	BadgerPath        string
	ZipDataPath       string
	LedgerPath        string
	BroadcastChannels []string
	FMCSAWebKey       string
	SessionTTL        time.Duration
}

// loadConfig reads the environment (LOADBOT_ prefix) and an optional
// config.yaml next to the binary. The bot token is the only required
// setting.
func loadConfig() error {
	v := viper.New()
	v.SetDefault("badger_path", "/tmp/loadbot-badger")
	v.SetDefault("zip_data", "zipcodes.json")
	v.SetDefault("ledger_path", "loads.csv")
	v.SetDefault("broadcast_channels", []string{"@rateguard", "-1002235875053"})
	v.SetDefault("session_ttl", "30m")

	v.SetEnvPrefix("LOADBOT")
	v.AutomaticEnv()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("reading config file: %w", err)
		}
	}

	cfg = Config{
		BotToken:          v.GetString("bot_token"),
		BadgerPath:        v.GetString("badger_path"),
		ZipDataPath:       v.GetString("zip_data"),
		LedgerPath:        v.GetString("ledger_path"),
		BroadcastChannels: v.GetStringSlice("broadcast_channels"),
		FMCSAWebKey:       v.GetString("fmcsa_web_key"),
		SessionTTL:        v.GetDuration("session_ttl"),
	}

	if cfg.BotToken == "" {
		return fmt.Errorf("bot_token is not set")
	}
	return nil
}
