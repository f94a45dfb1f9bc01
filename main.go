package main

import (
	"context"
	"os"
	"os/signal"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/go-telegram/bot"
	"go.uber.org/zap"
)

// keys: session/<chat>, edit/<chat>, load/<uuid>; values are json
var db *badger.DB

var cfg Config

var log *zap.SugaredLogger

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	log = logger.Sugar()

	if err := loadConfig(); err != nil {
		log.Errorw("could not load config", "err", err)
		return
	}

	db, err = badger.Open(badger.DefaultOptions(cfg.BadgerPath))
	if err != nil {
		log.Errorw("could not open db", "err", err)
		return
	}
	defer db.Close()

	if err := loadZipTable(cfg.ZipDataPath); err != nil {
		log.Errorw("could not load zip table", "err", err)
		return
	}

	opts := []bot.Option{
		bot.WithDefaultHandler(messageHandler),
	}

	b, err := bot.New(cfg.BotToken, opts...)
	if err != nil {
		log.Errorw("could not create bot", "err", err)
		return
	}

	b.RegisterHandler(bot.HandlerTypeMessageText, "submit", bot.MatchTypeCommand, submitHandler)
	b.RegisterHandler(bot.HandlerTypeMessageText, "stats", bot.MatchTypeCommand, statsHandler)
	b.RegisterHandler(bot.HandlerTypeMessageText, "my_stats", bot.MatchTypeCommand, myStatsHandler)
	b.RegisterHandler(bot.HandlerTypeMessageText, "my_loads", bot.MatchTypeCommand, myLoadsHandler)
	b.RegisterHandler(bot.HandlerTypeMessageText, "broker", bot.MatchTypeCommand, brokerHandler)

	log.Infow("bot started")
	b.Start(ctx)
}
