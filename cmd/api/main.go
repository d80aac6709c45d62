package main

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/romacabello/salon-scheduler/internal/config"
	dbpkg "github.com/romacabello/salon-scheduler/internal/db"
	"github.com/romacabello/salon-scheduler/internal/notify"
	"github.com/romacabello/salon-scheduler/internal/reminder"
	"github.com/romacabello/salon-scheduler/internal/routes"
)

func main() {

	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	var rdb *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatal("invalid REDIS_URL", zap.Error(err))
		}
		rdb = redis.NewClient(opts)
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			log.Warn("redis unreachable, rate limiting degraded", zap.Error(err))
		}
	} else {
		log.Warn("REDIS_URL not set, rate limiting disabled")
	}

	whatsapp := notify.NewWhatsAppBridge(cfg.WhatsAppBridgeURL)
	telegram := notify.NewTelegram(cfg.TelegramBotToken, cfg.TelegramChatID)
	notifier := notify.NewDispatcher(whatsapp, telegram, log)

	if !cfg.BookingAutoConfirm {
		worker := reminder.NewWorker(
			db,
			notifier,
			log,
			cfg.Timezone,
			time.Duration(cfg.ReminderIntervalMinutes)*time.Minute,
		)
		go worker.Run(context.Background())
	}

	r := gin.Default()
	routes.RegisterRoutes(r, db, cfg, log, rdb, notifier)

	log.Info("server listening", zap.String("addr", cfg.Addr()))
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatal("server failed", zap.Error(err))
	}
}
