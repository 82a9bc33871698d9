package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"hotel_booking/internal/adapters/observability"
	"hotel_booking/internal/adapters/rabbitmq"
	redisad "hotel_booking/internal/adapters/redis"
	"hotel_booking/internal/app"
	"hotel_booking/internal/domain"
	"hotel_booking/internal/shared"
	mysqlrepo "hotel_booking/internal/storage/mysql"
)

func main() {
	cfg := shared.Load()

	// 1) initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info().
		Str("queue", cfg.EventsQueue).
		Int("workers", cfg.NotifierWorkers).
		Msg("notifier starting")

	db, err := mysqlrepo.Open(ctx, cfg.MySQLDSN, cfg.DBMaxOpenConns)
	if err != nil {
		log.Fatal().Err(err).Msg("database unavailable")
	}
	defer db.Close()
	log.Info().Msg("db ping ok")
	repo := mysqlrepo.New(db)

	// 2) redelivered events are skipped when a cache is configured
	var seen domain.Cache
	if cfg.RedisAddr != "" {
		rc := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		defer rc.Close()
		seen = rc
	}

	reg := observability.InitRegistry()
	if srv := observability.Serve(cfg.MetricsAddr, reg); srv != nil {
		defer srv.Close()
	}

	svc := app.NewNotificationService(repo, app.LogSender{}, seen, cfg.CacheTTL)
	consumer := rabbitmq.NewConsumer(cfg.AMQPURL, cfg.EventsQueue, cfg.NotifierWorkers)

	// 3) blocks until SIGINT/SIGTERM
	if err := consumer.Run(ctx, svc.Handle); err != nil {
		log.Fatal().Err(err).Msg("consumer stopped")
	}
	log.Info().Msg("notifier stopped")
}
