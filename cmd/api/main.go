package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"hotel_booking/internal/adapters/auth"
	server "hotel_booking/internal/adapters/http_server"
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

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// db
	db, err := mysqlrepo.Open(ctx, cfg.MySQLDSN, cfg.DBMaxOpenConns)
	if err != nil {
		log.Fatal().Err(err).Msg("database unavailable")
	}
	defer db.Close()
	log.Info().Msg("database connection ok")
	repo := mysqlrepo.New(db)

	// cache is optional; without it reads go straight to MySQL and logout is a no-op
	var cache domain.Cache
	if cfg.RedisAddr != "" {
		rc := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		if err := rc.Ping(ctx); err != nil {
			log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis ping failed, continuing; cache calls will degrade")
		}
		defer rc.Close()
		cache = rc
	}

	var events domain.EventPublisher = rabbitmq.Discard{}
	if cfg.AMQPURL != "" {
		pub := rabbitmq.NewPublisher(cfg.AMQPURL, cfg.EventsQueue)
		defer pub.Close()
		events = pub
	}

	tokens := auth.NewTokens(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience, cfg.JWTTTL, cache)
	hasher := auth.Bcrypt{Cost: cfg.BcryptCost}

	h := &server.Handlers{
		Availability: app.NewAvailabilityService(repo, repo),
		Reservations: app.NewReservationService(repo, repo, repo, events),
		Hotels:       app.NewHotelService(repo, repo, cache, cfg.CacheTTL),
		Rooms:        app.NewRoomService(repo, repo),
		Users:        app.NewUserService(repo, hasher, tokens),
		Reviews:      app.NewReviewService(repo),
		Payments:     app.NewPaymentService(repo),
		Tokens:       tokens,
	}

	// http
	srv := server.New(server.Options{
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
	})
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(h, cfg.AuthRequired)
	metricsSrv := observability.Serve(cfg.MetricsAddr, reg)

	httpSrv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           srv.Mux(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", cfg.HTTPAddr).Bool("auth_required", cfg.AuthRequired).Msg("API listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if metricsSrv != nil {
			_ = metricsSrv.Shutdown(sctx)
		}
		return httpSrv.Shutdown(sctx)
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("http server failed")
	}
	log.Info().Msg("bye")
}
