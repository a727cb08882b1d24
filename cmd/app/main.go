package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"tablebook/config"
	"tablebook/internal/bootstrap"
	"tablebook/internal/cache"
	"tablebook/internal/events"
	"tablebook/internal/repository"
	"tablebook/internal/service/guests"
	"tablebook/internal/service/reservations"
	"tablebook/internal/service/tables"
)

func main() {
	logger := zerolog.New(os.Stderr).With().Timestamp().Str("service", "tablebook").Logger()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("load config")
	}
	hours, err := cfg.Restaurant.Hours()
	if err != nil {
		logger.Fatal().Err(err).Msg("restaurant hours")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		logger.Fatal().Err(err).Msg("connect postgres")
	}
	defer pool.Close()

	redisCache := cache.NewRedisCache(cfg.Redis, cfg.Cache.TablesTTL())
	producer := events.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	reservationRepo := repository.NewReservationRepository(pool)
	tableRepo := repository.NewTableRepository(pool)
	guestRepo := repository.NewGuestRepository(pool)

	reservationSvc := reservations.NewReservationService(
		reservationRepo,
		reservations.NewValidator(hours),
		producer,
		cfg.Kafka.EventsTopic,
		logger,
	)
	tableSvc := tables.NewTableService(tableRepo, redisCache, producer, cfg.Kafka.EventsTopic, logger)
	guestSvc := guests.NewGuestService(guestRepo)

	if err := bootstrap.Run(ctx, cfg, logger, reservationSvc, tableSvc, guestSvc); err != nil {
		logger.Fatal().Err(err).Msg("server error")
	}
}
