// The worker tails the reservation lifecycle topic and writes each event to
// the structured log, giving operators an audit trail of bookings, seatings
// and finishes without touching the serving path.
package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	kafkaGo "github.com/segmentio/kafka-go"

	"tablebook/config"
	"tablebook/internal/events"
)

func main() {
	logger := zerolog.New(os.Stderr).With().Timestamp().Str("service", "tablebook-worker").Logger()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("load config")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumer := events.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.EventsTopic)
	defer consumer.Close()

	err = consumer.Consume(ctx, func(ctx context.Context, msg kafkaGo.Message) error {
		var event events.Event
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			logger.Warn().Err(err).Msg("decode event")
			return nil
		}
		logger.Info().
			Str("type", event.Type).
			Int64("reservation_id", event.ReservationID).
			Int64("table_id", event.TableID).
			Str("status", event.Status).
			Time("occurred_at", event.OccurredAt).
			Msg("reservation event")
		return nil
	})
	if err != nil && ctx.Err() == nil {
		logger.Error().Err(err).Msg("consumer stopped")
	}
}
