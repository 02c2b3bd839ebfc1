package main

import (
	"context"
	"encoding/json"
	"log"
	"os/signal"
	"syscall"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"gitlab.ozon.dev/pupkingeorgij/milkrun/internal/config"
	"gitlab.ozon.dev/pupkingeorgij/milkrun/internal/kafka"
	"gitlab.ozon.dev/pupkingeorgij/milkrun/internal/logger"
	"gitlab.ozon.dev/pupkingeorgij/milkrun/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}

	lg := logger.New(cfg.LogLevel)
	defer func() { _ = lg.Sync() }()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	consumer := kafka.NewConsumer(kafka.ConsumerConfig{
		Brokers: cfg.KafkaBrokers,
		Topic:   cfg.DeliveryTopic,
		GroupID: cfg.ConsumerGroupID,
	})
	defer func() {
		if err := consumer.Close(); err != nil {
			lg.Error("error closing kafka reader", zap.Error(err))
		}
	}()

	lg.Info("consumer connected",
		zap.String("topic", cfg.DeliveryTopic),
		zap.Strings("brokers", cfg.KafkaBrokers))

	consumer.Run(ctx, logEvent(lg))
	lg.Info("consumer stopped")
}

func logEvent(lg *zap.Logger) kafka.Handler {
	return func(_ context.Context, m kafkago.Message) error {
		var event repository.DeliveryEventPayload
		if err := json.Unmarshal(m.Value, &event); err != nil {
			return err
		}
		lg.Info("delivery event",
			zap.Time("timestamp", m.Time),
			zap.Int("partition", m.Partition),
			zap.Int64("offset", m.Offset),
			zap.ByteString("key", m.Key),
			zap.String("event", event.Event),
			zap.String("user_id", event.UserID),
			zap.ByteString("value", m.Value))
		return nil
	}
}
