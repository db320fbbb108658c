package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"foodpos/agg-svc/internal/service"
	"foodpos/agg-svc/internal/storage"
	"foodpos/config"
	"foodpos/logger"
)

func main() {
	log := logger.New("agg-svc")

	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if cfg.Kafka.Broker == "" {
		log.Error("KAFKA_BROKER is required")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rdb := config.MustInitRedis(ctx, cfg.Redis, log)
	defer rdb.Close()

	reader := config.NewKafkaReader(cfg.Kafka)
	defer reader.Close()

	consumer := service.NewConsumer(reader, storage.NewStore(rdb), log)
	log.Info("agg-svc started", "topic", cfg.Kafka.OrderTopic, "group_id", cfg.Kafka.GroupID)
	consumer.Start(ctx)
}
