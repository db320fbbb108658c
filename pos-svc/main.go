package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"foodpos/config"
	"foodpos/logger"
	httpapi "foodpos/pos-svc/internal/api/http"
	"foodpos/pos-svc/internal/service"
	"foodpos/pos-svc/internal/storage"
	"foodpos/pos-svc/migrations"
)

func main() {
	log := logger.New("pos-svc")

	cfg, err := config.Load(os.Getenv("CONFIG_FILE"), config.WithAddr(":8081"))
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db := config.MustInitPostgres(ctx, cfg.Database, log)
	defer db.Close()

	if err := storage.Migrate(ctx, db, migrations.FS, log); err != nil {
		log.Error("failed to apply migrations", "error", err)
		os.Exit(1)
	}

	repo := storage.NewPostgresRepository(db)

	var publisher service.EventPublisher
	if writer := config.NewKafkaWriter(cfg.Kafka); writer != nil {
		defer writer.Close()
		publisher = storage.NewKafkaPublisher(writer)
	} else {
		log.Warn("KAFKA_BROKER is not set, order events are disabled")
	}

	handler := httpapi.NewHandler(
		service.NewCatalogService(repo, repo),
		service.NewOrderService(repo, repo, publisher, log),
		service.NewSettingsService(repo),
		service.NewTableService(service.DefaultQRGenerator{}, cfg.HTTP.PublicBaseURL),
		cfg.Media.Root,
		log,
	)
	srv := httpapi.NewServer(cfg.HTTP.Addr, httpapi.NewRouter(handler, log), cfg.HTTP.ReadTimeout, cfg.HTTP.WriteTimeout)

	go func() {
		log.Info("pos-svc starting", "addr", cfg.HTTP.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server stopped", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
	log.Info("pos-svc stopped")
}
