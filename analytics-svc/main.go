package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "foodpos/analytics-svc/internal/api/http"
	"foodpos/analytics-svc/internal/service"
	"foodpos/config"
	"foodpos/logger"
)

func main() {
	log := logger.New("analytics-svc")

	cfg, err := config.Load(os.Getenv("CONFIG_FILE"), config.WithAddr(":8083"))
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db := config.MustInitPostgres(ctx, cfg.Database, log)
	defer db.Close()

	rdb := config.MustInitRedis(ctx, cfg.Redis, log)
	defer rdb.Close()

	handler := httpapi.NewHandler(service.NewAnalyticsService(db, rdb, log), log)
	srv := httpapi.NewServer(cfg.HTTP.Addr, httpapi.NewRouter(handler, log), cfg.HTTP.ReadTimeout, cfg.HTTP.WriteTimeout)

	go func() {
		log.Info("analytics-svc starting", "addr", cfg.HTTP.Addr)
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
	log.Info("analytics-svc stopped")
}
