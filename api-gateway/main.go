package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"foodpos/api-gateway/internal/gateway"
	"foodpos/config"
	"foodpos/logger"

	"github.com/rs/cors"
)

func main() {
	log := logger.New("api-gateway")

	cfg, err := config.Load(os.Getenv("CONFIG_FILE"), config.WithAddr(":8080"))
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	gw := gateway.NewGateway(gateway.Config{
		PosSvcURL:       cfg.Upstreams.PosSvcURL,
		AnalyticsSvcURL: cfg.Upstreams.AnalyticsSvcURL,
		MediaRoot:       cfg.Media.Root,
		FrontendDir:     cfg.Media.FrontendDir,
	}, &http.Client{Timeout: cfg.HTTP.WriteTimeout}, log)

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	})

	srv := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      c.Handler(logger.Middleware(log)(gw.SetupRoutes())),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("api-gateway starting",
			"addr", cfg.HTTP.Addr,
			"pos_svc", cfg.Upstreams.PosSvcURL,
			"analytics_svc", cfg.Upstreams.AnalyticsSvcURL,
		)
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
	log.Info("api-gateway stopped")
}
