package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"tg-feedback-relay/internal/adapters/telegram"
	"tg-feedback-relay/internal/infra/config"
	httpinfra "tg-feedback-relay/internal/infra/http"
	"tg-feedback-relay/internal/infra/log"
	"tg-feedback-relay/internal/infra/metrics"
	"tg-feedback-relay/internal/usecase/feedback"
)

func main() {
	cfg := config.Load()
	logger := log.NewLogger(cfg.AppEnv)
	if cfg.MetricsEnabled {
		metrics.MustRegister(prometheus.DefaultRegisterer)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := telegram.NewClient(cfg.Telegram.BotToken, telegram.WithEndpoint(cfg.Telegram.APIEndpoint))
	relay := feedback.NewRelay(cfg.Credentials(), client, logger)

	srv := httpinfra.NewServer(cfg.Addr(), logger, cfg.MetricsEnabled)
	srv.MountFeedback(cfg.FeedbackPath, relay)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case <-ctx.Done():
		logger.Info().Msg("server: остановка")
	case err := <-errCh:
		if err != nil {
			logger.Fatal().Err(err).Msg("server: HTTP сервер остановлен")
		}
		return
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server: graceful shutdown failed")
	}
}
