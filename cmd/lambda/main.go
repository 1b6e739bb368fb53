package main

import (
	awslambda "github.com/aws/aws-lambda-go/lambda"
	"github.com/prometheus/client_golang/prometheus"

	"tg-feedback-relay/internal/adapters/lambda"
	"tg-feedback-relay/internal/adapters/telegram"
	"tg-feedback-relay/internal/infra/config"
	"tg-feedback-relay/internal/infra/log"
	"tg-feedback-relay/internal/infra/metrics"
	"tg-feedback-relay/internal/usecase/feedback"
)

var handler *lambda.Handler

func init() {
	cfg := config.Load()
	logger := log.NewLogger(cfg.AppEnv)
	if cfg.MetricsEnabled {
		metrics.MustRegister(prometheus.DefaultRegisterer)
	}

	client := telegram.NewClient(cfg.Telegram.BotToken, telegram.WithEndpoint(cfg.Telegram.APIEndpoint))
	relay := feedback.NewRelay(cfg.Credentials(), client, logger)
	handler = lambda.NewHandler(relay)
}

func main() {
	awslambda.Start(handler.Handle)
}
