package config

import (
	"fmt"
	"log"

	"github.com/kelseyhightower/envconfig"

	"tg-feedback-relay/internal/domain"
)

// AppConfig описывает конфигурацию сервиса.
type AppConfig struct {
	AppEnv         string `envconfig:"APP_ENV" default:"dev"`
	Port           int    `envconfig:"PORT" default:"8080"`
	FeedbackPath   string `envconfig:"FEEDBACK_PATH" default:"/.netlify/functions/sendFeedback"`
	MetricsEnabled bool   `envconfig:"METRICS_ENABLED" default:"true"`

	// Токен и чат не обязательны при старте: их отсутствие отдаётся клиенту как 500.
	Telegram struct {
		BotToken    string `envconfig:"TELEGRAM_BOT_TOKEN"`
		ChatID      string `envconfig:"TELEGRAM_CHAT_ID"`
		APIEndpoint string `envconfig:"TELEGRAM_API_ENDPOINT" default:"https://api.telegram.org/bot%s/%s"`
	} `envconfig:""`
}

// Parse читает конфиг из окружения.
func Parse() (AppConfig, error) {
	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return AppConfig{}, fmt.Errorf("process env: %w", err)
	}
	return cfg, nil
}

// Load загружает конфиг из окружения.
func Load() AppConfig {
	cfg, err := Parse()
	if err != nil {
		log.Fatalf("не удалось загрузить конфиг: %v", err)
	}
	return cfg
}

// Credentials возвращает секреты бота.
func (c AppConfig) Credentials() domain.Credentials {
	return domain.Credentials{
		BotToken: c.Telegram.BotToken,
		ChatID:   c.Telegram.ChatID,
	}
}

// Addr адрес HTTP сервера.
func (c AppConfig) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
