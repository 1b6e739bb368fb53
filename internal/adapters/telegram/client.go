package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"tg-feedback-relay/internal/domain"
	"tg-feedback-relay/internal/infra/metrics"
)

// Чат задаётся конфигурацией и в метки метрик не попадает.
const (
	maxErrorBody  = 64 << 10
	metricsTarget = "bot_api"
)

// Client отправляет сообщения через Bot API в виде JSON.
type Client struct {
	token      string
	endpoint   string
	httpClient *http.Client
}

type Option func(*Client)

func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithEndpoint задаёт формат адреса метода, например "https://api.telegram.org/bot%s/%s".
func WithEndpoint(format string) Option {
	return func(c *Client) {
		if format != "" {
			c.endpoint = format
		}
	}
}

// NewClient создаёт клиента. Сетевых запросов при создании нет.
func NewClient(token string, opts ...Option) *Client {
	client := &Client{
		token:      token,
		endpoint:   tgbotapi.APIEndpoint,
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

type sendMessageRequest struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode,omitempty"`
}

// APIError неуспешный ответ Bot API.
type APIError struct {
	StatusCode  int
	ErrorCode   int
	Description string
	RetryAfter  int
	Body        []byte
}

func (e *APIError) Error() string {
	if e.Description != "" {
		return fmt.Sprintf("telegram api: status %d: %s", e.StatusCode, e.Description)
	}
	return fmt.Sprintf("telegram api: status %d: %s", e.StatusCode, bytes.TrimSpace(e.Body))
}

func (e *APIError) Unwrap() error {
	return domain.ErrDeliveryRejected
}

// Notify реализует domain.Notifier через sendMessage.
func (c *Client) Notify(ctx context.Context, n domain.Notification) error {
	return c.SendMessage(ctx, n.ChatID, n.Text, parseMode(n.ParseMode))
}

// SendMessage выполняет один POST sendMessage без повторов.
func (c *Client) SendMessage(ctx context.Context, chatID, text, mode string) (err error) {
	start := time.Now()
	defer func() {
		metrics.ObserveNetworkRequest("telegram_bot", "send_message", metricsTarget, start, err)
		if err != nil {
			metrics.BotSendErrors.Inc()
		}
	}()

	payload, err := json.Marshal(sendMessageRequest{ChatID: chatID, Text: text, ParseMode: mode})
	if err != nil {
		return fmt.Errorf("marshal send message: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.methodURL("sendMessage"), bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", stripURL(err))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("telegram: send message: %w", stripURL(err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return decodeAPIError(resp)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

func (c *Client) methodURL(method string) string {
	return fmt.Sprintf(c.endpoint, c.token, method)
}

func decodeAPIError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	apiErr := &APIError{StatusCode: resp.StatusCode, Body: body}
	var envelope tgbotapi.APIResponse
	if err := json.Unmarshal(body, &envelope); err == nil {
		apiErr.ErrorCode = envelope.ErrorCode
		apiErr.Description = envelope.Description
		if envelope.Parameters != nil {
			apiErr.RetryAfter = envelope.Parameters.RetryAfter
		}
	}
	return apiErr
}

// stripURL убирает адрес запроса из ошибки: в нём находится токен бота.
func stripURL(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return fmt.Errorf("%s: %w", urlErr.Op, urlErr.Err)
	}
	return err
}

func parseMode(mode domain.ParseMode) string {
	switch mode {
	case domain.ParseModeMarkdown:
		return tgbotapi.ModeMarkdown
	default:
		return string(mode)
	}
}
