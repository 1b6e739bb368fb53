package feedback

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"tg-feedback-relay/internal/domain"
	"tg-feedback-relay/internal/infra/metrics"
)

// Тексты ответов клиенту.
const (
	BodyMethodNotAllowed = "Method Not Allowed"
	BodyConfigError      = "Server configuration error."
	BodyInvalidMessage   = "Invalid or too short message."
	BodyInvalidRating    = "Invalid rating."
	BodyInternalError    = "An internal error occurred."
	BodyDeliveryFailed   = "Failed to send message via Telegram."
	BodySuccess          = "Success"
)

// Request входящий запрос в транспортно-независимом виде.
type Request struct {
	Method  string
	Headers http.Header
	Body    io.Reader
}

// Response ответ релея: код и текстовое тело.
type Response struct {
	StatusCode int
	Body       string
}

// Relay проверяет отзыв и пересылает его в Telegram.
type Relay struct {
	creds     domain.Credentials
	notifier  domain.Notifier
	validator *validator.Validate
	log       zerolog.Logger
}

// NewRelay создаёт релей. Пустые креды не ошибка конструктора: каждый запрос получит 500.
func NewRelay(creds domain.Credentials, notifier domain.Notifier, logger zerolog.Logger) *Relay {
	return &Relay{
		creds:     creds,
		notifier:  notifier,
		validator: validator.New(),
		log:       logger.With().Str("component", "feedback_relay").Logger(),
	}
}

// Handle обрабатывает один запрос. Все ошибки превращаются в HTTP-ответ.
func (r *Relay) Handle(ctx context.Context, req Request) (resp Response) {
	if req.Method != http.MethodPost {
		return r.respond(metrics.OutcomeMethodNotAllowed, http.StatusMethodNotAllowed, BodyMethodNotAllowed)
	}

	if !r.creds.Complete() {
		r.log.Error().
			Bool("bot_token_set", r.creds.BotToken != "").
			Bool("chat_id_set", r.creds.ChatID != "").
			Msg("relay: bot token or chat id not configured")
		return r.respond(metrics.OutcomeConfigError, http.StatusInternalServerError, BodyConfigError)
	}

	logger := r.log.With().Str("feedback_id", uuid.NewString()).Logger()
	defer func() {
		if rec := recover(); rec != nil {
			logger.Error().Interface("panic", rec).Msg("relay: server error")
			resp = r.respond(metrics.OutcomeInternalError, http.StatusInternalServerError, BodyInternalError)
		}
	}()

	fb, err := ParseSubmission(req.Body, r.validator)
	switch {
	case errors.Is(err, ErrInvalidMessage):
		return r.respond(metrics.OutcomeInvalidMessage, http.StatusBadRequest, BodyInvalidMessage)
	case errors.Is(err, ErrInvalidRating):
		return r.respond(metrics.OutcomeInvalidRating, http.StatusBadRequest, BodyInvalidRating)
	case err != nil:
		logger.Error().Err(err).Msg("relay: server error")
		return r.respond(metrics.OutcomeInternalError, http.StatusInternalServerError, BodyInternalError)
	}

	notification := domain.Notification{
		ChatID:    r.creds.ChatID,
		Text:      FormatNotification(fb, ExtractContext(req)),
		ParseMode: domain.ParseModeMarkdown,
	}

	// Отправка не прерывается, если клиент отключился.
	if err := r.notifier.Notify(context.WithoutCancel(ctx), notification); err != nil {
		if errors.Is(err, domain.ErrDeliveryRejected) {
			logger.Error().Err(err).Msg("relay: telegram api error")
			return r.respond(metrics.OutcomeDeliveryFailed, http.StatusBadGateway, BodyDeliveryFailed)
		}
		logger.Error().Err(err).Msg("relay: server error")
		return r.respond(metrics.OutcomeInternalError, http.StatusInternalServerError, BodyInternalError)
	}

	metrics.ObserveRating(fb.Rating)
	logger.Info().Int("rating", fb.Rating).Msg("relay: feedback delivered")
	return r.respond(metrics.OutcomeDelivered, http.StatusOK, BodySuccess)
}

// ExtractContext достаёт метод и User-Agent из запроса.
func ExtractContext(req Request) domain.RequestContext {
	userAgent := req.Headers.Get("User-Agent")
	if userAgent == "" {
		userAgent = domain.UnknownUserAgent
	}
	return domain.RequestContext{HTTPMethod: req.Method, UserAgent: userAgent}
}

func (r *Relay) respond(outcome string, status int, body string) Response {
	metrics.IncFeedbackOutcome(outcome)
	return Response{StatusCode: status, Body: body}
}
