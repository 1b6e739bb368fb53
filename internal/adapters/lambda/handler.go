package lambda

import (
	"context"
	"encoding/base64"
	"io"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"

	"tg-feedback-relay/internal/usecase/feedback"
)

// Relayer обрабатывает запрос с отзывом.
type Relayer interface {
	Handle(ctx context.Context, req feedback.Request) feedback.Response
}

// Handler переводит события API Gateway в запросы релея.
type Handler struct {
	relay Relayer
}

// NewHandler создаёт обработчик функции.
func NewHandler(relay Relayer) *Handler {
	return &Handler{relay: relay}
}

// Handle никогда не возвращает ошибку платформе: любой исход уже выражен кодом ответа.
func (h *Handler) Handle(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	resp := h.relay.Handle(ctx, feedback.Request{
		Method:  event.HTTPMethod,
		Headers: headers(event),
		Body:    body(event),
	})
	return events.APIGatewayProxyResponse{
		StatusCode: resp.StatusCode,
		Headers:    map[string]string{"Content-Type": "text/plain; charset=utf-8"},
		Body:       resp.Body,
	}, nil
}

func headers(event events.APIGatewayProxyRequest) http.Header {
	h := make(http.Header, len(event.Headers))
	for key, values := range event.MultiValueHeaders {
		for _, v := range values {
			h.Add(key, v)
		}
	}
	for key, v := range event.Headers {
		if h.Get(key) == "" {
			h.Set(key, v)
		}
	}
	return h
}

func body(event events.APIGatewayProxyRequest) io.Reader {
	r := io.Reader(strings.NewReader(event.Body))
	if event.IsBase64Encoded {
		r = base64.NewDecoder(base64.StdEncoding, r)
	}
	return r
}
