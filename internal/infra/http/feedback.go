package http

import (
	"context"
	"net/http"

	"tg-feedback-relay/internal/usecase/feedback"
)

const maxBodyBytes = 1 << 20

// Relayer обрабатывает запрос с отзывом.
type Relayer interface {
	Handle(ctx context.Context, req feedback.Request) feedback.Response
}

// FeedbackHandler отдаёт релею запросы любого метода: 405 формирует сам релей.
func FeedbackHandler(relay Relayer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := relay.Handle(r.Context(), feedback.Request{
			Method:  r.Method,
			Headers: r.Header,
			Body:    http.MaxBytesReader(w, r.Body, maxBodyBytes),
		})
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(resp.StatusCode)
		_, _ = w.Write([]byte(resp.Body))
	}
}

// MountFeedback регистрирует релей по указанному пути.
func (s *Server) MountFeedback(path string, relay Relayer) {
	s.Router.Handle(path, FeedbackHandler(relay))
}
