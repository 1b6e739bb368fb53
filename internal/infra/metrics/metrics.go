package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Исходы обработки отзыва.
const (
	OutcomeMethodNotAllowed = "method_not_allowed"
	OutcomeConfigError      = "config_error"
	OutcomeInvalidMessage   = "invalid_message"
	OutcomeInvalidRating    = "invalid_rating"
	OutcomeInternalError    = "internal_error"
	OutcomeDeliveryFailed   = "delivery_failed"
	OutcomeDelivered        = "delivered"
)

var (
	FeedbackRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "feedback_requests_total",
		Help: "Количество запросов с отзывами по исходу обработки",
	}, []string{"outcome"})

	FeedbackRatingsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "feedback_ratings_total",
		Help: "Доставленные отзывы по оценке",
	}, []string{"rating"})

	BotSendErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "bot_send_errors_total",
		Help: "Ошибки отправки сообщений ботом",
	})

	NetworkRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "network_request_duration_seconds",
		Help:    "Длительность сетевых запросов",
		Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 15, 30, 60},
	}, []string{"component", "operation", "target", "status"})

	NetworkRequestTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "network_request_total",
		Help: "Количество сетевых запросов",
	}, []string{"component", "operation", "target", "status"})
)

// MustRegister регистрирует метрики.
func MustRegister(registerer prometheus.Registerer) {
	registerer.MustRegister(
		FeedbackRequestsTotal,
		FeedbackRatingsTotal,
		BotSendErrors,
		NetworkRequestDuration,
		NetworkRequestTotal,
	)
}

// Handler отдаёт метрики в формате Prometheus.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveNetworkRequest записывает длительность и статус сетевого запроса.
func ObserveNetworkRequest(component, operation, target string, start time.Time, err error) {
	if component == "" {
		component = "unknown"
	}
	if operation == "" {
		operation = "unknown"
	}
	if target == "" {
		target = "unknown"
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	duration := time.Since(start).Seconds()
	NetworkRequestDuration.WithLabelValues(component, operation, target, status).Observe(duration)
	NetworkRequestTotal.WithLabelValues(component, operation, target, status).Inc()
}

// IncFeedbackOutcome увеличивает счётчик исходов.
func IncFeedbackOutcome(outcome string) {
	FeedbackRequestsTotal.WithLabelValues(outcome).Inc()
}

// ObserveRating учитывает оценку доставленного отзыва.
func ObserveRating(rating int) {
	FeedbackRatingsTotal.WithLabelValues(strconv.Itoa(rating)).Inc()
}
