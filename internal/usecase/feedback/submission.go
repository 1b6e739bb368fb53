package feedback

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/go-playground/validator/v10"

	"tg-feedback-relay/internal/domain"
)

var (
	// ErrMalformedBody тело запроса не является JSON-объектом.
	ErrMalformedBody = errors.New("feedback: malformed body")
	// ErrInvalidMessage сообщение отсутствует, не строка или короче минимума.
	ErrInvalidMessage = errors.New("feedback: invalid or too short message")
	// ErrInvalidRating оценка отсутствует, не целое число или вне 1..5.
	ErrInvalidRating = errors.New("feedback: invalid rating")
)

// ParseSubmission читает тело запроса и проверяет отзыв.
// Сообщение проверяется раньше оценки, первая ошибка определяет результат.
func ParseSubmission(body io.Reader, validate *validator.Validate) (domain.Feedback, error) {
	if body == nil {
		return domain.Feedback{}, fmt.Errorf("%w: empty body", ErrMalformedBody)
	}
	raw, err := io.ReadAll(body)
	if err != nil {
		return domain.Feedback{}, fmt.Errorf("read body: %w", err)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return domain.Feedback{}, fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}
	if fields == nil {
		return domain.Feedback{}, fmt.Errorf("%w: null body", ErrMalformedBody)
	}

	var fb domain.Feedback
	message, ok := stringField(fields["message"])
	if !ok {
		return domain.Feedback{}, ErrInvalidMessage
	}
	if domain.MessageLength(message) < domain.MinMessageLength {
		return domain.Feedback{}, ErrInvalidMessage
	}
	fb.Message = message

	rating, ok := integerField(fields["rating"])
	if !ok {
		return domain.Feedback{}, ErrInvalidRating
	}
	fb.Rating = rating
	if err := validate.StructPartial(fb, "Rating"); err != nil {
		return domain.Feedback{}, ErrInvalidRating
	}
	return fb, nil
}

func stringField(raw json.RawMessage) (string, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '"' {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// integerField принимает только JSON-числа с целым значением: 4 и 4.0 допустимы, "4" и 4.5 нет.
func integerField(raw json.RawMessage) (int, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || (raw[0] != '-' && (raw[0] < '0' || raw[0] > '9')) {
		return 0, false
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return 0, false
	}
	if f != math.Trunc(f) || f < math.MinInt32 || f > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}
