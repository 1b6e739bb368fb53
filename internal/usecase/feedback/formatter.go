package feedback

import (
	"fmt"
	"strings"

	"tg-feedback-relay/internal/domain"
)

const (
	filledStar = "⭐"
	emptyStar  = "✩"
	separator  = "--------------------------------------"
)

// RatingStars рисует оценку звёздами: rating заполненных, остаток до пяти пустых.
func RatingStars(rating int) string {
	filled := min(max(rating, 0), domain.MaxRating)
	return strings.Repeat(filledStar, filled) + strings.Repeat(emptyStar, domain.MaxRating-filled)
}

// FormatNotification формирует Markdown-текст уведомления.
// Текст отзыва вставляется как есть, без экранирования разметки.
func FormatNotification(fb domain.Feedback, rc domain.RequestContext) string {
	lines := []string{
		"📝 *New Feedback Received!*",
		separator,
		fmt.Sprintf("*Rating:* %s (%d/%d)", RatingStars(fb.Rating), fb.Rating, domain.MaxRating),
		"*Message:*",
		fb.Message,
		separator,
		fmt.Sprintf("*From:* `%s`", rc.UserAgent),
	}
	return strings.Join(lines, "\n")
}
