package domain

import "unicode/utf16"

// UnknownUserAgent подставляется, если клиент не прислал User-Agent.
const UnknownUserAgent = "Not available"

// Верхняя граница оценки и минимальная длина сообщения.
const (
	MaxRating        = 5
	MinMessageLength = 5
)

// Feedback представляет отзыв пользователя.
type Feedback struct {
	Message string
	Rating  int `validate:"min=1,max=5"`
}

// MessageLength считает длину в UTF-16 единицах, как браузерные клиенты: эмодзи занимает две.
func MessageLength(s string) int {
	return len(utf16.Encode([]rune(s)))
}

// RequestContext описывает данные входящего запроса, не относящиеся к телу.
type RequestContext struct {
	HTTPMethod string
	UserAgent  string
}

// ParseMode задаёт разметку уведомления.
type ParseMode string

// ParseModeMarkdown соответствует legacy Markdown в Bot API.
const ParseModeMarkdown ParseMode = "Markdown"

// Notification готовое к отправке уведомление.
type Notification struct {
	ChatID    string
	Text      string
	ParseMode ParseMode
}

// Credentials содержит секреты бота. Значения никогда не логируются.
type Credentials struct {
	BotToken string
	ChatID   string
}

// Complete сообщает, заданы ли оба значения.
func (c Credentials) Complete() bool {
	return c.BotToken != "" && c.ChatID != ""
}

// String скрывает значения при форматировании.
func (c Credentials) String() string {
	return "Credentials{BotToken:[redacted], ChatID:[redacted]}"
}

// GoString скрывает значения при форматировании через %#v.
func (c Credentials) GoString() string {
	return c.String()
}
