package notify

import (
	"context"
	"fmt"

	"bybit_bot/pkg/logger"

	tgbot "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Notifier: односторонний канал уведомлений для мониторов.
type Notifier interface {
	Send(ctx context.Context, chatID int64, msg string) error
}

// DeliveryError: сообщение не доставлено. Мониторы его логируют и живут дальше.
type DeliveryError struct {
	ChatID int64
	Err    error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("deliver to %d: %v", e.ChatID, e.Err)
}

func (e *DeliveryError) Unwrap() error { return e.Err }

// Sender: то, что нужно от tgbot.BotAPI для отправки.
type Sender interface {
	Send(c tgbot.Chattable) (tgbot.Message, error)
}

// Telegram: отправка через Bot API.
type Telegram struct {
	bot Sender
}

func NewTelegram(bot Sender) *Telegram {
	return &Telegram{bot: bot}
}

func (t *Telegram) Send(ctx context.Context, chatID int64, msg string) error {
	return t.SendMessage(ctx, tgbot.NewMessage(chatID, msg))
}

func (t *Telegram) Sendf(ctx context.Context, chatID int64, format string, args ...any) error {
	return t.Send(ctx, chatID, fmt.Sprintf(format, args...))
}

// SendMessage: для сообщений с клавиатурой или разметкой.
func (t *Telegram) SendMessage(_ context.Context, msg tgbot.MessageConfig) error {
	if _, err := t.bot.Send(msg); err != nil {
		return &DeliveryError{ChatID: msg.ChatID, Err: err}
	}
	return nil
}

// Stdout: без Telegram всё уходит в лог.
type Stdout struct{}

func NewStdout() *Stdout { return &Stdout{} }

func (s *Stdout) Send(_ context.Context, chatID int64, msg string) error {
	logger.Info("[notify chat=%d] %s", chatID, msg)
	return nil
}
