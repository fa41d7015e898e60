package service

import (
	"context"
	"sync"

	"bybit_bot/internal/models"
	"bybit_bot/internal/modules/config"
	"bybit_bot/pkg/logger"

	tgbot "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Exchange: запросы биржи, которые показывает фронт.
type Exchange interface {
	GetBalance(ctx context.Context) (float64, error)
	GetLatestPrice(ctx context.Context, symbol string) (models.PriceSnapshot, error)
	GetOrderHistory(ctx context.Context, symbol string) ([]models.Order, error)
}

// Trader открывает позицию и ставит её на мониторинг.
type Trader interface {
	OpenPosition(ctx context.Context, symbol string, recipient int64) (string, error)
}

// MessageSender: отправка готового сообщения с клавиатурой.
type MessageSender interface {
	SendMessage(ctx context.Context, msg tgbot.MessageConfig) error
}

// Updates: источник апдейтов (long polling у *tgbot.BotAPI).
type Updates interface {
	GetUpdatesChan(config tgbot.UpdateConfig) tgbot.UpdatesChannel
	StopReceivingUpdates()
}

// Telegram: чат-фронт с меню, балансом, ценами и историей ордеров.
type Telegram struct {
	updates Updates
	out     MessageSender
	ex      Exchange
	trader  Trader

	symbol string
	pairs  []string
	await  *awaitStore

	wg sync.WaitGroup
}

func NewTelegram(cfg *config.Config, updates Updates, out MessageSender, ex Exchange, trader Trader) *Telegram {
	return &Telegram{
		updates: updates,
		out:     out,
		ex:      ex,
		trader:  trader,
		symbol:  cfg.Trading.Symbol,
		pairs:   cfg.Trading.Pairs,
		await:   newAwaitStore(),
	}
}

// Start запускает приём апдейтов в фоне.
func (t *Telegram) Start(ctx context.Context) {
	u := tgbot.NewUpdate(0)
	u.Timeout = 30
	updates := t.updates.GetUpdatesChan(u)

	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		for update := range updates {
			t.handleUpdate(ctx, update)
		}
		logger.Info("telegram: приём апдейтов остановлен")
	}()
}

// goHandle: запросы к бирже идут в своей горутине, чтобы медленный ордер
// одного чата не задерживал ответы остальным. Stop их дожидается.
func (t *Telegram) goHandle(fn func()) {
	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		fn()
	}()
}

// Stop закрывает канал апдейтов и ждёт обработчики не дольше ctx:
// текущий long poll может висеть до u.Timeout.
func (t *Telegram) Stop(ctx context.Context) {
	t.updates.StopReceivingUpdates()

	done := make(chan struct{})
	go func() {
		t.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		logger.Warn("telegram: не дождались остановки приёма апдейтов")
	}
}

func (t *Telegram) reply(ctx context.Context, chatID int64, text string, kb any) {
	msg := tgbot.NewMessage(chatID, text)
	if kb != nil {
		msg.ReplyMarkup = kb
	}
	t.send(ctx, msg)
}

func (t *Telegram) send(ctx context.Context, msg tgbot.MessageConfig) {
	if err := t.out.SendMessage(ctx, msg); err != nil {
		logger.Warn("telegram: %v", err)
	}
}
