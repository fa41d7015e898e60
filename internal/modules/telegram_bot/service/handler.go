package service

import (
	"context"
	"errors"
	"strings"

	"bybit_bot/internal/runner"
	"bybit_bot/pkg/logger"

	tgbot "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (t *Telegram) handleUpdate(ctx context.Context, update tgbot.Update) {
	msg := update.Message
	if msg == nil || msg.Chat == nil {
		// callback и inline-режим фронт не использует
		return
	}
	chatID := msg.Chat.ID

	if msg.IsCommand() {
		switch msg.Command() {
		case "start":
			t.handleStart(ctx, chatID)
		default:
			t.reply(ctx, chatID, "Пожалуйста, выберите доступный вариант из меню.", mainMenu())
		}
		return
	}

	t.handleText(ctx, chatID, strings.TrimSpace(msg.Text))
}

func (t *Telegram) handleStart(ctx context.Context, chatID int64) {
	t.await.clear(chatID)
	t.reply(ctx, chatID, "Привет! Добро пожаловать в бота!", nil)
	t.reply(ctx, chatID, "Привет! Вот что я могу:", mainMenu())
}

func (t *Telegram) handleText(ctx context.Context, chatID int64, text string) {
	switch text {
	case btnBalance:
		t.goHandle(func() { t.handleBalance(ctx, chatID) })
		return
	case btnPrice:
		t.await.set(chatID, awaitPrice)
		t.reply(ctx, chatID, "Выберите валютную пару:", pairsMenu(t.pairs))
		return
	case btnHistory:
		t.goHandle(func() { t.handleHistory(ctx, chatID) })
		return
	case btnOrder:
		t.await.set(chatID, awaitOrder)
		t.reply(ctx, chatID, "Выберите валютную пару для размещения ордера:", pairsMenu(t.pairs))
		return
	case btnBack:
		t.await.clear(chatID)
		t.reply(ctx, chatID, "Вы вернулись в главное меню.", mainMenu())
		return
	}

	if symbol, ok := t.knownSymbol(text); ok {
		t.handlePair(ctx, chatID, symbol)
		return
	}

	t.reply(ctx, chatID, "Пожалуйста, выберите доступный вариант из меню.", mainMenu())
}

// handlePair: пара из меню. Цена или ордер зависит от того,
// через какой пункт пользователь пришёл. Меню пар остаётся открытым.
func (t *Telegram) handlePair(ctx context.Context, chatID int64, symbol string) {
	key, ok := t.await.peek(chatID)
	if !ok {
		t.reply(ctx, chatID, "Сначала выберите действие в меню.", mainMenu())
		return
	}

	switch key {
	case awaitPrice:
		t.goHandle(func() { t.handlePrice(ctx, chatID, symbol) })
	case awaitOrder:
		t.goHandle(func() { t.handleOrder(ctx, chatID, symbol) })
	}
}

func (t *Telegram) handlePrice(ctx context.Context, chatID int64, symbol string) {
	snap, err := t.ex.GetLatestPrice(ctx, symbol)
	if err != nil {
		logger.Error("[%s] цена для чата %d: %v", symbol, chatID, err)
		t.reply(ctx, chatID, "❌ Не удалось получить цену для "+symbolToPair(symbol)+".", nil)
		return
	}

	msg := tgbot.NewMessage(chatID, formatPrice(snap))
	msg.ParseMode = tgbot.ModeMarkdown
	t.send(ctx, msg)
}

func (t *Telegram) handleOrder(ctx context.Context, chatID int64, symbol string) {
	orderID, err := t.trader.OpenPosition(ctx, symbol, chatID)
	if errors.Is(err, runner.ErrNotMonitored) {
		logger.Error("[%s] ордер %s без мониторинга: %v", symbol, orderID, err)
		t.reply(ctx, chatID, "⚠️ Ордер размещен для "+symbol+", но мониторинг не запущен. ID ордера: "+orderID, nil)
		return
	}
	if err != nil {
		logger.Error("Не удалось разместить ордер для %s: %v", symbol, err)
		t.reply(ctx, chatID, "Не удалось разместить ордер. Убедитесь, что у вас есть средства на счете.", nil)
		return
	}
	t.reply(ctx, chatID, "Ордер успешно размещен для "+symbol+". ID ордера: "+orderID, nil)
}

func (t *Telegram) handleBalance(ctx context.Context, chatID int64) {
	balance, err := t.ex.GetBalance(ctx)
	if err != nil {
		logger.Error("баланс для чата %d: %v", chatID, err)
		t.reply(ctx, chatID, "API key is invalid", nil)
		return
	}
	t.reply(ctx, chatID, formatBalance(balance), nil)
}

// handleHistory: по сообщению на ордер, символ по умолчанию из конфига.
func (t *Telegram) handleHistory(ctx context.Context, chatID int64) {
	orders, err := t.ex.GetOrderHistory(ctx, t.symbol)
	if err != nil || len(orders) == 0 {
		if err != nil {
			logger.Warn("[%s] история ордеров: %v", t.symbol, err)
		}
		t.reply(ctx, chatID, "❌ No orders found.", nil)
		return
	}

	for _, o := range orders {
		msg := tgbot.NewMessage(chatID, formatOrder(o))
		msg.ParseMode = tgbot.ModeMarkdown
		t.send(ctx, msg)
	}
}
