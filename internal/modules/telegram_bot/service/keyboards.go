package service

import tgbot "github.com/go-telegram-bot-api/telegram-bot-api/v5"

const (
	btnBalance = "Показать текущий баланс"
	btnPrice   = "Выбрать валютную пару и показать цену"
	btnHistory = "История ордеров"
	btnOrder   = "Разместить ордер"
	btnBack    = "Назад в меню"
)

func mainMenu() tgbot.ReplyKeyboardMarkup {
	kb := tgbot.NewReplyKeyboard(
		tgbot.NewKeyboardButtonRow(tgbot.NewKeyboardButton(btnBalance)),
		tgbot.NewKeyboardButtonRow(tgbot.NewKeyboardButton(btnPrice)),
		tgbot.NewKeyboardButtonRow(tgbot.NewKeyboardButton(btnHistory)),
		tgbot.NewKeyboardButtonRow(tgbot.NewKeyboardButton(btnOrder)),
	)
	kb.ResizeKeyboard = true
	return kb
}

// pairsMenu: по кнопке на пару и "назад".
func pairsMenu(symbols []string) tgbot.ReplyKeyboardMarkup {
	rows := make([][]tgbot.KeyboardButton, 0, len(symbols)+1)
	for _, s := range symbols {
		rows = append(rows, tgbot.NewKeyboardButtonRow(tgbot.NewKeyboardButton(symbolToPair(s))))
	}
	rows = append(rows, tgbot.NewKeyboardButtonRow(tgbot.NewKeyboardButton(btnBack)))

	kb := tgbot.NewReplyKeyboard(rows...)
	kb.ResizeKeyboard = true
	return kb
}
