package telegram

import (
	"context"

	"bybit_bot/internal/modules/bybit_client/service"
	"bybit_bot/internal/modules/config"
	tgservice "bybit_bot/internal/modules/telegram_bot/service"
	"bybit_bot/internal/notify"
	"bybit_bot/internal/runner"

	tgbot "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module("telegram",
		// 1. Bot API
		fx.Provide(
			func(cfg *config.Config) (*tgbot.BotAPI, error) {
				b, err := tgbot.NewBotAPI(cfg.Telegram.Token)
				if err != nil {
					return nil, errors.Wrap(err, "telegram bot api")
				}
				return b, nil
			},
		),

		// 2. Отправка: общая для мониторов и фронта
		fx.Provide(
			func(b *tgbot.BotAPI) *notify.Telegram { return notify.NewTelegram(b) },
			func(n *notify.Telegram) notify.Notifier { return n },
		),

		// 3. Фронт
		fx.Provide(
			func(cfg *config.Config, b *tgbot.BotAPI, n *notify.Telegram, c *service.Client, m *runner.Manager) *tgservice.Telegram {
				return tgservice.NewTelegram(cfg, b, n, c, m)
			},
		),

		fx.Invoke(
			func(lc fx.Lifecycle, t *tgservice.Telegram) {
				lc.Append(fx.Hook{
					OnStart: func(context.Context) error {
						// ctx хука живёт только до конца старта
						t.Start(context.Background())
						return nil
					},
					OnStop: func(ctx context.Context) error {
						t.Stop(ctx)
						return nil
					},
				})
			},
		),
	)
}
