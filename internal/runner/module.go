package runner

import (
	"context"

	"bybit_bot/internal/modules/bybit_client/service"
	"bybit_bot/internal/modules/config"
	"bybit_bot/pkg/logger"

	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module("runner",
		fx.Provide(
			func(c *service.Client) Exchange { return c },
			NewManager, // *Manager
		),
		fx.Invoke(func(lc fx.Lifecycle, cfg *config.Config, m *Manager) {
			lc.Append(fx.Hook{
				OnStart: func(ctx context.Context) error {
					if !cfg.Trading.OpenOnStart {
						return nil
					}
					symbol := cfg.Trading.Symbol
					orderID, err := m.OpenPosition(ctx, symbol, cfg.Telegram.ChatID)
					if err != nil {
						// процесс живёт дальше: фронт и health остаются доступны
						logger.Error("[%s] не удалось открыть позицию на старте: %v", symbol, err)
						return nil
					}
					logger.Info("[%s] позиция открыта на старте, order=%s", symbol, orderID)
					return nil
				},
				OnStop: func(ctx context.Context) error {
					logger.Info("runner: остановка, активных мониторов %d", m.Active())
					return m.Stop(ctx)
				},
			})
		}),
	)
}
