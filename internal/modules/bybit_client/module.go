package bybit_client

import (
	"context"

	"bybit_bot/internal/modules/bybit_client/service"

	"go.uber.org/fx"
)

// Module: один клиент (и один транспорт) на процесс.
func Module() fx.Option {
	return fx.Module("bybit_client",
		fx.Provide(
			service.NewClient,
		),
		fx.Invoke(func(lc fx.Lifecycle, c *service.Client) {
			lc.Append(fx.Hook{
				OnStop: func(ctx context.Context) error {
					c.Close()
					return nil
				},
			})
		}),
	)
}
