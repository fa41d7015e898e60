package postgres

import (
	"context"

	"bybit_bot/internal/journal"
	"bybit_bot/internal/modules/config"
	"bybit_bot/internal/runner"
	"bybit_bot/pkg/db"
	"bybit_bot/pkg/logger"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// Module поднимает пул и журнал сессий в Postgres.
func Module() fx.Option {
	return fx.Module("postgres",
		fx.Provide(
			func(lc fx.Lifecycle, cfg *config.Config) (*db.PgTxManager, error) {
				ctx := context.Background()
				poolMaster, err := db.NewPool(ctx, db.PoolConfig{
					DSN: cfg.DB,
				})
				if err != nil {
					return nil, errors.Wrap(err, "failed to create poolMaster")
				}

				if err = poolMaster.Ping(ctx); err != nil {
					poolMaster.Close()
					return nil, errors.Wrap(err, "ping postgres")
				}

				m := db.NewPgTxManager(poolMaster)
				lc.Append(fx.Hook{
					OnStop: func(context.Context) error {
						logger.Info("postgres: закрываю пул")
						m.Close()
						return nil
					},
				})
				return m, nil
			},
			func(m *db.PgTxManager) (runner.Journal, error) {
				j := journal.NewPG(m)
				if err := j.EnsureSchema(context.Background()); err != nil {
					return nil, err
				}
				return j, nil
			},
		),
	)
}
