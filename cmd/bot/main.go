package main

import (
	"log"
	"time"

	"bybit_bot/internal/journal"
	"bybit_bot/internal/modules/bybit_client"
	"bybit_bot/internal/modules/config"
	"bybit_bot/internal/modules/health"
	"bybit_bot/internal/modules/postgres"
	"bybit_bot/internal/notify"
	"bybit_bot/internal/runner"
	"bybit_bot/pkg/logger"
	"bybit_bot/pkg/tracing"

	telegram "bybit_bot/internal/modules/telegram_bot"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
)

const serviceName = "bybit_bot"

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatal(err)
	}
	if err = logger.Init(cfg.LogLevel); err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()
	logger.SetServiceName(serviceName)

	tc := tracing.Config{ServiceName: serviceName, Host: cfg.Tracing.Host, Port: cfg.Tracing.Port}
	if tc.Enabled() {
		_, closer, err := tracing.InitTracer(tc)
		if err != nil {
			logger.Fatal("tracing: %v", err)
		}
		defer closer()
	}

	app := fx.New(
		fx.WithLogger(func() fxevent.Logger {
			return &fxevent.ZapLogger{Logger: logger.InfoLogger}
		}),
		fx.StopTimeout(30*time.Second),
		config.Module(cfg),
		bybit_client.Module(),
		notifierModule(cfg),
		journalModule(cfg),
		runner.Module(),
		// health последним: ready выставляется, когда остальное уже стартовало
		health.Module(),
	)
	app.Run()
}

// notifierModule: Telegram при наличии токена, иначе уведомления в лог.
func notifierModule(cfg *config.Config) fx.Option {
	if cfg.Telegram.Token != "" {
		return telegram.Module()
	}
	logger.Warn("TELEGRAM_TOKEN не задан: чат-фронт выключен, уведомления пишутся в лог")
	return fx.Provide(func() notify.Notifier { return notify.NewStdout() })
}

// journalModule: Postgres при наличии DSN, иначе журнал в лог.
func journalModule(cfg *config.Config) fx.Option {
	if cfg.DB != "" {
		return postgres.Module()
	}
	return fx.Provide(func() runner.Journal { return journal.NewLog() })
}
