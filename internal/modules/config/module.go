package config

import "go.uber.org/fx"

// Module отдаёт уже загруженный конфиг в граф.
func Module(cfg *Config) fx.Option {
	return fx.Module("config",
		fx.Supply(cfg),
	)
}
