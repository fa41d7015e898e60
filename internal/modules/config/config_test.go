package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "values.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "BTCUSDT", cfg.Trading.Symbol)
	assert.Equal(t, 0.001, cfg.Trading.TargetProfit)
	assert.Equal(t, 0.0001, cfg.Trading.OrderSize)
	assert.Equal(t, 10*time.Second, cfg.Trading.PollInterval)
	assert.Equal(t, []string{"BTCUSDT", "ETHUSDT", "XRPUSDT"}, cfg.Trading.Pairs)
	assert.Equal(t, "UNIFIED", cfg.Bybit.AccountType)
	assert.Equal(t, 8080, cfg.Service.AdminPort)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
telegram:
  token: tg-token
  chat_id: 42
bybit:
  base_url: https://api.bybit.com
  api_key: key
  api_secret: secret
  account_type: CONTRACT
  timeout: 3s
trading:
  symbol: ETHUSDT
  target_profit: 0.5
  order_size: 0.01
  poll_interval: 2s
  pairs: [ETHUSDT]
db_dsn: postgres://localhost/bot
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "tg-token", cfg.Telegram.Token)
	assert.Equal(t, int64(42), cfg.Telegram.ChatID)
	assert.Equal(t, "https://api.bybit.com", cfg.Bybit.BaseURL)
	assert.Equal(t, "CONTRACT", cfg.Bybit.AccountType)
	assert.Equal(t, 3*time.Second, cfg.Bybit.Timeout)
	assert.Equal(t, "ETHUSDT", cfg.Trading.Symbol)
	assert.Equal(t, 0.5, cfg.Trading.TargetProfit)
	assert.Equal(t, 2*time.Second, cfg.Trading.PollInterval)
	assert.Equal(t, []string{"ETHUSDT"}, cfg.Trading.Pairs)
	assert.Equal(t, "postgres://localhost/bot", cfg.DB)
	// не указанное в файле остаётся дефолтом
	assert.Equal(t, 8080, cfg.Service.AdminPort)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
bybit:
  api_key: file-key
trading:
  target_profit: 0.5
`)
	t.Setenv("BYBIT_API_KEY", "env-key")
	t.Setenv("BYBIT_API_SECRET", "env-secret")
	t.Setenv("TARGET_PROFIT", "1.25")
	t.Setenv("SYMBOL", "XRPUSDT")
	t.Setenv("POLL_INTERVAL", "500ms")
	t.Setenv("ACCOUNTTYPE", "SPOT")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "env-key", cfg.Bybit.APIKey)
	assert.Equal(t, "env-secret", cfg.Bybit.APISecret)
	assert.Equal(t, 1.25, cfg.Trading.TargetProfit)
	assert.Equal(t, "XRPUSDT", cfg.Trading.Symbol)
	assert.Equal(t, 500*time.Millisecond, cfg.Trading.PollInterval)
	assert.Equal(t, "SPOT", cfg.Bybit.AccountType)
}

func TestLoadRejectsBrokenYAML(t *testing.T) {
	path := writeConfig(t, "trading: [unclosed")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode config file")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		errMsg string
	}{
		{name: "defaults ok", mutate: func(c *Config) {}},
		{name: "empty base url", mutate: func(c *Config) { c.Bybit.BaseURL = "" }, errMsg: "base_url"},
		{name: "zero target", mutate: func(c *Config) { c.Trading.TargetProfit = 0 }, errMsg: "target_profit"},
		{name: "zero poll", mutate: func(c *Config) { c.Trading.PollInterval = 0 }, errMsg: "poll_interval"},
		{name: "negative size", mutate: func(c *Config) { c.Trading.OrderSize = -1 }, errMsg: "order_size"},
		{name: "negative failed polls", mutate: func(c *Config) { c.Trading.MaxFailedPolls = -1 }, errMsg: "max_failed_polls"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}
