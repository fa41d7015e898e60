package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"
)

const (
	configFilePathENV = "CONFIG_FILE"
	configDirENV      = "CONFIG_DIR"
	defaultConfigFile = "values_local.yaml"
)

// Config ...
type Config struct {
	Telegram struct {
		Token string `yaml:"token"`
		// ChatID: получатель уведомлений без фронта (open_on_start).
		ChatID int64 `yaml:"chat_id"`
	} `yaml:"telegram"`

	Bybit struct {
		BaseURL     string        `yaml:"base_url"`
		APIKey      string        `yaml:"api_key"`
		APISecret   string        `yaml:"api_secret"`
		AccountType string        `yaml:"account_type"`
		Timeout     time.Duration `yaml:"timeout"`
	} `yaml:"bybit"`

	Trading struct {
		Symbol string `yaml:"symbol"`
		// TargetProfit в процентах: 0.001 => 0.001%
		TargetProfit float64       `yaml:"target_profit"`
		OrderSize    float64       `yaml:"order_size"`
		PollInterval time.Duration `yaml:"poll_interval"`
		// MaxFailedPolls: 0 значит без лимита.
		MaxFailedPolls int      `yaml:"max_failed_polls"`
		Pairs          []string `yaml:"pairs"`
		OpenOnStart    bool     `yaml:"open_on_start"`
	} `yaml:"trading"`

	DB string `yaml:"db_dsn"`

	Service struct {
		Host      string `yaml:"host"`
		AdminPort int    `yaml:"admin_port"`
	} `yaml:"service"`

	Tracing struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
	} `yaml:"tracing"`

	LogLevel string `yaml:"log_level"`
}

// Default: значения по умолчанию, testnet.
func Default() *Config {
	cfg := &Config{}
	cfg.Bybit.BaseURL = "https://api-testnet.bybit.com"
	cfg.Bybit.AccountType = "UNIFIED"
	cfg.Bybit.Timeout = 10 * time.Second

	cfg.Trading.Symbol = "BTCUSDT"
	cfg.Trading.TargetProfit = 0.001
	cfg.Trading.OrderSize = 0.0001
	cfg.Trading.PollInterval = 10 * time.Second
	cfg.Trading.Pairs = []string{"BTCUSDT", "ETHUSDT", "XRPUSDT"}

	cfg.Service.AdminPort = 8080
	cfg.LogLevel = "info"
	return cfg
}

// NewConfig читает configs/<CONFIG_FILE>, затем .env и переменные окружения.
func NewConfig() (*Config, error) {
	dir := os.Getenv(configDirENV)
	if dir == "" {
		dir = "configs"
	}
	name := os.Getenv(configFilePathENV)
	if name == "" {
		name = defaultConfigFile
	}
	return Load(filepath.Join(dir, name))
}

// Load собирает конфиг из файла (если он есть) и окружения.
func Load(path string) (*Config, error) {
	cfg := Default()

	if err := decodeFile(path, cfg); err != nil {
		return nil, err
	}

	_ = godotenv.Load()
	applyEnv(cfg, viper.New())

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decodeFile(path string, cfg *Config) error {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrap(err, "open config file")
	}
	defer func() {
		_ = file.Close()
	}()

	if err := yaml.NewDecoder(file).Decode(cfg); err != nil {
		return errors.Wrapf(err, "decode config file %s", path)
	}
	return nil
}

// applyEnv перекрывает файл переменными окружения.
func applyEnv(cfg *Config, v *viper.Viper) {
	v.AutomaticEnv()

	if v.IsSet("TELEGRAM_TOKEN") {
		cfg.Telegram.Token = v.GetString("TELEGRAM_TOKEN")
	}
	if v.IsSet("TELEGRAM_CHAT_ID") {
		cfg.Telegram.ChatID = v.GetInt64("TELEGRAM_CHAT_ID")
	}
	if v.IsSet("API_URL") {
		cfg.Bybit.BaseURL = v.GetString("API_URL")
	}
	if v.IsSet("BYBIT_API_KEY") {
		cfg.Bybit.APIKey = v.GetString("BYBIT_API_KEY")
	}
	if v.IsSet("BYBIT_API_SECRET") {
		cfg.Bybit.APISecret = v.GetString("BYBIT_API_SECRET")
	}
	if v.IsSet("ACCOUNTTYPE") {
		cfg.Bybit.AccountType = v.GetString("ACCOUNTTYPE")
	}
	if v.IsSet("SYMBOL") {
		cfg.Trading.Symbol = v.GetString("SYMBOL")
	}
	if v.IsSet("TARGET_PROFIT") {
		cfg.Trading.TargetProfit = v.GetFloat64("TARGET_PROFIT")
	}
	if v.IsSet("ORDER_SIZE") {
		cfg.Trading.OrderSize = v.GetFloat64("ORDER_SIZE")
	}
	if v.IsSet("POLL_INTERVAL") {
		if d := v.GetDuration("POLL_INTERVAL"); d > 0 {
			cfg.Trading.PollInterval = d
		}
	}
	if v.IsSet("DATABASE_DSN") {
		cfg.DB = v.GetString("DATABASE_DSN")
	}
	if v.IsSet("LOG_LEVEL") {
		cfg.LogLevel = v.GetString("LOG_LEVEL")
	}
}

func (c *Config) Validate() error {
	switch {
	case c.Bybit.BaseURL == "":
		return errors.New("bybit.base_url is required")
	case c.Trading.TargetProfit <= 0:
		return errors.Errorf("trading.target_profit must be > 0, got %v", c.Trading.TargetProfit)
	case c.Trading.PollInterval <= 0:
		return errors.Errorf("trading.poll_interval must be > 0, got %s", c.Trading.PollInterval)
	case c.Trading.OrderSize < 0:
		return errors.Errorf("trading.order_size must be >= 0, got %v", c.Trading.OrderSize)
	case c.Trading.MaxFailedPolls < 0:
		return errors.Errorf("trading.max_failed_polls must be >= 0, got %d", c.Trading.MaxFailedPolls)
	}
	return nil
}
