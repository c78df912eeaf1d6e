package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	DatabaseURL string `env:"DATABASE_URL, required"`
	Port        string `env:"PORT, default=8080"`
	LogLevel    string `env:"LOG_LEVEL, default=info"`
	LogPretty   bool   `env:"LOG_PRETTY, default=false"`
	Timezone    string `env:"TIMEZONE, default=America/Sao_Paulo"`

	// MigrateReset 啟動時先退回所有 migration 再重新執行，只用於開發環境
	MigrateReset bool `env:"MIGRATE_RESET, default=false"`

	Redis    RedisConfig
	Password PasswordConfig
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB, default=0"`
}

// PasswordConfig 密碼長度限制與編碼方式
type PasswordConfig struct {
	MinLength int    `env:"PASSWORD_MIN_LENGTH, default=6"`
	MaxLength int    `env:"PASSWORD_MAX_LENGTH, default=6"`
	Encoder   string `env:"PASSWORD_ENCODER, default=plain"`
}

var (
	ErrDatabaseURL    = errors.New("config: DATABASE_URL must not be empty")
	ErrPasswordBounds = errors.New("config: PASSWORD_MIN_LENGTH must be between 1 and PASSWORD_MAX_LENGTH")
	ErrEncoder        = errors.New("config: PASSWORD_ENCODER must be plain or bcrypt")
)

// Load 由環境變數讀取設定
func Load(ctx context.Context) (*Config, error) {
	return LoadWith(ctx, envconfig.OsLookuper())
}

// LoadWith 使用指定的 Lookuper 讀取設定，測試時可傳入 envconfig.MapLookuper
func LoadWith(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: l,
	}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.DatabaseURL == "" {
		return ErrDatabaseURL
	}
	if c.Password.MinLength < 1 || c.Password.MinLength > c.Password.MaxLength {
		return ErrPasswordBounds
	}
	switch c.Password.Encoder {
	case "plain", "bcrypt":
	default:
		return ErrEncoder
	}
	return nil
}

// ApplyTimezone 設定程序的預設時區 (time.Local)
func ApplyTimezone(name string) error {
	if name == "" {
		return nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return fmt.Errorf("config: load timezone %q: %w", name, err)
	}
	time.Local = loc
	return nil
}
