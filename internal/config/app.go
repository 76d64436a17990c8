package config

import (
	"context"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/wearbot/pkg/log"
)

type AppConfig struct {
	RuntimePath string `env:"WEARBOT_RUNTIME_PATH" envDefault:".wearbot"`

	// Default reasoning mode for queries without an explicit mode token
	DefaultMode string `env:"WEARBOT_DEFAULT_MODE" envDefault:"react"`

	// Transport Flags
	EnableTelegram bool `env:"ENABLE_TELEGRAM" envDefault:"false"`
	EnableCLI      bool `env:"ENABLE_CLI" envDefault:"true"`

	// How many past turns /last can recall
	TurnHistoryLimit int `env:"TURN_HISTORY_LIMIT" envDefault:"10"`
}

func NewAppConfig(ctx context.Context) *AppConfig {
	c := &AppConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse App config")
	}
	return c
}

func (c AppConfig) GetRuntimePath() string {
	return c.RuntimePath
}

func (c AppConfig) GetDatabasePath() string {
	return filepath.Join(c.RuntimePath, "wearbot.db")
}
