package main

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/sandevgo/wearbot/internal/config"
	"github.com/sandevgo/wearbot/internal/core"
	"github.com/sandevgo/wearbot/internal/providers/llm"
	"github.com/sandevgo/wearbot/internal/providers/weather"
	"github.com/sandevgo/wearbot/internal/providers/wiki"
	"github.com/sandevgo/wearbot/internal/service/agent"
	"github.com/sandevgo/wearbot/internal/service/command"
	"github.com/sandevgo/wearbot/internal/service/compose"
	"github.com/sandevgo/wearbot/internal/service/reason"
	"github.com/sandevgo/wearbot/internal/storage/sqlite"
	"github.com/sandevgo/wearbot/internal/transport/cli"
	"github.com/sandevgo/wearbot/internal/transport/telegram"
	"github.com/sandevgo/wearbot/pkg/log"
	"github.com/sandevgo/wearbot/pkg/srv"
)

func NewServices(ctx context.Context) []srv.Service {
	logger := log.FromCtx(ctx)
	services := make([]srv.Service, 0)

	// init env
	err := initEnv(ctx, config.GetRuntimePath())
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to init env")
	}

	// 1. Configuration
	appCfg := config.NewAppConfig(ctx)

	// 2. Storage
	db, turnsRepo, err := initStorage(ctx, appCfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize storage")
	}
	services = append(services, srv.NewCleanup(db.Close))

	// 3. Query pipeline
	ag := newAgent(ctx, appCfg, turnsRepo)

	// 4. Commands
	defaultMode, err := core.ParseMode(appCfg.DefaultMode)
	if err != nil {
		logger.Warn().Err(err).Str("mode", appCfg.DefaultMode).Msg("invalid default mode, using react")
	}
	modeState := command.NewModeState(defaultMode)
	router := command.New(command.NewCommands(ag, modeState))

	// 5. Transports
	transports, err := initTransports(ctx, appCfg, ag, router, modeState)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize transports")
	}
	services = append(services, transports...)

	return services
}

// newAgent wires the extraction, data and composition stages. A nil turns
// repository disables the persistent turn log (used by the one-shot ask).
func newAgent(ctx context.Context, appCfg *config.AppConfig, turns core.TurnsRepository) *agent.Agent {
	logger := log.FromCtx(ctx)

	aiProvider, err := llm.NewProvider(ctx, config.NewLLMConfig(ctx))
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize LLM provider")
	}

	weatherClient := weather.NewClient(config.NewWeatherConfig(ctx))
	wikiClient := wiki.NewClient()

	return agent.NewAgent(
		appCfg,
		reason.NewExtractor(aiProvider),
		weatherClient,
		wikiClient,
		compose.NewComposer(aiProvider),
		compose.NewAdvisor(aiProvider),
		turns,
	)
}

func initStorage(ctx context.Context, cfg *config.AppConfig) (*sql.DB, core.TurnsRepository, error) {
	db, err := sqlite.NewDB(ctx, cfg.GetDatabasePath())
	if err != nil {
		return nil, nil, err
	}
	return db, sqlite.NewTurnsRepo(db), nil
}

func initTransports(
	ctx context.Context,
	cfg *config.AppConfig,
	ag *agent.Agent,
	router core.CmdRouter,
	modeState *command.ModeState,
) ([]srv.Service, error) {
	var services []srv.Service

	if cfg.EnableCLI {
		rl, err := cli.NewReadLine(ag, router, modeState, cfg)
		if err != nil {
			return nil, err
		}
		services = append(services, rl)
	}

	if cfg.EnableTelegram {
		tgCfg := config.NewTelegramConfig(ctx)
		bot, err := telegram.NewBot(ctx, tgCfg, ag, router, modeState)
		if err != nil {
			return nil, err
		}
		services = append(services, bot)
	}

	return services, nil
}

func initEnv(ctx context.Context, runtimePath string) error {
	logger := log.FromCtx(ctx)
	envFile := filepath.Join(runtimePath, ".env")

	if _, err := os.Stat(envFile); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := godotenv.Load(envFile); err != nil {
		logger.Warn().Err(err).Str("path", envFile).Msg("failed to load .env file")
		return err
	}

	logger.Debug().Str("path", envFile).Msg("loaded .env file")
	return nil
}
