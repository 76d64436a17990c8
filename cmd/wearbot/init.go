package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sandevgo/wearbot/internal/config"
	"github.com/sandevgo/wearbot/pkg/env"
	"github.com/sandevgo/wearbot/pkg/log"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:           "init",
	Short:         "Create the runtime directory and a starter .env",
	SilenceUsage:  true,
	SilenceErrors: false,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		logger := log.FromCtx(ctx)

		runtimePath := config.GetRuntimePath()
		if err := os.MkdirAll(runtimePath, 0755); err != nil {
			return fmt.Errorf("failed to create runtime directory: %w", err)
		}

		envPath := filepath.Join(runtimePath, ".env")
		if _, err := os.Stat(envPath); err == nil {
			logger.Info().Str("path", envPath).Msg(".env already exists, leaving it alone")
			return nil
		}

		content, err := starterEnv()
		if err != nil {
			return err
		}
		if err := os.WriteFile(envPath, []byte(content), 0600); err != nil {
			return fmt.Errorf("failed to write .env: %w", err)
		}

		logger.Info().Msgf("initialized runtime directory at: %s", runtimePath)
		logger.Info().Msg("Fill in OPENWEATHER_API_KEY and an LLM key, then run 'wearbot chat'.")
		return nil
	},
}

// starterEnv renders the default configuration with placeholder keys.
func starterEnv() (string, error) {
	sections := []any{
		&config.AppConfig{
			RuntimePath:      ".wearbot",
			DefaultMode:      "react",
			EnableCLI:        true,
			TurnHistoryLimit: 10,
		},
		&config.LLMConfig{
			Provider:     "openai",
			Model:        "gpt-4o-mini",
			OpenAIAPIKey: "sk-...",
		},
		&config.WeatherConfig{
			APIKey:  "your-openweathermap-key",
			BaseURL: "https://api.openweathermap.org",
		},
	}

	var out string
	for _, s := range sections {
		part, err := env.MarshalEnv(s)
		if err != nil {
			return "", err
		}
		out += part + "\n"
	}
	return out, nil
}

func init() {
	rootCmd.AddCommand(initCmd)
}
