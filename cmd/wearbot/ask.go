package main

import (
	"fmt"
	"strings"

	"github.com/sandevgo/wearbot/internal/config"
	"github.com/sandevgo/wearbot/internal/core"
	"github.com/sandevgo/wearbot/pkg/log"
	"github.com/spf13/cobra"
)

var (
	askMode string
	askWear bool
)

var askCmd = &cobra.Command{
	Use:   "ask [query]",
	Short: "Ask a single weather question and exit",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		logger := log.FromCtx(ctx)

		if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
			logger.Fatal().Err(err).Msg("failed to init env")
		}
		appCfg := config.NewAppConfig(ctx)

		mode, err := core.ParseMode(askMode)
		if err != nil {
			logger.Warn().Str("mode", askMode).Msg("invalid mode, using react")
		}

		// One-shot run, no turn log
		ag := newAgent(ctx, appCfg, nil)

		query := strings.Join(args, " ")
		fmt.Println(ag.Run(ctx, "cli-once", mode, query))

		if askWear {
			fmt.Println()
			fmt.Println(ag.Recommend(ctx))
		}
		return nil
	},
}

func init() {
	askCmd.Flags().StringVarP(&askMode, "mode", "m", "", "reasoning mode: react, cot or tot")
	askCmd.Flags().BoolVarP(&askWear, "wear", "w", false, "also print a clothing recommendation")
	rootCmd.AddCommand(askCmd)
}
