package main

import (
	"os"
	"os/signal"

	"github.com/sandevgo/wearbot/pkg/log"
	"github.com/sandevgo/wearbot/pkg/srv"
	"github.com/spf13/cobra"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start the WearBot services",
	Long:  `Initializes and starts all configured transports (CLI prompt loop, Telegram) backed by the query pipeline.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		// logger setup
		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		logger := log.FromCtx(ctx)
		logger.Info().Msg("starting wearbot")

		// Define services using the setup.go logic
		services := NewServices(ctx)

		// Start services
		srv.StartServices(ctx, services)

		// Wait for shutdown signal
		srv.ShutdownServices(ctx, services)
		logger.Info().Msg("wearbot has been shut down gracefully")

		return nil
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
}
