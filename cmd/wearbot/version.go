package main

import (
	"fmt"

	"github.com/sandevgo/wearbot/internal/core"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the WearBot version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("%s %s\n", core.BotName, core.BotVersion)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
