package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "botpoll",
	Short: "botpoll is a long-polling Telegram bot with command dispatch",
	Long: `botpoll polls the Telegram Bot API for updates, routes "/command" messages
to their handlers, each running in its own pipeline, and hands everything
else to a single consumer.`,
}

// Execute executes the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(tokenCmd)
	rootCmd.AddCommand(versionCmd)
}
