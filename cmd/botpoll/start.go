package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/keepmind9/botpoll/internal/core"
	"github.com/keepmind9/botpoll/internal/logger"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	configFile string

	startCmd = &cobra.Command{
		Use:   "start",
		Short: "Start the bot",
		Long:  "Start polling the Bot API and dispatching commands to their handlers until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := core.LoadConfig(configFile)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			if err := logger.InitLogger(config.LoggerConfig()); err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}

			logger.WithFields(logrus.Fields{
				"config_file": configFile,
				"log_level":   config.Logging.Level,
				"log_file":    config.Logging.File,
			}).Info("logger-initialized")

			dispatcher, err := core.NewDispatcher(config, nil)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			fmt.Fprintln(cmd.OutOrStdout(), "botpoll starting, press Ctrl+C to stop")
			if err := dispatcher.Run(ctx); err != nil {
				return err
			}

			logger.Info("botpoll-stopped")
			return nil
		},
	}
)

func init() {
	startCmd.Flags().StringVarP(&configFile, "config", "c", "config.yaml", "Configuration file path")
}
