package cmd

import (
	"fmt"

	"art-progression/config"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	logger *zap.Logger

	rootCmd = &cobra.Command{
		Use:   "art-progression",
		Short: "Day-numbered art progression gallery",
		Long: `Serves a public gallery of dated artwork photos with day numbers and
streaks, plus an admin API for uploading and editing them.

Run without a subcommand to start the server.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config.LoadEnv()

			cfg := zap.NewProductionConfig()
			level, err := zapcore.ParseLevel(config.LOG_LEVEL)
			if err != nil {
				level = zapcore.InfoLevel
			}
			cfg.Level = zap.NewAtomicLevelAt(level)
			logger, err = cfg.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			zap.ReplaceGlobals(logger)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, args)
		},
	}
)

// Execute executes the root command.
func Execute() error {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(serveCmd, seedCmd, statsCmd)
}
