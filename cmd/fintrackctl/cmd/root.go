// Package cmd provides the fintrackctl maintenance commands.
package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Dan9191/fintrack/internal/app"
	"github.com/Dan9191/fintrack/internal/config"
)

var debug bool

var rootCmd = &cobra.Command{
	Use:   "fintrackctl",
	Short: "Maintenance tasks for the fintrack API",
	Long: `fintrackctl runs the jobs the API server schedules, on demand.

Example:
  fintrackctl migrate
  fintrackctl sync-budgets --user 42
  fintrackctl rollover`,
	SilenceUsage: true,
}

// Execute runs the command line
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(syncBudgetsCmd)
	rootCmd.AddCommand(rolloverCmd)
	rootCmd.AddCommand(remindersCmd)
}

// withApp loads the config, connects the backends and hands them to fn
func withApp(ctx context.Context, fn func(ctx context.Context, a *app.App, log *logrus.Logger) error) error {
	cfg, err := config.NewConfig()
	if err != nil {
		return err
	}
	level := cfg.LogLevel
	if debug {
		level = logrus.DebugLevel.String()
	}
	logger := app.NewLogger(level)

	a, err := app.Setup(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close(context.Background())
	return fn(ctx, a, logger)
}
