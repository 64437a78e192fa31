package cmd

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Dan9191/fintrack/internal/app"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the users schema and the Mongo indexes",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(ctx context.Context, a *app.App, log *logrus.Logger) error {
			if err := a.Migrate(ctx); err != nil {
				return err
			}
			log.Info("Migrations applied")
			return nil
		})
	},
}
