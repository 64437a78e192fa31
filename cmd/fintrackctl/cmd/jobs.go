package cmd

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Dan9191/fintrack/internal/app"
)

var (
	syncUserID int64
	daysAhead  int
)

var syncBudgetsCmd = &cobra.Command{
	Use:   "sync-budgets",
	Short: "Recompute budget spend, for every budget or one user's",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(ctx context.Context, a *app.App, log *logrus.Logger) error {
			var (
				n   int
				err error
			)
			if syncUserID > 0 {
				n, err = a.Service.SyncUserBudgets(ctx, syncUserID)
			} else {
				n, err = a.Service.SyncAllBudgets(ctx)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "synced %d budgets\n", n)
			return nil
		})
	},
}

var rolloverCmd = &cobra.Command{
	Use:   "rollover",
	Short: "Move past-due billing and payment dates to their next occurrence",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(ctx context.Context, a *app.App, log *logrus.Logger) error {
			n, err := a.Service.RolloverRecurring(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "rolled over %d records\n", n)
			return nil
		})
	},
}

var remindersCmd = &cobra.Command{
	Use:   "send-reminders",
	Short: "Email reminders for debt payments and subscription charges due soon",
	RunE: func(cmd *cobra.Command, args []string) error {
		if daysAhead < 1 {
			return fmt.Errorf("--days must be at least 1")
		}
		return withApp(cmd.Context(), func(ctx context.Context, a *app.App, log *logrus.Logger) error {
			n, err := a.Service.SendReminders(ctx, daysAhead)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "sent %d reminders\n", n)
			return nil
		})
	},
}

func init() {
	syncBudgetsCmd.Flags().Int64Var(&syncUserID, "user", 0, "only sync budgets created by this user id")
	remindersCmd.Flags().IntVar(&daysAhead, "days", 3, "remind about items due within this many days")
}
