package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jakechorley/workday-roster/pkg/clients/sheetsclient"
	"github.com/jakechorley/workday-roster/pkg/core/services"
)

// PublishWeekCmd creates the publishWeek command
func PublishWeekCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "publishWeek <week>",
		Short: "Publish the roster for the week containing a date to the roster sheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app.Logger.Info("Initializing sheets client")
			client, err := sheetsclient.NewClient(app.Ctx, app.Cfg.GoogleCredentialsFile)
			if err != nil {
				return fmt.Errorf("failed to create sheets client: %w", err)
			}

			table, err := services.PublishWeek(app.Ctx, app.Database, client, app.Cfg, app.Logger, args[0])
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Published %q (%d workdays)\n\n", table.Title(), len(table.Rows))
			return nil
		},
	}
}
