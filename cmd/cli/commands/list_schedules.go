package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/jakechorley/workday-roster/pkg/core/services"
)

// ListSchedulesCmd creates the listSchedules command
func ListSchedulesCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "listSchedules [week]",
		Short: "List recorded assignments, newest first, optionally for one week",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var weekRef string
			if len(args) > 0 {
				weekRef = args[0]
			}

			var assignedBy string
			if mine, _ := cmd.Flags().GetBool("mine"); mine {
				assignedBy = app.Cfg.ActorID
			}

			entries, err := services.ListSchedules(app.Ctx, app.Database, app.Cfg, app.Logger, weekRef, assignedBy)
			if err != nil {
				return err
			}

			printSchedules(os.Stdout, entries)
			return nil
		},
	}

	cmd.Flags().Bool("mine", false, "Only list assignments recorded by the configured actor")

	return cmd
}
