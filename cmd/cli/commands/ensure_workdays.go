package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jakechorley/workday-roster/pkg/core/services"
)

// EnsureWorkdaysCmd creates the ensureWorkdays command
func EnsureWorkdaysCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "ensureWorkdays <from> <to>",
		Short: "Create workdays for every date the configured rule yields in a range",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			workdays, err := services.EnsureWorkdays(app.Ctx, app.Database, app.Cfg, app.Logger, args[0], args[1])
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ %d workdays ensured\n\n", len(workdays))
			for _, wd := range workdays {
				fmt.Printf("  %s  %s\n", wd.Date.Format("Mon 2006-01-02"), wd.ID)
			}
			fmt.Println()

			return nil
		},
	}
}
