package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jakechorley/workday-roster/pkg/core/services"
)

// ExportWeekCmd creates the exportWeek command
func ExportWeekCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "exportWeek <week> <file.xlsx>",
		Short: "Export the roster for the week containing a date as an XLSX workbook",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Create(args[1])
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", args[1], err)
			}
			defer f.Close()

			table, err := services.ExportWeek(app.Ctx, app.Database, app.Cfg, app.Logger, args[0], f)
			if err != nil {
				return err
			}

			if err := f.Close(); err != nil {
				return fmt.Errorf("failed to close %s: %w", args[1], err)
			}

			fmt.Printf("\n✓ Exported %q to %s\n\n", table.Title(), args[1])
			return nil
		},
	}
}
