package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jakechorley/workday-roster/pkg/core/services"
)

// AssignCmd creates the assign command
func AssignCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assign <employee_id> <date>",
		Short: "Manually schedule an employee on a date",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			strategy, _ := cmd.Flags().GetString("strategy")

			assignment, err := services.AssignSingle(app.Ctx, app.Database, app.Cfg, app.Logger, args[0], args[1], strategy)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Schedule assigned\n\n")
			fmt.Printf("Assignment ID: %s\n", assignment.ID)
			fmt.Printf("Employee:      %s\n", assignment.EmployeeID)
			fmt.Printf("Date:          %s\n", assignment.WorkdayDate.Format("Mon 2006-01-02"))
			fmt.Printf("Strategy:      %s\n\n", assignment.Strategy)

			return nil
		},
	}

	cmd.Flags().String("strategy", "fair", "Strategy result set the assignment belongs to")

	return cmd
}
