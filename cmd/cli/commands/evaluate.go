package commands

import (
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"os"

	"github.com/spf13/cobra"

	"github.com/jakechorley/workday-roster/pkg/core/services"
)

// EvaluateCmd creates the evaluate command
func EvaluateCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "evaluate <week>",
		Short: "Compare strategies for the week containing a date, generating missing result sets",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var rng *rand.Rand
			if cmd.Flags().Changed("seed") {
				seed, _ := cmd.Flags().GetUint64("seed")
				rng = rand.New(rand.NewPCG(seed, seed))
			}

			report, err := services.Evaluate(app.Ctx, app.Database, app.Cfg, app.Logger, app.Recorder, args[0], rng)
			if err != nil {
				return err
			}

			asJSON, _ := cmd.Flags().GetBool("json")
			if asJSON {
				encoder := json.NewEncoder(os.Stdout)
				encoder.SetIndent("", "  ")
				if err := encoder.Encode(report); err != nil {
					return fmt.Errorf("failed to encode report: %w", err)
				}
			} else {
				printReport(os.Stdout, report)
			}

			return writeMetrics(cmd, app)
		},
	}

	cmd.Flags().Uint64("seed", 0, "Seed for the random strategy if it has to be generated")
	cmd.Flags().Bool("json", false, "Print the report as JSON")
	addMetricsFlag(cmd)

	return cmd
}
