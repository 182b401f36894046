package commands

import (
	"math/rand/v2"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/workday-roster/pkg/core/services"
)

// RunStrategyCmd creates the runStrategy command
func RunStrategyCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runStrategy <strategy> <week>",
		Short: "Run a scheduling strategy (fair, basic, round-robin, random) for the week containing a date",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var rng *rand.Rand
			if cmd.Flags().Changed("seed") {
				seed, _ := cmd.Flags().GetUint64("seed")
				rng = rand.New(rand.NewPCG(seed, seed))
				app.Logger.Debug("Using seeded generator", zap.Uint64("seed", seed))
			}

			result, err := services.RunStrategy(app.Ctx, app.Database, app.Cfg, app.Logger, app.Recorder, args[0], args[1], rng)
			if err != nil {
				return err
			}

			printRunResult(os.Stdout, result)
			return writeMetrics(cmd, app)
		},
	}

	cmd.Flags().Uint64("seed", 0, "Seed for the random strategy")
	addMetricsFlag(cmd)

	return cmd
}
