package services

import (
	"context"
	"fmt"
	"math/rand/v2"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jakechorley/workday-roster/internal/config"
	"github.com/jakechorley/workday-roster/pkg/core/allocator"
	"github.com/jakechorley/workday-roster/pkg/core/evaluation"
	"github.com/jakechorley/workday-roster/pkg/core/model"
	"github.com/jakechorley/workday-roster/pkg/core/week"
	"github.com/jakechorley/workday-roster/pkg/db"
	"github.com/jakechorley/workday-roster/pkg/metrics"
)

// Evaluate compares the configured strategies for the week containing weekRef.
// A strategy with no assignments for the week is run first; its result is then read back from the ledger.
func Evaluate(
	ctx context.Context,
	database db.Database,
	cfg *config.Config,
	logger *zap.Logger,
	recorder *metrics.Recorder,
	weekRef string,
	rng *rand.Rand,
) (*evaluation.Report, error) {
	window, err := parseWeek(cfg, weekRef)
	if err != nil {
		return nil, err
	}

	settings, err := cfg.EvaluationSettings()
	if err != nil {
		return nil, invalidInput("%v", err)
	}

	logger = logger.With(zap.Stringer("week", window))
	logger.Debug("Evaluating strategies", zap.Int("strategies", len(settings.Strategies)))

	data, err := loadWeek(ctx, database, cfg, logger, window)
	if err != nil {
		return nil, err
	}

	results := make([][]model.Assignment, len(settings.Strategies))
	g, gctx := errgroup.WithContext(ctx)
	for i, strategy := range settings.Strategies {
		g.Go(func() error {
			assignments, err := reuseOrGenerate(gctx, database, cfg, logger, recorder, strategy, data, rng)
			if err != nil {
				return err
			}
			results[i] = assignments
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Re-read the roster so persisted scores reflect any fair run above
	employees, err := database.ListEmployees(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch employees: %w", err)
	}

	history, err := listHistory(ctx, database, cfg, model.StrategyFair, window)
	if err != nil {
		return nil, err
	}

	input := evaluation.Input{
		WeekStart: window.Start,
		WeekEnd:   window.End,
		Workdays:  week.FilterWorkdays(window, data.workdays),
		Employees: employees,
		Results:   make(map[model.StrategyType][]model.Assignment, len(settings.Strategies)),
		History:   history,
	}
	for i, strategy := range settings.Strategies {
		input.Results[strategy] = results[i]
	}

	report, err := evaluation.Evaluate(input, settings)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate strategies: %w", err)
	}

	observed := make([]metrics.StrategyEvaluation, 0, len(report.Strategies))
	for _, sr := range report.Strategies {
		observed = append(observed, metrics.StrategyEvaluation{
			Strategy:           string(sr.Strategy),
			FairnessIndex:      sr.FairnessIndex,
			AverageScore:       sr.AverageScore,
			OutOfBounds:        len(sr.OutOfBounds),
			InvalidAssignments: len(sr.InvalidAssignments),
		})
	}
	recorder.ObserveEvaluation(observed, len(report.OverAssignedWorkdays))

	logger.Info("Evaluation complete",
		zap.Int("strategies", len(report.Strategies)),
		zap.Int("over_assigned_workdays", len(report.OverAssignedWorkdays)))

	return report, nil
}

// reuseOrGenerate returns a strategy's assignments for the week, running the strategy if it has none
func reuseOrGenerate(
	ctx context.Context,
	database db.Database,
	cfg *config.Config,
	logger *zap.Logger,
	recorder *metrics.Recorder,
	strategy model.StrategyType,
	data *weekData,
	rng *rand.Rand,
) ([]model.Assignment, error) {
	logger = logger.With(zap.String("strategy", string(strategy)))

	existing, err := listWeek(ctx, database, strategy, data.window)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		logger.Debug("Reusing existing assignments", zap.Int("count", len(existing)))
		return existing, nil
	}

	result, err := runForWeek(ctx, database, cfg, logger, recorder, strategy, data, rng)
	if err != nil {
		return nil, fmt.Errorf("failed to generate %s assignments: %w", strategy, err)
	}

	switch result.Status {
	case allocator.StatusInsufficientData:
		logger.Info("Strategy could not run", zap.String("reason", result.Reason))
		return []model.Assignment{}, nil
	case allocator.StatusAlreadyFull:
		logger.Debug("Strategy reported the week full, reloading from ledger")
	}

	// The ledger holds the rows actually written, including any a concurrent run inserted first
	return listWeek(ctx, database, strategy, data.window)
}
