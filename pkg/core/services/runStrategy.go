package services

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jakechorley/workday-roster/internal/config"
	"github.com/jakechorley/workday-roster/pkg/core/allocator"
	"github.com/jakechorley/workday-roster/pkg/core/model"
	"github.com/jakechorley/workday-roster/pkg/core/week"
	"github.com/jakechorley/workday-roster/pkg/db"
	"github.com/jakechorley/workday-roster/pkg/metrics"
)

// RunResult represents the result of running one strategy for one week
type RunResult struct {
	Strategy model.StrategyType
	Window   week.Window
	Status   allocator.Status
	Reason   string

	// Assignments are the rows actually written by this run
	Assignments []model.Assignment

	// Skipped counts produced assignments the ledger already held
	Skipped int

	Shortfalls       []allocator.Shortfall
	Scores           map[string]int
	ValidationErrors []allocator.ValidationError
}

// weekData is the shared read-side state for one week
type weekData struct {
	window    week.Window
	workdays  []model.Workday
	employees []model.Employee
}

// RunStrategy runs the named strategy for the week containing weekRef and records the new assignments.
// rng drives the Random strategy; nil means time-seeded.
func RunStrategy(
	ctx context.Context,
	database db.Database,
	cfg *config.Config,
	logger *zap.Logger,
	recorder *metrics.Recorder,
	strategyName string,
	weekRef string,
	rng *rand.Rand,
) (*RunResult, error) {
	strategy, err := parseStrategy(strategyName)
	if err != nil {
		return nil, err
	}

	window, err := parseWeek(cfg, weekRef)
	if err != nil {
		return nil, err
	}

	logger = logger.With(zap.String("strategy", string(strategy)), zap.Stringer("week", window))
	logger.Debug("Running strategy")

	data, err := loadWeek(ctx, database, cfg, logger, window)
	if err != nil {
		return nil, err
	}

	return runForWeek(ctx, database, cfg, logger, recorder, strategy, data, rng)
}

func parseStrategy(name string) (model.StrategyType, error) {
	if name == "" {
		return "", invalidInput("strategy is required")
	}
	strategy, err := model.ParseStrategy(name)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrUnknownStrategy, name)
	}
	return strategy, nil
}

func parseWeek(cfg *config.Config, weekRef string) (week.Window, error) {
	ref, err := week.ParseReference(weekRef, cfg.Location())
	if err != nil {
		return week.Window{}, invalidInput("%v", err)
	}
	return week.WindowFor(ref, cfg.Location()), nil
}

// loadWeek ensures the week's workdays exist, then reads them and the roster
func loadWeek(ctx context.Context, database db.Database, cfg *config.Config, logger *zap.Logger, window week.Window) (*weekData, error) {
	if _, err := ensureRange(ctx, database, cfg, logger, window.Start, window.End); err != nil {
		return nil, err
	}

	logger.Debug("Fetching workdays")
	workdays, err := database.ListWorkdays(ctx, window.Start, window.End)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch workdays: %w", err)
	}

	logger.Debug("Fetching employees")
	employees, err := database.ListEmployees(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch employees: %w", err)
	}

	logger.Debug("Loaded week",
		zap.Int("workdays", len(workdays)),
		zap.Int("employees", len(employees)))

	return &weekData{window: window, workdays: workdays, employees: employees}, nil
}

// listWeek reads one strategy's assignments for a week
func listWeek(ctx context.Context, database db.AssignmentStore, strategy model.StrategyType, window week.Window) ([]model.Assignment, error) {
	assignments, err := database.ListAssignments(ctx, db.AssignmentFilter{
		From:       window.Start,
		To:         window.End,
		Strategies: []model.StrategyType{strategy},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s assignments: %w", strategy, err)
	}
	return assignments, nil
}

// listHistory reads one strategy's assignments for the lookback weeks before the window
func listHistory(ctx context.Context, database db.AssignmentStore, cfg *config.Config, strategy model.StrategyType, window week.Window) ([]model.Assignment, error) {
	if cfg.HistoryWeeks <= 0 {
		return []model.Assignment{}, nil
	}

	from, to := window.HistoryRange(cfg.HistoryWeeks)
	history, err := database.ListAssignments(ctx, db.AssignmentFilter{
		From:       from,
		To:         to,
		Strategies: []model.StrategyType{strategy},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s history: %w", strategy, err)
	}
	return history, nil
}

// runForWeek allocates one strategy over loaded week data and writes the result
func runForWeek(
	ctx context.Context,
	database db.Database,
	cfg *config.Config,
	logger *zap.Logger,
	recorder *metrics.Recorder,
	strategy model.StrategyType,
	data *weekData,
	rng *rand.Rand,
) (*RunResult, error) {
	started := time.Now()

	existing, err := listWeek(ctx, database, strategy, data.window)
	if err != nil {
		return nil, err
	}

	history, err := listHistory(ctx, database, cfg, strategy, data.window)
	if err != nil {
		return nil, err
	}

	logger.Debug("Loaded ledger",
		zap.Int("existing", len(existing)),
		zap.Int("history", len(history)))

	settings := cfg.AllocatorSettings()
	settings.Rand = rng
	impl, err := allocator.ForType(strategy, settings)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnknownStrategy, err)
	}

	outcome, err := impl.Allocate(allocator.WeekInput{
		Window:     data.window,
		Workdays:   data.workdays,
		Employees:  data.employees,
		Existing:   existing,
		History:    history,
		AssignedBy: cfg.ActorID,
		Logger:     logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to allocate week: %w", err)
	}

	result := &RunResult{
		Strategy:         strategy,
		Window:           data.window,
		Status:           outcome.Status,
		Reason:           outcome.Reason,
		Assignments:      []model.Assignment{},
		Shortfalls:       outcome.Shortfalls,
		Scores:           outcome.Scores,
		ValidationErrors: outcome.ValidationErrors,
	}

	if len(outcome.Assignments) > 0 {
		produced := make([]model.Assignment, len(outcome.Assignments))
		for i, a := range outcome.Assignments {
			a.ID = uuid.New().String()
			produced[i] = a
		}

		logger.Debug("Inserting assignments", zap.Int("count", len(produced)))
		inserted, err := database.InsertAssignments(ctx, produced)
		if err != nil {
			return nil, fmt.Errorf("failed to insert assignments: %w", err)
		}

		result.Assignments = inserted
		result.Skipped = len(produced) - len(inserted)
		if result.Skipped > 0 {
			logger.Info("Skipped assignments already in the ledger", zap.Int("skipped", result.Skipped))
		}
	}

	if strategy == model.StrategyFair && outcome.Status == allocator.StatusGenerated {
		logger.Debug("Persisting fairness scores", zap.Int("employees", len(outcome.Scores)))
		if err := database.UpdateFairnessScores(ctx, outcome.Scores); err != nil {
			return nil, fmt.Errorf("failed to update fairness scores: %w", err)
		}
	}

	recorder.ObserveRun(metrics.RunStats{
		Strategy:   string(strategy),
		Status:     string(outcome.Status),
		Created:    len(result.Assignments),
		Skipped:    result.Skipped,
		Shortfalls: len(outcome.Shortfalls),
		Duration:   time.Since(started),
	})

	logger.Info("Strategy run complete",
		zap.String("status", string(outcome.Status)),
		zap.Int("created", len(result.Assignments)),
		zap.Int("skipped", result.Skipped),
		zap.Int("shortfalls", len(outcome.Shortfalls)))

	return result, nil
}
