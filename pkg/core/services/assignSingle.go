package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jakechorley/workday-roster/internal/config"
	"github.com/jakechorley/workday-roster/pkg/core/model"
	"github.com/jakechorley/workday-roster/pkg/core/week"
	"github.com/jakechorley/workday-roster/pkg/db"
)

// AssignSingle manually schedules one employee on one date, creating the workday if needed.
// An empty strategyName records the assignment as FAIR.
func AssignSingle(
	ctx context.Context,
	database db.Database,
	cfg *config.Config,
	logger *zap.Logger,
	employeeID string,
	dateRef string,
	strategyName string,
) (*model.Assignment, error) {
	employeeID = strings.TrimSpace(employeeID)
	if employeeID == "" {
		return nil, invalidInput("employee ID is required")
	}

	ref, err := week.ParseReference(dateRef, cfg.Location())
	if err != nil {
		return nil, invalidInput("%v", err)
	}
	date := week.Normalize(ref)

	strategy := model.StrategyFair
	if strategyName != "" {
		strategy, err = parseStrategy(strategyName)
		if err != nil {
			return nil, err
		}
	}

	logger = logger.With(
		zap.String("employee_id", employeeID),
		zap.String("date", date.Format("2006-01-02")),
		zap.String("strategy", string(strategy)))
	logger.Debug("Assigning single schedule")

	if _, err := database.GetEmployee(ctx, employeeID); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, invalidInput("employee %s does not exist", employeeID)
		}
		return nil, fmt.Errorf("failed to fetch employee: %w", err)
	}

	workdays, err := database.EnsureWorkdays(ctx, []time.Time{date})
	if err != nil {
		return nil, fmt.Errorf("failed to ensure workday: %w", err)
	}
	if len(workdays) == 0 {
		return nil, fmt.Errorf("failed to ensure workday: no row returned for %s", date.Format("2006-01-02"))
	}
	workday := workdays[0]

	existing, err := database.FindAssignment(ctx, employeeID, workday.ID)
	if err == nil {
		logger.Info("Employee already scheduled",
			zap.String("assignment_id", existing.ID),
			zap.String("existing_strategy", string(existing.Strategy)))
		return nil, ErrAlreadyAssigned
	}
	if !errors.Is(err, db.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing assignment: %w", err)
	}

	sameDay, err := database.ListAssignments(ctx, db.AssignmentFilter{
		From:       workday.Date,
		To:         workday.Date,
		Strategies: []model.StrategyType{strategy},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to count %s assignments: %w", strategy, err)
	}
	capacity := cfg.AllocatorSettings().CapacityFor(strategy)
	if len(sameDay) >= capacity {
		logger.Info("Workday at capacity",
			zap.Int("assigned", len(sameDay)),
			zap.Int("capacity", capacity))
		return nil, ErrWorkdayFull
	}

	assignment := model.Assignment{
		ID:          uuid.New().String(),
		EmployeeID:  employeeID,
		WorkdayID:   workday.ID,
		WorkdayDate: workday.Date,
		AssignedBy:  cfg.ActorID,
		Strategy:    strategy,
	}

	inserted, err := database.InsertAssignments(ctx, []model.Assignment{assignment})
	if err != nil {
		return nil, fmt.Errorf("failed to insert assignment: %w", err)
	}
	if len(inserted) == 0 {
		// Lost a race with another writer between the check and the insert
		return nil, ErrAlreadyAssigned
	}

	logger.Info("Schedule assigned", zap.String("assignment_id", inserted[0].ID))

	return &inserted[0], nil
}
