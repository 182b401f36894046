package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/workday-roster/internal/config"
	"github.com/jakechorley/workday-roster/pkg/core/model"
	"github.com/jakechorley/workday-roster/pkg/db"
)

// ScheduleEntry is one ledger row joined with the employee it schedules
type ScheduleEntry struct {
	Assignment   model.Assignment
	EmployeeName string
}

// ListSchedules returns ledger rows newest first. An empty weekRef lists every week;
// a non-empty assignedBy keeps only rows recorded by that actor.
func ListSchedules(
	ctx context.Context,
	database db.Database,
	cfg *config.Config,
	logger *zap.Logger,
	weekRef string,
	assignedBy string,
) ([]ScheduleEntry, error) {
	filter := db.AssignmentFilter{
		AssignedBy:  assignedBy,
		NewestFirst: true,
	}

	if weekRef != "" {
		window, err := parseWeek(cfg, weekRef)
		if err != nil {
			return nil, err
		}
		filter.From = window.Start
		filter.To = window.End
		logger = logger.With(zap.Stringer("week", window))
	}

	logger.Debug("Listing schedules", zap.String("assigned_by", assignedBy))

	assignments, err := database.ListAssignments(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch assignments: %w", err)
	}

	names, err := employeeNames(ctx, database)
	if err != nil {
		return nil, err
	}

	entries := make([]ScheduleEntry, 0, len(assignments))
	for _, a := range assignments {
		entries = append(entries, ScheduleEntry{
			Assignment:   a,
			EmployeeName: names.lookup(a.EmployeeID),
		})
	}

	logger.Debug("Listed schedules", zap.Int("count", len(entries)))

	return entries, nil
}

type nameIndex map[string]string

// lookup falls back to the ID for employees outside the schedulable roster
func (n nameIndex) lookup(id string) string {
	if name, ok := n[id]; ok && name != "" {
		return name
	}
	return id
}

func employeeNames(ctx context.Context, database db.EmployeeStore) (nameIndex, error) {
	employees, err := database.ListEmployees(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch employees: %w", err)
	}

	names := make(nameIndex, len(employees))
	for _, e := range employees {
		names[e.ID] = e.FullName
	}
	return names, nil
}
