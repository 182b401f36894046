package services

import (
	"context"
	"fmt"
	"io"
	"sort"

	"go.uber.org/zap"

	"github.com/jakechorley/workday-roster/internal/config"
	"github.com/jakechorley/workday-roster/pkg/core/model"
	"github.com/jakechorley/workday-roster/pkg/core/week"
	"github.com/jakechorley/workday-roster/pkg/db"
	"github.com/jakechorley/workday-roster/pkg/export"
)

// RosterPublisher publishes a week's roster table to a spreadsheet.
// sheetsclient.Client implements this interface.
type RosterPublisher interface {
	PublishRoster(ctx context.Context, spreadsheetID string, table *model.RosterTable) error
}

// PublishWeek builds the roster table for the week containing weekRef and publishes it
func PublishWeek(
	ctx context.Context,
	database db.Database,
	publisher RosterPublisher,
	cfg *config.Config,
	logger *zap.Logger,
	weekRef string,
) (*model.RosterTable, error) {
	if cfg.RosterSheetID == "" {
		return nil, invalidInput("rosterSheetID must be configured to publish")
	}

	table, err := BuildRosterTable(ctx, database, cfg, logger, weekRef)
	if err != nil {
		return nil, err
	}

	logger.Debug("Publishing roster",
		zap.String("title", table.Title()),
		zap.Int("rows", len(table.Rows)))

	if err := publisher.PublishRoster(ctx, cfg.RosterSheetID, table); err != nil {
		return nil, fmt.Errorf("failed to publish roster: %w", err)
	}

	logger.Info("Roster published", zap.String("title", table.Title()))

	return table, nil
}

// ExportWeek builds the roster table for the week containing weekRef and writes it as an XLSX workbook
func ExportWeek(
	ctx context.Context,
	database db.Database,
	cfg *config.Config,
	logger *zap.Logger,
	weekRef string,
	w io.Writer,
) (*model.RosterTable, error) {
	table, err := BuildRosterTable(ctx, database, cfg, logger, weekRef)
	if err != nil {
		return nil, err
	}

	if err := export.WriteWeekWorkbook(w, table); err != nil {
		return nil, fmt.Errorf("failed to export roster: %w", err)
	}

	logger.Info("Roster exported", zap.String("title", table.Title()))

	return table, nil
}

// BuildRosterTable lays out a week's ledger one row per Monday–Friday workday.
// Only strategies with at least one assignment in the week get a column.
func BuildRosterTable(ctx context.Context, database db.Database, cfg *config.Config, logger *zap.Logger, weekRef string) (*model.RosterTable, error) {
	window, err := parseWeek(cfg, weekRef)
	if err != nil {
		return nil, err
	}

	logger.Debug("Building roster table", zap.Stringer("week", window))

	workdays, err := database.ListWorkdays(ctx, window.Start, window.End)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch workdays: %w", err)
	}
	workdays = week.FilterWorkdays(window, workdays)

	assignments, err := database.ListAssignments(ctx, db.AssignmentFilter{From: window.Start, To: window.End})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch assignments: %w", err)
	}

	names, err := employeeNames(ctx, database)
	if err != nil {
		return nil, err
	}

	byDay := make(map[string]map[model.StrategyType][]string, len(workdays))
	present := make(map[model.StrategyType]bool)
	for _, a := range assignments {
		if byDay[a.WorkdayID] == nil {
			byDay[a.WorkdayID] = make(map[model.StrategyType][]string)
		}
		byDay[a.WorkdayID][a.Strategy] = append(byDay[a.WorkdayID][a.Strategy], names.lookup(a.EmployeeID))
		present[a.Strategy] = true
	}

	table := &model.RosterTable{
		WeekStart: window.Start,
		WeekEnd:   window.End,
		Rows:      make([]model.RosterRow, 0, len(workdays)),
	}
	for _, s := range model.AllStrategies {
		if present[s] {
			table.Strategies = append(table.Strategies, s)
		}
	}

	for _, wd := range workdays {
		row := model.RosterRow{
			Date:  wd.Date,
			Names: make(map[model.StrategyType][]string, len(table.Strategies)),
		}
		for _, s := range table.Strategies {
			dayNames := byDay[wd.ID][s]
			sort.Strings(dayNames)
			row.Names[s] = dayNames
		}
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}
