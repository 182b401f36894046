package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jakechorley/workday-roster/internal/config"
	"github.com/jakechorley/workday-roster/pkg/core/calendar"
	"github.com/jakechorley/workday-roster/pkg/core/model"
	"github.com/jakechorley/workday-roster/pkg/core/week"
	"github.com/jakechorley/workday-roster/pkg/db"
)

// EnsureWorkdays materialises a workday for every date the configured rule yields between
// fromRef and toRef (inclusive), and returns the rows for those dates
func EnsureWorkdays(ctx context.Context, database db.WorkdayStore, cfg *config.Config, logger *zap.Logger, fromRef, toRef string) ([]model.Workday, error) {
	loc := cfg.Location()

	from, err := week.ParseReference(fromRef, loc)
	if err != nil {
		return nil, invalidInput("from date: %v", err)
	}
	to, err := week.ParseReference(toRef, loc)
	if err != nil {
		return nil, invalidInput("to date: %v", err)
	}
	if week.Normalize(to).Before(week.Normalize(from)) {
		return nil, invalidInput("to date %s is before from date %s", toRef, fromRef)
	}

	return ensureRange(ctx, database, cfg, logger, week.Normalize(from), week.Normalize(to))
}

// ensureRange expands the workday rule over a civil date range and upserts the dates
func ensureRange(ctx context.Context, database db.WorkdayStore, cfg *config.Config, logger *zap.Logger, from, to time.Time) ([]model.Workday, error) {
	dates, err := calendar.Dates(cfg.WorkdayRRule, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to expand workday rule: %w", err)
	}

	logger.Debug("Ensuring workdays",
		zap.Time("from", from),
		zap.Time("to", to),
		zap.Int("dates", len(dates)))

	if len(dates) == 0 {
		return []model.Workday{}, nil
	}

	workdays, err := database.EnsureWorkdays(ctx, dates)
	if err != nil {
		return nil, fmt.Errorf("failed to ensure workdays: %w", err)
	}

	return workdays, nil
}
