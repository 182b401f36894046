package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jakechorley/workday-roster/pkg/core/model"
	"github.com/jakechorley/workday-roster/pkg/core/week"
)

// ListWorkdays retrieves workdays between two civil dates (inclusive), ordered by date
func (d *DB) ListWorkdays(ctx context.Context, from, to time.Time) ([]model.Workday, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, date
		FROM workday
		WHERE date BETWEEN $1 AND $2
		ORDER BY date
	`, week.Normalize(from), week.Normalize(to))
	if err != nil {
		return nil, fmt.Errorf("failed to query workdays: %w", err)
	}
	defer rows.Close()

	var workdays []model.Workday
	for rows.Next() {
		var wd model.Workday
		var date time.Time
		if err := rows.Scan(&wd.ID, &date); err != nil {
			return nil, fmt.Errorf("failed to scan workday: %w", err)
		}
		wd.Date = week.Normalize(date)
		workdays = append(workdays, wd)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating workdays: %w", err)
	}

	return workdays, nil
}

// EnsureWorkdays inserts a workday for each date that has none and returns the rows for all given dates
func (d *DB) EnsureWorkdays(ctx context.Context, dates []time.Time) ([]model.Workday, error) {
	if len(dates) == 0 {
		return []model.Workday{}, nil
	}

	normalized := make([]time.Time, 0, len(dates))
	for _, date := range dates {
		normalized = append(normalized, week.Normalize(date))
	}

	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, date := range normalized {
		_, err := tx.Exec(ctx, `
			INSERT INTO workday (id, date)
			VALUES ($1, $2)
			ON CONFLICT (date) DO NOTHING
		`, uuid.New().String(), date)
		if err != nil {
			return nil, fmt.Errorf("failed to upsert workday %s: %w", date.Format("2006-01-02"), err)
		}
	}

	rows, err := tx.Query(ctx, `
		SELECT id, date
		FROM workday
		WHERE date = ANY($1::date[])
		ORDER BY date
	`, normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to query ensured workdays: %w", err)
	}

	var workdays []model.Workday
	for rows.Next() {
		var wd model.Workday
		var date time.Time
		if err := rows.Scan(&wd.ID, &date); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan workday: %w", err)
		}
		wd.Date = week.Normalize(date)
		workdays = append(workdays, wd)
	}
	rows.Close()

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating workdays: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return workdays, nil
}
