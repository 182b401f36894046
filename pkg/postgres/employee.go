package postgres

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/jackc/pgx/v5"

	"github.com/jakechorley/workday-roster/pkg/core/model"
	"github.com/jakechorley/workday-roster/pkg/db"
)

// ListEmployees retrieves schedulable employees ordered by ID
func (d *DB) ListEmployees(ctx context.Context) ([]model.Employee, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, full_name, role, preferred_days, fairness_score
		FROM employee
		WHERE role = $1
		ORDER BY id
	`, model.RoleEmployee)
	if err != nil {
		return nil, fmt.Errorf("failed to query employees: %w", err)
	}
	defer rows.Close()

	var employees []model.Employee
	for rows.Next() {
		var e model.Employee
		if err := rows.Scan(&e.ID, &e.FullName, &e.Role, &e.PreferredDays, &e.FairnessScore); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating employees: %w", err)
	}

	return employees, nil
}

// GetEmployee retrieves one employee of any role
func (d *DB) GetEmployee(ctx context.Context, id string) (*model.Employee, error) {
	var e model.Employee
	err := d.pool.QueryRow(ctx, `
		SELECT id, full_name, role, preferred_days, fairness_score
		FROM employee
		WHERE id = $1
	`, id).Scan(&e.ID, &e.FullName, &e.Role, &e.PreferredDays, &e.FairnessScore)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("employee %s: %w", id, db.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get employee %s: %w", id, err)
	}

	return &e, nil
}

// UpdateFairnessScores writes all scores in a single transaction
func (d *DB) UpdateFairnessScores(ctx context.Context, scores map[string]int) error {
	if len(scores) == 0 {
		return nil
	}

	ids := make([]string, 0, len(scores))
	for id := range scores {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, id := range ids {
		_, err := tx.Exec(ctx, `
			UPDATE employee SET fairness_score = $2 WHERE id = $1
		`, id, scores[id])
		if err != nil {
			return fmt.Errorf("failed to update fairness score for %s: %w", id, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
