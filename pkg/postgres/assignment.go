package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jakechorley/workday-roster/pkg/core/model"
	"github.com/jakechorley/workday-roster/pkg/core/week"
	"github.com/jakechorley/workday-roster/pkg/db"
)

const assignmentColumns = `a.id, a.employee_id, a.workday_id, w.date, a.assigned_by, a.strategy_type, a.created_at`

func scanAssignment(row pgx.Row) (model.Assignment, error) {
	var a model.Assignment
	var date time.Time
	var strategy string
	if err := row.Scan(&a.ID, &a.EmployeeID, &a.WorkdayID, &date, &a.AssignedBy, &strategy, &a.CreatedAt); err != nil {
		return model.Assignment{}, err
	}
	a.WorkdayDate = week.Normalize(date)
	a.Strategy = model.StrategyType(strategy)
	return a, nil
}

// FindAssignment returns the earliest assignment of the employee to the workday under any strategy
func (d *DB) FindAssignment(ctx context.Context, employeeID, workdayID string) (*model.Assignment, error) {
	row := d.pool.QueryRow(ctx, `
		SELECT `+assignmentColumns+`
		FROM assignment a
		JOIN workday w ON w.id = a.workday_id
		WHERE a.employee_id = $1 AND a.workday_id = $2
		ORDER BY a.created_at
		LIMIT 1
	`, employeeID, workdayID)

	a, err := scanAssignment(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, db.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find assignment: %w", err)
	}

	return &a, nil
}

// ListAssignments retrieves assignments matching the filter
func (d *DB) ListAssignments(ctx context.Context, filter db.AssignmentFilter) ([]model.Assignment, error) {
	query, args := buildAssignmentQuery(filter)

	rows, err := d.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignments: %w", err)
	}
	defer rows.Close()

	var assignments []model.Assignment
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		assignments = append(assignments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assignments: %w", err)
	}

	return assignments, nil
}

// buildAssignmentQuery renders the filter as a parameterised query
func buildAssignmentQuery(filter db.AssignmentFilter) (string, []any) {
	var conditions []string
	var args []any

	add := func(condition string, arg any) {
		args = append(args, arg)
		conditions = append(conditions, fmt.Sprintf(condition, len(args)))
	}

	if !filter.From.IsZero() {
		add("w.date >= $%d", week.Normalize(filter.From))
	}
	if !filter.To.IsZero() {
		add("w.date <= $%d", week.Normalize(filter.To))
	}
	if len(filter.Strategies) > 0 {
		strategies := make([]string, 0, len(filter.Strategies))
		for _, s := range filter.Strategies {
			strategies = append(strategies, string(s))
		}
		add("a.strategy_type = ANY($%d)", strategies)
	}
	if filter.AssignedBy != "" {
		add("a.assigned_by = $%d", filter.AssignedBy)
	}
	if filter.EmployeeID != "" {
		add("a.employee_id = $%d", filter.EmployeeID)
	}

	var sb strings.Builder
	sb.WriteString("SELECT " + assignmentColumns + " FROM assignment a JOIN workday w ON w.id = a.workday_id")
	if len(conditions) > 0 {
		sb.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	if filter.NewestFirst {
		sb.WriteString(" ORDER BY a.created_at DESC, a.id")
	} else {
		sb.WriteString(" ORDER BY w.date, a.created_at, a.id")
	}

	return sb.String(), args
}

// InsertAssignments inserts assignments in one transaction. Rows that would duplicate an
// (employee, workday, strategy) triple are skipped and left out of the result.
func (d *DB) InsertAssignments(ctx context.Context, assignments []model.Assignment) ([]model.Assignment, error) {
	if len(assignments) == 0 {
		return []model.Assignment{}, nil
	}

	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	inserted := make([]model.Assignment, 0, len(assignments))
	for _, a := range assignments {
		var createdAt time.Time
		err := tx.QueryRow(ctx, `
			INSERT INTO assignment (id, employee_id, workday_id, assigned_by, strategy_type)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (employee_id, workday_id, strategy_type) DO NOTHING
			RETURNING created_at
		`, a.ID, a.EmployeeID, a.WorkdayID, a.AssignedBy, string(a.Strategy)).Scan(&createdAt)
		if errors.Is(err, pgx.ErrNoRows) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to insert assignment: %w", err)
		}

		a.CreatedAt = createdAt
		inserted = append(inserted, a)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return inserted, nil
}
