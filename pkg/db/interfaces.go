package db

import (
	"context"
	"time"

	"github.com/jakechorley/workday-roster/pkg/core/model"
)

// WorkdayStore supplies and materialises workdays
type WorkdayStore interface {
	// ListWorkdays returns workdays between two civil dates (inclusive), ordered by date
	ListWorkdays(ctx context.Context, from, to time.Time) ([]model.Workday, error)

	// EnsureWorkdays upserts one workday per civil date and returns the rows for those dates
	EnsureWorkdays(ctx context.Context, dates []time.Time) ([]model.Workday, error)
}

// EmployeeStore supplies the roster and owns the persisted fairness score
type EmployeeStore interface {
	// ListEmployees returns employees with role EMPLOYEE, ordered by ID
	ListEmployees(ctx context.Context) ([]model.Employee, error)

	// GetEmployee returns ErrNotFound if no employee has the ID
	GetEmployee(ctx context.Context, id string) (*model.Employee, error)

	UpdateFairnessScores(ctx context.Context, scores map[string]int) error
}

// AssignmentStore is the schedule ledger
type AssignmentStore interface {
	// FindAssignment returns any assignment of the employee to the workday, or ErrNotFound
	FindAssignment(ctx context.Context, employeeID, workdayID string) (*model.Assignment, error)

	ListAssignments(ctx context.Context, filter AssignmentFilter) ([]model.Assignment, error)

	// InsertAssignments inserts assignments, silently skipping any that would duplicate an
	// (employee, workday, strategy) triple, and returns only the rows actually inserted
	InsertAssignments(ctx context.Context, assignments []model.Assignment) ([]model.Assignment, error)
}

// Database combines every store the services use.
// postgres.DB implements this interface.
type Database interface {
	WorkdayStore
	EmployeeStore
	AssignmentStore
}

// AssignmentFilter narrows a ledger query. Zero values mean no restriction.
type AssignmentFilter struct {
	// From and To bound the workday date (inclusive civil dates)
	From time.Time
	To   time.Time

	Strategies []model.StrategyType
	AssignedBy string
	EmployeeID string

	// NewestFirst orders by creation time descending instead of workday date ascending
	NewestFirst bool
}

// Matches reports whether an assignment passes the filter
func (f AssignmentFilter) Matches(a model.Assignment) bool {
	if !f.From.IsZero() && civil(a.WorkdayDate).Before(civil(f.From)) {
		return false
	}
	if !f.To.IsZero() && civil(a.WorkdayDate).After(civil(f.To)) {
		return false
	}
	if f.AssignedBy != "" && a.AssignedBy != f.AssignedBy {
		return false
	}
	if f.EmployeeID != "" && a.EmployeeID != f.EmployeeID {
		return false
	}
	if len(f.Strategies) > 0 {
		found := false
		for _, s := range f.Strategies {
			if a.Strategy == s {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func civil(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
