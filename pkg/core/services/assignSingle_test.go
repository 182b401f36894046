package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jakechorley/workday-roster/pkg/core/model"
)

func TestAssignSingle_Success(t *testing.T) {
	ctx := context.Background()
	store := newMockDatabase(fiveEmployees()...)

	assignment, err := AssignSingle(ctx, store, testConfig(), zap.NewNop(), "e3", "2025-01-08", "")
	require.NoError(t, err)
	require.NotNil(t, assignment)

	assert.NotEmpty(t, assignment.ID)
	assert.Equal(t, "e3", assignment.EmployeeID)
	assert.Equal(t, "wd-2025-01-08", assignment.WorkdayID)
	assert.Equal(t, testMonday.AddDate(0, 0, 2), assignment.WorkdayDate)
	assert.Equal(t, "admin-1", assignment.AssignedBy)
	assert.Equal(t, model.StrategyFair, assignment.Strategy, "manual assignments default to FAIR")
	assert.False(t, assignment.CreatedAt.IsZero())

	// The workday was created on demand
	assert.Contains(t, store.workdays, "wd-2025-01-08")
}

func TestAssignSingle_AlreadyScheduled(t *testing.T) {
	ctx := context.Background()
	store := newMockDatabase(fiveEmployees()...)

	_, err := AssignSingle(ctx, store, testConfig(), zap.NewNop(), "e1", "2025-01-06", "basic")
	require.NoError(t, err)

	// Any strategy counts for the pre-check
	_, err = AssignSingle(ctx, store, testConfig(), zap.NewNop(), "e1", "2025-01-06", "fair")
	assert.ErrorIs(t, err, ErrAlreadyAssigned)
	assert.Len(t, store.assignments, 1)
}

func TestAssignSingle_RejectsFullWorkday(t *testing.T) {
	ctx := context.Background()

	employees := make([]model.Employee, 0, 13)
	seeded := make(map[string][]time.Time, 12)
	wednesday := testMonday.AddDate(0, 0, 2)
	for i := 1; i <= 13; i++ {
		id := fmt.Sprintf("emp-%02d", i)
		employees = append(employees, model.Employee{ID: id, FullName: id, Role: model.RoleEmployee})
		if i <= 12 {
			seeded[id] = []time.Time{wednesday}
		}
	}

	store := newMockDatabase(employees...)
	store.seed(model.StrategyFair, "admin-1", seeded)
	require.Equal(t, 12, store.countByStrategy(model.StrategyFair))

	_, err := AssignSingle(ctx, store, testConfig(), zap.NewNop(), "emp-13", "2025-01-08", "fair")
	assert.ErrorIs(t, err, ErrWorkdayFull)
	assert.Equal(t, 12, store.countByStrategy(model.StrategyFair))

	// Other days and other strategies keep their own capacity
	_, err = AssignSingle(ctx, store, testConfig(), zap.NewNop(), "emp-13", "2025-01-09", "fair")
	assert.NoError(t, err)

	assignment, err := AssignSingle(ctx, store, testConfig(), zap.NewNop(), "emp-13", "2025-01-08", "basic")
	require.NoError(t, err)
	assert.Equal(t, model.StrategyBasic, assignment.Strategy)
}

func TestAssignSingle_InvalidInput(t *testing.T) {
	tests := []struct {
		name       string
		employeeID string
		date       string
		strategy   string
	}{
		{name: "missing employee", employeeID: " ", date: "2025-01-06"},
		{name: "unknown employee", employeeID: "nobody", date: "2025-01-06"},
		{name: "missing date", employeeID: "e1", date: ""},
		{name: "malformed date", employeeID: "e1", date: "06/01/2025"},
		{name: "unknown strategy", employeeID: "e1", date: "2025-01-06", strategy: "lottery"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMockDatabase(fiveEmployees()...)

			_, err := AssignSingle(context.Background(), store, testConfig(), zap.NewNop(), tt.employeeID, tt.date, tt.strategy)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Empty(t, store.assignments)
		})
	}
}

func TestAssignSingle_StoreErrors(t *testing.T) {
	storeErr := errors.New("timeout")

	tests := []struct {
		name  string
		setup func(m *mockDatabase)
	}{
		{name: "get employee", setup: func(m *mockDatabase) { m.getEmployeeErr = storeErr }},
		{name: "ensure workday", setup: func(m *mockDatabase) { m.ensureErr = storeErr }},
		{name: "find assignment", setup: func(m *mockDatabase) { m.findAssignmentErr = storeErr }},
		{name: "count assignments", setup: func(m *mockDatabase) { m.listAssignmentsErr = storeErr }},
		{name: "insert", setup: func(m *mockDatabase) { m.insertErr = storeErr }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMockDatabase(fiveEmployees()...)
			tt.setup(store)

			_, err := AssignSingle(context.Background(), store, testConfig(), zap.NewNop(), "e1", "2025-01-06", "")
			assert.ErrorIs(t, err, storeErr)
			assert.NotErrorIs(t, err, ErrAlreadyAssigned)
		})
	}
}
