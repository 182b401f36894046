package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jakechorley/workday-roster/pkg/core/model"
)

func seededLedger() *mockDatabase {
	store := newMockDatabase(fiveEmployees()...)
	store.seed(model.StrategyFair, "admin-1", map[string][]time.Time{
		"e1": {testMonday},
	})
	store.seed(model.StrategyBasic, "admin-2", map[string][]time.Time{
		"e2": {testMonday.AddDate(0, 0, 1)},
	})
	// The following week
	store.seed(model.StrategyFair, "admin-1", map[string][]time.Time{
		"e3": {testMonday.AddDate(0, 0, 7)},
	})
	return store
}

func TestListSchedules_NewestFirst(t *testing.T) {
	store := seededLedger()

	entries, err := ListSchedules(context.Background(), store, testConfig(), zap.NewNop(), "", "")
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, "e3", entries[0].Assignment.EmployeeID)
	assert.Equal(t, "Chidi Eze", entries[0].EmployeeName)
	assert.Equal(t, "e2", entries[1].Assignment.EmployeeID)
	assert.Equal(t, "e1", entries[2].Assignment.EmployeeID)
}

func TestListSchedules_WeekFilter(t *testing.T) {
	store := seededLedger()

	entries, err := ListSchedules(context.Background(), store, testConfig(), zap.NewNop(), "2025-01-08", "")
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "e2", entries[0].Assignment.EmployeeID)
	assert.Equal(t, "e1", entries[1].Assignment.EmployeeID)
}

func TestListSchedules_AssignedByFilter(t *testing.T) {
	store := seededLedger()

	entries, err := ListSchedules(context.Background(), store, testConfig(), zap.NewNop(), "2025-01-06", "admin-1")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "e1", entries[0].Assignment.EmployeeID)
	assert.Equal(t, "Ada Obi", entries[0].EmployeeName)
}

func TestListSchedules_UnknownEmployeeFallsBackToID(t *testing.T) {
	store := newMockDatabase(fiveEmployees()...)
	store.seed(model.StrategyFair, "admin-1", map[string][]time.Time{
		"former-staff": {testMonday},
	})

	entries, err := ListSchedules(context.Background(), store, testConfig(), zap.NewNop(), "", "")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "former-staff", entries[0].EmployeeName)
}

func TestListSchedules_InvalidWeek(t *testing.T) {
	_, err := ListSchedules(context.Background(), newMockDatabase(), testConfig(), zap.NewNop(), "soon", "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}
