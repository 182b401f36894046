package allocator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/workday-roster/pkg/core/model"
)

func TestCriteria_Names(t *testing.T) {
	names := make([]string, 0)
	for _, c := range DefaultFairCriteria() {
		names = append(names, c.Name())
	}

	assert.Equal(t, []string{"Capacity", "NoDuplicate", "PreferenceAlignment", "Repetition", "LoadBalance"}, names)
}

func TestPreferenceAlignmentCriterion(t *testing.T) {
	workdays := workdaysFor(testMonday)
	monday, wednesday := workdays[0], workdays[2]
	state := NewWeekState(workdays, 12, nil)
	criterion := NewPreferenceAlignmentCriterion(1.0)
	employee := model.Employee{ID: "e1", PreferredDays: []string{"Monday", "Tuesday"}}

	tests := []struct {
		name     string
		score    int
		day      model.Workday
		expected float64
	}{
		{"owed employee on preferred day", 2, monday, 1},
		{"owed employee on other day", 2, wednesday, 0},
		{"favoured employee on other day", -1, wednesday, 1},
		{"favoured employee on preferred day", -1, monday, 0},
		{"neutral employee on preferred day", 0, monday, 0},
		{"neutral employee on other day", 0, wednesday, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			candidate := &Candidate{Employee: employee, Score: tt.score}
			assert.Equal(t, tt.expected, criterion.CalculateDayAffinity(state, candidate, tt.day))
			assert.True(t, criterion.IsDayValid(state, candidate, tt.day))
		})
	}
}

func TestRepetitionCriterion(t *testing.T) {
	workdays := workdaysFor(testMonday)
	state := NewWeekState(workdays, 12, nil)
	criterion := NewRepetitionCriterion(1.0, 0.5)
	candidate := &Candidate{
		Employee:       model.Employee{ID: "e1"},
		RecentWeekdays: map[time.Weekday]bool{time.Monday: true},
	}

	assert.Equal(t, -0.5, criterion.CalculateDayAffinity(state, candidate, workdays[0]))
	assert.Equal(t, 0.0, criterion.CalculateDayAffinity(state, candidate, workdays[1]))

	// No lookback at all
	assert.Equal(t, 0.0, criterion.CalculateDayAffinity(state, &Candidate{}, workdays[0]))
}

func TestLoadBalanceCriterion(t *testing.T) {
	workdays := workdaysFor(testMonday)
	existing := []model.Assignment{
		existingOn(model.StrategyFair, "a", workdays[0]),
		existingOn(model.StrategyFair, "b", workdays[0]),
		existingOn(model.StrategyFair, "c", workdays[0]),
	}
	state := NewWeekState(workdays, 12, existing)
	criterion := NewLoadBalanceCriterion(1.0)
	candidate := &Candidate{Employee: model.Employee{ID: "e1"}}

	assert.InDelta(t, -0.25, criterion.CalculateDayAffinity(state, candidate, workdays[0]), 1e-9)
	assert.Equal(t, 0.0, criterion.CalculateDayAffinity(state, candidate, workdays[1]))
}

func TestCapacityCriterion(t *testing.T) {
	workdays := workdaysFor(testMonday)
	existing := []model.Assignment{
		existingOn(model.StrategyFair, "a", workdays[0]),
		existingOn(model.StrategyFair, "b", workdays[0]),
	}
	state := NewWeekState(workdays, 2, existing)
	criterion := NewCapacityCriterion()
	candidate := &Candidate{Employee: model.Employee{ID: "e1"}}

	assert.False(t, criterion.IsDayValid(state, candidate, workdays[0]))
	assert.True(t, criterion.IsDayValid(state, candidate, workdays[1]))
	assert.Empty(t, criterion.ValidateWeek(state))
}

func TestNoDuplicateCriterion(t *testing.T) {
	workdays := workdaysFor(testMonday)
	state := NewWeekState(workdays, 12, []model.Assignment{existingOn(model.StrategyFair, "e1", workdays[0])})
	criterion := NewNoDuplicateCriterion()

	assert.False(t, criterion.IsDayValid(state, &Candidate{Employee: model.Employee{ID: "e1"}}, workdays[0]))
	assert.True(t, criterion.IsDayValid(state, &Candidate{Employee: model.Employee{ID: "e2"}}, workdays[0]))
	assert.True(t, criterion.IsDayValid(state, &Candidate{Employee: model.Employee{ID: "e1"}}, workdays[1]))
}

func TestCalculateDayAffinity_AppliesWeights(t *testing.T) {
	workdays := workdaysFor(testMonday)
	state := NewWeekState(workdays, 4, []model.Assignment{existingOn(model.StrategyFair, "x", workdays[0])})
	candidate := &Candidate{
		Employee:       model.Employee{ID: "e1", PreferredDays: []string{"Monday"}},
		Score:          1,
		RecentWeekdays: map[time.Weekday]bool{time.Monday: true},
	}

	criteria := []DayCriterion{
		NewPreferenceAlignmentCriterion(2.0),
		NewRepetitionCriterion(1.0, 0.5),
		NewLoadBalanceCriterion(1.0),
	}

	// 2*1 - 0.5 - 1/4
	assert.InDelta(t, 1.25, CalculateDayAffinity(state, candidate, workdays[0], criteria), 1e-9)
}

func TestValidateAssignments(t *testing.T) {
	workdays := workdaysFor(testMonday)
	assignments := []model.Assignment{
		existingOn(model.StrategyBasic, "e1", workdays[0]),
		existingOn(model.StrategyBasic, "e1", workdays[0]),
		existingOn(model.StrategyBasic, "e2", workdays[0]),
		existingOn(model.StrategyBasic, "e2", workdays[1]),
		// Outside the week, ignored
		existingOn(model.StrategyBasic, "e3", model.Workday{ID: "other", Date: testMonday.AddDate(0, 0, 7)}),
	}

	errors := ValidateAssignments(workdays, 2, assignments)

	require.Len(t, errors, 2)
	assert.Equal(t, "Capacity", errors[0].CriterionName)
	assert.Equal(t, "2025-01-06", errors[0].WorkdayDate)
	assert.Contains(t, errors[0].Description, "has 3 employees but capacity is 2")
	assert.Equal(t, "NoDuplicate", errors[1].CriterionName)
	assert.Contains(t, errors[1].Description, "Employee e1 is assigned 2 times")
}

func TestValidateAssignments_Valid(t *testing.T) {
	workdays := workdaysFor(testMonday)
	assignments := []model.Assignment{
		existingOn(model.StrategyBasic, "e1", workdays[0]),
		existingOn(model.StrategyBasic, "e2", workdays[0]),
	}

	assert.Empty(t, ValidateAssignments(workdays, 2, assignments))
}

func TestLimitsValidate(t *testing.T) {
	tests := []struct {
		name    string
		limits  Limits
		wantErr bool
	}{
		{"fair defaults", DefaultSettings().Fair, false},
		{"simple defaults", DefaultSettings().Basic, false},
		{"zero capacity", Limits{MaxEmployeesPerDay: 0}, true},
		{"negative min", Limits{MaxEmployeesPerDay: 1, MinDaysPerEmployee: -1}, true},
		{"min above max", Limits{MaxEmployeesPerDay: 1, MinDaysPerEmployee: 4, MaxDaysPerEmployee: 3}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.limits.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
