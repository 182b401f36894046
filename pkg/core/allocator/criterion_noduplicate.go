package allocator

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jakechorley/workday-roster/pkg/core/model"
)

// NoDuplicateCriterion prevents an employee holding the same workday twice
type NoDuplicateCriterion struct{}

func NewNoDuplicateCriterion() *NoDuplicateCriterion {
	return &NoDuplicateCriterion{}
}

func (c *NoDuplicateCriterion) Name() string {
	return "NoDuplicate"
}

func (c *NoDuplicateCriterion) IsDayValid(state *WeekState, candidate *Candidate, day model.Workday) bool {
	return !state.IsAssigned(candidate.Employee.ID, day.ID)
}

func (c *NoDuplicateCriterion) CalculateDayAffinity(state *WeekState, candidate *Candidate, day model.Workday) float64 {
	return 0
}

func (c *NoDuplicateCriterion) ValidateWeek(state *WeekState) []ValidationError {
	dates := make(map[string]string, len(state.Workdays))
	for _, wd := range state.Workdays {
		dates[wd.ID] = wd.Date.Format("2006-01-02")
	}

	keys := make([]string, 0, len(state.pairCounts))
	for key := range state.pairCounts {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var errors []ValidationError
	for _, key := range keys {
		count := state.pairCounts[key]
		if count <= 1 {
			continue
		}
		employeeID, workdayID, _ := strings.Cut(key, "|")
		errors = append(errors, ValidationError{
			WorkdayID:     workdayID,
			WorkdayDate:   dates[workdayID],
			CriterionName: c.Name(),
			Description:   fmt.Sprintf("Employee %s is assigned %d times", employeeID, count),
		})
	}

	return errors
}

func (c *NoDuplicateCriterion) AffinityWeight() float64 {
	return 0
}
