package allocator

import (
	"fmt"

	"github.com/jakechorley/workday-roster/pkg/core/model"
)

// CapacityCriterion prevents a workday from exceeding its per-day capacity.
//
// Validity:
//   - Returns false once the workday holds Capacity employees
//
// Affinity:
//   - None (see LoadBalanceCriterion)
type CapacityCriterion struct{}

func NewCapacityCriterion() *CapacityCriterion {
	return &CapacityCriterion{}
}

func (c *CapacityCriterion) Name() string {
	return "Capacity"
}

func (c *CapacityCriterion) IsDayValid(state *WeekState, candidate *Candidate, day model.Workday) bool {
	return !state.IsFull(day.ID)
}

func (c *CapacityCriterion) CalculateDayAffinity(state *WeekState, candidate *Candidate, day model.Workday) float64 {
	return 0
}

func (c *CapacityCriterion) ValidateWeek(state *WeekState) []ValidationError {
	var errors []ValidationError

	for _, wd := range state.Workdays {
		count := state.Count(wd.ID)
		if count > state.Capacity {
			errors = append(errors, ValidationError{
				WorkdayID:     wd.ID,
				WorkdayDate:   wd.Date.Format("2006-01-02"),
				CriterionName: c.Name(),
				Description:   fmt.Sprintf("Workday is over capacity: has %d employees but capacity is %d", count, state.Capacity),
			})
		}
	}

	return errors
}

func (c *CapacityCriterion) AffinityWeight() float64 {
	return 0
}
