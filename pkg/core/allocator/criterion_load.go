package allocator

import "github.com/jakechorley/workday-roster/pkg/core/model"

// LoadBalanceCriterion spreads employees across days by penalising occupied days.
//
// Affinity:
//   - Returns -(current occupancy / capacity), so an empty day scores 0 and a nearly full day close to -1
type LoadBalanceCriterion struct {
	affinityWeight float64
}

func NewLoadBalanceCriterion(affinityWeight float64) *LoadBalanceCriterion {
	return &LoadBalanceCriterion{affinityWeight: affinityWeight}
}

func (c *LoadBalanceCriterion) Name() string {
	return "LoadBalance"
}

func (c *LoadBalanceCriterion) IsDayValid(state *WeekState, candidate *Candidate, day model.Workday) bool {
	return true
}

func (c *LoadBalanceCriterion) CalculateDayAffinity(state *WeekState, candidate *Candidate, day model.Workday) float64 {
	if state.Capacity <= 0 {
		return 0
	}
	return -float64(state.Count(day.ID)) / float64(state.Capacity)
}

func (c *LoadBalanceCriterion) ValidateWeek(state *WeekState) []ValidationError {
	return nil
}

func (c *LoadBalanceCriterion) AffinityWeight() float64 {
	return c.affinityWeight
}
