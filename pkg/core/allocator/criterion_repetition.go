package allocator

import "github.com/jakechorley/workday-roster/pkg/core/model"

// RepetitionCriterion penalises giving a candidate the same weekday they worked during the lookback window
type RepetitionCriterion struct {
	affinityWeight float64
	penalty        float64
}

func NewRepetitionCriterion(affinityWeight, penalty float64) *RepetitionCriterion {
	return &RepetitionCriterion{
		affinityWeight: affinityWeight,
		penalty:        penalty,
	}
}

func (c *RepetitionCriterion) Name() string {
	return "Repetition"
}

func (c *RepetitionCriterion) IsDayValid(state *WeekState, candidate *Candidate, day model.Workday) bool {
	return true
}

func (c *RepetitionCriterion) CalculateDayAffinity(state *WeekState, candidate *Candidate, day model.Workday) float64 {
	if candidate.RecentWeekdays[day.Weekday()] {
		return -c.penalty
	}
	return 0
}

func (c *RepetitionCriterion) ValidateWeek(state *WeekState) []ValidationError {
	return nil
}

func (c *RepetitionCriterion) AffinityWeight() float64 {
	return c.affinityWeight
}
