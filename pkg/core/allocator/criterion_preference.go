package allocator

import "github.com/jakechorley/workday-roster/pkg/core/model"

// PreferenceAlignmentCriterion steers a candidate towards the kind of day their score says they are owed.
//
// Affinity:
//   - Score > 0 (absorbed non-preferred days): +1 for a preferred day
//   - Score < 0 (recently favoured): +1 for a non-preferred day
//   - Score == 0: neutral
type PreferenceAlignmentCriterion struct {
	affinityWeight float64
}

func NewPreferenceAlignmentCriterion(affinityWeight float64) *PreferenceAlignmentCriterion {
	return &PreferenceAlignmentCriterion{affinityWeight: affinityWeight}
}

func (c *PreferenceAlignmentCriterion) Name() string {
	return "PreferenceAlignment"
}

func (c *PreferenceAlignmentCriterion) IsDayValid(state *WeekState, candidate *Candidate, day model.Workday) bool {
	return true
}

func (c *PreferenceAlignmentCriterion) CalculateDayAffinity(state *WeekState, candidate *Candidate, day model.Workday) float64 {
	preferred := candidate.Employee.Prefers(day.Weekday())

	switch {
	case candidate.Score > 0 && preferred:
		return 1
	case candidate.Score < 0 && !preferred:
		return 1
	default:
		return 0
	}
}

func (c *PreferenceAlignmentCriterion) ValidateWeek(state *WeekState) []ValidationError {
	return nil
}

func (c *PreferenceAlignmentCriterion) AffinityWeight() float64 {
	return c.affinityWeight
}
