package allocator

import "github.com/jakechorley/workday-roster/pkg/core/model"

// DayCriterion influences which workday a FairGreedy candidate is placed on
type DayCriterion interface {
	// Name returns a human-readable identifier for this criterion
	Name() string

	// IsDayValid determines if the candidate may be placed on the workday.
	// This acts as a veto - if ANY criterion returns false, the day cannot be used.
	IsDayValid(state *WeekState, candidate *Candidate, day model.Workday) bool

	// CalculateDayAffinity scores how well the workday suits the candidate.
	// The value is multiplied by AffinityWeight; higher totals are preferred.
	// Negative values act as penalties.
	CalculateDayAffinity(state *WeekState, candidate *Candidate, day model.Workday) float64

	// ValidateWeek checks the final week state against this criterion's constraint.
	// Returns an empty slice if the week is valid.
	ValidateWeek(state *WeekState) []ValidationError

	// AffinityWeight returns the multiplier applied to CalculateDayAffinity
	AffinityWeight() float64
}

// DefaultFairCriteria returns the FairGreedy day criteria: the hard capacity and duplicate
// vetoes plus preference alignment, repetition penalty and load balancing, all at weight 1
func DefaultFairCriteria() []DayCriterion {
	return []DayCriterion{
		NewCapacityCriterion(),
		NewNoDuplicateCriterion(),
		NewPreferenceAlignmentCriterion(1.0),
		NewRepetitionCriterion(1.0, 0.5),
		NewLoadBalanceCriterion(1.0),
	}
}

// IsDayValidForCandidate checks every criterion's veto
func IsDayValidForCandidate(state *WeekState, candidate *Candidate, day model.Workday, criteria []DayCriterion) bool {
	for _, criterion := range criteria {
		if !criterion.IsDayValid(state, candidate, day) {
			return false
		}
	}
	return true
}

// CalculateDayAffinity sums each criterion's weighted affinity
func CalculateDayAffinity(state *WeekState, candidate *Candidate, day model.Workday, criteria []DayCriterion) float64 {
	var total float64
	for _, criterion := range criteria {
		total += criterion.CalculateDayAffinity(state, candidate, day) * criterion.AffinityWeight()
	}
	return total
}

// ValidateWeekState runs each criterion's final validation
func ValidateWeekState(state *WeekState, criteria []DayCriterion) []ValidationError {
	var errors []ValidationError
	for _, criterion := range criteria {
		errors = append(errors, criterion.ValidateWeek(state)...)
	}
	return errors
}

// ValidateAssignments checks a set of assignments of one strategy type against the
// per-day capacity and the one-assignment-per-employee-per-day rule
func ValidateAssignments(workdays []model.Workday, capacity int, assignments []model.Assignment) []ValidationError {
	state := NewWeekState(workdays, capacity, assignments)
	return ValidateWeekState(state, []DayCriterion{NewCapacityCriterion(), NewNoDuplicateCriterion()})
}
