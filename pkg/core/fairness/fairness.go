package fairness

import (
	"time"

	"github.com/jakechorley/workday-roster/pkg/core/model"
)

const (
	// DefaultMin and DefaultMax bound the persisted fairness score
	DefaultMin = -3
	DefaultMax = 3
)

// Bounds is the inclusive range a score is clamped into
type Bounds struct {
	Min int
	Max int
}

// DefaultBounds returns [-3, +3]
func DefaultBounds() Bounds {
	return Bounds{Min: DefaultMin, Max: DefaultMax}
}

// Clamp forces score into the bounds
func (b Bounds) Clamp(score int) int {
	if score < b.Min {
		return b.Min
	}
	if score > b.Max {
		return b.Max
	}
	return score
}

// Contains reports whether score lies within the bounds
func (b Bounds) Contains(score int) bool {
	return score >= b.Min && score <= b.Max
}

// AtLimit reports whether score sits on or beyond either bound
func (b Bounds) AtLimit(score int) bool {
	return score <= b.Min || score >= b.Max
}

// Delta is the score change for one assignment.
// A preferred day lowers the score, a non-preferred day banks a point of credit.
func Delta(preferred bool) int {
	if preferred {
		return -1
	}
	return 1
}

// Apply adds one assignment's delta and clamps the result
func (b Bounds) Apply(score int, preferred bool) int {
	return b.Clamp(score + Delta(preferred))
}

// Ledger sums the unclamped delta per employee over a set of assignments.
// Assignments for employees not in the roster, or without a workday date, are ignored.
// Every roster employee has an entry, zero if they have no assignments.
func Ledger(assignments []model.Assignment, employees []model.Employee) map[string]int {
	byID := make(map[string]model.Employee, len(employees))
	scores := make(map[string]int, len(employees))
	for _, e := range employees {
		byID[e.ID] = e
		scores[e.ID] = 0
	}

	for _, a := range assignments {
		emp, ok := byID[a.EmployeeID]
		if !ok || a.WorkdayDate.IsZero() {
			continue
		}
		scores[a.EmployeeID] += Delta(emp.Prefers(a.WorkdayDate.Weekday()))
	}

	return scores
}

// Seed computes bounded starting scores from trailing history plus any assignments already
// present in the current week
func (b Bounds) Seed(history, current []model.Assignment, employees []model.Employee) map[string]int {
	all := make([]model.Assignment, 0, len(history)+len(current))
	all = append(all, history...)
	all = append(all, current...)

	scores := Ledger(all, employees)
	for id, s := range scores {
		scores[id] = b.Clamp(s)
	}
	return scores
}

// RecentWeekdays collects, per employee, the weekdays they worked in the given assignments
func RecentWeekdays(assignments []model.Assignment) map[string]map[time.Weekday]bool {
	recent := make(map[string]map[time.Weekday]bool)
	for _, a := range assignments {
		if a.WorkdayDate.IsZero() {
			continue
		}
		days, ok := recent[a.EmployeeID]
		if !ok {
			days = make(map[time.Weekday]bool)
			recent[a.EmployeeID] = days
		}
		days[a.WorkdayDate.Weekday()] = true
	}
	return recent
}
