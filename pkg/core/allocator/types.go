package allocator

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jakechorley/workday-roster/pkg/core/model"
	"github.com/jakechorley/workday-roster/pkg/core/week"
)

// Status distinguishes the three possible results of a strategy run
type Status string

const (
	// StatusGenerated means the run completed; Assignments may still be empty
	// if no candidate could be placed
	StatusGenerated Status = "GENERATED"

	// StatusAlreadyFull means there was nothing left to assign for the week
	StatusAlreadyFull Status = "ALREADY_FULL"

	// StatusInsufficientData means the run could not start (missing workdays or no employees)
	StatusInsufficientData Status = "INSUFFICIENT_DATA"
)

// Limits are the strategy-scoped capacity and quota settings
type Limits struct {
	// MaxEmployeesPerDay is the per-day capacity for this strategy's result set
	MaxEmployeesPerDay int

	// MinDaysPerEmployee is the weekly quota below which a shortfall is reported (FairGreedy only)
	MinDaysPerEmployee int

	// MaxDaysPerEmployee caps how many days one employee can hold in the week (FairGreedy only)
	MaxDaysPerEmployee int
}

// Validate checks the limits are usable
func (l Limits) Validate() error {
	if l.MaxEmployeesPerDay <= 0 {
		return fmt.Errorf("max employees per day must be positive, got %d", l.MaxEmployeesPerDay)
	}
	if l.MinDaysPerEmployee < 0 || l.MaxDaysPerEmployee < 0 {
		return fmt.Errorf("days per employee cannot be negative")
	}
	if l.MaxDaysPerEmployee > 0 && l.MinDaysPerEmployee > l.MaxDaysPerEmployee {
		return fmt.Errorf("min days per employee (%d) exceeds max (%d)", l.MinDaysPerEmployee, l.MaxDaysPerEmployee)
	}
	return nil
}

// WeekInput is everything a strategy needs to allocate one week
type WeekInput struct {
	// Window is the target week
	Window week.Window

	// Workdays are candidate workday rows; only Monday–Friday rows inside Window are used
	Workdays []model.Workday

	// Employees is the roster, ordered by ID
	Employees []model.Employee

	// Existing holds this strategy's assignments already recorded for the week
	Existing []model.Assignment

	// History holds this strategy's assignments from the trailing lookback weeks
	History []model.Assignment

	// AssignedBy is the actor recorded on every produced assignment
	AssignedBy string

	Logger *zap.Logger
}

func (in WeekInput) logger() *zap.Logger {
	if in.Logger == nil {
		return zap.NewNop()
	}
	return in.Logger
}

// Shortfall is an employee left below the minimum weekly quota
type Shortfall struct {
	EmployeeID string
	Assigned   int
	Required   int
}

// Outcome is the result of one strategy run
type Outcome struct {
	Strategy model.StrategyType
	Status   Status

	// Reason explains StatusInsufficientData or StatusAlreadyFull
	Reason string

	// Assignments are the new assignments produced by this run (no IDs yet)
	Assignments []model.Assignment

	// Scores are the final fairness scores of every roster employee (FairGreedy only)
	Scores map[string]int

	// Shortfalls lists employees still under the minimum quota (FairGreedy only)
	Shortfalls []Shortfall

	// ValidationErrors reports constraint violations in existing plus new assignments
	ValidationErrors []ValidationError
}

// Strategy is one interchangeable allocation algorithm
type Strategy interface {
	Type() model.StrategyType
	Allocate(input WeekInput) (*Outcome, error)
}

// ValidationError describes a constraint violation on one workday
type ValidationError struct {
	WorkdayID     string
	WorkdayDate   string
	CriterionName string
	Description   string
}

// WeekState tracks per-day occupancy and per-employee assigned days while a week is filled
type WeekState struct {
	// Workdays of the week, in date order
	Workdays []model.Workday

	// Capacity is the per-day limit
	Capacity int

	dayCounts    map[string]int
	employeeDays map[string]map[string]bool
	pairCounts   map[string]int
}

// NewWeekState builds state from the week's workdays and the assignments already recorded.
// Assignments for workdays outside the week are ignored.
func NewWeekState(workdays []model.Workday, capacity int, existing []model.Assignment) *WeekState {
	state := &WeekState{
		Workdays:     workdays,
		Capacity:     capacity,
		dayCounts:    make(map[string]int, len(workdays)),
		employeeDays: make(map[string]map[string]bool),
		pairCounts:   make(map[string]int),
	}

	inWeek := make(map[string]bool, len(workdays))
	for _, wd := range workdays {
		inWeek[wd.ID] = true
	}

	for _, a := range existing {
		if !inWeek[a.WorkdayID] {
			continue
		}
		state.record(a.EmployeeID, a.WorkdayID)
	}

	return state
}

func (s *WeekState) record(employeeID, workdayID string) {
	s.dayCounts[workdayID]++
	s.pairCounts[employeeID+"|"+workdayID]++

	days, ok := s.employeeDays[employeeID]
	if !ok {
		days = make(map[string]bool)
		s.employeeDays[employeeID] = days
	}
	days[workdayID] = true
}

func (s *WeekState) unrecord(employeeID, workdayID string) {
	key := employeeID + "|" + workdayID
	if s.pairCounts[key] == 0 {
		return
	}
	s.dayCounts[workdayID]--
	s.pairCounts[key]--
	if s.pairCounts[key] == 0 {
		delete(s.employeeDays[employeeID], workdayID)
	}
}

// Count returns how many employees hold the workday
func (s *WeekState) Count(workdayID string) int {
	return s.dayCounts[workdayID]
}

// IsFull reports whether the workday is at capacity
func (s *WeekState) IsFull(workdayID string) bool {
	return s.dayCounts[workdayID] >= s.Capacity
}

// AllFull reports whether every workday is at capacity
func (s *WeekState) AllFull() bool {
	for _, wd := range s.Workdays {
		if !s.IsFull(wd.ID) {
			return false
		}
	}
	return true
}

// IsAssigned reports whether the employee already holds the workday
func (s *WeekState) IsAssigned(employeeID, workdayID string) bool {
	return s.employeeDays[employeeID][workdayID]
}

// DaysFor returns the number of distinct workdays the employee holds
func (s *WeekState) DaysFor(employeeID string) int {
	return len(s.employeeDays[employeeID])
}

// Candidate is an employee being placed by FairGreedy
type Candidate struct {
	Employee model.Employee

	// Score is the current bounded fairness score
	Score int

	// Rotation is the employee's position in this week's rotated roster
	Rotation int

	// RecentWeekdays are weekdays the employee worked during the lookback window
	RecentWeekdays map[time.Weekday]bool
}
