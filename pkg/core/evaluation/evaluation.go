package evaluation

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/jakechorley/workday-roster/pkg/core/fairness"
	"github.com/jakechorley/workday-roster/pkg/core/model"
)

// Settings controls which strategies are compared and the quota and capacity they are judged against
type Settings struct {
	Strategies         []model.StrategyType
	MaxEmployeesPerDay int
	MinDaysPerEmployee int
	MaxDaysPerEmployee int
	Bounds             fairness.Bounds

	// SeedWithPersistedScores adds each employee's persisted score to the history seed
	SeedWithPersistedScores bool
}

// DefaultSettings compares FAIR, BASIC and ROUND_ROBIN at capacity 12 with a 2–3 day quota
func DefaultSettings() Settings {
	return Settings{
		Strategies:         []model.StrategyType{model.StrategyFair, model.StrategyBasic, model.StrategyRoundRobin},
		MaxEmployeesPerDay: 12,
		MinDaysPerEmployee: 2,
		MaxDaysPerEmployee: 3,
		Bounds:             fairness.DefaultBounds(),
	}
}

// Validate checks the settings are usable
func (s Settings) Validate() error {
	if len(s.Strategies) == 0 {
		return fmt.Errorf("at least one strategy must be evaluated")
	}
	for _, st := range s.Strategies {
		if !st.IsValid() {
			return fmt.Errorf("unknown strategy %q", st)
		}
	}
	if s.MaxEmployeesPerDay <= 0 {
		return fmt.Errorf("max employees per day must be positive, got %d", s.MaxEmployeesPerDay)
	}
	if s.MinDaysPerEmployee > s.MaxDaysPerEmployee {
		return fmt.Errorf("min days per employee (%d) exceeds max (%d)", s.MinDaysPerEmployee, s.MaxDaysPerEmployee)
	}
	return nil
}

// Input is the data a report is computed from
type Input struct {
	WeekStart time.Time
	WeekEnd   time.Time

	// Workdays of the target week
	Workdays []model.Workday

	// Employees is the roster being evaluated
	Employees []model.Employee

	// Results holds each strategy's assignments for the week
	Results map[model.StrategyType][]model.Assignment

	// History holds FAIR assignments from the trailing lookback weeks; it seeds every strategy's scores
	History []model.Assignment
}

// EmployeeScore is one employee's signed fairness score
type EmployeeScore struct {
	EmployeeID string `json:"employeeId"`
	Score      int    `json:"score"`
}

// EmployeeDays counts one employee's days in the week
type EmployeeDays struct {
	EmployeeID   string `json:"employeeId"`
	Preferred    int    `json:"preferred"`
	NonPreferred int    `json:"nonPreferred"`
	Total        int    `json:"total"`
}

// StrategyReport holds the metrics for one strategy's result set
type StrategyReport struct {
	Strategy         model.StrategyType `json:"strategy"`
	TotalAssignments int                `json:"totalAssignments"`

	// FairnessIndex is the population standard deviation of Scores; lower is more balanced
	FairnessIndex float64 `json:"fairnessIndex"`
	AverageScore  float64 `json:"averageScore"`

	// TotalPenalty is the sum of absolute deviations from AverageScore
	TotalPenalty float64 `json:"totalPenalty"`

	Scores []EmployeeScore `json:"scores"`
	Days   []EmployeeDays  `json:"days"`

	// OutOfBounds lists employees whose score lies outside the fairness bounds
	OutOfBounds []EmployeeScore `json:"outOfBounds"`

	// InvalidAssignments lists employees with at least one day whose total is outside the quota
	InvalidAssignments []EmployeeDays `json:"invalidAssignments"`
}

// OverAssignedWorkday is a workday whose combined count across strategies exceeds capacity
type OverAssignedWorkday struct {
	WorkdayID string    `json:"workdayId"`
	Date      time.Time `json:"date"`
	Count     int       `json:"count"`
}

// Report is the full strategy comparison for one week
type Report struct {
	WeekStart            time.Time             `json:"weekStart"`
	WeekEnd              time.Time             `json:"weekEnd"`
	Strategies           []StrategyReport      `json:"strategies"`
	OverAssignedWorkdays []OverAssignedWorkday `json:"overAssignedWorkdays"`
	TotalAvailableSlots  int                   `json:"totalAvailableSlots"`
	TotalRequiredSlots   int                   `json:"totalRequiredSlots"`
}

// Strategy returns the report for one strategy
func (r *Report) Strategy(strategy model.StrategyType) (StrategyReport, bool) {
	for _, sr := range r.Strategies {
		if sr.Strategy == strategy {
			return sr, true
		}
	}
	return StrategyReport{}, false
}

// Evaluate computes the comparison report. It is pure: the same input always yields the same report.
func Evaluate(input Input, settings Settings) (*Report, error) {
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid evaluation settings: %w", err)
	}

	employees := make([]model.Employee, len(input.Employees))
	copy(employees, input.Employees)
	sort.SliceStable(employees, func(i, j int) bool {
		return employees[i].ID < employees[j].ID
	})

	dates := make(map[string]time.Time, len(input.Workdays))
	for _, wd := range input.Workdays {
		dates[wd.ID] = wd.Date
	}

	seed := fairness.Ledger(withDates(input.History, dates), employees)
	if settings.SeedWithPersistedScores {
		for _, e := range employees {
			seed[e.ID] += e.FairnessScore
		}
	}

	report := &Report{
		WeekStart:            input.WeekStart,
		WeekEnd:              input.WeekEnd,
		Strategies:           make([]StrategyReport, 0, len(settings.Strategies)),
		OverAssignedWorkdays: []OverAssignedWorkday{},
		TotalAvailableSlots:  len(input.Workdays) * settings.MaxEmployeesPerDay,
		TotalRequiredSlots:   len(employees) * settings.MinDaysPerEmployee,
	}

	combined := make(map[string]int)
	for _, strategy := range settings.Strategies {
		assignments := withDates(input.Results[strategy], dates)
		report.Strategies = append(report.Strategies, evaluateStrategy(strategy, assignments, employees, seed, settings))

		for _, a := range assignments {
			if _, ok := dates[a.WorkdayID]; ok {
				combined[a.WorkdayID]++
			}
		}
	}

	for _, wd := range input.Workdays {
		if count := combined[wd.ID]; count > settings.MaxEmployeesPerDay {
			report.OverAssignedWorkdays = append(report.OverAssignedWorkdays, OverAssignedWorkday{
				WorkdayID: wd.ID,
				Date:      wd.Date,
				Count:     count,
			})
		}
	}
	sort.SliceStable(report.OverAssignedWorkdays, func(i, j int) bool {
		return report.OverAssignedWorkdays[i].Date.Before(report.OverAssignedWorkdays[j].Date)
	})

	return report, nil
}

func evaluateStrategy(
	strategy model.StrategyType,
	assignments []model.Assignment,
	employees []model.Employee,
	seed map[string]int,
	settings Settings,
) StrategyReport {
	byID := make(map[string]model.Employee, len(employees))
	scores := make(map[string]int, len(employees))
	days := make(map[string]*EmployeeDays, len(employees))
	for _, e := range employees {
		byID[e.ID] = e
		scores[e.ID] = seed[e.ID]
		days[e.ID] = &EmployeeDays{EmployeeID: e.ID}
	}

	total := 0
	for _, a := range assignments {
		emp, ok := byID[a.EmployeeID]
		if !ok || a.WorkdayDate.IsZero() {
			continue
		}
		total++

		preferred := emp.Prefers(a.WorkdayDate.Weekday())
		scores[a.EmployeeID] += fairness.Delta(preferred)

		d := days[a.EmployeeID]
		d.Total++
		if preferred {
			d.Preferred++
		} else {
			d.NonPreferred++
		}
	}

	sr := StrategyReport{
		Strategy:           strategy,
		TotalAssignments:   total,
		Scores:             make([]EmployeeScore, 0, len(employees)),
		Days:               make([]EmployeeDays, 0, len(employees)),
		OutOfBounds:        []EmployeeScore{},
		InvalidAssignments: []EmployeeDays{},
	}

	for _, e := range employees {
		score := EmployeeScore{EmployeeID: e.ID, Score: scores[e.ID]}
		sr.Scores = append(sr.Scores, score)
		if !settings.Bounds.Contains(score.Score) {
			sr.OutOfBounds = append(sr.OutOfBounds, score)
		}

		d := *days[e.ID]
		sr.Days = append(sr.Days, d)
		if d.Total > 0 && (d.Total < settings.MinDaysPerEmployee || d.Total > settings.MaxDaysPerEmployee) {
			sr.InvalidAssignments = append(sr.InvalidAssignments, d)
		}
	}

	sr.AverageScore, sr.FairnessIndex, sr.TotalPenalty = dispersion(sr.Scores)

	return sr
}

// dispersion returns the mean, population standard deviation and total absolute deviation
func dispersion(scores []EmployeeScore) (mean, stddev, totalDeviation float64) {
	if len(scores) == 0 {
		return 0, 0, 0
	}

	var sum float64
	for _, s := range scores {
		sum += float64(s.Score)
	}
	mean = sum / float64(len(scores))

	var squares float64
	for _, s := range scores {
		diff := float64(s.Score) - mean
		squares += diff * diff
		totalDeviation += math.Abs(diff)
	}
	stddev = math.Sqrt(squares / float64(len(scores)))

	return mean, stddev, totalDeviation
}

// withDates fills missing workday dates from the week's workdays
func withDates(assignments []model.Assignment, dates map[string]time.Time) []model.Assignment {
	result := make([]model.Assignment, 0, len(assignments))
	for _, a := range assignments {
		if a.WorkdayDate.IsZero() {
			if d, ok := dates[a.WorkdayID]; ok {
				a.WorkdayDate = d
			}
		}
		result = append(result, a)
	}
	return result
}
