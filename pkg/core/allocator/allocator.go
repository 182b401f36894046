package allocator

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/jakechorley/workday-roster/pkg/core/fairness"
	"github.com/jakechorley/workday-roster/pkg/core/model"
	"github.com/jakechorley/workday-roster/pkg/core/week"
)

// FairGreedy fills a full Monday–Friday week, favouring employees with the fewest days and
// the lowest fairness score, and placing each on the day with the highest criterion affinity
type FairGreedy struct {
	Limits   Limits
	Bounds   fairness.Bounds
	Criteria []DayCriterion
}

// NewFairGreedy creates a FairGreedy strategy with the default day criteria
func NewFairGreedy(limits Limits, bounds fairness.Bounds) *FairGreedy {
	return &FairGreedy{
		Limits:   limits,
		Bounds:   bounds,
		Criteria: DefaultFairCriteria(),
	}
}

func (f *FairGreedy) Type() model.StrategyType {
	return model.StrategyFair
}

// fairRun holds the mutable state of one FairGreedy run
type fairRun struct {
	strategy   *FairGreedy
	input      WeekInput
	state      *WeekState
	candidates []*Candidate
	byID       map[string]*Candidate
	seeds      map[string]int
	produced   []model.Assignment
	logger     *zap.Logger
}

// Allocate runs the main FairGreedy loop for one week
func (f *FairGreedy) Allocate(input WeekInput) (*Outcome, error) {
	if err := f.Limits.Validate(); err != nil {
		return nil, fmt.Errorf("invalid fair limits: %w", err)
	}
	if f.Limits.MaxDaysPerEmployee <= 0 {
		return nil, fmt.Errorf("invalid fair limits: max days per employee must be positive")
	}

	logger := input.logger().With(zap.String("strategy", string(model.StrategyFair)), zap.Stringer("week", input.Window))

	workdays := week.FilterWorkdays(input.Window, input.Workdays)
	if len(workdays) < week.WorkingDays {
		logger.Info("Not enough workdays for a fair allocation",
			zap.Int("found", len(workdays)),
			zap.Int("required", week.WorkingDays))
		return insufficient(model.StrategyFair, fmt.Sprintf("found %d of %d workdays", len(workdays), week.WorkingDays)), nil
	}

	if len(input.Employees) == 0 {
		logger.Info("No employees to allocate")
		return insufficient(model.StrategyFair, "no employees"), nil
	}

	run := &fairRun{
		strategy: f,
		input:    input,
		state:    NewWeekState(workdays, f.Limits.MaxEmployeesPerDay, input.Existing),
		logger:   logger,
	}

	if run.weekComplete() {
		logger.Info("Week is already fully assigned")
		return alreadyFull(model.StrategyFair), nil
	}

	run.initCandidates()

	rounds := 0
	for {
		rounds++
		if run.allocateRound() == 0 {
			break
		}
	}

	repaired := run.repairShortfalls()

	logger.Debug("Fair allocation finished",
		zap.Int("rounds", rounds),
		zap.Int("repaired", repaired),
		zap.Int("assignments", len(run.produced)))

	if len(run.produced) == 0 {
		logger.Info("No employee could be placed")
		outcome := alreadyFull(model.StrategyFair)
		outcome.Reason = "no employee could be placed on an open workday"
		return outcome, nil
	}

	return run.buildOutcome(), nil
}

// weekComplete reports whether every day is at capacity or every employee holds the maximum days
func (r *fairRun) weekComplete() bool {
	if r.state.AllFull() {
		return true
	}
	for _, e := range r.input.Employees {
		if r.state.DaysFor(e.ID) < r.strategy.Limits.MaxDaysPerEmployee {
			return false
		}
	}
	return true
}

// initCandidates seeds scores from history plus existing assignments and fixes the rotation order
func (r *fairRun) initCandidates() {
	scores := r.strategy.Bounds.Seed(r.input.History, r.input.Existing, r.input.Employees)

	lookback := make([]model.Assignment, 0, len(r.input.History)+len(r.input.Existing))
	lookback = append(lookback, r.input.History...)
	lookback = append(lookback, r.input.Existing...)
	recent := fairness.RecentWeekdays(lookback)

	ordered := make([]model.Employee, len(r.input.Employees))
	copy(ordered, r.input.Employees)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].ID < ordered[j].ID
	})
	rotationIdx := week.RotationIndex(r.input.Window, len(ordered))
	rotated := week.Rotate(ordered, rotationIdx)

	r.seeds = scores
	r.candidates = make([]*Candidate, 0, len(rotated))
	r.byID = make(map[string]*Candidate, len(rotated))
	for i, e := range rotated {
		c := &Candidate{
			Employee:       e,
			Score:          scores[e.ID],
			Rotation:       i,
			RecentWeekdays: recent[e.ID],
		}
		r.candidates = append(r.candidates, c)
		r.byID[e.ID] = c
	}

	r.logger.Debug("Initialised fair candidates",
		zap.Int("candidates", len(r.candidates)),
		zap.Int("rotation_index", rotationIdx),
		zap.Int("history_assignments", len(r.input.History)),
		zap.Int("existing_assignments", len(r.input.Existing)))
}

// allocateRound gives each eligible candidate at most one day and returns how many were placed
func (r *fairRun) allocateRound() int {
	limits := r.strategy.Limits
	bounds := r.strategy.Bounds

	eligible := make([]*Candidate, 0, len(r.candidates))
	for _, c := range r.candidates {
		if r.state.DaysFor(c.Employee.ID) < limits.MaxDaysPerEmployee {
			eligible = append(eligible, c)
		}
	}

	sort.SliceStable(eligible, func(i, j int) bool {
		ai, aj := r.state.DaysFor(eligible[i].Employee.ID), r.state.DaysFor(eligible[j].Employee.ID)
		if ai != aj {
			return ai < aj
		}
		if eligible[i].Score != eligible[j].Score {
			return eligible[i].Score < eligible[j].Score
		}
		return eligible[i].Rotation < eligible[j].Rotation
	})

	placed := 0
	for _, c := range eligible {
		assigned := r.state.DaysFor(c.Employee.ID)

		// Employees at a score bound still receive their minimum before being held back
		if bounds.AtLimit(c.Score) && assigned >= limits.MinDaysPerEmployee {
			continue
		}

		day, ok := r.findBestDay(c)
		if !ok {
			continue
		}

		r.place(c, day)
		placed++
	}

	return placed
}

func (r *fairRun) place(c *Candidate, day model.Workday) {
	r.state.record(c.Employee.ID, day.ID)
	c.Score = r.strategy.Bounds.Apply(c.Score, c.Employee.Prefers(day.Weekday()))
	r.produced = append(r.produced, newAssignment(c.Employee, day, r.input.AssignedBy, model.StrategyFair))
}

// repairShortfalls runs once the greedy rounds stall. An employee still under the minimum whose
// only open days are ones they already hold takes a full day from someone who can move to an
// open day, or failing that from someone holding more than the minimum.
// Only assignments produced by this run are moved.
func (r *fairRun) repairShortfalls() int {
	minDays := r.strategy.Limits.MinDaysPerEmployee
	repaired := 0

	for _, c := range r.candidates {
		for r.state.DaysFor(c.Employee.ID) < minDays {
			if day, ok := r.findBestDay(c); ok {
				r.place(c, day)
			} else if !r.moveForShortfall(c) && !r.takeFromSurplus(c) {
				break
			}
			repaired++
		}
	}

	return repaired
}

// moveForShortfall moves another employee off a day c does not hold onto an open day, then gives c that day
func (r *fairRun) moveForShortfall(c *Candidate) bool {
	for _, day := range r.state.Workdays {
		if r.state.IsAssigned(c.Employee.ID, day.ID) {
			continue
		}
		for i, a := range r.produced {
			if a.WorkdayID != day.ID || a.EmployeeID == c.Employee.ID {
				continue
			}
			target, ok := r.openDayFor(a.EmployeeID, day.ID)
			if !ok {
				continue
			}

			r.state.unrecord(a.EmployeeID, day.ID)
			r.state.record(a.EmployeeID, target.ID)
			r.produced[i].WorkdayID = target.ID
			r.produced[i].WorkdayDate = target.Date
			r.rescore(a.EmployeeID)
			r.place(c, day)

			r.logger.Debug("Moved employee to cover a shortfall",
				zap.String("moved", a.EmployeeID),
				zap.String("from", day.Date.Format("2006-01-02")),
				zap.String("to", target.Date.Format("2006-01-02")),
				zap.String("employee_id", c.Employee.ID))
			return true
		}
	}
	return false
}

// takeFromSurplus gives c a day held by an employee who stays at or above the minimum without it
func (r *fairRun) takeFromSurplus(c *Candidate) bool {
	minDays := r.strategy.Limits.MinDaysPerEmployee

	for _, day := range r.state.Workdays {
		if r.state.IsAssigned(c.Employee.ID, day.ID) {
			continue
		}
		for i, a := range r.produced {
			if a.WorkdayID != day.ID || a.EmployeeID == c.Employee.ID || r.state.DaysFor(a.EmployeeID) <= minDays {
				continue
			}

			r.state.unrecord(a.EmployeeID, day.ID)
			r.produced = append(r.produced[:i], r.produced[i+1:]...)
			r.rescore(a.EmployeeID)
			r.place(c, day)

			r.logger.Debug("Reassigned surplus day to cover a shortfall",
				zap.String("from_employee", a.EmployeeID),
				zap.String("date", day.Date.Format("2006-01-02")),
				zap.String("employee_id", c.Employee.ID))
			return true
		}
	}
	return false
}

// openDayFor returns the first day below capacity that the employee does not hold, other than skip
func (r *fairRun) openDayFor(employeeID, skip string) (model.Workday, bool) {
	for _, day := range r.state.Workdays {
		if day.ID == skip || r.state.IsFull(day.ID) || r.state.IsAssigned(employeeID, day.ID) {
			continue
		}
		return day, true
	}
	return model.Workday{}, false
}

// rescore replays the employee's seed through every day this run produced for them
func (r *fairRun) rescore(employeeID string) {
	c, ok := r.byID[employeeID]
	if !ok {
		return
	}
	score := r.seeds[employeeID]
	for _, a := range r.produced {
		if a.EmployeeID == employeeID {
			score = r.strategy.Bounds.Apply(score, c.Employee.Prefers(a.WorkdayDate.Weekday()))
		}
	}
	c.Score = score
}

// findBestDay returns the valid day with the highest affinity; exact ties keep day order
func (r *fairRun) findBestDay(c *Candidate) (model.Workday, bool) {
	var best model.Workday
	var bestAffinity float64
	found := false

	for _, day := range r.state.Workdays {
		if !IsDayValidForCandidate(r.state, c, day, r.strategy.Criteria) {
			continue
		}

		affinity := CalculateDayAffinity(r.state, c, day, r.strategy.Criteria)
		if !found || affinity > bestAffinity {
			best = day
			bestAffinity = affinity
			found = true
		}
	}

	return best, found
}

func (r *fairRun) buildOutcome() *Outcome {
	limits := r.strategy.Limits

	outcome := &Outcome{
		Strategy:    model.StrategyFair,
		Status:      StatusGenerated,
		Assignments: r.produced,
		Scores:      make(map[string]int, len(r.candidates)),
		Shortfalls:  []Shortfall{},
	}
	if outcome.Assignments == nil {
		outcome.Assignments = []model.Assignment{}
	}

	for _, c := range r.candidates {
		outcome.Scores[c.Employee.ID] = c.Score

		assigned := r.state.DaysFor(c.Employee.ID)
		if assigned < limits.MinDaysPerEmployee {
			outcome.Shortfalls = append(outcome.Shortfalls, Shortfall{
				EmployeeID: c.Employee.ID,
				Assigned:   assigned,
				Required:   limits.MinDaysPerEmployee,
			})
			r.logger.Warn("Employee below minimum days",
				zap.String("employee_id", c.Employee.ID),
				zap.Int("assigned", assigned),
				zap.Int("required", limits.MinDaysPerEmployee))
		}
	}
	sort.Slice(outcome.Shortfalls, func(i, j int) bool {
		return outcome.Shortfalls[i].EmployeeID < outcome.Shortfalls[j].EmployeeID
	})

	outcome.ValidationErrors = ValidateWeekState(r.state, r.strategy.Criteria)
	logValidation(r.logger, outcome.ValidationErrors)

	return outcome
}
