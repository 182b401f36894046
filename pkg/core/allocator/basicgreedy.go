package allocator

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/workday-roster/pkg/core/model"
	"github.com/jakechorley/workday-roster/pkg/core/week"
)

// BasicGreedy makes one pick per workday: the first employee preferring the day,
// otherwise the next employee in roster order
type BasicGreedy struct {
	Limits Limits
}

func NewBasicGreedy(limits Limits) *BasicGreedy {
	return &BasicGreedy{Limits: limits}
}

func (b *BasicGreedy) Type() model.StrategyType {
	return model.StrategyBasic
}

func (b *BasicGreedy) Allocate(input WeekInput) (*Outcome, error) {
	if err := b.Limits.Validate(); err != nil {
		return nil, fmt.Errorf("invalid basic limits: %w", err)
	}

	logger := input.logger().With(zap.String("strategy", string(model.StrategyBasic)), zap.Stringer("week", input.Window))

	state, outcome := prepareSimpleRun(model.StrategyBasic, b.Limits, input, logger)
	if outcome != nil {
		return outcome, nil
	}

	employees := input.Employees
	produced := []model.Assignment{}

	// Only advanced when an assignment is made
	counter := 0

	for _, day := range state.Workdays {
		if state.IsFull(day.ID) {
			continue
		}

		employee, ok := firstPreferring(employees, day)
		if !ok {
			employee = employees[counter%len(employees)]
		}

		if state.IsAssigned(employee.ID, day.ID) {
			logger.Debug("Employee already assigned, skipping day",
				zap.String("employee_id", employee.ID),
				zap.String("workday_date", day.Date.Format("2006-01-02")))
			continue
		}

		state.record(employee.ID, day.ID)
		produced = append(produced, newAssignment(employee, day, input.AssignedBy, model.StrategyBasic))
		counter++
	}

	return finishSimpleRun(model.StrategyBasic, state, produced, logger), nil
}

func firstPreferring(employees []model.Employee, day model.Workday) (model.Employee, bool) {
	for _, e := range employees {
		if e.Prefers(day.Weekday()) {
			return e, true
		}
	}
	return model.Employee{}, false
}

// prepareSimpleRun applies the shared preconditions of the one-pick-per-day strategies.
// A non-nil outcome means the run stops there.
func prepareSimpleRun(strategy model.StrategyType, limits Limits, input WeekInput, logger *zap.Logger) (*WeekState, *Outcome) {
	workdays := week.FilterWorkdays(input.Window, input.Workdays)
	if len(workdays) == 0 {
		logger.Info("No workdays in week")
		return nil, insufficient(strategy, "no workdays in week")
	}

	if len(input.Employees) == 0 {
		logger.Info("No employees to allocate")
		return nil, insufficient(strategy, "no employees")
	}

	state := NewWeekState(workdays, limits.MaxEmployeesPerDay, input.Existing)
	if state.AllFull() {
		logger.Info("Week is already fully assigned")
		return nil, alreadyFull(strategy)
	}

	return state, nil
}

func finishSimpleRun(strategy model.StrategyType, state *WeekState, produced []model.Assignment, logger *zap.Logger) *Outcome {
	validationErrors := ValidateWeekState(state, []DayCriterion{NewCapacityCriterion(), NewNoDuplicateCriterion()})
	logValidation(logger, validationErrors)

	logger.Debug("Allocation finished", zap.Int("assignments", len(produced)))

	return &Outcome{
		Strategy:         strategy,
		Status:           StatusGenerated,
		Assignments:      produced,
		ValidationErrors: validationErrors,
	}
}
