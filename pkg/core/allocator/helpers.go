package allocator

import (
	"go.uber.org/zap"

	"github.com/jakechorley/workday-roster/pkg/core/model"
)

func insufficient(strategy model.StrategyType, reason string) *Outcome {
	return &Outcome{
		Strategy:    strategy,
		Status:      StatusInsufficientData,
		Reason:      reason,
		Assignments: []model.Assignment{},
	}
}

func alreadyFull(strategy model.StrategyType) *Outcome {
	return &Outcome{
		Strategy:    strategy,
		Status:      StatusAlreadyFull,
		Reason:      "week is already fully assigned",
		Assignments: []model.Assignment{},
	}
}

func newAssignment(employee model.Employee, day model.Workday, assignedBy string, strategy model.StrategyType) model.Assignment {
	return model.Assignment{
		EmployeeID:  employee.ID,
		WorkdayID:   day.ID,
		WorkdayDate: day.Date,
		AssignedBy:  assignedBy,
		Strategy:    strategy,
	}
}

// preferencePool returns the employees preferring the workday, or the whole roster if nobody does
func preferencePool(employees []model.Employee, day model.Workday) []model.Employee {
	pool := make([]model.Employee, 0, len(employees))
	for _, e := range employees {
		if e.Prefers(day.Weekday()) {
			pool = append(pool, e)
		}
	}
	if len(pool) == 0 {
		pool = append(pool, employees...)
	}
	return pool
}

func logValidation(logger *zap.Logger, errors []ValidationError) {
	for _, ve := range errors {
		logger.Warn("Week validation failed",
			zap.String("criterion", ve.CriterionName),
			zap.String("workday_date", ve.WorkdayDate),
			zap.String("description", ve.Description))
	}
}
