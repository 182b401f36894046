package allocator

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/jakechorley/workday-roster/pkg/core/model"
)

// RoundRobin gives each workday to the least-loaded employee among those preferring it
// (or the whole roster if nobody does). Load counts existing and newly made assignments.
type RoundRobin struct {
	Limits Limits
}

func NewRoundRobin(limits Limits) *RoundRobin {
	return &RoundRobin{Limits: limits}
}

func (rr *RoundRobin) Type() model.StrategyType {
	return model.StrategyRoundRobin
}

func (rr *RoundRobin) Allocate(input WeekInput) (*Outcome, error) {
	if err := rr.Limits.Validate(); err != nil {
		return nil, fmt.Errorf("invalid round robin limits: %w", err)
	}

	logger := input.logger().With(zap.String("strategy", string(model.StrategyRoundRobin)), zap.Stringer("week", input.Window))

	state, outcome := prepareSimpleRun(model.StrategyRoundRobin, rr.Limits, input, logger)
	if outcome != nil {
		return outcome, nil
	}

	load := make(map[string]int, len(input.Employees))
	for _, e := range input.Employees {
		load[e.ID] = state.DaysFor(e.ID)
	}

	produced := []model.Assignment{}

	for _, day := range state.Workdays {
		if state.IsFull(day.ID) {
			continue
		}

		pool := preferencePool(input.Employees, day)
		sort.SliceStable(pool, func(i, j int) bool {
			return load[pool[i].ID] < load[pool[j].ID]
		})
		employee := pool[0]

		if state.IsAssigned(employee.ID, day.ID) {
			logger.Debug("Employee already assigned, skipping day",
				zap.String("employee_id", employee.ID),
				zap.String("workday_date", day.Date.Format("2006-01-02")))
			continue
		}

		state.record(employee.ID, day.ID)
		load[employee.ID]++
		produced = append(produced, newAssignment(employee, day, input.AssignedBy, model.StrategyRoundRobin))
	}

	return finishSimpleRun(model.StrategyRoundRobin, state, produced, logger), nil
}
