package allocator

import (
	"fmt"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"github.com/jakechorley/workday-roster/pkg/core/model"
)

// Random gives each workday to an employee picked uniformly from those preferring it
// (or the whole roster if nobody does)
type Random struct {
	Limits Limits
	Rand   *rand.Rand
}

// NewRandom creates a Random strategy. A nil rng is replaced by a time-seeded generator.
func NewRandom(limits Limits, rng *rand.Rand) *Random {
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed))
	}
	return &Random{Limits: limits, Rand: rng}
}

// NewSeededRandom creates a Random strategy whose picks replay for the same seed
func NewSeededRandom(limits Limits, seed uint64) *Random {
	return NewRandom(limits, rand.New(rand.NewPCG(seed, seed)))
}

func (r *Random) Type() model.StrategyType {
	return model.StrategyRandom
}

func (r *Random) Allocate(input WeekInput) (*Outcome, error) {
	if err := r.Limits.Validate(); err != nil {
		return nil, fmt.Errorf("invalid random limits: %w", err)
	}

	logger := input.logger().With(zap.String("strategy", string(model.StrategyRandom)), zap.Stringer("week", input.Window))

	state, outcome := prepareSimpleRun(model.StrategyRandom, r.Limits, input, logger)
	if outcome != nil {
		return outcome, nil
	}

	produced := []model.Assignment{}

	for _, day := range state.Workdays {
		if state.IsFull(day.ID) {
			continue
		}

		pool := preferencePool(input.Employees, day)
		employee := pool[r.Rand.IntN(len(pool))]

		if state.IsAssigned(employee.ID, day.ID) {
			logger.Debug("Employee already assigned, skipping day",
				zap.String("employee_id", employee.ID),
				zap.String("workday_date", day.Date.Format("2006-01-02")))
			continue
		}

		state.record(employee.ID, day.ID)
		produced = append(produced, newAssignment(employee, day, input.AssignedBy, model.StrategyRandom))
	}

	return finishSimpleRun(model.StrategyRandom, state, produced, logger), nil
}
