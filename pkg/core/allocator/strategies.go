package allocator

import (
	"fmt"
	"math/rand/v2"

	"github.com/jakechorley/workday-roster/pkg/core/fairness"
	"github.com/jakechorley/workday-roster/pkg/core/model"
)

// Settings holds the strategy-scoped limits used to build any strategy
type Settings struct {
	Fair       Limits
	Basic      Limits
	RoundRobin Limits
	Random     Limits
	Bounds     fairness.Bounds

	// Rand drives the Random strategy; nil means time-seeded
	Rand *rand.Rand
}

// DefaultSettings returns capacity 12 with exactly three days per employee for FairGreedy,
// and capacity 15 for the simpler strategies
func DefaultSettings() Settings {
	return Settings{
		Fair:       Limits{MaxEmployeesPerDay: 12, MinDaysPerEmployee: 3, MaxDaysPerEmployee: 3},
		Basic:      Limits{MaxEmployeesPerDay: 15},
		RoundRobin: Limits{MaxEmployeesPerDay: 15},
		Random:     Limits{MaxEmployeesPerDay: 15},
		Bounds:     fairness.DefaultBounds(),
	}
}

// ForType builds the strategy for a strategy type
func ForType(strategy model.StrategyType, settings Settings) (Strategy, error) {
	switch strategy {
	case model.StrategyFair:
		return NewFairGreedy(settings.Fair, settings.Bounds), nil
	case model.StrategyBasic:
		return NewBasicGreedy(settings.Basic), nil
	case model.StrategyRoundRobin:
		return NewRoundRobin(settings.RoundRobin), nil
	case model.StrategyRandom:
		return NewRandom(settings.Random, settings.Rand), nil
	default:
		return nil, fmt.Errorf("unknown strategy %q", strategy)
	}
}

// CapacityFor returns the per-day capacity of a strategy type
func (s Settings) CapacityFor(strategy model.StrategyType) int {
	switch strategy {
	case model.StrategyFair:
		return s.Fair.MaxEmployeesPerDay
	case model.StrategyBasic:
		return s.Basic.MaxEmployeesPerDay
	case model.StrategyRoundRobin:
		return s.RoundRobin.MaxEmployeesPerDay
	case model.StrategyRandom:
		return s.Random.MaxEmployeesPerDay
	}
	return 0
}
