package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
	_ "time/tzdata"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"

	"github.com/jakechorley/workday-roster/pkg/core/allocator"
	"github.com/jakechorley/workday-roster/pkg/core/calendar"
	"github.com/jakechorley/workday-roster/pkg/core/evaluation"
	"github.com/jakechorley/workday-roster/pkg/core/fairness"
	"github.com/jakechorley/workday-roster/pkg/core/model"
)

// StrategyLimits are the capacity and quota settings for one strategy
type StrategyLimits struct {
	MaxEmployeesPerDay int `yaml:"maxEmployeesPerDay" validate:"min=1"`
	MinDaysPerEmployee int `yaml:"minDaysPerEmployee" validate:"min=0,max=5"`
	MaxDaysPerEmployee int `yaml:"maxDaysPerEmployee" validate:"min=0,max=5"`
}

func (l StrategyLimits) limits() allocator.Limits {
	return allocator.Limits{
		MaxEmployeesPerDay: l.MaxEmployeesPerDay,
		MinDaysPerEmployee: l.MinDaysPerEmployee,
		MaxDaysPerEmployee: l.MaxDaysPerEmployee,
	}
}

// StrategiesConfig holds per-strategy limits. Capacity is scoped to each strategy's result set.
type StrategiesConfig struct {
	Fair       StrategyLimits `yaml:"fair"`
	Basic      StrategyLimits `yaml:"basic"`
	RoundRobin StrategyLimits `yaml:"roundRobin"`
	Random     StrategyLimits `yaml:"random"`
}

// EvaluationConfig controls the strategy comparison report
type EvaluationConfig struct {
	Strategies              []string `yaml:"strategies" validate:"min=1,dive,required"`
	MaxEmployeesPerDay      int      `yaml:"maxEmployeesPerDay" validate:"min=1"`
	MinDaysPerEmployee      int      `yaml:"minDaysPerEmployee" validate:"min=0,max=5"`
	MaxDaysPerEmployee      int      `yaml:"maxDaysPerEmployee" validate:"min=0,max=5"`
	SeedWithPersistedScores bool     `yaml:"seedWithPersistedScores"`
}

// Config represents the application configuration
type Config struct {
	DatabaseURL  string `yaml:"databaseURL" validate:"required"`
	ActorID      string `yaml:"actorID" validate:"required"`
	Timezone     string `yaml:"timezone" validate:"required"`
	WorkdayRRule string `yaml:"workdayRRule" validate:"required"`
	HistoryWeeks int    `yaml:"historyWeeks" validate:"min=0,max=52"`
	FairnessMin  int    `yaml:"fairnessMin"`
	FairnessMax  int    `yaml:"fairnessMax"`

	Strategies StrategiesConfig `yaml:"strategies"`
	Evaluation EvaluationConfig `yaml:"evaluation"`

	RosterSheetID         string `yaml:"rosterSheetID,omitempty"`
	GoogleCredentialsFile string `yaml:"googleCredentialsFile,omitempty"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Default returns a config holding every default value. DatabaseURL and ActorID are left empty.
func Default() *Config {
	return &Config{
		Timezone:     "Africa/Lagos",
		WorkdayRRule: calendar.DefaultRule,
		HistoryWeeks: 4,
		FairnessMin:  fairness.DefaultMin,
		FairnessMax:  fairness.DefaultMax,
		Strategies: StrategiesConfig{
			Fair:       StrategyLimits{MaxEmployeesPerDay: 12, MinDaysPerEmployee: 3, MaxDaysPerEmployee: 3},
			Basic:      StrategyLimits{MaxEmployeesPerDay: 15},
			RoundRobin: StrategyLimits{MaxEmployeesPerDay: 15},
			Random:     StrategyLimits{MaxEmployeesPerDay: 15},
		},
		Evaluation: EvaluationConfig{
			Strategies:         []string{string(model.StrategyFair), string(model.StrategyBasic), string(model.StrategyRoundRobin)},
			MaxEmployeesPerDay: 12,
			MinDaysPerEmployee: 2,
			MaxDaysPerEmployee: 3,
		},
	}
}

// LoadWithEnv loads and validates the configuration from roster_config_<env>.yaml
// It looks for the config file in the current directory first, then in the user's home directory
func LoadWithEnv(env string) (*Config, error) {
	configPath, err := findConfigFile(env)
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate validates the configuration struct and checks rrule, timezone and bounds
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if _, err := rrule.StrToRRule(cfg.WorkdayRRule); err != nil {
		return fmt.Errorf("invalid workdayRRule: %w", err)
	}

	if _, err := time.LoadLocation(cfg.Timezone); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", cfg.Timezone, err)
	}

	if cfg.FairnessMin > 0 || cfg.FairnessMax < 0 || cfg.FairnessMin >= cfg.FairnessMax {
		return fmt.Errorf("fairness bounds must satisfy fairnessMin <= 0 <= fairnessMax and min < max, got [%d, %d]",
			cfg.FairnessMin, cfg.FairnessMax)
	}

	settings := cfg.AllocatorSettings()
	for _, strategy := range model.AllStrategies {
		limits := strategyLimits(settings, strategy)
		if err := limits.Validate(); err != nil {
			return fmt.Errorf("invalid limits for strategy %s: %w", strategy, err)
		}
	}

	evalSettings, err := cfg.EvaluationSettings()
	if err != nil {
		return err
	}
	if err := evalSettings.Validate(); err != nil {
		return fmt.Errorf("invalid evaluation settings: %w", err)
	}

	return nil
}

// Location returns the configured time zone, falling back to UTC if it cannot be loaded
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Bounds returns the configured fairness score bounds
func (c *Config) Bounds() fairness.Bounds {
	return fairness.Bounds{Min: c.FairnessMin, Max: c.FairnessMax}
}

// AllocatorSettings converts the strategy limits into allocator settings.
// The Random strategy's generator is left nil.
func (c *Config) AllocatorSettings() allocator.Settings {
	return allocator.Settings{
		Fair:       c.Strategies.Fair.limits(),
		Basic:      c.Strategies.Basic.limits(),
		RoundRobin: c.Strategies.RoundRobin.limits(),
		Random:     c.Strategies.Random.limits(),
		Bounds:     c.Bounds(),
	}
}

// EvaluationSettings converts the evaluation section, parsing strategy names
func (c *Config) EvaluationSettings() (evaluation.Settings, error) {
	strategies := make([]model.StrategyType, 0, len(c.Evaluation.Strategies))
	for i, name := range c.Evaluation.Strategies {
		s, err := model.ParseStrategy(name)
		if err != nil {
			return evaluation.Settings{}, fmt.Errorf("invalid evaluation.strategies[%d]: %w", i, err)
		}
		strategies = append(strategies, s)
	}

	return evaluation.Settings{
		Strategies:              strategies,
		MaxEmployeesPerDay:      c.Evaluation.MaxEmployeesPerDay,
		MinDaysPerEmployee:      c.Evaluation.MinDaysPerEmployee,
		MaxDaysPerEmployee:      c.Evaluation.MaxDaysPerEmployee,
		Bounds:                  c.Bounds(),
		SeedWithPersistedScores: c.Evaluation.SeedWithPersistedScores,
	}, nil
}

func strategyLimits(settings allocator.Settings, strategy model.StrategyType) allocator.Limits {
	switch strategy {
	case model.StrategyBasic:
		return settings.Basic
	case model.StrategyRoundRobin:
		return settings.RoundRobin
	case model.StrategyRandom:
		return settings.Random
	default:
		return settings.Fair
	}
}

// findConfigFile searches for roster_config_<env>.yaml in current directory and home directory
func findConfigFile(env string) (string, error) {
	configFileName := fmt.Sprintf("roster_config_%s.yaml", env)

	// Check current directory
	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	// Check home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("config file %s not found in current directory or home directory", configFileName)
}
