package model

import (
	"fmt"
	"strings"
	"time"
)

// RoleEmployee is the only role eligible for scheduling
const RoleEmployee = "EMPLOYEE"

// StrategyType tags which allocation algorithm produced an assignment
type StrategyType string

const (
	StrategyFair       StrategyType = "FAIR"
	StrategyBasic      StrategyType = "BASIC"
	StrategyRoundRobin StrategyType = "ROUND_ROBIN"
	StrategyRandom     StrategyType = "RANDOM"
)

// AllStrategies lists every strategy type in display order
var AllStrategies = []StrategyType{StrategyFair, StrategyBasic, StrategyRoundRobin, StrategyRandom}

func (s StrategyType) IsValid() bool {
	switch s {
	case StrategyFair, StrategyBasic, StrategyRoundRobin, StrategyRandom:
		return true
	}
	return false
}

// ParseStrategy accepts either the stored tag (e.g. "ROUND_ROBIN") or a CLI-friendly
// name ("fair", "basic", "round-robin", "roundrobin", "random")
func ParseStrategy(name string) (StrategyType, error) {
	normalized := strings.ToUpper(strings.TrimSpace(name))
	normalized = strings.ReplaceAll(normalized, "-", "_")
	if normalized == "ROUNDROBIN" {
		normalized = string(StrategyRoundRobin)
	}

	s := StrategyType(normalized)
	if !s.IsValid() {
		return "", fmt.Errorf("unknown strategy %q", name)
	}
	return s, nil
}

// Employee is a schedulable member of staff
type Employee struct {
	ID            string
	FullName      string
	Role          string
	PreferredDays []string // English weekday names, e.g. "Monday"
	FairnessScore int
}

// Prefers reports whether the weekday is one of the employee's preferred days.
// Comparison is case-insensitive.
func (e Employee) Prefers(day time.Weekday) bool {
	name := day.String()
	for _, preferred := range e.PreferredDays {
		if strings.EqualFold(strings.TrimSpace(preferred), name) {
			return true
		}
	}
	return false
}

// Workday is a single schedulable calendar date.
// Date is a civil date normalised to 12:00 UTC so that one date maps to one row.
type Workday struct {
	ID   string
	Date time.Time
}

// Weekday returns the civil weekday of the workday
func (w Workday) Weekday() time.Weekday {
	return w.Date.Weekday()
}

// Assignment records one employee working one workday under one strategy
type Assignment struct {
	ID          string
	EmployeeID  string
	WorkdayID   string
	WorkdayDate time.Time
	AssignedBy  string
	Strategy    StrategyType
	CreatedAt   time.Time
}

// PairKey identifies the (employee, workday) pair of an assignment
func (a Assignment) PairKey() string {
	return a.EmployeeID + "|" + a.WorkdayID
}
