package allocator

import (
	"fmt"
	"time"

	"github.com/jakechorley/workday-roster/pkg/core/fairness"
	"github.com/jakechorley/workday-roster/pkg/core/model"
	"github.com/jakechorley/workday-roster/pkg/core/week"
)

// Week of Monday 2025-01-06 (ISO week 2)
var testMonday = time.Date(2025, 1, 6, 12, 0, 0, 0, time.UTC)

func windowAt(monday time.Time) week.Window {
	return week.Window{Start: monday, End: monday.AddDate(0, 0, 4)}
}

func workdaysFor(monday time.Time) []model.Workday {
	workdays := make([]model.Workday, 0, 5)
	for i := 0; i < 5; i++ {
		d := monday.AddDate(0, 0, i)
		workdays = append(workdays, model.Workday{ID: "wd-" + d.Format("2006-01-02"), Date: d})
	}
	return workdays
}

// fiveEmployees covers every weekday with exactly two preferences
func fiveEmployees() []model.Employee {
	return []model.Employee{
		{ID: "e1", FullName: "Ada", Role: model.RoleEmployee, PreferredDays: []string{"Monday", "Tuesday"}},
		{ID: "e2", FullName: "Bola", Role: model.RoleEmployee, PreferredDays: []string{"Wednesday", "Thursday"}},
		{ID: "e3", FullName: "Chidi", Role: model.RoleEmployee, PreferredDays: []string{"Friday", "Monday"}},
		{ID: "e4", FullName: "Dayo", Role: model.RoleEmployee, PreferredDays: []string{"Tuesday", "Wednesday"}},
		{ID: "e5", FullName: "Efe", Role: model.RoleEmployee, PreferredDays: []string{"Thursday", "Friday"}},
	}
}

func numberedEmployees(n int) []model.Employee {
	days := []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}
	employees := make([]model.Employee, 0, n)
	for i := 0; i < n; i++ {
		employees = append(employees, model.Employee{
			ID:            fmt.Sprintf("emp-%02d", i),
			Role:          model.RoleEmployee,
			PreferredDays: []string{days[i%5], days[(i+2)%5]},
		})
	}
	return employees
}

// skewedHistory gives each employee two uneven FAIR days in each of the trailing weeks
func skewedHistory(employees []model.Employee, weeks int) []model.Assignment {
	var history []model.Assignment
	for w := 1; w <= weeks; w++ {
		previous := workdaysFor(testMonday.AddDate(0, 0, -7*w))
		for i, e := range employees {
			first := (i + w) % 5
			second := (i*3 + w + 1) % 5
			history = append(history, existingOn(model.StrategyFair, e.ID, previous[first]))
			if second != first {
				history = append(history, existingOn(model.StrategyFair, e.ID, previous[second]))
			}
		}
	}
	return history
}

func weekInput(monday time.Time, employees []model.Employee) WeekInput {
	return WeekInput{
		Window:     windowAt(monday),
		Workdays:   workdaysFor(monday),
		Employees:  employees,
		AssignedBy: "admin",
	}
}

func existingOn(strategy model.StrategyType, employeeID string, day model.Workday) model.Assignment {
	return model.Assignment{
		EmployeeID:  employeeID,
		WorkdayID:   day.ID,
		WorkdayDate: day.Date,
		AssignedBy:  "admin",
		Strategy:    strategy,
	}
}

func countByEmployee(assignments []model.Assignment) map[string]int {
	counts := make(map[string]int)
	for _, a := range assignments {
		counts[a.EmployeeID]++
	}
	return counts
}

func countByWorkday(assignments []model.Assignment) map[string]int {
	counts := make(map[string]int)
	for _, a := range assignments {
		counts[a.WorkdayID]++
	}
	return counts
}

func uniquePairs(assignments []model.Assignment) bool {
	seen := make(map[string]bool)
	for _, a := range assignments {
		if seen[a.PairKey()] {
			return false
		}
		seen[a.PairKey()] = true
	}
	return true
}

func fairLimits() Limits {
	return DefaultSettings().Fair
}

func defaultBounds() fairness.Bounds {
	return fairness.DefaultBounds()
}

func weekdaysOf(assignments []model.Assignment, employeeID string) []time.Weekday {
	var days []time.Weekday
	for _, a := range assignments {
		if a.EmployeeID == employeeID {
			days = append(days, a.WorkdayDate.Weekday())
		}
	}
	return days
}
