package services

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/jakechorley/workday-roster/internal/config"
	"github.com/jakechorley/workday-roster/pkg/core/model"
	"github.com/jakechorley/workday-roster/pkg/core/week"
	"github.com/jakechorley/workday-roster/pkg/db"
)

// mockDatabase is an in-memory db.Database that keeps the (employee, workday, strategy)
// uniqueness rule of the real ledger
type mockDatabase struct {
	mu sync.Mutex

	workdays    map[string]model.Workday // keyed by ID
	employees   []model.Employee
	assignments []model.Assignment
	clock       time.Time

	ensureCalls   int
	insertCalls   int
	updatedScores map[string]int

	ensureErr          error
	listWorkdaysErr    error
	listEmployeesErr   error
	getEmployeeErr     error
	findAssignmentErr  error
	listAssignmentsErr error
	insertErr          error
	updateScoresErr    error
}

var _ db.Database = (*mockDatabase)(nil)

func newMockDatabase(employees ...model.Employee) *mockDatabase {
	return &mockDatabase{
		workdays:  make(map[string]model.Workday),
		employees: employees,
		clock:     time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC),
	}
}

func workdayID(date time.Time) string {
	return "wd-" + date.Format("2006-01-02")
}

func (m *mockDatabase) ListWorkdays(ctx context.Context, from, to time.Time) ([]model.Workday, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.listWorkdaysErr != nil {
		return nil, m.listWorkdaysErr
	}

	from, to = week.Normalize(from), week.Normalize(to)
	var result []model.Workday
	for _, wd := range m.workdays {
		if !wd.Date.Before(from) && !wd.Date.After(to) {
			result = append(result, wd)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Date.Before(result[j].Date)
	})
	return result, nil
}

func (m *mockDatabase) EnsureWorkdays(ctx context.Context, dates []time.Time) ([]model.Workday, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ensureCalls++
	if m.ensureErr != nil {
		return nil, m.ensureErr
	}

	result := make([]model.Workday, 0, len(dates))
	for _, d := range dates {
		wd := model.Workday{ID: workdayID(d), Date: week.Normalize(d)}
		if existing, ok := m.workdays[wd.ID]; ok {
			wd = existing
		} else {
			m.workdays[wd.ID] = wd
		}
		result = append(result, wd)
	}
	return result, nil
}

func (m *mockDatabase) ListEmployees(ctx context.Context) ([]model.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.listEmployeesErr != nil {
		return nil, m.listEmployeesErr
	}

	var result []model.Employee
	for _, e := range m.employees {
		if e.Role == model.RoleEmployee {
			result = append(result, e)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (m *mockDatabase) GetEmployee(ctx context.Context, id string) (*model.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.getEmployeeErr != nil {
		return nil, m.getEmployeeErr
	}
	for _, e := range m.employees {
		if e.ID == id {
			found := e
			return &found, nil
		}
	}
	return nil, fmt.Errorf("employee %s: %w", id, db.ErrNotFound)
}

func (m *mockDatabase) UpdateFairnessScores(ctx context.Context, scores map[string]int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.updateScoresErr != nil {
		return m.updateScoresErr
	}

	if m.updatedScores == nil {
		m.updatedScores = make(map[string]int)
	}
	for i, e := range m.employees {
		if score, ok := scores[e.ID]; ok {
			m.employees[i].FairnessScore = score
			m.updatedScores[e.ID] = score
		}
	}
	return nil
}

func (m *mockDatabase) FindAssignment(ctx context.Context, employeeID, workdayID string) (*model.Assignment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.findAssignmentErr != nil {
		return nil, m.findAssignmentErr
	}
	for _, a := range m.assignments {
		if a.EmployeeID == employeeID && a.WorkdayID == workdayID {
			found := a
			return &found, nil
		}
	}
	return nil, db.ErrNotFound
}

func (m *mockDatabase) ListAssignments(ctx context.Context, filter db.AssignmentFilter) ([]model.Assignment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.listAssignmentsErr != nil {
		return nil, m.listAssignmentsErr
	}

	var result []model.Assignment
	for _, a := range m.assignments {
		if filter.Matches(a) {
			result = append(result, a)
		}
	}

	if filter.NewestFirst {
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		})
	} else {
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].WorkdayDate.Before(result[j].WorkdayDate)
		})
	}
	return result, nil
}

func (m *mockDatabase) InsertAssignments(ctx context.Context, assignments []model.Assignment) ([]model.Assignment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.insertCalls++
	if m.insertErr != nil {
		return nil, m.insertErr
	}

	inserted := make([]model.Assignment, 0, len(assignments))
	for _, a := range assignments {
		if m.hasTriple(a) {
			continue
		}
		m.clock = m.clock.Add(time.Second)
		a.CreatedAt = m.clock
		if wd, ok := m.workdays[a.WorkdayID]; ok {
			a.WorkdayDate = wd.Date
		}
		m.assignments = append(m.assignments, a)
		inserted = append(inserted, a)
	}
	return inserted, nil
}

func (m *mockDatabase) hasTriple(a model.Assignment) bool {
	for _, existing := range m.assignments {
		if existing.EmployeeID == a.EmployeeID && existing.WorkdayID == a.WorkdayID && existing.Strategy == a.Strategy {
			return true
		}
	}
	return false
}

// seed records assignments directly, ensuring their workdays exist
func (m *mockDatabase) seed(strategy model.StrategyType, assignedBy string, pairs map[string][]time.Time) {
	ids := make([]string, 0, len(pairs))
	for id := range pairs {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, employeeID := range ids {
		for _, d := range pairs[employeeID] {
			wds, _ := m.EnsureWorkdays(context.Background(), []time.Time{d})
			_, _ = m.InsertAssignments(context.Background(), []model.Assignment{{
				ID:         fmt.Sprintf("seed-%s-%s-%s", strategy, employeeID, d.Format("2006-01-02")),
				EmployeeID: employeeID,
				WorkdayID:  wds[0].ID,
				AssignedBy: assignedBy,
				Strategy:   strategy,
			}})
		}
	}
}

func (m *mockDatabase) countByStrategy(strategy model.StrategyType) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	count := 0
	for _, a := range m.assignments {
		if a.Strategy == strategy {
			count++
		}
	}
	return count
}

// mockPublisher implements RosterPublisher for testing
type mockPublisher struct {
	spreadsheetID string
	published     *model.RosterTable
	publishErr    error
}

func (m *mockPublisher) PublishRoster(ctx context.Context, spreadsheetID string, table *model.RosterTable) error {
	if m.publishErr != nil {
		return m.publishErr
	}
	m.spreadsheetID = spreadsheetID
	m.published = table
	return nil
}

var testMonday = time.Date(2025, 1, 6, 12, 0, 0, 0, time.UTC)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.DatabaseURL = "postgres://localhost/roster_test"
	cfg.ActorID = "admin-1"
	cfg.Timezone = "UTC"
	return cfg
}

// fiveEmployees covers every weekday with exactly two preferences
func fiveEmployees() []model.Employee {
	return []model.Employee{
		{ID: "e1", FullName: "Ada Obi", Role: model.RoleEmployee, PreferredDays: []string{"Monday", "Tuesday"}},
		{ID: "e2", FullName: "Bola Ade", Role: model.RoleEmployee, PreferredDays: []string{"Wednesday", "Thursday"}},
		{ID: "e3", FullName: "Chidi Eze", Role: model.RoleEmployee, PreferredDays: []string{"Friday", "Monday"}},
		{ID: "e4", FullName: "Dayo Bello", Role: model.RoleEmployee, PreferredDays: []string{"Tuesday", "Wednesday"}},
		{ID: "e5", FullName: "Efe Okon", Role: model.RoleEmployee, PreferredDays: []string{"Thursday", "Friday"}},
	}
}

func pairKeys(assignments []model.Assignment) []string {
	keys := make([]string, 0, len(assignments))
	for _, a := range assignments {
		keys = append(keys, a.EmployeeID+"@"+a.WorkdayDate.Format("2006-01-02"))
	}
	sort.Strings(keys)
	return keys
}
