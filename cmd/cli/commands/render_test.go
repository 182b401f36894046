package commands

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jakechorley/workday-roster/pkg/core/allocator"
	"github.com/jakechorley/workday-roster/pkg/core/evaluation"
	"github.com/jakechorley/workday-roster/pkg/core/model"
	"github.com/jakechorley/workday-roster/pkg/core/services"
	"github.com/jakechorley/workday-roster/pkg/core/week"
	"github.com/jakechorley/workday-roster/pkg/metrics"
)

var monday = time.Date(2025, 1, 6, 12, 0, 0, 0, time.UTC)

func TestPrintRunResult(t *testing.T) {
	var buf bytes.Buffer
	printRunResult(&buf, &services.RunResult{
		Strategy: model.StrategyFair,
		Window:   week.Window{Start: monday, End: monday.AddDate(0, 0, 4)},
		Status:   allocator.StatusGenerated,
		Assignments: []model.Assignment{
			{EmployeeID: "e1", WorkdayDate: monday},
			{EmployeeID: "e2", WorkdayDate: monday},
			{EmployeeID: "e1", WorkdayDate: monday.AddDate(0, 0, 1)},
		},
		Skipped:    1,
		Shortfalls: []allocator.Shortfall{{EmployeeID: "e3", Assigned: 1, Required: 3}},
		Scores:     map[string]int{"e2": -1, "e1": 2},
	})

	out := buf.String()
	assert.Contains(t, out, "FAIR 2025-01-06..2025-01-10")
	assert.Contains(t, out, "GENERATED")
	assert.Contains(t, out, "Created:     3")
	assert.Contains(t, out, "Skipped:     1")
	assert.Contains(t, out, "Mon 2025-01-06  2")
	assert.Contains(t, out, "Tue 2025-01-07  1")
	assert.Contains(t, out, "e3  1/3")
	assert.Contains(t, out, "+2")
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("e1 ")), bytes.Index(buf.Bytes(), []byte("e2 ")), "scores are sorted by employee")
}

func TestPrintRunResult_AlreadyFull(t *testing.T) {
	var buf bytes.Buffer
	printRunResult(&buf, &services.RunResult{
		Strategy: model.StrategyBasic,
		Status:   allocator.StatusAlreadyFull,
		Reason:   "every workday is at capacity",
	})

	out := buf.String()
	assert.Contains(t, out, "ALREADY_FULL")
	assert.Contains(t, out, "every workday is at capacity")
	assert.NotContains(t, out, "Per day")
}

func TestPrintReport(t *testing.T) {
	var buf bytes.Buffer
	printReport(&buf, &evaluation.Report{
		WeekStart: monday,
		WeekEnd:   monday.AddDate(0, 0, 4),
		Strategies: []evaluation.StrategyReport{
			{Strategy: model.StrategyFair, TotalAssignments: 15, FairnessIndex: 0.5},
			{Strategy: model.StrategyBasic, TotalAssignments: 20, FairnessIndex: 1.25,
				OutOfBounds: []evaluation.EmployeeScore{{EmployeeID: "e1", Score: 4}}},
		},
		OverAssignedWorkdays: []evaluation.OverAssignedWorkday{{Date: monday, Count: 14}},
		TotalAvailableSlots:  60,
		TotalRequiredSlots:   10,
	})

	out := buf.String()
	assert.Contains(t, out, "2025-01-06 - 2025-01-10")
	assert.Contains(t, out, "Available slots: 60")
	assert.Contains(t, out, "Required slots:  10")
	assert.Contains(t, out, "0.500")
	assert.Contains(t, out, "1.250")
	assert.Contains(t, out, "Mon 2025-01-06  14")
}

func TestPrintSchedules(t *testing.T) {
	var buf bytes.Buffer
	printSchedules(&buf, nil)
	assert.Contains(t, buf.String(), "No schedules found.")

	buf.Reset()
	printSchedules(&buf, []services.ScheduleEntry{
		{
			Assignment: model.Assignment{
				WorkdayDate: monday,
				Strategy:    model.StrategyRoundRobin,
				AssignedBy:  "admin-1",
				CreatedAt:   time.Date(2025, 1, 3, 9, 30, 0, 0, time.UTC),
			},
			EmployeeName: "Ada Obi",
		},
	})

	out := buf.String()
	assert.Contains(t, out, "Ada Obi")
	assert.Contains(t, out, "ROUND_ROBIN")
	assert.Contains(t, out, "2025-01-03 09:30")
	assert.Contains(t, out, "1 schedules")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcd…", truncate("abcdefgh", 5))
}

func TestWriteMetrics(t *testing.T) {
	app := &AppContext{Recorder: metrics.NewRecorder(), Logger: zap.NewNop()}

	cmd := &cobra.Command{}
	addMetricsFlag(cmd)
	assert.NoError(t, writeMetrics(cmd, app), "no file requested")

	path := filepath.Join(t.TempDir(), "roster.prom")
	require.NoError(t, cmd.Flags().Set("metrics-file", path))
	require.NoError(t, writeMetrics(cmd, app))
	assert.FileExists(t, path)
}
