package commands

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/workday-roster/pkg/core/allocator"
	"github.com/jakechorley/workday-roster/pkg/core/evaluation"
	"github.com/jakechorley/workday-roster/pkg/core/services"
)

const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorRed    = "\033[31m"
	colorBold   = "\033[1m"
)

func statusColor(status allocator.Status) string {
	switch status {
	case allocator.StatusGenerated:
		return colorGreen
	case allocator.StatusAlreadyFull:
		return colorYellow
	default:
		return colorRed
	}
}

func printRunResult(w io.Writer, result *services.RunResult) {
	fmt.Fprintf(w, "\n%s📅 %s %s%s\n\n", colorBold, result.Strategy, result.Window, colorReset)
	fmt.Fprintf(w, "Status:      %s%s%s\n", statusColor(result.Status), result.Status, colorReset)
	if result.Reason != "" {
		fmt.Fprintf(w, "Reason:      %s\n", result.Reason)
	}
	fmt.Fprintf(w, "Created:     %d\n", len(result.Assignments))
	if result.Skipped > 0 {
		fmt.Fprintf(w, "Skipped:     %d (already recorded)\n", result.Skipped)
	}

	if len(result.Assignments) > 0 {
		perDay := make(map[string]int)
		var days []string
		for _, a := range result.Assignments {
			day := a.WorkdayDate.Format("Mon 2006-01-02")
			if _, ok := perDay[day]; !ok {
				days = append(days, day)
			}
			perDay[day]++
		}
		fmt.Fprintf(w, "\nPer day:\n")
		for _, day := range days {
			fmt.Fprintf(w, "  %s  %d\n", day, perDay[day])
		}
	}

	if len(result.Shortfalls) > 0 {
		fmt.Fprintf(w, "\n%s⚠️  Below minimum days:%s\n", colorYellow, colorReset)
		for _, s := range result.Shortfalls {
			fmt.Fprintf(w, "  %s  %d/%d\n", s.EmployeeID, s.Assigned, s.Required)
		}
	}

	if len(result.ValidationErrors) > 0 {
		fmt.Fprintf(w, "\n%s❌ Validation errors:%s\n", colorRed, colorReset)
		for _, v := range result.ValidationErrors {
			fmt.Fprintf(w, "  %s [%s] %s\n", v.WorkdayDate, v.CriterionName, v.Description)
		}
	}

	if len(result.Scores) > 0 {
		ids := make([]string, 0, len(result.Scores))
		for id := range result.Scores {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		fmt.Fprintf(w, "\nFairness scores:\n")
		for _, id := range ids {
			fmt.Fprintf(w, "  %-20s %+d\n", id, result.Scores[id])
		}
	}
	fmt.Fprintln(w)
}

func printReport(w io.Writer, report *evaluation.Report) {
	fmt.Fprintf(w, "\n%s📊 Strategy evaluation %s - %s%s\n\n", colorBold,
		report.WeekStart.Format("2006-01-02"), report.WeekEnd.Format("2006-01-02"), colorReset)
	fmt.Fprintf(w, "Available slots: %d\n", report.TotalAvailableSlots)
	fmt.Fprintf(w, "Required slots:  %d\n\n", report.TotalRequiredSlots)

	fmt.Fprintf(w, "%-12s %11s %8s %8s %9s %13s %8s\n",
		"STRATEGY", "ASSIGNMENTS", "INDEX", "AVERAGE", "PENALTY", "OUT OF BOUNDS", "INVALID")
	for _, s := range report.Strategies {
		fmt.Fprintf(w, "%-12s %11d %8.3f %8.3f %9.3f %13d %8d\n",
			s.Strategy, s.TotalAssignments, s.FairnessIndex, s.AverageScore, s.TotalPenalty,
			len(s.OutOfBounds), len(s.InvalidAssignments))
	}

	if len(report.OverAssignedWorkdays) > 0 {
		fmt.Fprintf(w, "\n%s⚠️  Over-assigned workdays:%s\n", colorYellow, colorReset)
		for _, d := range report.OverAssignedWorkdays {
			fmt.Fprintf(w, "  %s  %d\n", d.Date.Format("Mon 2006-01-02"), d.Count)
		}
	}
	fmt.Fprintln(w)
}

func printSchedules(w io.Writer, entries []services.ScheduleEntry) {
	if len(entries) == 0 {
		fmt.Fprintf(w, "\nNo schedules found.\n\n")
		return
	}

	fmt.Fprintf(w, "\n%s%-16s %-24s %-12s %-12s %s%s\n", colorBold, "DATE", "EMPLOYEE", "STRATEGY", "ASSIGNED BY", "CREATED", colorReset)
	for _, e := range entries {
		fmt.Fprintf(w, "%-16s %-24s %-12s %-12s %s\n",
			e.Assignment.WorkdayDate.Format("Mon 2006-01-02"),
			truncate(e.EmployeeName, 24),
			e.Assignment.Strategy,
			e.Assignment.AssignedBy,
			e.Assignment.CreatedAt.Format("2006-01-02 15:04"))
	}
	fmt.Fprintf(w, "\n%d schedules\n\n", len(entries))
}

func truncate(s string, width int) string {
	if len([]rune(s)) <= width {
		return s
	}
	return strings.TrimSpace(string([]rune(s)[:width-1])) + "…"
}

func addMetricsFlag(cmd *cobra.Command) {
	cmd.Flags().String("metrics-file", "", "Write Prometheus metrics to this textfile after the run")
}

func writeMetrics(cmd *cobra.Command, app *AppContext) error {
	path, _ := cmd.Flags().GetString("metrics-file")
	if path == "" {
		return nil
	}
	if err := app.Recorder.WriteTextfile(path); err != nil {
		return err
	}
	app.Logger.Debug("Metrics written", zap.String("path", path))
	return nil
}
