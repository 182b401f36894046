package model

import (
	"strings"
	"time"
)

// RosterDateFormat is how workday dates are shown in published and exported rosters
const RosterDateFormat = "Mon Jan 02 2006"

// RosterTable is one week's schedule laid out one row per workday
type RosterTable struct {
	WeekStart time.Time
	WeekEnd   time.Time

	// Strategies are the result sets shown, one column each
	Strategies []StrategyType

	Rows []RosterRow
}

// RosterRow holds the employee names scheduled on one workday, per strategy, sorted
type RosterRow struct {
	Date  time.Time
	Names map[StrategyType][]string
}

// Title names the week, e.g. "Mon Jan 06 2025 - Fri Jan 10 2025"
func (t *RosterTable) Title() string {
	return t.WeekStart.Format(RosterDateFormat) + " - " + t.WeekEnd.Format(RosterDateFormat)
}

// Header returns the column titles
func (t *RosterTable) Header() []string {
	header := make([]string, 0, len(t.Strategies)+1)
	header = append(header, "Date")
	for _, s := range t.Strategies {
		header = append(header, string(s))
	}
	return header
}

// Grid renders the header and rows as cells, with the names of each strategy joined into one cell
func (t *RosterTable) Grid() [][]string {
	grid := make([][]string, 0, len(t.Rows)+1)
	grid = append(grid, t.Header())
	for _, row := range t.Rows {
		cells := make([]string, 0, len(t.Strategies)+1)
		cells = append(cells, row.Date.Format(RosterDateFormat))
		for _, s := range t.Strategies {
			cells = append(cells, strings.Join(row.Names[s], ", "))
		}
		grid = append(grid, cells)
	}
	return grid
}
