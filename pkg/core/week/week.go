package week

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jakechorley/workday-roster/pkg/core/model"
)

// WorkingDays is the number of Monday–Friday days in a scheduling week
const WorkingDays = 5

// Window is the Monday–Friday span used as the scheduling unit.
// Start and End are civil dates (see Normalize); End is inclusive.
type Window struct {
	Start time.Time
	End   time.Time
}

// Normalize maps a time to its civil date, expressed at 12:00 UTC.
// The civil date is read in t's own location.
func Normalize(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 12, 0, 0, 0, time.UTC)
}

// ParseReference parses a week reference, either a plain date ("2006-01-02", read in loc)
// or an RFC3339 timestamp (converted into loc)
func ParseReference(ref string, loc *time.Location) (time.Time, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return time.Time{}, fmt.Errorf("week reference is required")
	}

	if t, err := time.ParseInLocation("2006-01-02", ref, loc); err == nil {
		return t, nil
	}

	t, err := time.Parse(time.RFC3339, ref)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid week reference %q: expected YYYY-MM-DD or RFC3339", ref)
	}
	return t.In(loc), nil
}

// WindowFor returns the week window containing ref, with weeks starting on Monday in loc
func WindowFor(ref time.Time, loc *time.Location) Window {
	local := ref.In(loc)
	day := Normalize(local)

	// Monday is 1, Sunday is 0 - shift so Monday becomes offset 0
	offset := (int(day.Weekday()) + 6) % 7
	start := day.AddDate(0, 0, -offset)

	return Window{
		Start: start,
		End:   start.AddDate(0, 0, WorkingDays-1),
	}
}

// Contains reports whether the civil date of t falls inside the window
func (w Window) Contains(t time.Time) bool {
	d := Normalize(t)
	return !d.Before(w.Start) && !d.After(w.End)
}

// Days returns the Monday–Friday civil dates of the window
func (w Window) Days() []time.Time {
	days := make([]time.Time, 0, WorkingDays)
	for i := 0; i < WorkingDays; i++ {
		days = append(days, w.Start.AddDate(0, 0, i))
	}
	return days
}

// ISOWeek returns the ISO-8601 week number of the window's Monday
func (w Window) ISOWeek() int {
	_, isoWeek := w.Start.ISOWeek()
	return isoWeek
}

// HistoryRange returns the inclusive civil date range covering the given number of weeks
// immediately before the window
func (w Window) HistoryRange(weeks int) (time.Time, time.Time) {
	return w.Start.AddDate(0, 0, -7*weeks), w.Start.AddDate(0, 0, -1)
}

func (w Window) String() string {
	return fmt.Sprintf("%s..%s", w.Start.Format("2006-01-02"), w.End.Format("2006-01-02"))
}

// RotationIndex returns (ISOWeek(start) - 1) mod employeeCount.
// Used to shift tie-break order deterministically from one week to the next.
func RotationIndex(w Window, employeeCount int) int {
	if employeeCount <= 0 {
		return 0
	}
	return (w.ISOWeek() - 1) % employeeCount
}

// Rotate returns a copy of items left-rotated by idx positions
func Rotate[T any](items []T, idx int) []T {
	if len(items) == 0 {
		return []T{}
	}
	idx = ((idx % len(items)) + len(items)) % len(items)

	rotated := make([]T, 0, len(items))
	rotated = append(rotated, items[idx:]...)
	rotated = append(rotated, items[:idx]...)
	return rotated
}

// IsWorkingDay reports whether the weekday is Monday–Friday
func IsWorkingDay(day time.Weekday) bool {
	return day >= time.Monday && day <= time.Friday
}

// FilterWorkdays keeps the Monday–Friday workdays that fall inside the window, ordered by date
func FilterWorkdays(w Window, workdays []model.Workday) []model.Workday {
	filtered := make([]model.Workday, 0, WorkingDays)
	for _, wd := range workdays {
		if w.Contains(wd.Date) && IsWorkingDay(Normalize(wd.Date).Weekday()) {
			filtered = append(filtered, wd)
		}
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Date.Before(filtered[j].Date)
	})

	return filtered
}
