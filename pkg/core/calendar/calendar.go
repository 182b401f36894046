package calendar

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/jakechorley/workday-roster/pkg/core/week"
)

// DefaultRule produces every Monday to Friday
const DefaultRule = "FREQ=WEEKLY;BYDAY=MO,TU,WE,TH,FR"

// Dates expands an RRULE between two civil dates (both inclusive).
// The returned dates are normalised civil dates in ascending order.
func Dates(rule string, from, to time.Time) ([]time.Time, error) {
	start := week.Normalize(from)
	end := week.Normalize(to)
	if end.Before(start) {
		return nil, fmt.Errorf("range end %s is before start %s", end.Format("2006-01-02"), start.Format("2006-01-02"))
	}

	r, err := rrule.StrToRRule(rule)
	if err != nil {
		return nil, fmt.Errorf("failed to parse workday rrule: %w", err)
	}

	// Anchor the rule at the range start so BYDAY expansion begins in the requested week
	r.DTStart(start)

	occurrences := r.Between(start, end, true)

	dates := make([]time.Time, 0, len(occurrences))
	seen := make(map[string]bool, len(occurrences))
	for _, occ := range occurrences {
		d := week.Normalize(occ)
		key := d.Format("2006-01-02")
		if seen[key] {
			continue
		}
		seen[key] = true
		dates = append(dates, d)
	}

	return dates, nil
}
