package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func civil(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 12, 0, 0, 0, time.UTC)
}

func TestDates_WeekdaysOfOneWeek(t *testing.T) {
	dates, err := Dates(DefaultRule, civil("2025-01-06"), civil("2025-01-12"))
	require.NoError(t, err)

	require.Len(t, dates, 5)
	assert.Equal(t, civil("2025-01-06"), dates[0])
	assert.Equal(t, civil("2025-01-10"), dates[4])
	for _, d := range dates {
		assert.Equal(t, 12, d.Hour(), "dates are normalised to noon UTC")
	}
}

func TestDates_RangeStartingMidWeek(t *testing.T) {
	// Thursday to the following Tuesday
	dates, err := Dates(DefaultRule, civil("2025-01-09"), civil("2025-01-14"))
	require.NoError(t, err)

	var got []string
	for _, d := range dates {
		got = append(got, d.Format("2006-01-02"))
	}
	assert.Equal(t, []string{"2025-01-09", "2025-01-10", "2025-01-13", "2025-01-14"}, got)
}

func TestDates_CustomRule(t *testing.T) {
	dates, err := Dates("FREQ=WEEKLY;BYDAY=MO,WE", civil("2025-01-06"), civil("2025-01-19"))
	require.NoError(t, err)

	require.Len(t, dates, 4)
	assert.Equal(t, time.Monday, dates[0].Weekday())
	assert.Equal(t, time.Wednesday, dates[1].Weekday())
}

func TestDates_InvalidRule(t *testing.T) {
	_, err := Dates("NOT_A_RULE", civil("2025-01-06"), civil("2025-01-10"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse workday rrule")
}

func TestDates_ReversedRange(t *testing.T) {
	_, err := Dates(DefaultRule, civil("2025-01-10"), civil("2025-01-06"))

	assert.Error(t, err)
}
