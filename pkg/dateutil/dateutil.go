package dateutil

import (
	"strings"
	"time"
)

// DaysPerYear is the average year length used for elapsed-time fractions.
const DaysPerYear = 365.25

// ISO is the canonical date layout used for persistence and reports.
const ISO = "2006-01-02"

// inputLayouts are tried in order; day-first wins over month-first for ambiguous input.
var inputLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"01/02/2006",
	"02-01-2006",
	"01-02-2006",
}

// Parse reads a date in any of the accepted input layouts.
func Parse(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range inputLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Day truncates t to midnight UTC of its calendar date.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Date builds a UTC calendar date.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

const secondsPerDay = 24 * 60 * 60

// DaysBetween returns the whole calendar days from a to b (negative when b precedes a).
func DaysBetween(a, b time.Time) int {
	return int((Day(b).Unix() - Day(a).Unix()) / secondsPerDay)
}

// YearsBetween converts the calendar days from a to b into 365.25-day years.
func YearsBetween(a, b time.Time) float64 {
	return float64(DaysBetween(a, b)) / DaysPerYear
}

// AddDays shifts a calendar date.
func AddDays(t time.Time, days int) time.Time {
	return Day(t).AddDate(0, 0, days)
}

// AddYears shifts a date by whole years.
func AddYears(t time.Time, years int) time.Time {
	return Day(t).AddDate(years, 0, 0)
}

// RetirementDate is the birthday in the retirement year with the day clamped to 28
// so that every month yields a valid date.
func RetirementDate(birth time.Time, retirementAge int) time.Time {
	day := birth.Day()
	if day > 28 {
		day = 28
	}
	return Date(birth.Year()+retirementAge, birth.Month(), day)
}

// PreviousMonthEnd returns the last day of the month before t.
func PreviousMonthEnd(t time.Time) time.Time {
	return Date(t.Year(), t.Month(), 1).AddDate(0, 0, -1)
}

// Format renders a date in ISO layout, or fallback when t is zero.
func Format(t time.Time, fallback string) string {
	if t.IsZero() {
		return fallback
	}
	return t.Format(ISO)
}
