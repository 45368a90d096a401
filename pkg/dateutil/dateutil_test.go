package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want time.Time
		ok   bool
	}{
		{"iso", "2024-03-15", Date(2024, time.March, 15), true},
		{"day first slash", "15/03/2024", Date(2024, time.March, 15), true},
		{"month first slash", "03/15/2024", Date(2024, time.March, 15), true},
		{"ambiguous prefers day first", "04/03/2024", Date(2024, time.March, 4), true},
		{"day first dash", "15-03-2024", Date(2024, time.March, 15), true},
		{"month first dash", "03-15-2024", Date(2024, time.March, 15), true},
		{"padded", "  2024-01-01 ", Date(2024, time.January, 1), true},
		{"empty", "", time.Time{}, false},
		{"garbage", "next tuesday", time.Time{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Parse(tt.in)
			require.Equal(t, tt.ok, ok)
			assert.True(t, tt.want.Equal(got), "got %s", got)
		})
	}
}

func TestDaysAndYearsBetween(t *testing.T) {
	a := Date(2023, time.January, 1)
	b := Date(2024, time.January, 1)

	assert.Equal(t, 365, DaysBetween(a, b))
	assert.Equal(t, -365, DaysBetween(b, a))
	assert.InDelta(t, 365/365.25, YearsBetween(a, b), 1e-12)

	withClock := time.Date(2024, time.January, 1, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, 365, DaysBetween(a, withClock))
}

func TestDaysBetween_Centuries(t *testing.T) {
	ancient := Date(1, time.January, 1)
	today := Date(2024, time.June, 15)

	assert.Equal(t, 739051, DaysBetween(ancient, today))
	assert.Equal(t, -739051, DaysBetween(today, ancient))
	assert.InDelta(t, 2023.4, YearsBetween(ancient, today), 0.1)
}

func TestRetirementDate(t *testing.T) {
	birth := Date(1980, time.January, 31)
	assert.True(t, Date(2045, time.January, 28).Equal(RetirementDate(birth, 65)))

	leap := Date(1984, time.February, 29)
	assert.True(t, Date(2049, time.February, 28).Equal(RetirementDate(leap, 65)))

	plain := Date(1975, time.June, 10)
	assert.True(t, Date(2040, time.June, 10).Equal(RetirementDate(plain, 65)))
}

func TestPreviousMonthEnd(t *testing.T) {
	assert.True(t, Date(2024, time.February, 29).Equal(PreviousMonthEnd(Date(2024, time.March, 3))))
	assert.True(t, Date(2023, time.December, 31).Equal(PreviousMonthEnd(Date(2024, time.January, 20))))
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "Not specified", Format(time.Time{}, "Not specified"))
	assert.Equal(t, "2024-05-01", Format(Date(2024, time.May, 1), ""))
}
