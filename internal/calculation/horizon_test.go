package calculation

import (
	"testing"

	"github.com/actuclaim/actuclaim/internal/domain"
	"github.com/actuclaim/actuclaim/pkg/dateutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestReturnToWorkHorizon(t *testing.T) {
	assert.InDelta(t, 365/365.25, ReturnToWorkHorizon(day(2024, 1, 1), day(2024, 12, 31)), 1e-9)
	assert.InDelta(t, -31/365.25, ReturnToWorkHorizon(day(2024, 2, 1), day(2024, 1, 1)), 1e-9)
}

func TestRetirementHorizon(t *testing.T) {
	start := day(2024, 6, 15)

	tests := []struct {
		name     string
		birth    string
		age      int
		expected float64
		delta    float64
	}{
		{"45 years before start", "1979-06-15", 65, 20, 0.01},
		{"already retired", "1950-01-01", 65, 0, 0},
		{"retires on start date", "1959-06-15", 65, 0, 0},
		{"day clamped to 28", "1980-01-31", 65, dateutil.YearsBetween(start, day(2045, 1, 28)), 1e-9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			birth, ok := dateutil.Parse(tt.birth)
			assert.True(t, ok)
			assert.InDelta(t, tt.expected, RetirementHorizon(start, birth, tt.age), tt.delta)
		})
	}
}

func TestFractionOfYear(t *testing.T) {
	tests := []struct {
		unit        domain.TimeUnit
		amount      string
		workingDays int
		hoursPerDay string
		expected    string
	}{
		{domain.Days, "126", 252, "8", "0.5"},
		{domain.Hours, "504", 252, "8", "0.25"},
		{domain.Weeks, "13", 252, "8", "0.25"},
		{domain.Months, "3", 252, "8", "0.25"},
		{domain.Days, "10", 0, "8", "0"},
		{domain.Hours, "10", 252, "0", "0"},
	}
	for _, tt := range tests {
		got := FractionOfYear(tt.unit, d(tt.amount), tt.workingDays, d(tt.hoursPerDay))
		assert.True(t, got.Equal(d(tt.expected)), "%s %s: got %s", tt.amount, tt.unit, got)
	}
	assert.True(t, FractionOfYear(domain.Days, decimal.Zero, 252, d("8")).IsZero())
}
