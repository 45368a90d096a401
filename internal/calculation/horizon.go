package calculation

import (
	"time"

	"github.com/actuclaim/actuclaim/internal/domain"
	"github.com/actuclaim/actuclaim/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// ReturnToWorkHorizon is the years from start to the expected return date.
func ReturnToWorkHorizon(start, end time.Time) float64 {
	return dateutil.YearsBetween(start, end)
}

// RetirementHorizon is the years from start to the claimant's retirement date,
// or zero when that date is not after start.
func RetirementHorizon(start, birth time.Time, retirementAge int) float64 {
	retirement := dateutil.RetirementDate(birth, retirementAge)
	if !retirement.After(dateutil.Day(start)) {
		return 0
	}
	return dateutil.YearsBetween(start, retirement)
}

// FractionOfYear converts a missed-time amount into a share of a working year.
func FractionOfYear(unit domain.TimeUnit, amount decimal.Decimal, workingDays int, hoursPerDay decimal.Decimal) decimal.Decimal {
	switch unit {
	case domain.Hours:
		if workingDays <= 0 || !hoursPerDay.GreaterThan(decimal.Zero) {
			return decimal.Zero
		}
		return amount.Div(decimal.NewFromInt(int64(workingDays)).Mul(hoursPerDay))
	case domain.Weeks:
		return amount.Div(weeksPerYear)
	case domain.Months:
		return amount.Div(monthsPerYear)
	default:
		if workingDays <= 0 {
			return decimal.Zero
		}
		return amount.Div(decimal.NewFromInt(int64(workingDays)))
	}
}
