package calculation

import (
	"math"

	"github.com/actuclaim/actuclaim/internal/domain"
	"github.com/actuclaim/actuclaim/pkg/money"
	"github.com/shopspring/decimal"
)

var (
	// DefaultDiscountRateNovaScotia is the Nova Scotia default annual discount rate.
	DefaultDiscountRateNovaScotia = decimal.RequireFromString("0.035")
	// DefaultDiscountRate applies to every other province.
	DefaultDiscountRate = decimal.RequireFromString("0.025")
)

// DefaultDiscountRateFor returns the province default as a decimal fraction.
func DefaultDiscountRateFor(j domain.Jurisdiction) decimal.Decimal {
	if j == domain.NovaScotia {
		return DefaultDiscountRateNovaScotia
	}
	return DefaultDiscountRate
}

// PresentValue discounts an annual loss over a horizon with the ordinary annuity
// formula L × (1 − (1+r)^−n) / r, where n is the fractional number of years.
// A zero rate gives the undiscounted L × n, as does a rate at or below -100%
// or one whose factor overflows.
func PresentValue(annualNetLoss decimal.Decimal, timeHorizonYears float64, discountRate decimal.Decimal) (presentValue decimal.Decimal, totalMonths int) {
	totalMonths = int(math.Floor(timeHorizonYears * 12))
	linear := money.Cents(annualNetLoss.Mul(decimal.NewFromFloat(timeHorizonYears)))

	if discountRate.IsZero() || !UsableRatePercent(discountRate.Mul(hundred)) {
		return linear, totalMonths
	}

	r := discountRate.InexactFloat64()
	factor := (1 - math.Pow(1+r, -timeHorizonYears)) / r
	if !finite(factor) {
		return linear, totalMonths
	}
	return money.Cents(annualNetLoss.Mul(decimal.NewFromFloat(factor))), totalMonths
}

// FutureLostWages builds the full present-value result for a case.
func FutureLostWages(annualNetLoss decimal.Decimal, timeHorizonYears float64, discountRate, annualCollateral decimal.Decimal) domain.PresentValueResult {
	annual := money.Cents(annualNetLoss)
	pv, months := PresentValue(annual, timeHorizonYears, discountRate)
	return domain.PresentValueResult{
		Requested:                       true,
		AnnualNetLoss:                   annual,
		MonthlyNetLoss:                  money.Cents(annualNetLoss.Div(monthsPerYear)),
		TimeHorizonYears:                timeHorizonYears,
		TotalMonths:                     months,
		DiscountRate:                    discountRate,
		PresentValue:                    pv,
		ImpliedFutureCollateralBenefits: money.Cents(annualCollateral.Mul(decimal.NewFromFloat(timeHorizonYears))),
	}
}
