package calculation

import (
	"math"
	"time"

	"github.com/actuclaim/actuclaim/internal/domain"
	"github.com/actuclaim/actuclaim/pkg/dateutil"
	"github.com/actuclaim/actuclaim/pkg/money"
	"github.com/shopspring/decimal"
)

// DefaultPJIRatePercent is used when the rate series cannot answer a lookup.
var DefaultPJIRatePercent = decimal.RequireFromString("2.5")

// DefaultSimplePJIRatePercent is the fallback for the standalone simple-interest lookup.
var DefaultSimplePJIRatePercent = decimal.RequireFromString("2.0")

var (
	hundred      = decimal.NewFromInt(100)
	minusHundred = decimal.NewFromInt(-100)
)

// RateSource answers range-average queries against the short-term rate series.
// Implementations never fail; an unusable series is reported as a fallback lookup.
type RateSource interface {
	AverageRate(start, end time.Time) domain.RateLookup
}

// PJICalculator accrues pre-judgment interest on past lost wages.
type PJICalculator struct {
	Rates  RateSource
	Logger Logger
	// growth returns (1+rate)^years - 1.
	growth func(rate, years float64) float64
}

// NewPJICalculator creates a calculator over a rate source. rates may be nil,
// in which case every lookup uses the default rate.
func NewPJICalculator(rates RateSource) *PJICalculator {
	return &PJICalculator{Rates: rates, Logger: NopLogger{}, growth: compoundGrowth}
}

func compoundGrowth(rate, years float64) float64 {
	return math.Pow(1+rate, years) - 1
}

func finite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }

// UsableRatePercent reports whether a percentage can drive compounding or
// discounting: it must exceed -100% and convert to a finite float.
func UsableRatePercent(p decimal.Decimal) bool {
	return p.GreaterThan(minusHundred) && finite(p.Div(hundred).InexactFloat64())
}

// Calculate compounds principal from lossDate to calculationDate.
// explicitRatePercent, when set, overrides the series average.
func (c *PJICalculator) Calculate(principal decimal.Decimal, lossDate, calculationDate time.Time, explicitRatePercent *decimal.Decimal) domain.PJIResult {
	years := dateutil.YearsBetween(lossDate, calculationDate)

	result := domain.PJIResult{
		LossDate:        dateutil.Day(lossDate),
		CalculationDate: dateutil.Day(calculationDate),
		YearsElapsed:    years,
		Principal:       principal,
	}

	if explicitRatePercent != nil && !UsableRatePercent(*explicitRatePercent) {
		c.Logger.Warnf("PJI rate %s%% is not usable; looking up the series instead", explicitRatePercent.String())
		explicitRatePercent = nil
	}
	if explicitRatePercent != nil {
		result.RatePercent = *explicitRatePercent
		result.ExplicitRate = true
	} else {
		lookup := c.lookup(lossDate, calculationDate, DefaultPJIRatePercent)
		result.RatePercent = lookup.Rate
		result.FallbackRate = lookup.Fallback
	}

	rate := result.RatePercent.Div(hundred).InexactFloat64()
	simple := func() decimal.Decimal {
		return principal.Mul(result.RatePercent.Div(hundred)).Mul(decimal.NewFromFloat(years))
	}

	var interest decimal.Decimal
	if g := c.growth(rate, years); finite(g) {
		interest = principal.Mul(decimal.NewFromFloat(g))
	} else {
		interest = simple()
		result.SimpleInterestFallback = true
		c.Logger.Warnf("compound PJI overflowed over %.4f years at %s%%; using simple interest",
			years, result.RatePercent.StringFixed(2))
	}

	// Compound growth of exactly zero over a non-empty span with a non-zero
	// rate is treated as a calculation fault and recomputed as simple interest.
	if interest.IsZero() && years != 0 && rate != 0 {
		interest = simple()
		result.SimpleInterestFallback = true
		c.Logger.Warnf("compound PJI returned zero for %s over %.4f years at %s%%; using simple interest",
			principal.StringFixed(2), years, result.RatePercent.StringFixed(2))
	}

	result.Total = money.Cents(principal.Add(interest))
	result.Interest = result.Total.Sub(principal)
	c.Logger.Debugf("PJI: principal=%s years=%.4f rate=%s%% interest=%s total=%s",
		principal.StringFixed(2), years, result.RatePercent.StringFixed(2), result.Interest.StringFixed(2), result.Total.StringFixed(2))
	return result
}

// CalculateSimple is the standalone PJI lookup: simple interest at the series
// average, or 2.0% when the series is unavailable.
func (c *PJICalculator) CalculateSimple(amount decimal.Decimal, lossDate, calculationDate time.Time) domain.PJIResult {
	years := dateutil.YearsBetween(lossDate, calculationDate)
	lookup := c.lookup(lossDate, calculationDate, DefaultSimplePJIRatePercent)

	interest := money.Cents(amount.Mul(lookup.Rate.Div(hundred)).Mul(decimal.NewFromFloat(years)))
	return domain.PJIResult{
		LossDate:        dateutil.Day(lossDate),
		CalculationDate: dateutil.Day(calculationDate),
		YearsElapsed:    years,
		RatePercent:     lookup.Rate,
		Principal:       amount,
		Interest:        interest,
		Total:           money.Cents(amount.Add(interest)),
		FallbackRate:    lookup.Fallback,
	}
}

func (c *PJICalculator) lookup(start, end time.Time, fallback decimal.Decimal) domain.RateLookup {
	if c.Rates == nil {
		return domain.RateLookup{Rate: fallback, Start: start, End: end, Fallback: true, Source: "default"}
	}
	lookup := c.Rates.AverageRate(start, end)
	if lookup.Fallback && lookup.Source == "default" {
		lookup.Rate = fallback
	}
	return lookup
}
