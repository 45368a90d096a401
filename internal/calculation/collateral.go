package calculation

import (
	"time"

	"github.com/actuclaim/actuclaim/internal/domain"
	"github.com/actuclaim/actuclaim/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// EIMaxBenefitDays is the EI sickness benefit limit (26 weeks).
const EIMaxBenefitDays = 182

var daysPerCalendarYear = decimal.NewFromInt(365)

// CollateralInput carries the raw benefit figures and the optional EI dates.
type CollateralInput struct {
	Past            domain.BenefitAmounts
	Annual          domain.BenefitAmounts
	EIStartDate     *time.Time
	LossDate        *time.Time
	FutureStartDate *time.Time
}

// AggregateCollateral runs the full pipeline: sum, EI cap, then province rules.
// Province rules run last so the EI step can never reinstate a zeroed source.
func AggregateCollateral(in CollateralInput, j domain.Jurisdiction) domain.CollateralBenefits {
	summed := SumBenefits(in.Past, in.Annual)
	capped := ApplyEILimit(summed, in.EIStartDate, in.LossDate, in.FutureStartDate)
	return ApplyJurisdictionRules(capped, j)
}

// SumBenefits totals past and annual amounts without any adjustment.
func SumBenefits(past, annual domain.BenefitAmounts) domain.CollateralBenefits {
	return domain.CollateralBenefits{
		Past:               past,
		Annual:             annual,
		AnnualEIUnadjusted: annual.EI,
		TotalPast:          past.Total(),
		TotalAnnualFuture:  annual.Total(),
	}
}

// ApplyEILimit prorates the annual EI figure to the days left under the 182-day cap
// at the start of the future period. It is a no-op when annual EI is zero or any
// date is missing.
func ApplyEILimit(c domain.CollateralBenefits, eiStart, lossDate, futureStart *time.Time) domain.CollateralBenefits {
	if !c.Annual.EI.GreaterThan(decimal.Zero) || eiStart == nil || lossDate == nil || futureStart == nil {
		return c
	}

	daysUsed := max(0, dateutil.DaysBetween(*eiStart, *futureStart))
	remaining := max(0, EIMaxBenefitDays-daysUsed)
	portion := decimal.Min(decimal.NewFromInt(1), decimal.NewFromInt(int64(remaining)).Div(daysPerCalendarYear))

	out := c
	out.Annual.EI = c.Annual.EI.Mul(portion)
	out.TotalAnnualFuture = out.Annual.Total()
	out.EILimit = &domain.EILimitation{
		StartDate:     dateutil.Day(*eiStart),
		DaysUsed:      daysUsed,
		RemainingDays: remaining,
		FuturePortion: portion,
	}
	return out
}

// ApplyJurisdictionRules removes benefits a province does not deduct from future loss.
// New Brunswick excludes LTD and CPPD.
func ApplyJurisdictionRules(c domain.CollateralBenefits, j domain.Jurisdiction) domain.CollateralBenefits {
	if j != domain.NewBrunswick {
		return c
	}
	out := c
	out.Annual.LTD = decimal.Zero
	out.Annual.CPPD = decimal.Zero
	out.TotalAnnualFuture = out.Annual.Total()
	out.JurisdictionAdjusted = true
	return out
}
