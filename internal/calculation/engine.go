package calculation

import (
	"fmt"
	"time"

	"github.com/actuclaim/actuclaim/internal/domain"
	"github.com/actuclaim/actuclaim/pkg/dateutil"
	"github.com/actuclaim/actuclaim/pkg/money"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DamagesEngine orchestrates a complete lost-wages damages calculation.
type DamagesEngine struct {
	Tax      *TaxCalculator
	TakeHome *TakeHomeCalculator
	PJI      *PJICalculator
	Logger   Logger
	// Now supplies the calculation date. It is truncated to the UTC calendar day.
	Now func() time.Time
}

// NewDamagesEngine creates an engine over the 2024 tax rules and the given rate source.
// rates may be nil, in which case PJI always uses the default rate.
func NewDamagesEngine(rates RateSource) *DamagesEngine {
	tax := NewTaxCalculator2024()
	return &DamagesEngine{
		Tax:      tax,
		TakeHome: NewTakeHomeCalculator(tax),
		PJI:      NewPJICalculator(rates),
		Logger:   NopLogger{},
		Now:      time.Now,
	}
}

// SetLogger sets the logger for the engine and its calculators.
func (e *DamagesEngine) SetLogger(l Logger) {
	if l == nil {
		l = NopLogger{}
	}
	e.Logger = l
	e.TakeHome.Logger = l
	e.PJI.Logger = l
}

func (e *DamagesEngine) today() time.Time {
	if e.Now == nil {
		return dateutil.Day(time.Now())
	}
	return dateutil.Day(e.Now())
}

// Calculate runs a case end to end. Malformed optional input is replaced by a
// default and recorded as a note; only an unknown jurisdiction is an error.
func (e *DamagesEngine) Calculate(in domain.CaseInput) (*domain.DamagesCase, error) {
	today := e.today()
	rc, err := resolveCase(in, today)
	if err != nil {
		return nil, err
	}
	j := rc.jurisdiction
	e.Logger.Infof("calculating damages for %s (%s)", rc.clientName, j.DisplayName())

	// Take-home pay
	takeHome, err := e.TakeHome.Calculate(
		rc.income.GrossAnnualIncome, j,
		rc.income.WorkingDaysPerYear, rc.income.HoursPerDay,
		rc.income.IsHourly, rc.income.HoursPerWeek,
		rc.income.DependentCount,
	)
	if err != nil {
		return nil, fmt.Errorf("take-home calculation failed: %w", err)
	}

	// Collateral benefits. The past-period deduction uses the EI-capped annual
	// total; province rules apply to the future loss only.
	eiAdjusted := ApplyEILimit(SumBenefits(rc.past, rc.annual), &rc.eiStart, &rc.lossDate, &rc.startDate)
	collateral := ApplyJurisdictionRules(eiAdjusted, j)
	if collateral.JurisdictionAdjusted {
		rc.note(domain.NoteJurisdictionOverride, "%s excludes LTD and CPP disability benefits from future collateral", j.DisplayName())
	}

	// Past lost wages
	missed := domain.MissedTime{
		Amount:         rc.missedAmount,
		Unit:           rc.missedUnit,
		FractionOfYear: FractionOfYear(rc.missedUnit, rc.missedAmount, rc.income.WorkingDaysPerYear, rc.income.HoursPerDay),
	}
	grossMissed := money.Cents(rc.missedAmount.Mul(takeHome.RateFor(rc.missedUnit)))
	deduction := money.Cents(eiAdjusted.TotalAnnualFuture.Mul(missed.FractionOfYear))
	netPast := money.Cents(grossMissed.Sub(deduction))
	e.Logger.Debugf("past wages: missed=%s %s gross=%s deduction=%s net=%s",
		rc.missedAmount.String(), rc.missedUnit, grossMissed.StringFixed(2), deduction.StringFixed(2), netPast.StringFixed(2))

	// Pre-judgment interest
	pji := e.PJI.Calculate(netPast, rc.lossDate, today, rc.pjiRate)
	if pji.FallbackRate {
		rc.note(domain.NoteFallbackRate, "rate series unavailable for %s to %s; PJI uses the default %s",
			rc.lossDate.Format(dateutil.ISO), today.Format(dateutil.ISO), money.Percent(pji.RatePercent))
	}
	if pji.SimpleInterestFallback {
		rc.note(domain.NoteSimpleInterest, "compound interest evaluated to zero; PJI recomputed with simple interest")
	}

	result := &domain.DamagesCase{
		ID:                  uuid.NewString(),
		ClientName:          rc.clientName,
		Jurisdiction:        j,
		CalculatedAt:        today,
		Income:              rc.income,
		TakeHome:            takeHome,
		Collateral:          collateral,
		MissedTime:          missed,
		GrossMissedPay:      grossMissed,
		CollateralDeduction: deduction,
		NetPastLostWages:    netPast,
		PJI:                 pji,
		ReturnStatus:        rc.returnStatus,
		StartDate:           rc.startDate,
	}

	// Future lost wages
	var horizon float64
	if rc.returnStatus == domain.ReturningToWork {
		result.EndDate = rc.endDate
		horizon = ReturnToWorkHorizon(rc.startDate, rc.endDate)
		if horizon < 0 {
			rc.note(domain.NoteNegativeHorizon, "end date %s precedes start date %s; future horizon set to zero",
				rc.endDate.Format(dateutil.ISO), rc.startDate.Format(dateutil.ISO))
			horizon = 0
		}
	} else {
		result.BirthDate = rc.birthDate
		result.RetirementAge = rc.retirementAge
		horizon = RetirementHorizon(rc.startDate, rc.birthDate, rc.retirementAge)
	}

	if rc.calculateFuture {
		netAnnual := takeHome.NetPay.Sub(collateral.TotalAnnualFuture)
		result.FutureWages = FutureLostWages(netAnnual, horizon, rc.discountRate, collateral.TotalAnnualFuture)
		e.Logger.Debugf("future wages: annual=%s horizon=%.4f rate=%s pv=%s",
			netAnnual.StringFixed(2), horizon, rc.discountRate.String(), result.FutureWages.PresentValue.StringFixed(2))
	} else {
		result.FutureWages = domain.PresentValueResult{
			TimeHorizonYears: horizon,
			DiscountRate:     rc.discountRate,
			PresentValue:     decimal.Zero,
		}
		rc.note(domain.NoteFutureWagesNotClaimed, "future lost wages were not requested")
	}

	result.TotalDamages = money.Cents(pji.Total.Add(result.FutureWages.PresentValue))
	result.Notes = rc.notes
	e.Logger.Infof("total damages for %s: %s", rc.clientName, money.Format(result.TotalDamages))
	return result, nil
}
