package calculation

import (
	"github.com/actuclaim/actuclaim/internal/domain"
	"github.com/actuclaim/actuclaim/pkg/money"
	"github.com/shopspring/decimal"
)

var (
	weeksPerYear  = decimal.NewFromInt(52)
	monthsPerYear = decimal.NewFromInt(12)
	daysPerWeek   = decimal.NewFromInt(5)
	// weeksPerMonth is only used for the monthly rate on the hourly path.
	weeksPerMonth = decimal.RequireFromString("4.33")
)

// TakeHomeCalculator derives net pay from gross income under province damages rules.
type TakeHomeCalculator struct {
	Tax    *TaxCalculator
	Logger Logger
}

// NewTakeHomeCalculator creates a calculator over the given tax rules.
func NewTakeHomeCalculator(tax *TaxCalculator) *TakeHomeCalculator {
	return &TakeHomeCalculator{Tax: tax, Logger: NopLogger{}}
}

// Calculate computes deductions, net pay and per-cadence net rates.
//
// New Brunswick damages exclude CPP, CPP2 and EI; Prince Edward Island damages
// are computed on gross income with no deductions at all.
//
// The hourly path derives weekly pay from a 52-week year and daily pay from a
// 5-day week; the salaried path divides by the contractual working days.
// The two daily rates are not interchangeable.
func (c *TakeHomeCalculator) Calculate(
	income decimal.Decimal,
	j domain.Jurisdiction,
	workingDays int,
	hoursPerDay decimal.Decimal,
	isHourly bool,
	hoursPerWeek decimal.Decimal,
	dependents int,
) (domain.TakeHomeResult, error) {
	dependentBenefit := c.Tax.DependentBenefit(dependents)
	federalTax := c.Tax.FederalTax(income, dependents)
	provincialTax, err := c.Tax.ProvincialTax(income, j, dependents)
	if err != nil {
		return domain.TakeHomeResult{}, err
	}
	cpp, cpp2 := c.Tax.CPPContributions(income)
	ei := c.Tax.EIContribution(income)

	switch j {
	case domain.NewBrunswick:
		cpp, cpp2, ei = decimal.Zero, decimal.Zero, decimal.Zero
	case domain.PrinceEdwardIsland:
		federalTax, provincialTax = decimal.Zero, decimal.Zero
		cpp, cpp2, ei = decimal.Zero, decimal.Zero, decimal.Zero
	}

	totalDeductions := money.Sum(federalTax, provincialTax, cpp, cpp2, ei)
	netPay := income.Sub(totalDeductions)

	var daily, hourly, weekly, monthly decimal.Decimal
	hourlyBasis := isHourly && hoursPerWeek.GreaterThan(decimal.Zero)
	if hourlyBasis {
		weekly = netPay.Div(weeksPerYear)
		daily = weekly.Div(daysPerWeek)
		hourly = weekly.Div(hoursPerWeek)
		monthly = weekly.Mul(weeksPerMonth)
	} else {
		if workingDays > 0 {
			wd := decimal.NewFromInt(int64(workingDays))
			daily = netPay.Div(wd)
			if hoursPerDay.GreaterThan(decimal.Zero) {
				hourly = netPay.Div(wd.Mul(hoursPerDay))
			}
		}
		weekly = netPay.Div(weeksPerYear)
		monthly = netPay.Div(monthsPerYear)
	}

	c.Logger.Debugf("take-home %s: gross=%s federal=%s provincial=%s cpp=%s cpp2=%s ei=%s net=%s",
		j, income.StringFixed(2), federalTax.StringFixed(2), provincialTax.StringFixed(2),
		cpp.StringFixed(2), cpp2.StringFixed(2), ei.StringFixed(2), netPay.StringFixed(2))

	return domain.TakeHomeResult{
		Jurisdiction:     j,
		GrossIncome:      money.Cents(income),
		FederalTax:       money.Cents(federalTax),
		ProvincialTax:    money.Cents(provincialTax),
		CPP:              cpp,
		CPP2:             cpp2,
		EI:               ei,
		DependentBenefit: dependentBenefit,
		TotalDeductions:  money.Cents(totalDeductions),
		NetPay:           money.Cents(netPay),
		DailyNet:         money.Cents(daily),
		HourlyNet:        money.Cents(hourly),
		WeeklyNet:        money.Cents(weekly),
		MonthlyNet:       money.Cents(monthly),
		WorkingDays:      workingDays,
		HourlyBasis:      hourlyBasis,
	}, nil
}
