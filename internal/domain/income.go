package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// IncomeProfile is the resolved employment income for a case.
// GrossAnnualIncome is always annualized, whichever input path produced it.
type IncomeProfile struct {
	GrossAnnualIncome  decimal.Decimal `yaml:"gross_annual_income" json:"grossAnnualIncome"`
	IsHourly           bool            `yaml:"is_hourly" json:"isHourly"`
	HoursPerWeek       decimal.Decimal `yaml:"hours_per_week" json:"hoursPerWeek"`
	HourlyRate         decimal.Decimal `yaml:"hourly_rate" json:"hourlyRate"`
	IncludeVacationPay bool            `yaml:"include_vacation_pay" json:"includeVacationPay"`
	WorkingDaysPerYear int             `yaml:"working_days_per_year" json:"workingDaysPerYear"`
	HoursPerDay        decimal.Decimal `yaml:"hours_per_day" json:"hoursPerDay"`
	DependentCount     int             `yaml:"dependent_count" json:"dependentCount"`
}

// TakeHomeResult holds the deductions and net pay derived from gross income.
type TakeHomeResult struct {
	Jurisdiction     Jurisdiction    `json:"jurisdiction"`
	GrossIncome      decimal.Decimal `json:"grossIncome"`
	FederalTax       decimal.Decimal `json:"federalTax"`
	ProvincialTax    decimal.Decimal `json:"provincialTax"`
	CPP              decimal.Decimal `json:"cpp"`
	CPP2             decimal.Decimal `json:"cpp2"`
	EI               decimal.Decimal `json:"ei"`
	DependentBenefit decimal.Decimal `json:"dependentBenefit"`
	TotalDeductions  decimal.Decimal `json:"totalDeductions"`
	NetPay           decimal.Decimal `json:"netPay"`
	DailyNet         decimal.Decimal `json:"dailyNet"`
	HourlyNet        decimal.Decimal `json:"hourlyNet"`
	WeeklyNet        decimal.Decimal `json:"weeklyNet"`
	MonthlyNet       decimal.Decimal `json:"monthlyNet"`
	WorkingDays      int             `json:"workingDays"`
	// HourlyBasis is set when cadences were derived from a 52-week, 5-day week.
	HourlyBasis bool `json:"hourlyBasis"`
}

// TimeUnit is the unit in which missed time is expressed.
type TimeUnit string

const (
	Days   TimeUnit = "days"
	Hours  TimeUnit = "hours"
	Weeks  TimeUnit = "weeks"
	Months TimeUnit = "months"
)

// ParseTimeUnit accepts singular or plural unit names. ok is false for unknown input.
func ParseTimeUnit(s string) (TimeUnit, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "days", "day", "":
		return Days, true
	case "hours", "hour":
		return Hours, true
	case "weeks", "week":
		return Weeks, true
	case "months", "month":
		return Months, true
	}
	return Days, false
}

// RateFor returns the net pay rate matching a missed-time unit.
func (t TakeHomeResult) RateFor(unit TimeUnit) decimal.Decimal {
	switch unit {
	case Hours:
		return t.HourlyNet
	case Weeks:
		return t.WeeklyNet
	case Months:
		return t.MonthlyNet
	default:
		return t.DailyNet
	}
}
