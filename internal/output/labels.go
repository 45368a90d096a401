package output

import (
	"fmt"
	"strconv"
	"time"

	"github.com/actuclaim/actuclaim/internal/domain"
	"github.com/actuclaim/actuclaim/pkg/dateutil"
	"github.com/actuclaim/actuclaim/pkg/money"
	"github.com/shopspring/decimal"
)

// NotSpecified is rendered for optional fields the case does not carry.
const NotSpecified = "Not specified"

// Line is one labelled row of a report. Value is display text, Raw is the
// machine-readable form written to CSV.
type Line struct {
	Label string
	Value string
	Raw   string
}

// Section groups lines under a heading.
type Section struct {
	Title string
	Lines []Line
	// Note is an optional explanatory sentence rendered below the lines.
	Note string
}

func amountLine(label string, d decimal.Decimal) Line {
	return Line{Label: label, Value: money.Format(d), Raw: d.StringFixed(2)}
}

func textLine(label, value string) Line {
	return Line{Label: label, Value: value, Raw: value}
}

func dateLine(label string, t time.Time) Line {
	return textLine(label, dateutil.Format(t, NotSpecified))
}

// ProvinceTaxLabel is the provincial tax row label, e.g. "Nova Scotia Tax".
func ProvinceTaxLabel(j domain.Jurisdiction) string {
	return j.DisplayName() + " Tax"
}

// TakeHomeLines renders a take-home result under the labels used on
// damages reports.
func TakeHomeLines(t domain.TakeHomeResult) []Line {
	return []Line{
		amountLine("Gross Income", t.GrossIncome),
		amountLine("Federal Tax", t.FederalTax),
		amountLine(ProvinceTaxLabel(t.Jurisdiction), t.ProvincialTax),
		amountLine("CPP Contribution", t.CPP),
		amountLine("CPP2 Contribution", t.CPP2),
		amountLine("EI Contribution", t.EI),
		amountLine("Dependent Benefit", t.DependentBenefit),
		amountLine("Total Deductions", t.TotalDeductions),
		amountLine("Net Pay (Provincially specific deductions for damages)", t.NetPay),
		amountLine("Daily Net Pay", t.DailyNet),
		amountLine("Hourly Net Pay", t.HourlyNet),
		amountLine("Weekly Net Pay", t.WeeklyNet),
		amountLine("Monthly Net Pay", t.MonthlyNet),
		textLine("Working Days", strconv.Itoa(t.WorkingDays)),
	}
}

// CollateralLines renders past and annual collateral benefits, followed by
// the EI limitation details when the 26-week cap was applied.
func CollateralLines(c domain.CollateralBenefits) []Line {
	lines := []Line{
		amountLine("EI Benefits (to date)", c.Past.EI),
		amountLine("Section B Benefits (to date)", c.Past.SectionB),
		amountLine("LTD Benefits (to date)", c.Past.LTD),
		amountLine("CPPD Benefits (to date)", c.Past.CPPD),
		amountLine("Other Benefits (to date)", c.Past.Other),
		amountLine("Total Past Benefits", c.TotalPast),
		amountLine("EI Benefits (annual)", c.Annual.EI),
		amountLine("Section B Benefits (annual)", c.Annual.SectionB),
		amountLine("LTD Benefits (annual)", c.Annual.LTD),
		amountLine("CPPD Benefits (annual)", c.Annual.CPPD),
		amountLine("Other Benefits (annual)", c.Annual.Other),
		amountLine("Total Annual Future Benefits", c.TotalAnnualFuture),
	}
	if c.EILimit != nil {
		lines = append(lines,
			dateLine("EI Start Date", c.EILimit.StartDate),
			textLine("EI Days Used", strconv.Itoa(c.EILimit.DaysUsed)),
			textLine("EI Remaining Days", strconv.Itoa(c.EILimit.RemainingDays)),
			textLine("EI Future Portion", c.EILimit.FuturePortion.StringFixed(4)),
		)
	}
	return lines
}

// Sections lays out a full damages report.
func Sections(c *domain.DamagesCase) []Section {
	income := Section{Title: "Income & Deductions", Lines: TakeHomeLines(c.TakeHome)}
	if c.Jurisdiction == domain.PrinceEdwardIsland {
		income.Note = "In Prince Edward Island, past and future lost wages are calculated using gross salary, not net."
	}

	collateral := Section{Title: "Collateral Benefits", Lines: CollateralLines(c.Collateral)}
	if c.Jurisdiction == domain.NewBrunswick {
		collateral.Note = "In New Brunswick, LTD and CPPD benefits are not deducted from future lost wage calculations."
	}

	return []Section{
		{
			Title: "Case",
			Lines: []Line{
				textLine("Client", c.ClientName),
				textLine("Jurisdiction", c.Jurisdiction.DisplayName()),
				textLine("Case ID", c.ID),
				dateLine("Calculated", c.CalculatedAt),
			},
		},
		income,
		collateral,
		{
			Title: "Personal Information",
			Lines: []Line{
				dateLine("Date of Birth", c.BirthDate),
				retirementAgeLine(c.RetirementAge),
				textLine("Time Missed", fmt.Sprintf("%s %s", c.MissedTime.Amount.String(), c.MissedTime.Unit)),
				textLine("Discount Rate", money.Percent(c.FutureWages.DiscountRate.Mul(decimal.NewFromInt(100)))),
				textLine("Prejudgment Interest", money.Percent(c.PJI.RatePercent)),
			},
		},
		{
			Title: "Past Wage Loss",
			Lines: []Line{
				dateLine("Date of Loss", c.PJI.LossDate),
				amountLine("Gross Lost Income", c.GrossMissedPay),
				amountLine("Collateral Benefits Deduction", c.CollateralDeduction),
				amountLine("Net Lost Income", c.NetPastLostWages),
				textLine("Years Between", strconv.FormatFloat(c.PJI.YearsElapsed, 'f', 2, 64)),
				amountLine("Prejudgment Interest", c.PJI.Interest),
				amountLine("Total Past Lost Wages", c.PJI.Total),
			},
		},
		futureSection(c),
		{
			Title: "Summary",
			Lines: []Line{
				amountLine("Total Past Lost Wages", c.PJI.Total),
				amountLine("Future Lost Wages (Present Value)", c.FutureWages.PresentValue),
				amountLine("Total Economic Damages", c.TotalDamages),
			},
		},
	}
}

func retirementAgeLine(age int) Line {
	if age <= 0 {
		return textLine("Retirement Age", NotSpecified)
	}
	return textLine("Retirement Age", strconv.Itoa(age))
}

func futureSection(c *domain.DamagesCase) Section {
	fw := c.FutureWages
	s := Section{Title: "Future Wage Loss"}
	if !fw.Requested {
		s.Lines = []Line{textLine("Future Lost Wages", "Not claimed")}
		return s
	}

	status := textLine("Return to Work Status", string(c.ReturnStatus))
	s.Lines = []Line{
		status,
		dateLine("Start Date", c.StartDate),
	}
	if c.ReturnStatus == domain.ReturningToWork {
		s.Lines = append(s.Lines, dateLine("Speculative Return to Work Date", c.EndDate))
	}
	s.Lines = append(s.Lines,
		amountLine("Annual Collateral Benefits", fw.ImpliedFutureCollateralBenefits),
		amountLine("Net Annual Income", fw.AnnualNetLoss),
		amountLine("Monthly Net Income", fw.MonthlyNetLoss),
		textLine("Loss Period", strconv.FormatFloat(fw.TimeHorizonYears, 'f', 2, 64)+" years"),
		textLine("Total Months", strconv.Itoa(fw.TotalMonths)),
		amountLine("Present Value", fw.PresentValue),
	)
	return s
}
