package calculation

import (
	"fmt"

	"github.com/actuclaim/actuclaim/internal/domain"
	"github.com/actuclaim/actuclaim/pkg/money"
	"github.com/shopspring/decimal"
)

// TAX CALCULATION ASSUMPTIONS:
//
// 1. One bracket set (2024) for federal and the four provinces, held constant.
//    The federal and provincial basic personal amounts are folded into a 0% first bracket.
//
// 2. Dependents reduce taxable income by $2,616 each, to at most $8,375 in total.
//    The same reduced base is used for federal and provincial tax.
//
// 3. CPP: 5.95% on earnings between $3,500 and $68,500.
//    CPP2: 4% on earnings between $68,500 and $73,200.
//    EI: 1.66% on insurable earnings up to $63,200.
//    Contributions are computed on gross income, not the dependent-reduced base.

// TaxBracket is one marginal band taxed at Rate on income in [Min, Max).
// A zero Max marks the unbounded top band.
type TaxBracket struct {
	Min  decimal.Decimal
	Max  decimal.Decimal
	Rate decimal.Decimal
}

// Unbounded reports whether the bracket has no upper edge.
func (b TaxBracket) Unbounded() bool { return b.Max.IsZero() }

func bracket(lo, hi int64, rate string) TaxBracket {
	return TaxBracket{
		Min:  decimal.NewFromInt(lo),
		Max:  decimal.NewFromInt(hi),
		Rate: decimal.RequireFromString(rate),
	}
}

// CPPRules are the Canada Pension Plan contribution parameters.
type CPPRules struct {
	Rate            decimal.Decimal
	MaxEarnings     decimal.Decimal
	BasicExemption  decimal.Decimal
	CPP2Rate        decimal.Decimal
	CPP2MaxEarnings decimal.Decimal
}

// EIRules are the Employment Insurance premium parameters.
type EIRules struct {
	Rate         decimal.Decimal
	MaxInsurable decimal.Decimal
}

// TaxCalculator holds the bracket schedules and contribution rules for one tax year.
type TaxCalculator struct {
	Year                int
	Federal             []TaxBracket
	Provincial          map[domain.Jurisdiction][]TaxBracket
	CPP                 CPPRules
	EI                  EIRules
	DependentAmount     decimal.Decimal
	MaxDependentBenefit decimal.Decimal
}

// NewTaxCalculator2024 creates a calculator with the 2024 schedules.
func NewTaxCalculator2024() *TaxCalculator {
	return &TaxCalculator{
		Year: 2024,
		Federal: []TaxBracket{
			bracket(0, 15705, "0"),
			bracket(15705, 55867, "0.15"),
			bracket(55867, 111733, "0.205"),
			bracket(111733, 173205, "0.26"),
			bracket(173205, 246752, "0.29"),
			bracket(246752, 0, "0.33"),
		},
		Provincial: map[domain.Jurisdiction][]TaxBracket{
			domain.NovaScotia: {
				bracket(0, 8481, "0"),
				bracket(8481, 29590, "0.0879"),
				bracket(29590, 59180, "0.1495"),
				bracket(59180, 93000, "0.1667"),
				bracket(93000, 150000, "0.175"),
				bracket(150000, 0, "0.21"),
			},
			domain.Newfoundland: {
				bracket(0, 10818, "0"),
				bracket(10818, 43198, "0.087"),
				bracket(43198, 86395, "0.145"),
				bracket(86395, 154244, "0.158"),
				bracket(154244, 215943, "0.178"),
				bracket(215943, 275870, "0.198"),
				bracket(275870, 551739, "0.208"),
				bracket(551739, 1103478, "0.213"),
				bracket(1103478, 0, "0.218"),
			},
			domain.NewBrunswick: {
				bracket(0, 13044, "0"),
				bracket(13044, 49958, "0.094"),
				bracket(49958, 99916, "0.14"),
				bracket(99916, 185064, "0.16"),
				bracket(185064, 0, "0.195"),
			},
			domain.PrinceEdwardIsland: {
				bracket(0, 14250, "0"),
				bracket(14250, 32656, "0.0965"),
				bracket(32656, 64313, "0.1363"),
				bracket(64313, 105000, "0.1665"),
				bracket(105000, 140000, "0.18"),
				bracket(140000, 0, "0.1875"),
			},
		},
		CPP: CPPRules{
			Rate:            decimal.RequireFromString("0.0595"),
			MaxEarnings:     decimal.NewFromInt(68500),
			BasicExemption:  decimal.NewFromInt(3500),
			CPP2Rate:        decimal.RequireFromString("0.04"),
			CPP2MaxEarnings: decimal.NewFromInt(73200),
		},
		EI: EIRules{
			Rate:         decimal.RequireFromString("0.0166"),
			MaxInsurable: decimal.NewFromInt(63200),
		},
		DependentAmount:     decimal.NewFromInt(2616),
		MaxDependentBenefit: decimal.NewFromInt(8375),
	}
}

// BracketTax applies a progressive schedule to taxable income.
func BracketTax(taxableIncome decimal.Decimal, schedule []TaxBracket) decimal.Decimal {
	if taxableIncome.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	totalTax := decimal.Zero
	for _, b := range schedule {
		if taxableIncome.LessThanOrEqual(b.Min) {
			break
		}
		upper := taxableIncome
		if !b.Unbounded() {
			upper = decimal.Min(taxableIncome, b.Max)
		}
		incomeInBracket := upper.Sub(b.Min)
		if incomeInBracket.GreaterThan(decimal.Zero) {
			totalTax = totalTax.Add(incomeInBracket.Mul(b.Rate))
		}
	}
	return totalTax
}

// ValidateSchedule checks that brackets start at zero, are contiguous and ascending,
// and end with an unbounded band.
func ValidateSchedule(schedule []TaxBracket) error {
	if len(schedule) == 0 {
		return fmt.Errorf("schedule has no brackets")
	}
	if !schedule[0].Min.IsZero() {
		return fmt.Errorf("first bracket starts at %s, want 0", schedule[0].Min)
	}
	for i, b := range schedule {
		last := i == len(schedule)-1
		if last != b.Unbounded() {
			return fmt.Errorf("bracket %d: only the last bracket may be unbounded", i)
		}
		if !last {
			if b.Max.LessThanOrEqual(b.Min) {
				return fmt.Errorf("bracket %d: max %s not above min %s", i, b.Max, b.Min)
			}
			if !schedule[i+1].Min.Equal(b.Max) {
				return fmt.Errorf("bracket %d: gap between %s and %s", i, b.Max, schedule[i+1].Min)
			}
		}
	}
	return nil
}

// DependentBenefit is the taxable-income reduction for n dependents.
func (tc *TaxCalculator) DependentBenefit(dependents int) decimal.Decimal {
	if dependents <= 0 {
		return decimal.Zero
	}
	return decimal.Min(tc.DependentAmount.Mul(decimal.NewFromInt(int64(dependents))), tc.MaxDependentBenefit)
}

func (tc *TaxCalculator) taxableIncome(income decimal.Decimal, dependents int) decimal.Decimal {
	return decimal.Max(decimal.Zero, income.Sub(tc.DependentBenefit(dependents)))
}

// FederalTax calculates federal income tax.
func (tc *TaxCalculator) FederalTax(income decimal.Decimal, dependents int) decimal.Decimal {
	return BracketTax(tc.taxableIncome(income, dependents), tc.Federal)
}

// ProvincialTax calculates provincial income tax. Unsupported provinces are an error.
func (tc *TaxCalculator) ProvincialTax(income decimal.Decimal, j domain.Jurisdiction, dependents int) (decimal.Decimal, error) {
	schedule, ok := tc.Provincial[j]
	if !ok {
		return decimal.Zero, &domain.UnknownJurisdictionError{Value: string(j)}
	}
	return BracketTax(tc.taxableIncome(income, dependents), schedule), nil
}

// CPPContributions returns the base CPP and the second additional CPP2 contribution.
func (tc *TaxCalculator) CPPContributions(income decimal.Decimal) (cpp, cpp2 decimal.Decimal) {
	r := tc.CPP
	cpp = decimal.Zero
	if income.GreaterThan(r.BasicExemption) {
		pensionable := decimal.Min(income, r.MaxEarnings).Sub(r.BasicExemption)
		maxCPP := r.MaxEarnings.Sub(r.BasicExemption).Mul(r.Rate)
		cpp = decimal.Min(pensionable.Mul(r.Rate), maxCPP)
	}

	cpp2 = decimal.Zero
	if income.GreaterThan(r.MaxEarnings) {
		additional := decimal.Min(income, r.CPP2MaxEarnings).Sub(r.MaxEarnings)
		maxCPP2 := r.CPP2MaxEarnings.Sub(r.MaxEarnings).Mul(r.CPP2Rate)
		cpp2 = decimal.Min(additional.Mul(r.CPP2Rate), maxCPP2)
	}
	return money.Cents(cpp), money.Cents(cpp2)
}

// EIContribution calculates the EI premium.
func (tc *TaxCalculator) EIContribution(income decimal.Decimal) decimal.Decimal {
	if income.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return money.Cents(decimal.Min(income, tc.EI.MaxInsurable).Mul(tc.EI.Rate))
}
