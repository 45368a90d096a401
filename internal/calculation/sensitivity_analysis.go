package calculation

import (
	"fmt"

	"github.com/actuclaim/actuclaim/internal/domain"
	"github.com/actuclaim/actuclaim/pkg/money"
	"github.com/shopspring/decimal"
)

// Risk levels assigned by spread relative to the base total.
const (
	RiskLow      = "LOW"
	RiskMedium   = "MEDIUM"
	RiskHigh     = "HIGH"
	RiskCritical = "CRITICAL"
)

// DiscountRateParameter is the only parameter the sweep supports.
const DiscountRateParameter = "discount_rate"

// SensitivityAnalyzer sweeps the discount rate over a computed case.
type SensitivityAnalyzer struct {
	engine *DamagesEngine
}

// NewSensitivityAnalyzer creates an analyzer that runs cases through engine.
func NewSensitivityAnalyzer(engine *DamagesEngine) *SensitivityAnalyzer {
	return &SensitivityAnalyzer{engine: engine}
}

// AnalyzeDiscountRate computes the base case once, then re-discounts its future
// loss at each rate in the parameter range. PJI does not depend on the discount
// rate and is held constant across the sweep.
func (sa *SensitivityAnalyzer) AnalyzeDiscountRate(in domain.CaseInput, parameter domain.SensitivityParameter) (*domain.ParameterSensitivityAnalysis, error) {
	if parameter.Steps < 2 {
		return nil, fmt.Errorf("sensitivity sweep needs at least 2 steps, got %d", parameter.Steps)
	}
	if parameter.MaxValue.LessThan(parameter.MinValue) {
		return nil, fmt.Errorf("invalid range: max %s is below min %s", parameter.MaxValue, parameter.MinValue)
	}
	if !UsableRatePercent(parameter.MinValue) || !UsableRatePercent(parameter.MaxValue) {
		return nil, fmt.Errorf("invalid range: discount rates must be above -100%%, got %s to %s", parameter.MinValue, parameter.MaxValue)
	}
	if parameter.Name == "" {
		parameter.Name = DiscountRateParameter
	}

	base, err := sa.engine.Calculate(in)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate base case: %w", err)
	}

	fw := base.FutureWages
	analysis := &domain.ParameterSensitivityAnalysis{
		ClientName:       base.ClientName,
		Jurisdiction:     base.Jurisdiction,
		Parameter:        parameter,
		BaseRatePercent:  fw.DiscountRate.Mul(hundred),
		BaseTotalDamages: base.TotalDamages,
		TimeHorizonYears: fw.TimeHorizonYears,
	}

	for _, pct := range sa.generateParameterValues(parameter) {
		pv := decimal.Zero
		if fw.Requested {
			pv, _ = PresentValue(fw.AnnualNetLoss, fw.TimeHorizonYears, pct.Div(hundred))
		}
		total := money.Cents(base.PJI.Total.Add(pv))
		change := total.Sub(base.TotalDamages)
		result := domain.SensitivityResult{
			DiscountRatePercent: pct,
			PresentValue:        pv,
			TotalDamages:        total,
			ChangeFromBase:      change,
		}
		if !base.TotalDamages.IsZero() {
			result.ChangeFromBasePct = change.Div(base.TotalDamages).Mul(hundred).Round(2)
		}
		analysis.Results = append(analysis.Results, result)
	}

	analysis.Summary = sa.calculateSensitivitySummary(analysis.Results, base.TotalDamages)
	return analysis, nil
}

// generateParameterValues spaces Steps values evenly from MinValue to MaxValue inclusive.
func (sa *SensitivityAnalyzer) generateParameterValues(param domain.SensitivityParameter) []decimal.Decimal {
	values := make([]decimal.Decimal, 0, param.Steps)
	stepSize := param.MaxValue.Sub(param.MinValue).Div(decimal.NewFromInt(int64(param.Steps - 1)))
	for i := 0; i < param.Steps; i++ {
		values = append(values, param.MinValue.Add(stepSize.Mul(decimal.NewFromInt(int64(i)))).Round(4))
	}
	return values
}

func (sa *SensitivityAnalyzer) calculateSensitivitySummary(results []domain.SensitivityResult, baseTotal decimal.Decimal) domain.SensitivitySummary {
	if len(results) == 0 {
		return domain.SensitivitySummary{}
	}

	lo, hi := results[0].TotalDamages, results[0].TotalDamages
	for _, r := range results[1:] {
		lo = decimal.Min(lo, r.TotalDamages)
		hi = decimal.Max(hi, r.TotalDamages)
	}

	summary := domain.SensitivitySummary{
		MinTotalDamages: lo,
		MaxTotalDamages: hi,
		Spread:          hi.Sub(lo),
	}
	if !baseTotal.IsZero() {
		summary.SpreadPct = summary.Spread.Div(baseTotal.Abs()).Mul(hundred).Round(2)
	}
	summary.RiskLevel = DetermineRiskLevel(summary.SpreadPct)
	summary.Recommendations = generateRecommendations(summary.RiskLevel)
	return summary
}

// DetermineRiskLevel grades a spread percentage.
func DetermineRiskLevel(spreadPct decimal.Decimal) string {
	switch {
	case spreadPct.LessThan(decimal.NewFromInt(10)):
		return RiskLow
	case spreadPct.LessThan(decimal.NewFromInt(25)):
		return RiskMedium
	case spreadPct.LessThan(decimal.NewFromInt(50)):
		return RiskHigh
	default:
		return RiskCritical
	}
}

func generateRecommendations(risk string) []string {
	switch risk {
	case RiskLow:
		return []string{"Award is robust to the discount rate"}
	case RiskMedium:
		return []string{"Moderate sensitivity to the discount rate", "State the rate assumption in the report"}
	case RiskHigh:
		return []string{"High sensitivity to the discount rate", "Support the chosen rate with evidence"}
	default:
		return []string{"Award is dominated by the discount rate assumption", "Present a range rather than a single figure"}
	}
}
