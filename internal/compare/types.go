package compare

import (
	"fmt"

	"github.com/actuclaim/actuclaim/internal/domain"
	"github.com/actuclaim/actuclaim/pkg/money"
	"github.com/shopspring/decimal"
)

// ComparisonResult holds the key figures of one case under one jurisdiction
type ComparisonResult struct {
	Jurisdiction domain.Jurisdiction `json:"jurisdiction"`
	Case         *domain.DamagesCase `json:"-"`

	// Key Metrics
	NetPay            decimal.Decimal `json:"netPay"`
	TotalDeductions   decimal.Decimal `json:"totalDeductions"`
	AnnualCollateral  decimal.Decimal `json:"annualCollateral"`
	NetPastLostWages  decimal.Decimal `json:"netPastLostWages"`
	PJITotal          decimal.Decimal `json:"pjiTotal"`
	PresentValue      decimal.Decimal `json:"presentValue"`
	DiscountRate      decimal.Decimal `json:"discountRate"`
	TotalDamages      decimal.Decimal `json:"totalDamages"`
	FallbackRateUsed  bool            `json:"fallbackRateUsed"`
	JurisdictionRules bool            `json:"jurisdictionRules"`

	// Comparison to Base
	NetPayDiffFromBase decimal.Decimal `json:"netPayDiffFromBase"`
	PJIDiffFromBase    decimal.Decimal `json:"pjiDiffFromBase"`
	TotalDiffFromBase  decimal.Decimal `json:"totalDiffFromBase"`
	TotalPctFromBase   decimal.Decimal `json:"totalPctFromBase"`
}

// Name is the display name of the result's jurisdiction.
func (r *ComparisonResult) Name() string {
	return r.Jurisdiction.DisplayName()
}

// ComparisonSet represents one case evaluated across jurisdictions
type ComparisonSet struct {
	ClientName         string              `json:"clientName"`
	BaseJurisdiction   domain.Jurisdiction `json:"baseJurisdiction"`
	BaseResult         *ComparisonResult   `json:"baseResult"`
	AlternativeResults []ComparisonResult  `json:"alternativeResults"`
	Recommendations    []string            `json:"recommendations"`
	CasePath           string              `json:"casePath,omitempty"`
}

// MetricsCalculator extracts key metrics from damages cases
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics computes all comparison metrics for a damages case
func (mc *MetricsCalculator) CalculateMetrics(c *domain.DamagesCase) ComparisonResult {
	return ComparisonResult{
		Jurisdiction:      c.Jurisdiction,
		Case:              c,
		NetPay:            c.TakeHome.NetPay,
		TotalDeductions:   c.TakeHome.TotalDeductions,
		AnnualCollateral:  c.Collateral.TotalAnnualFuture,
		NetPastLostWages:  c.NetPastLostWages,
		PJITotal:          c.PJI.Total,
		PresentValue:      c.FutureWages.PresentValue,
		DiscountRate:      c.FutureWages.DiscountRate,
		TotalDamages:      c.TotalDamages,
		FallbackRateUsed:  c.PJI.FallbackRate,
		JurisdictionRules: c.Collateral.JurisdictionAdjusted || c.Jurisdiction == domain.PrinceEdwardIsland,
	}
}

// CalculateComparison computes deltas between a result and the base
func (mc *MetricsCalculator) CalculateComparison(alt, base ComparisonResult) ComparisonResult {
	alt.NetPayDiffFromBase = alt.NetPay.Sub(base.NetPay)
	alt.PJIDiffFromBase = alt.PJITotal.Sub(base.PJITotal)
	alt.TotalDiffFromBase = alt.TotalDamages.Sub(base.TotalDamages)

	if !base.TotalDamages.IsZero() {
		alt.TotalPctFromBase = alt.TotalDiffFromBase.
			Div(base.TotalDamages).
			Mul(decimal.NewFromInt(100)).
			Round(2)
	}
	return alt
}

// GenerateRecommendations summarizes which jurisdiction yields the largest
// and smallest award and flags province-specific rules that drive the gap.
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	if compSet.BaseResult == nil || len(compSet.AlternativeResults) == 0 {
		return recommendations
	}

	highest := compSet.BaseResult
	lowest := compSet.BaseResult
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.TotalDamages.GreaterThan(highest.TotalDamages) {
			highest = alt
		}
		if alt.TotalDamages.LessThan(lowest.TotalDamages) {
			lowest = alt
		}
	}

	if highest != compSet.BaseResult {
		recommendations = append(recommendations, fmt.Sprintf(
			"Highest Award: %s yields %s more than %s",
			highest.Name(), money.Format(highest.TotalDamages.Sub(compSet.BaseResult.TotalDamages)), compSet.BaseResult.Name()))
	}
	if lowest != compSet.BaseResult {
		recommendations = append(recommendations, fmt.Sprintf(
			"Lowest Award: %s yields %s less than %s",
			lowest.Name(), money.Format(compSet.BaseResult.TotalDamages.Sub(lowest.TotalDamages)), compSet.BaseResult.Name()))
	}

	all := append([]ComparisonResult{*compSet.BaseResult}, compSet.AlternativeResults...)
	for _, r := range all {
		switch {
		case r.Jurisdiction == domain.PrinceEdwardIsland:
			recommendations = append(recommendations,
				"Prince Edward Island: losses are measured on gross salary, so no tax or payroll deductions apply")
		case r.Jurisdiction == domain.NewBrunswick && r.JurisdictionRules:
			recommendations = append(recommendations,
				"New Brunswick: LTD and CPPD benefits are not deducted from future losses")
		}
	}
	return recommendations
}
