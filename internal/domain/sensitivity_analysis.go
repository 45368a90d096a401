package domain

import (
	"github.com/shopspring/decimal"
)

// SensitivityParameter describes a discount-rate sweep. Values are percentages.
type SensitivityParameter struct {
	Name     string          `yaml:"name" json:"name"`
	MinValue decimal.Decimal `yaml:"min_value" json:"minValue"`
	MaxValue decimal.Decimal `yaml:"max_value" json:"maxValue"`
	Steps    int             `yaml:"steps" json:"steps"`
}

// SensitivityResult is the outcome for one discount rate.
type SensitivityResult struct {
	DiscountRatePercent decimal.Decimal `json:"discountRatePercent"`
	PresentValue        decimal.Decimal `json:"presentValue"`
	TotalDamages        decimal.Decimal `json:"totalDamages"`
	ChangeFromBase      decimal.Decimal `json:"changeFromBase"`
	ChangeFromBasePct   decimal.Decimal `json:"changeFromBasePct"`
}

// ParameterSensitivityAnalysis is a complete discount-rate sweep for one case.
type ParameterSensitivityAnalysis struct {
	ClientName       string               `json:"clientName"`
	Jurisdiction     Jurisdiction         `json:"jurisdiction"`
	Parameter        SensitivityParameter `json:"parameter"`
	BaseRatePercent  decimal.Decimal      `json:"baseRatePercent"`
	BaseTotalDamages decimal.Decimal      `json:"baseTotalDamages"`
	TimeHorizonYears float64              `json:"timeHorizonYears"`
	Results          []SensitivityResult  `json:"results"`
	Summary          SensitivitySummary   `json:"summary"`
}

// SensitivitySummary condenses a sweep.
type SensitivitySummary struct {
	MinTotalDamages decimal.Decimal `json:"minTotalDamages"`
	MaxTotalDamages decimal.Decimal `json:"maxTotalDamages"`
	// Spread is MaxTotalDamages minus MinTotalDamages.
	Spread decimal.Decimal `json:"spread"`
	// SpreadPct is Spread relative to the base case total.
	SpreadPct       decimal.Decimal `json:"spreadPct"`
	RiskLevel       string          `json:"riskLevel"`
	Recommendations []string        `json:"recommendations"`
}
