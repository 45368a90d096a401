package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BenefitAmounts holds one figure for each collateral benefit source.
type BenefitAmounts struct {
	EI       decimal.Decimal `yaml:"ei" json:"ei"`
	SectionB decimal.Decimal `yaml:"section_b" json:"sectionB"`
	LTD      decimal.Decimal `yaml:"ltd" json:"ltd"`
	CPPD     decimal.Decimal `yaml:"cppd" json:"cppd"`
	Other    decimal.Decimal `yaml:"other" json:"other"`
}

// Total sums the five sources.
func (b BenefitAmounts) Total() decimal.Decimal {
	return b.EI.Add(b.SectionB).Add(b.LTD).Add(b.CPPD).Add(b.Other)
}

// EILimitation describes how the 26-week EI sickness cap prorated the annual EI figure.
type EILimitation struct {
	StartDate     time.Time       `json:"startDate"`
	DaysUsed      int             `json:"daysUsed"`
	RemainingDays int             `json:"remainingDays"`
	FuturePortion decimal.Decimal `json:"futurePortion"`
}

// CollateralBenefits is the aggregate of past and future collateral benefits.
// Values are never mutated; each adjustment stage returns a new value.
type CollateralBenefits struct {
	Past   BenefitAmounts `json:"past"`
	Annual BenefitAmounts `json:"annual"`
	// AnnualEIUnadjusted is the annual EI figure before the 182-day cap.
	AnnualEIUnadjusted decimal.Decimal `json:"annualEIUnadjusted"`
	TotalPast          decimal.Decimal `json:"totalPast"`
	TotalAnnualFuture  decimal.Decimal `json:"totalAnnualFuture"`
	EILimit            *EILimitation   `json:"eiLimit,omitempty"`
	// JurisdictionAdjusted is set once province rules have zeroed any source.
	JurisdictionAdjusted bool `json:"jurisdictionAdjusted"`
}
