package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PJIResult is the pre-judgment interest accrued on net past lost wages.
type PJIResult struct {
	LossDate        time.Time       `json:"lossDate"`
	CalculationDate time.Time       `json:"calculationDate"`
	YearsElapsed    float64         `json:"yearsElapsed"`
	RatePercent     decimal.Decimal `json:"ratePercent"`
	Principal       decimal.Decimal `json:"principal"`
	Interest        decimal.Decimal `json:"interest"`
	Total           decimal.Decimal `json:"total"`
	ExplicitRate    bool            `json:"explicitRate"`
	FallbackRate    bool            `json:"fallbackRate"`
	// SimpleInterestFallback marks results recomputed with simple interest
	// because compound growth returned exactly zero.
	SimpleInterestFallback bool `json:"simpleInterestFallback"`
}

// PresentValueResult is the discounted value of future lost wages.
type PresentValueResult struct {
	Requested                       bool            `json:"requested"`
	AnnualNetLoss                   decimal.Decimal `json:"annualNetLoss"`
	MonthlyNetLoss                  decimal.Decimal `json:"monthlyNetLoss"`
	TimeHorizonYears                float64         `json:"timeHorizonYears"`
	TotalMonths                     int             `json:"totalMonths"`
	DiscountRate                    decimal.Decimal `json:"discountRate"`
	PresentValue                    decimal.Decimal `json:"presentValue"`
	ImpliedFutureCollateralBenefits decimal.Decimal `json:"impliedFutureCollateralBenefits"`
}

// ReturnStatus selects how the future time horizon ends.
type ReturnStatus string

const (
	ReturningToWork ReturnStatus = "returning to work"
	TotalDisability ReturnStatus = "total disability"
)

// MissedTime is the past period the claimant could not work.
type MissedTime struct {
	Amount decimal.Decimal `json:"amount"`
	Unit   TimeUnit        `json:"unit"`
	// FractionOfYear is the share of a working year the period represents.
	FractionOfYear decimal.Decimal `json:"fractionOfYear"`
}

// Note records a degradation or assumption made while computing a case.
type Note struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Note codes.
const (
	NoteDefaultLossDate       = "default_loss_date"
	NoteDefaultStartDate      = "default_start_date"
	NoteDefaultEndDate        = "default_end_date"
	NoteDefaultBirthDate      = "default_birth_date"
	NoteDefaultRetirementAge  = "default_retirement_age"
	NoteDefaultEIStartDate    = "default_ei_start_date"
	NoteDefaultTimeUnit       = "default_time_unit"
	NoteDefaultDiscountRate   = "default_discount_rate"
	NoteDefaultPJIRate        = "default_pji_rate"
	NoteFallbackRate          = "fallback_pji_rate"
	NoteSimpleInterest        = "simple_interest_fallback"
	NoteNegativeHorizon       = "negative_time_horizon"
	NoteJurisdictionOverride  = "jurisdiction_override"
	NoteFutureWagesNotClaimed = "future_wages_not_requested"
)

// DamagesCase is the complete result of a damages calculation.
type DamagesCase struct {
	ID             string             `json:"id"`
	ClientName     string             `json:"clientName"`
	Jurisdiction   Jurisdiction       `json:"jurisdiction"`
	CalculatedAt   time.Time          `json:"calculatedAt"`
	Income         IncomeProfile      `json:"income"`
	TakeHome       TakeHomeResult     `json:"takeHome"`
	Collateral     CollateralBenefits `json:"collateral"`
	MissedTime     MissedTime         `json:"missedTime"`
	GrossMissedPay decimal.Decimal    `json:"grossMissedPay"`
	// CollateralDeduction is the share of annual benefits attributed to the missed period.
	CollateralDeduction decimal.Decimal    `json:"collateralDeduction"`
	NetPastLostWages    decimal.Decimal    `json:"netPastLostWages"`
	PJI                 PJIResult          `json:"pji"`
	ReturnStatus        ReturnStatus       `json:"returnStatus"`
	StartDate           time.Time          `json:"startDate"`
	EndDate             time.Time          `json:"endDate,omitempty"`
	BirthDate           time.Time          `json:"birthDate,omitempty"`
	RetirementAge       int                `json:"retirementAge,omitempty"`
	FutureWages         PresentValueResult `json:"futureWages"`
	TotalDamages        decimal.Decimal    `json:"totalDamages"`
	Notes               []Note             `json:"notes,omitempty"`
}

// HasNote reports whether a note with the given code was recorded.
func (c *DamagesCase) HasNote(code string) bool {
	for _, n := range c.Notes {
		if n.Code == code {
			return true
		}
	}
	return false
}
