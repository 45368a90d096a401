// Package tuimsg defines the messages scenes send to the root model.
package tuimsg

import (
	"github.com/actuclaim/actuclaim/internal/compare"
	"github.com/actuclaim/actuclaim/internal/domain"
)

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}

// CaseLoadedMsg signals a case file has been read into the form
type CaseLoadedMsg struct {
	Path  string
	Input *domain.CaseInput
}

// CalculationRequestedMsg asks the root model to run the entered case
type CalculationRequestedMsg struct {
	Input domain.CaseInput
}

// CalculationCompleteMsg carries a computed case or the reason it failed
type CalculationCompleteMsg struct {
	Case *domain.DamagesCase
	Err  error
}

// DiscountRateChangedMsg is sent when the sensitivity slider moves.
// RatePercent is a percentage, e.g. 3.5.
type DiscountRateChangedMsg struct {
	RatePercent float64
}

// ComparisonRequestedMsg asks for the current case under every jurisdiction
type ComparisonRequestedMsg struct {
	Input domain.CaseInput
}

// ComparisonCompleteMsg carries a finished jurisdiction comparison
type ComparisonCompleteMsg struct {
	Set *compare.ComparisonSet
	Err error
}

// ExportRequestedMsg asks the root model to write the current case as a report
type ExportRequestedMsg struct {
	Format string
}

// ReportSavedMsg reports where a report was written
type ReportSavedMsg struct {
	Path string
	Err  error
}
