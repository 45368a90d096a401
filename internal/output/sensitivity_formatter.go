package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/actuclaim/actuclaim/internal/domain"
	"github.com/actuclaim/actuclaim/pkg/money"
)

// SensitivityFormatter defines a formatter for discount-rate sweeps
type SensitivityFormatter interface {
	FormatSensitivityAnalysis(analysis *domain.ParameterSensitivityAnalysis) (string, error)
	Name() string
}

// SensitivityConsoleFormatter formats sensitivity analysis output for console
type SensitivityConsoleFormatter struct{}

func (scf SensitivityConsoleFormatter) Name() string { return "console" }

func (scf SensitivityConsoleFormatter) FormatSensitivityAnalysis(analysis *domain.ParameterSensitivityAnalysis) (string, error) {
	if len(analysis.Results) == 0 {
		return "", fmt.Errorf("no results in analysis")
	}
	var buf bytes.Buffer
	param := analysis.Parameter

	fmt.Fprintf(&buf, "SENSITIVITY ANALYSIS: %s\n", strings.ToUpper(strings.ReplaceAll(param.Name, "_", " ")))
	fmt.Fprintf(&buf, "=================================================================\n")
	fmt.Fprintf(&buf, "Client: %s (%s)\n", analysis.ClientName, analysis.Jurisdiction.DisplayName())
	fmt.Fprintf(&buf, "Base Case: %s at %s\n", money.Format(analysis.BaseTotalDamages), money.Percent(analysis.BaseRatePercent))
	fmt.Fprintf(&buf, "Range: %s to %s (%d steps), horizon %.2f years\n",
		money.Percent(param.MinValue), money.Percent(param.MaxValue), param.Steps, analysis.TimeHorizonYears)
	fmt.Fprintln(&buf)

	fmt.Fprintf(&buf, "%-16s %-16s %-16s %-16s\n", "Discount Rate", "Present Value", "Total Damages", "Change")
	fmt.Fprintln(&buf, strings.Repeat("-", 66))
	for _, r := range analysis.Results {
		rate := money.Percent(r.DiscountRatePercent)
		if r.DiscountRatePercent.Equal(analysis.BaseRatePercent) {
			rate += " ← BASE"
		}
		fmt.Fprintf(&buf, "%-16s %-16s %-16s %s (%s)\n",
			rate,
			money.Format(r.PresentValue),
			money.Format(r.TotalDamages),
			money.Format(r.ChangeFromBase),
			money.Percent(r.ChangeFromBasePct))
	}
	fmt.Fprintln(&buf)

	s := analysis.Summary
	fmt.Fprintf(&buf, "SPREAD: %s (%s of base)\n", money.Format(s.Spread), money.Percent(s.SpreadPct))

	riskEmoji := ""
	switch s.RiskLevel {
	case "LOW":
		riskEmoji = "✅"
	case "MEDIUM":
		riskEmoji = "⚠️"
	case "HIGH":
		riskEmoji = "🔴"
	case "CRITICAL":
		riskEmoji = "🚨"
	}
	fmt.Fprintf(&buf, "RISK LEVEL: %s %s\n", riskEmoji, s.RiskLevel)
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "RECOMMENDATIONS:")
	for _, rec := range s.Recommendations {
		fmt.Fprintf(&buf, "  • %s\n", rec)
	}
	return buf.String(), nil
}

// SensitivityCSVFormatter formats sensitivity analysis output as CSV
type SensitivityCSVFormatter struct{}

func (scf SensitivityCSVFormatter) Name() string { return "csv" }

func (scf SensitivityCSVFormatter) FormatSensitivityAnalysis(analysis *domain.ParameterSensitivityAnalysis) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"discount_rate_pct", "present_value", "total_damages", "change_from_base", "change_from_base_pct"}); err != nil {
		return "", err
	}
	for _, r := range analysis.Results {
		row := []string{
			r.DiscountRatePercent.String(),
			r.PresentValue.StringFixed(2),
			r.TotalDamages.StringFixed(2),
			r.ChangeFromBase.StringFixed(2),
			r.ChangeFromBasePct.StringFixed(2),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	return buf.String(), w.Error()
}

// SensitivityJSONFormatter formats sensitivity analysis output as JSON
type SensitivityJSONFormatter struct{}

func (sjf SensitivityJSONFormatter) Name() string { return "json" }

func (sjf SensitivityJSONFormatter) FormatSensitivityAnalysis(analysis *domain.ParameterSensitivityAnalysis) (string, error) {
	data, err := json.MarshalIndent(analysis, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// NewSensitivityFormatter creates a sensitivity formatter based on the format name
func NewSensitivityFormatter(format string) SensitivityFormatter {
	switch NormalizeFormatName(format) {
	case "console", "table":
		return SensitivityConsoleFormatter{}
	case "csv":
		return SensitivityCSVFormatter{}
	case "json":
		return SensitivityJSONFormatter{}
	default:
		return SensitivityConsoleFormatter{}
	}
}
