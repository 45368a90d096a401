package compare

import (
	"encoding/csv"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Jurisdiction",
		"Type",
		"Net Pay",
		"Total Deductions",
		"Annual Collateral",
		"Net Past Lost Wages",
		"Past Lost Wages with Interest",
		"Present Value",
		"Total Damages",
		"Net Pay Diff from Base",
		"PJI Diff from Base",
		"Total Diff from Base",
		"Total % Change",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
		return "", err
	}
	for _, alt := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&alt, "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// formatRow formats a comparison result as a CSV row
func (cf *CSVFormatter) formatRow(result *ComparisonResult, rowType string) []string {
	return []string{
		result.Name(),
		rowType,
		result.NetPay.StringFixed(2),
		result.TotalDeductions.StringFixed(2),
		result.AnnualCollateral.StringFixed(2),
		result.NetPastLostWages.StringFixed(2),
		result.PJITotal.StringFixed(2),
		result.PresentValue.StringFixed(2),
		result.TotalDamages.StringFixed(2),
		result.NetPayDiffFromBase.StringFixed(2),
		result.PJIDiffFromBase.StringFixed(2),
		result.TotalDiffFromBase.StringFixed(2),
		result.TotalPctFromBase.StringFixed(2),
	}
}
