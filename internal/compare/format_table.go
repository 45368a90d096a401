package compare

import (
	"fmt"
	"strings"

	"github.com/actuclaim/actuclaim/pkg/money"
	"github.com/shopspring/decimal"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a formatted table comparing jurisdictions
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString("JURISDICTION COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Client: %s\n", compSet.ClientName))
	sb.WriteString(fmt.Sprintf("Base Jurisdiction: %s\n", compSet.BaseJurisdiction.DisplayName()))
	if compSet.CasePath != "" {
		sb.WriteString(fmt.Sprintf("Case File: %s\n", compSet.CasePath))
	}
	sb.WriteString("\n")

	nameWidth := 27
	numWidth := 12

	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, "Jurisdiction",
		numWidth, "Net Pay",
		numWidth, "Past + PJI",
		numWidth, "Future PV",
		numWidth, "Total"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	sb.WriteString(tf.formatRow(compSet.BaseResult, nameWidth, numWidth, true))

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(tf.formatRow(&alt, nameWidth, numWidth, false))
		}
	}

	sb.WriteString(strings.Repeat("=", 80) + "\n")

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString("\nCOMPARISON TO BASE\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")

		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(fmt.Sprintf("\n%s:\n", alt.Name()))
			sb.WriteString(fmt.Sprintf("  Net Pay:          %s%s\n",
				tf.deltaSymbol(alt.NetPayDiffFromBase), money.Format(alt.NetPayDiffFromBase)))
			sb.WriteString(fmt.Sprintf("  Past + PJI:       %s%s\n",
				tf.deltaSymbol(alt.PJIDiffFromBase), money.Format(alt.PJIDiffFromBase)))
			sb.WriteString(fmt.Sprintf("  Total Damages:    %s%s (%s%%)\n",
				tf.deltaSymbol(alt.TotalDiffFromBase), money.Format(alt.TotalDiffFromBase),
				alt.TotalPctFromBase.StringFixed(1)))
		}
		sb.WriteString("\n")
	}

	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\nOBSERVATIONS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range compSet.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// formatRow formats a single jurisdiction row
func (tf *TableFormatter) formatRow(result *ComparisonResult, nameWidth, numWidth int, isBase bool) string {
	name := result.Name()
	if isBase {
		name += " (base)"
	}
	if result.FallbackRateUsed {
		name += "*"
	}

	return fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, tf.truncate(name, nameWidth),
		numWidth, "$"+tf.formatDecimal(result.NetPay),
		numWidth, "$"+tf.formatDecimal(result.PJITotal),
		numWidth, "$"+tf.formatDecimal(result.PresentValue),
		numWidth, "$"+tf.formatDecimal(result.TotalDamages))
}

// formatDecimal formats a decimal for display (in thousands)
func (tf *TableFormatter) formatDecimal(d decimal.Decimal) string {
	if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000000)) {
		return d.Div(decimal.NewFromInt(1000000)).StringFixed(2) + "M"
	} else if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000)) {
		return d.Div(decimal.NewFromInt(1000)).StringFixed(1) + "K"
	}
	return d.StringFixed(0)
}

// deltaSymbol returns "+" for increases; money.Format already signs decreases
func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	}
	return ""
}

// truncate truncates a string to maxLen
func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// FormatCompact creates a compact single-line summary of total damage deltas
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Base: %s | ", compSet.BaseJurisdiction.DisplayName()))

	for i, alt := range compSet.AlternativeResults {
		if i > 0 {
			sb.WriteString(" | ")
		}
		change := "="
		if alt.TotalDiffFromBase.IsPositive() {
			change = fmt.Sprintf("+$%s", tf.formatDecimal(alt.TotalDiffFromBase))
		} else if alt.TotalDiffFromBase.IsNegative() {
			change = fmt.Sprintf("-$%s", tf.formatDecimal(alt.TotalDiffFromBase.Abs()))
		}
		sb.WriteString(fmt.Sprintf("%s: %s", alt.Name(), change))
	}

	return sb.String()
}
