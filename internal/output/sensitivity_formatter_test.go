package output

import (
	"strings"
	"testing"

	"github.com/actuclaim/actuclaim/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTestSweep() *domain.ParameterSensitivityAnalysis {
	return &domain.ParameterSensitivityAnalysis{
		ClientName:       "Jane Doe",
		Jurisdiction:     domain.NovaScotia,
		Parameter:        domain.SensitivityParameter{Name: "discount_rate", MinValue: d("2"), MaxValue: d("4"), Steps: 3},
		BaseRatePercent:  d("3"),
		BaseTotalDamages: d("100000"),
		TimeHorizonYears: 10,
		Results: []domain.SensitivityResult{
			{DiscountRatePercent: d("2"), PresentValue: d("98000"), TotalDamages: d("108000"), ChangeFromBase: d("8000"), ChangeFromBasePct: d("8")},
			{DiscountRatePercent: d("3"), PresentValue: d("90000"), TotalDamages: d("100000")},
			{DiscountRatePercent: d("4"), PresentValue: d("83000"), TotalDamages: d("93000"), ChangeFromBase: d("-7000"), ChangeFromBasePct: d("-7")},
		},
		Summary: domain.SensitivitySummary{
			MinTotalDamages: d("93000"),
			MaxTotalDamages: d("108000"),
			Spread:          d("15000"),
			SpreadPct:       d("15"),
			RiskLevel:       "MEDIUM",
			Recommendations: []string{"Support the chosen discount rate with current evidence"},
		},
	}
}

func TestNewSensitivityFormatter(t *testing.T) {
	assert.Equal(t, "console", NewSensitivityFormatter("table").Name())
	assert.Equal(t, "console", NewSensitivityFormatter("text").Name())
	assert.Equal(t, "csv", NewSensitivityFormatter("CSV").Name())
	assert.Equal(t, "json", NewSensitivityFormatter("json").Name())
	assert.Equal(t, "console", NewSensitivityFormatter("unknown").Name())
}

func TestSensitivityConsoleFormatter(t *testing.T) {
	out, err := SensitivityConsoleFormatter{}.FormatSensitivityAnalysis(buildTestSweep())
	require.NoError(t, err)

	assert.Contains(t, out, "SENSITIVITY ANALYSIS: DISCOUNT RATE")
	assert.Contains(t, out, "3.00% ← BASE")
	assert.Contains(t, out, "RISK LEVEL: ⚠️ MEDIUM")
	assert.Contains(t, out, "• Support the chosen discount rate")

	_, err = SensitivityConsoleFormatter{}.FormatSensitivityAnalysis(&domain.ParameterSensitivityAnalysis{})
	assert.Error(t, err)
}

func TestSensitivityCSVFormatter(t *testing.T) {
	out, err := SensitivityCSVFormatter{}.FormatSensitivityAnalysis(buildTestSweep())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "discount_rate_pct,present_value,total_damages,change_from_base,change_from_base_pct", lines[0])
	assert.Equal(t, "4,83000.00,93000.00,-7000.00,-7.00", lines[3])
}

func TestSensitivityJSONFormatter(t *testing.T) {
	out, err := SensitivityJSONFormatter{}.FormatSensitivityAnalysis(buildTestSweep())
	require.NoError(t, err)
	assert.Contains(t, out, "\"riskLevel\": \"MEDIUM\"")
	assert.Contains(t, out, "\"results\"")
}
