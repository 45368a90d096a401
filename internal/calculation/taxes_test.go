package calculation

import (
	"errors"
	"testing"

	"github.com/actuclaim/actuclaim/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestBracketTax_NovaScotia80000(t *testing.T) {
	tc := NewTaxCalculator2024()

	federal := tc.FederalTax(d("80000"), 0)
	provincial, err := tc.ProvincialTax(d("80000"), domain.NovaScotia, 0)
	require.NoError(t, err)

	// 40162 × 15% + 24133 × 20.5%
	assert.True(t, federal.Equal(d("10971.565")), "federal tax, got %s", federal)
	// 21109 × 8.79% + 29590 × 14.95% + 20820 × 16.67%
	assert.True(t, provincial.Equal(d("9749.8801")), "provincial tax, got %s", provincial)
}

func TestBracketTax_ZeroInFirstBracket(t *testing.T) {
	tc := NewTaxCalculator2024()
	for _, j := range domain.Jurisdictions {
		schedule := tc.Provincial[j]
		limit := schedule[0].Max
		for _, income := range []decimal.Decimal{decimal.Zero, d("1"), limit.Div(decimal.NewFromInt(2)), limit} {
			assert.True(t, BracketTax(income, schedule).IsZero(), "%s at %s", j, income)
		}
	}
	assert.True(t, BracketTax(d("-500"), tc.Federal).IsZero())
}

func TestBracketTax_Monotonic(t *testing.T) {
	tc := NewTaxCalculator2024()
	schedules := map[string][]TaxBracket{"federal": tc.Federal}
	for j, s := range tc.Provincial {
		schedules[string(j)] = s
	}

	for name, schedule := range schedules {
		t.Run(name, func(t *testing.T) {
			prev := decimal.Zero
			for income := int64(0); income <= 1_200_000; income += 2_500 {
				tax := BracketTax(decimal.NewFromInt(income), schedule)
				assert.True(t, tax.GreaterThanOrEqual(prev), "tax decreased at %d", income)
				prev = tax
			}
		})
	}
}

func TestValidateSchedule(t *testing.T) {
	tc := NewTaxCalculator2024()
	require.NoError(t, ValidateSchedule(tc.Federal))
	for j, s := range tc.Provincial {
		assert.NoError(t, ValidateSchedule(s), "%s", j)
	}

	tests := []struct {
		name     string
		schedule []TaxBracket
		errMsg   string
	}{
		{"empty", nil, "no brackets"},
		{"non-zero start", []TaxBracket{bracket(100, 0, "0.1")}, "want 0"},
		{"gap", []TaxBracket{bracket(0, 100, "0"), bracket(200, 0, "0.1")}, "gap"},
		{"bounded top", []TaxBracket{bracket(0, 100, "0"), bracket(100, 200, "0.1")}, "unbounded"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSchedule(tt.schedule)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestDependentBenefit(t *testing.T) {
	tc := NewTaxCalculator2024()
	tests := []struct {
		dependents int
		expected   string
	}{
		{-1, "0"},
		{0, "0"},
		{1, "2616"},
		{2, "5232"},
		{3, "7848"},
		{4, "8375"},
		{10, "8375"},
	}
	prev := decimal.Zero
	for _, tt := range tests {
		got := tc.DependentBenefit(tt.dependents)
		assert.True(t, got.Equal(d(tt.expected)), "%d dependents: got %s", tt.dependents, got)
		assert.True(t, got.GreaterThanOrEqual(prev))
		assert.True(t, got.LessThanOrEqual(d("8375")))
		prev = got
	}
}

func TestDependentsReduceTaxableIncome(t *testing.T) {
	tc := NewTaxCalculator2024()
	without := tc.FederalTax(d("50000"), 0)
	with := tc.FederalTax(d("50000"), 1)
	// 2616 of income removed from the 15% band
	assert.True(t, without.Sub(with).Equal(d("392.4")), "got %s", without.Sub(with))
}

func TestCPPContributions(t *testing.T) {
	tc := NewTaxCalculator2024()
	tests := []struct {
		name   string
		income string
		cpp    string
		cpp2   string
	}{
		{"below exemption", "3000", "0", "0"},
		{"mid range", "40000", "2171.75", "0"},
		{"at maximum", "68500", "3867.5", "0"},
		{"within cpp2 band", "70000", "3867.5", "60"},
		{"above cpp2 ceiling", "80000", "3867.5", "188"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cpp, cpp2 := tc.CPPContributions(d(tt.income))
			assert.True(t, cpp.Equal(d(tt.cpp)), "cpp got %s", cpp)
			assert.True(t, cpp2.Equal(d(tt.cpp2)), "cpp2 got %s", cpp2)
		})
	}
}

func TestEIContribution(t *testing.T) {
	tc := NewTaxCalculator2024()
	assert.True(t, tc.EIContribution(decimal.Zero).IsZero())
	assert.True(t, tc.EIContribution(d("50000")).Equal(d("830")))
	assert.True(t, tc.EIContribution(d("80000")).Equal(d("1049.12")))
}

func TestProvincialTax_UnknownJurisdiction(t *testing.T) {
	tc := NewTaxCalculator2024()
	_, err := tc.ProvincialTax(d("50000"), domain.Jurisdiction("ontario"), 0)
	require.Error(t, err)

	var uj *domain.UnknownJurisdictionError
	assert.True(t, errors.As(err, &uj))
	assert.Equal(t, "ontario", uj.Value)
	assert.ErrorIs(t, err, domain.ErrUnknownJurisdiction)
}
