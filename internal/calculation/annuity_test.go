package calculation

import (
	"math"
	"testing"

	"github.com/actuclaim/actuclaim/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresentValue_ZeroRateIsLinear(t *testing.T) {
	tests := []struct {
		annual string
		years  float64
	}{
		{"0", 10},
		{"50000", 0},
		{"50000", 1},
		{"42000", 2.5},
		{"61234.56", 20},
	}
	for _, tt := range tests {
		pv, _ := PresentValue(d(tt.annual), tt.years, decimal.Zero)
		expected := d(tt.annual).Mul(decimal.NewFromFloat(tt.years)).Round(2)
		assert.True(t, pv.Equal(expected), "%s × %v: got %s", tt.annual, tt.years, pv)
	}
}

func TestPresentValue_DiscountingReducesValue(t *testing.T) {
	for _, rate := range []string{"0.01", "0.025", "0.035", "0.08"} {
		for _, years := range []float64{0.5, 1, 7.25, 20} {
			pv, _ := PresentValue(d("50000"), years, d(rate))
			undiscounted := 50000 * years
			assert.Less(t, pv.InexactFloat64(), undiscounted, "rate %s years %v", rate, years)
		}
	}
}

func TestPresentValue_AnnuityFormula(t *testing.T) {
	pv, months := PresentValue(d("50000"), 20, d("0.035"))

	expected := 50000 * (1 - math.Pow(1.035, -20)) / 0.035
	assert.InDelta(t, expected, pv.InexactFloat64(), 0.01)
	assert.Equal(t, 240, months)
}

func TestPresentValue_TotalMonthsFloors(t *testing.T) {
	_, months := PresentValue(d("1000"), 1.99, d("0.025"))
	assert.Equal(t, 23, months)

	_, months = PresentValue(d("1000"), 0, d("0.025"))
	assert.Equal(t, 0, months)
}

func TestPresentValue_UnusableRateIsLinear(t *testing.T) {
	for _, rate := range []string{"-1", "-1.5", "1e400"} {
		t.Run(rate, func(t *testing.T) {
			var pv decimal.Decimal
			require.NotPanics(t, func() { pv, _ = PresentValue(d("50000"), 2.5, d(rate)) })
			assert.True(t, pv.Equal(d("125000")), "got %s", pv)
		})
	}
}

func TestDefaultDiscountRateFor(t *testing.T) {
	assert.True(t, DefaultDiscountRateFor(domain.NovaScotia).Equal(d("0.035")))
	assert.True(t, DefaultDiscountRateFor(domain.Newfoundland).Equal(d("0.025")))
	assert.True(t, DefaultDiscountRateFor(domain.NewBrunswick).Equal(d("0.025")))
	assert.True(t, DefaultDiscountRateFor(domain.PrinceEdwardIsland).Equal(d("0.025")))
}

func TestFutureLostWages(t *testing.T) {
	r := FutureLostWages(d("48000.004"), 2, d("0.025"), d("6000"))

	assert.True(t, r.Requested)
	assert.True(t, r.AnnualNetLoss.Equal(d("48000")))
	assert.True(t, r.MonthlyNetLoss.Equal(d("4000")))
	assert.True(t, r.ImpliedFutureCollateralBenefits.Equal(d("12000")))
	assert.Equal(t, 24, r.TotalMonths)
	assert.InDelta(t, 48000*(1-math.Pow(1.025, -2))/0.025, r.PresentValue.InexactFloat64(), 0.01)
}
