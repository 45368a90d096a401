package scenes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/actuclaim/actuclaim/internal/calculation"
	"github.com/actuclaim/actuclaim/internal/domain"
	"github.com/actuclaim/actuclaim/internal/tui/components"
	"github.com/actuclaim/actuclaim/internal/tui/tuimsg"
	"github.com/actuclaim/actuclaim/internal/tui/tuistyles"
)

var (
	hundred = decimal.NewFromInt(100)

	sliderMin  = decimal.Zero
	sliderMax  = decimal.NewFromInt(8)
	sliderStep = decimal.RequireFromString("0.25")
)

// SensitivityModel re-discounts the future loss of a computed case as the
// discount-rate slider moves. Past loss and PJI do not depend on the rate.
type SensitivityModel struct {
	c      *domain.DamagesCase
	slider *components.RateSlider

	presentValue decimal.Decimal
	totalDamages decimal.Decimal

	width  int
	height int
}

// NewSensitivityModel creates an empty sensitivity scene
func NewSensitivityModel() *SensitivityModel {
	return &SensitivityModel{}
}

// SetCase resets the slider to the case's own discount rate
func (m *SensitivityModel) SetCase(c *domain.DamagesCase) {
	m.c = c
	if c == nil {
		m.slider = nil
		return
	}
	base := c.FutureWages.DiscountRate.Mul(hundred)
	m.slider = components.NewRateSlider("Discount Rate", base, sliderMin, sliderMax, sliderStep).
		WithDescription("Annual rate used to discount future wage loss").
		SetFocused(true)
	m.recalculate()
}

// RatePercent returns the slider position as a percentage
func (m *SensitivityModel) RatePercent() decimal.Decimal {
	if m.slider == nil {
		return decimal.Zero
	}
	return m.slider.Value
}

// PresentValue returns the future loss at the current slider rate
func (m *SensitivityModel) PresentValue() decimal.Decimal {
	return m.presentValue
}

// TotalDamages returns the case total at the current slider rate
func (m *SensitivityModel) TotalDamages() decimal.Decimal {
	return m.totalDamages
}

// SetSize updates the scene dimensions
func (m *SensitivityModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages for the sensitivity scene
func (m *SensitivityModel) Update(msg tea.Msg) (*SensitivityModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || m.slider == nil || !m.c.FutureWages.Requested {
		return m, nil
	}

	changed := false
	switch {
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("right", "l", "+"))):
		changed = m.slider.Increment()
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("left", "h", "-"))):
		changed = m.slider.Decrement()
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("0"))):
		before := m.slider.Value
		m.slider.SetValue(m.c.FutureWages.DiscountRate.Mul(hundred))
		changed = !before.Equal(m.slider.Value)
	}
	if !changed {
		return m, nil
	}

	m.recalculate()
	rate := m.slider.Value.InexactFloat64()
	return m, func() tea.Msg {
		return tuimsg.DiscountRateChangedMsg{RatePercent: rate}
	}
}

func (m *SensitivityModel) recalculate() {
	m.presentValue, m.totalDamages = m.valueAt(m.slider.Fraction())
}

// valueAt returns the present value and case total at a fractional rate.
func (m *SensitivityModel) valueAt(rate decimal.Decimal) (decimal.Decimal, decimal.Decimal) {
	fw := m.c.FutureWages
	if !fw.Requested {
		return decimal.Zero, m.c.TotalDamages
	}
	pv, _ := calculation.PresentValue(fw.AnnualNetLoss, fw.TimeHorizonYears, rate)
	return pv, m.c.TotalDamages.Sub(fw.PresentValue).Add(pv)
}

// View renders the sensitivity scene
func (m *SensitivityModel) View() string {
	if m.c == nil {
		return "No case to analyse.\n\nCalculate a case on the form first."
	}

	header := lipgloss.JoinVertical(lipgloss.Left,
		tuistyles.TitleStyle.Render("Discount Rate Sensitivity"),
		tuistyles.SubtitleStyle.Render(m.c.Jurisdiction.DisplayName()),
	)
	if !m.c.FutureWages.Requested {
		return lipgloss.JoinVertical(lipgloss.Left, header, "",
			tuistyles.InfoStyle.Render("Future wage loss was not claimed for this case; the total does not depend on the discount rate."))
	}

	fw := m.c.FutureWages
	cards := components.MetricGrid([]*components.MetricCard{
		components.NewAmountCard("Future Wage Loss", m.presentValue).
			WithDelta(m.presentValue.Sub(fw.PresentValue)),
		components.NewAmountCard("Total Economic Damages", m.totalDamages).
			WithDelta(m.totalDamages.Sub(m.c.TotalDamages)),
		components.NewMetricCard("Time Horizon", fmt.Sprintf("%.2f years", fw.TimeHorizonYears)).
			WithDescription(fmt.Sprintf("%d months", fw.TotalMonths)),
	}, 3)

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		m.slider.Render(),
		"",
		cards,
		"",
		m.renderChart(),
		"",
		renderHelpLine([][2]string{{"←/→", "adjust rate"}, {"0", "reset"}, {"r", "results"}, {"f", "form"}}),
	)
}

// renderChart plots the case total across the slider range in whole-percent steps.
func (m *SensitivityModel) renderChart() string {
	var (
		points []float64
		labels []string
		marker = -1
	)
	for r := sliderMin; r.LessThanOrEqual(sliderMax); r = r.Add(decimal.NewFromInt(1)) {
		_, total := m.valueAt(r.Div(hundred))
		points = append(points, total.InexactFloat64())
		labels = append(labels, r.String()+"%")
		if r.Equal(m.slider.Value.Round(0)) {
			marker = len(points) - 1
		}
	}
	width := 60
	if m.width > 20 && m.width-4 < width {
		width = m.width - 4
	}
	return components.NewSweepChart("Total Damages by Discount Rate").
		WithPoints(points, labels).
		WithMarker(marker).
		WithSize(width, 8).
		Render() + "\n" + strings.Repeat(" ", 13) +
		tuistyles.SubtitleStyle.Render("◆ nearest whole rate")
}
