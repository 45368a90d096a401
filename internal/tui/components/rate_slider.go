package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/actuclaim/actuclaim/internal/tui/tuistyles"
)

// RateSlider adjusts a percentage in fixed decimal steps so repeated moves never drift.
type RateSlider struct {
	Label       string
	Value       decimal.Decimal
	Min         decimal.Decimal
	Max         decimal.Decimal
	Step        decimal.Decimal
	Width       int
	IsFocused   bool
	Description string
}

// NewRateSlider creates a slider over [min, max] percent. The value is clamped.
func NewRateSlider(label string, value, min, max, step decimal.Decimal) *RateSlider {
	s := &RateSlider{
		Label: label,
		Min:   min,
		Max:   max,
		Step:  step,
		Width: 40,
	}
	s.SetValue(value)
	return s
}

// WithWidth sets the bar width
func (s *RateSlider) WithWidth(width int) *RateSlider {
	s.Width = width
	return s
}

// WithDescription adds help text under the bar
func (s *RateSlider) WithDescription(desc string) *RateSlider {
	s.Description = desc
	return s
}

// SetFocused sets the focus state
func (s *RateSlider) SetFocused(focused bool) *RateSlider {
	s.IsFocused = focused
	return s
}

// Increment moves up one step, stopping at Max. It reports whether the value changed.
func (s *RateSlider) Increment() bool {
	next := s.Value.Add(s.Step)
	if next.GreaterThan(s.Max) {
		next = s.Max
	}
	changed := !next.Equal(s.Value)
	s.Value = next
	return changed
}

// Decrement moves down one step, stopping at Min. It reports whether the value changed.
func (s *RateSlider) Decrement() bool {
	next := s.Value.Sub(s.Step)
	if next.LessThan(s.Min) {
		next = s.Min
	}
	changed := !next.Equal(s.Value)
	s.Value = next
	return changed
}

// SetValue sets the value, clamping to [Min, Max]
func (s *RateSlider) SetValue(v decimal.Decimal) {
	switch {
	case v.LessThan(s.Min):
		s.Value = s.Min
	case v.GreaterThan(s.Max):
		s.Value = s.Max
	default:
		s.Value = v
	}
}

// Fraction returns the value as a decimal fraction, 3.5 → 0.035.
func (s *RateSlider) Fraction() decimal.Decimal {
	return s.Value.Div(decimal.NewFromInt(100))
}

// Position is the value's place in the range, 0 to 1
func (s *RateSlider) Position() float64 {
	span := s.Max.Sub(s.Min)
	if span.IsZero() {
		return 0
	}
	return s.Value.Sub(s.Min).Div(span).InexactFloat64()
}

// Render returns the labelled slider
func (s *RateSlider) Render() string {
	labelStyle := tuistyles.ParameterLabelStyle
	valueStyle := tuistyles.ParameterValueStyle
	if s.IsFocused {
		labelStyle = labelStyle.Foreground(tuistyles.ColorPrimary)
		valueStyle = valueStyle.Foreground(tuistyles.ColorAccent)
	}

	var b strings.Builder
	b.WriteString(labelStyle.Render(s.Label))
	b.WriteString("\n")
	b.WriteString(valueStyle.Render(s.Value.StringFixed(2) + "%"))
	b.WriteString("\n")
	b.WriteString(s.renderBar())
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).
		Render(s.Min.StringFixed(2) + "%  ─  " + s.Max.StringFixed(2) + "%"))

	if s.Description != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Italic(true).Render(s.Description))
	}
	if s.IsFocused {
		b.WriteString("\n")
		b.WriteString(tuistyles.InfoStyle.Render("← → to adjust"))
	}
	return b.String()
}

func (s *RateSlider) renderBar() string {
	if s.Width < 1 {
		return "[]"
	}
	thumb := int(s.Position()*float64(s.Width-1) + 0.5)
	if thumb < 0 {
		thumb = 0
	}
	if thumb > s.Width-1 {
		thumb = s.Width - 1
	}

	thumbStyle := tuistyles.SliderThumbStyle
	if s.IsFocused {
		thumbStyle = thumbStyle.Foreground(tuistyles.ColorAccent)
	}

	var b strings.Builder
	b.WriteString("[")
	b.WriteString(thumbStyle.Render(strings.Repeat("━", thumb)))
	b.WriteString(thumbStyle.Render("●"))
	b.WriteString(tuistyles.SliderTrackStyle.Render(strings.Repeat("─", s.Width-1-thumb)))
	b.WriteString("]")
	return b.String()
}
