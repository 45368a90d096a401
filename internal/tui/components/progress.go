package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/actuclaim/actuclaim/internal/tui/tuistyles"
)

// CompletionBar shows how many required form fields are filled in
type CompletionBar struct {
	Done  int
	Total int
	Width int
	Label string
}

// NewCompletionBar creates a bar for done out of total
func NewCompletionBar(done, total int) *CompletionBar {
	return &CompletionBar{Done: done, Total: total, Width: 20}
}

// WithLabel sets the label shown before the bar
func (p *CompletionBar) WithLabel(label string) *CompletionBar {
	p.Label = label
	return p
}

// Percentage returns the completion percentage
func (p *CompletionBar) Percentage() float64 {
	if p.Total == 0 {
		return 0
	}
	return float64(p.Done) / float64(p.Total) * 100
}

// IsComplete returns true when every item is done
func (p *CompletionBar) IsComplete() bool {
	return p.Done >= p.Total
}

// Render returns a single-line bar
func (p *CompletionBar) Render() string {
	filled := int(float64(p.Width) * p.Percentage() / 100)
	if filled > p.Width {
		filled = p.Width
	}

	barColor := tuistyles.ColorAccent
	if p.IsComplete() {
		barColor = tuistyles.ColorSuccess
	}

	var b strings.Builder
	if p.Label != "" {
		b.WriteString(tuistyles.MetricLabelStyle.Render(p.Label))
		b.WriteString(" ")
	}
	b.WriteString("[")
	b.WriteString(lipgloss.NewStyle().Foreground(barColor).Render(strings.Repeat("█", filled)))
	b.WriteString(tuistyles.SliderTrackStyle.Render(strings.Repeat("░", p.Width-filled)))
	b.WriteString("] ")
	b.WriteString(tuistyles.MetricLabelStyle.Render(fmt.Sprintf("%d/%d", p.Done, p.Total)))
	return b.String()
}

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner is an animated loading indicator advanced by tick messages
type Spinner struct {
	Frame   int
	Message string
}

// NewSpinner creates a spinner with a message
func NewSpinner(message string) *Spinner {
	return &Spinner{Message: message}
}

// Next advances to the next frame
func (s *Spinner) Next() {
	s.Frame++
}

// Render returns the current frame and message
func (s *Spinner) Render() string {
	frame := spinnerFrames[s.Frame%len(spinnerFrames)]
	out := lipgloss.NewStyle().Foreground(tuistyles.ColorPrimary).Bold(true).Render(frame)
	if s.Message != "" {
		out += " " + lipgloss.NewStyle().Foreground(tuistyles.ColorForeground).Render(s.Message)
	}
	return out
}
