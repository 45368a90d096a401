package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/actuclaim/actuclaim/internal/tui/tuistyles"
)

// JurisdictionCard summarises one province's result in a comparison
type JurisdictionCard struct {
	Name       string
	Total      string
	Highlights []string
	IsBase     bool
	IsSelected bool
	Width      int
}

// NewJurisdictionCard creates a card for a province
func NewJurisdictionCard(name, total string) *JurisdictionCard {
	return &JurisdictionCard{Name: name, Total: total, Width: 34}
}

// AddHighlight adds a bullet line
func (c *JurisdictionCard) AddHighlight(format string, args ...any) *JurisdictionCard {
	c.Highlights = append(c.Highlights, fmt.Sprintf(format, args...))
	return c
}

// MarkBase flags the card as the comparison baseline
func (c *JurisdictionCard) MarkBase(base bool) *JurisdictionCard {
	c.IsBase = base
	return c
}

// SetSelected marks the card as selected
func (c *JurisdictionCard) SetSelected(selected bool) *JurisdictionCard {
	c.IsSelected = selected
	return c
}

// Render returns the bordered card
func (c *JurisdictionCard) Render() string {
	var b strings.Builder

	title := c.Name
	if c.IsBase {
		title += " (base)"
	}
	b.WriteString(tuistyles.TitleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(tuistyles.MetricValueStyle.Render(c.Total))

	if len(c.Highlights) > 0 {
		b.WriteString("\n")
		for _, h := range c.Highlights {
			b.WriteString("\n")
			b.WriteString(tuistyles.MetricLabelStyle.Render("• " + h))
		}
	}

	border := tuistyles.ColorBorder
	if c.IsSelected {
		border = tuistyles.ColorPrimary
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Width(c.Width).
		Render(b.String())
}

// JurisdictionGrid lays cards out two per row
func JurisdictionGrid(cards []*JurisdictionCard) string {
	if len(cards) == 0 {
		return tuistyles.InfoStyle.Render("No comparison available")
	}
	var rows []string
	for i := 0; i < len(cards); i += 2 {
		row := []string{cards[i].Render()}
		if i+1 < len(cards) {
			row = append(row, cards[i+1].Render())
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
