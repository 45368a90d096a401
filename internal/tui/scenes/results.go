package scenes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/actuclaim/actuclaim/internal/domain"
	"github.com/actuclaim/actuclaim/internal/output"
	"github.com/actuclaim/actuclaim/internal/tui/components"
	"github.com/actuclaim/actuclaim/internal/tui/tuimsg"
	"github.com/actuclaim/actuclaim/internal/tui/tuistyles"
)

// ResultsModel shows a computed case as metric cards and labelled report sections
type ResultsModel struct {
	c        *domain.DamagesCase
	sections []output.Section
	section  int
	status   string
	width    int
	height   int
}

// NewResultsModel creates an empty results scene
func NewResultsModel() *ResultsModel {
	return &ResultsModel{}
}

// SetCase replaces the displayed case and rewinds to the first section
func (m *ResultsModel) SetCase(c *domain.DamagesCase) {
	m.c = c
	m.section = 0
	m.status = ""
	m.sections = nil
	if c != nil {
		m.sections = output.Sections(c)
	}
}

// Case returns the displayed case
func (m *ResultsModel) Case() *domain.DamagesCase {
	return m.c
}

// Section returns the index of the section being shown
func (m *ResultsModel) Section() int {
	return m.section
}

// SetSize updates the scene dimensions
func (m *ResultsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages for the results scene
func (m *ResultsModel) Update(msg tea.Msg) (*ResultsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tuimsg.ReportSavedMsg:
		if msg.Err != nil {
			m.status = "Export failed: " + msg.Err.Error()
		} else {
			m.status = "Saved " + msg.Path
		}
		return m, nil

	case tea.KeyMsg:
		if m.c == nil {
			return m, nil
		}
		switch {
		case key.Matches(msg, key.NewBinding(key.WithKeys("right", "l", "tab"))):
			if m.section < len(m.sections)-1 {
				m.section++
			}
		case key.Matches(msg, key.NewBinding(key.WithKeys("left", "h", "shift+tab"))):
			if m.section > 0 {
				m.section--
			}
		case key.Matches(msg, key.NewBinding(key.WithKeys("p"))):
			return m, exportCmd("pdf")
		case key.Matches(msg, key.NewBinding(key.WithKeys("x"))):
			return m, exportCmd("html")
		}
	}
	return m, nil
}

func exportCmd(format string) tea.Cmd {
	return func() tea.Msg {
		return tuimsg.ExportRequestedMsg{Format: format}
	}
}

// View renders the results scene
func (m *ResultsModel) View() string {
	if m.c == nil {
		return "No results to display.\n\nEnter a case on the form and press ctrl+s to calculate."
	}

	parts := []string{
		renderResultsHeader(m.c),
		"",
		renderKeyMetrics(m.c),
		"",
		m.renderSection(),
	}
	if m.status != "" {
		parts = append(parts, "", tuistyles.InfoStyle.Render(m.status))
	}
	parts = append(parts, "", renderHelpLine([][2]string{
		{"←/→", "section"}, {"p", "save PDF"}, {"x", "save HTML"}, {"s", "sensitivity"}, {"c", "compare"}, {"f", "form"},
	}))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func renderResultsHeader(c *domain.DamagesCase) string {
	client := c.ClientName
	if client == "" {
		client = output.NotSpecified
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		tuistyles.TitleStyle.Render("Economic Damages"),
		tuistyles.SubtitleStyle.Render(fmt.Sprintf("%s • %s • %s",
			client, c.Jurisdiction.DisplayName(), c.CalculatedAt.Format("2006-01-02"))),
	)
}

func renderKeyMetrics(c *domain.DamagesCase) string {
	cards := []*components.MetricCard{
		components.NewAmountCard("Net Annual Pay", c.TakeHome.NetPay),
		components.NewAmountCard("Net Past Lost Wages", c.NetPastLostWages),
		components.NewAmountCard("Prejudgment Interest", c.PJI.Interest).
			WithDescription(c.PJI.RatePercent.StringFixed(2) + "% rate"),
	}

	future := components.NewMetricCard("Future Wage Loss", "Not claimed")
	if c.FutureWages.Requested {
		future = components.NewAmountCard("Future Wage Loss", c.FutureWages.PresentValue).
			WithDescription(fmt.Sprintf("%.2f years at %s%%", c.FutureWages.TimeHorizonYears,
				c.FutureWages.DiscountRate.Mul(hundred).StringFixed(2)))
	}
	cards = append(cards, future,
		components.NewAmountCard("Total Economic Damages", c.TotalDamages))

	return components.MetricGrid(cards, 3)
}

func (m *ResultsModel) renderSection() string {
	if len(m.sections) == 0 {
		return ""
	}
	s := m.sections[m.section]

	var b strings.Builder
	b.WriteString(tuistyles.TableHeaderStyle.Render(
		fmt.Sprintf("%s (%d/%d)", s.Title, m.section+1, len(m.sections))))
	b.WriteString("\n")
	labelStyle := lipgloss.NewStyle().Width(34).Foreground(tuistyles.ColorMuted)
	for _, line := range s.Lines {
		b.WriteString(labelStyle.Render(line.Label))
		b.WriteString(tuistyles.TableCellStyle.Render(line.Value))
		b.WriteString("\n")
	}
	if s.Note != "" {
		b.WriteString("\n")
		b.WriteString(tuistyles.InfoStyle.Render(s.Note))
	}
	return tuistyles.BorderStyle.Render(strings.TrimRight(b.String(), "\n"))
}
