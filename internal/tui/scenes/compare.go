package scenes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/actuclaim/actuclaim/internal/compare"
	"github.com/actuclaim/actuclaim/internal/tui/components"
	"github.com/actuclaim/actuclaim/internal/tui/tuistyles"
	"github.com/actuclaim/actuclaim/pkg/money"
)

// CompareModel shows the current case under every jurisdiction
type CompareModel struct {
	set       *compare.ComparisonSet
	cursor    int
	comparing bool
	width     int
	height    int
}

// NewCompareModel creates an empty compare scene
func NewCompareModel() *CompareModel {
	return &CompareModel{}
}

// SetComparing marks a comparison as running
func (m *CompareModel) SetComparing(comparing bool) {
	m.comparing = comparing
}

// SetComparison stores a finished comparison
func (m *CompareModel) SetComparison(set *compare.ComparisonSet) {
	m.set = set
	m.cursor = 0
	m.comparing = false
}

// Comparison returns the stored comparison
func (m *CompareModel) Comparison() *compare.ComparisonSet {
	return m.set
}

// Cursor returns the index of the selected card, base first
func (m *CompareModel) Cursor() int {
	return m.cursor
}

// SetSize updates the model dimensions
func (m *CompareModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *CompareModel) results() []*compare.ComparisonResult {
	if m.set == nil || m.set.BaseResult == nil {
		return nil
	}
	out := []*compare.ComparisonResult{m.set.BaseResult}
	for i := range m.set.AlternativeResults {
		out = append(out, &m.set.AlternativeResults[i])
	}
	return out
}

// Update handles messages for the compare scene
func (m *CompareModel) Update(msg tea.Msg) (*CompareModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	n := len(m.results())
	switch {
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("up", "k", "left"))):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("down", "j", "right"))):
		if m.cursor < n-1 {
			m.cursor++
		}
	}
	return m, nil
}

// View renders the compare scene
func (m *CompareModel) View() string {
	title := tuistyles.TitleStyle.Render("Jurisdiction Comparison")
	if m.comparing {
		return lipgloss.JoinVertical(lipgloss.Left, title, "", components.NewSpinner("Comparing jurisdictions...").Render())
	}
	results := m.results()
	if len(results) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, title, "",
			"No comparison yet.\n\nCalculate a case first, then press c.")
	}

	cards := make([]*components.JurisdictionCard, len(results))
	for i, r := range results {
		card := components.NewJurisdictionCard(r.Jurisdiction.DisplayName(), money.Format(r.TotalDamages)).
			MarkBase(i == 0).
			SetSelected(i == m.cursor).
			AddHighlight("Net pay %s", money.Format(r.NetPay)).
			AddHighlight("PJI %s", money.Format(r.PJITotal)).
			AddHighlight("Future loss %s", money.Format(r.PresentValue))
		if i > 0 {
			card.AddHighlight("vs base %s (%s%%)", signed(r.TotalDiffFromBase), r.TotalPctFromBase.StringFixed(2))
		}
		if r.FallbackRateUsed {
			card.AddHighlight("default PJI rate used")
		}
		cards[i] = card
	}

	parts := []string{
		title,
		tuistyles.SubtitleStyle.Render(fmt.Sprintf("%s • base %s", m.set.ClientName, m.set.BaseJurisdiction.DisplayName())),
		"",
		components.JurisdictionGrid(cards),
	}
	if len(m.set.Recommendations) > 0 {
		var b strings.Builder
		b.WriteString(tuistyles.TableHeaderStyle.Render("Observations"))
		for _, rec := range m.set.Recommendations {
			b.WriteString("\n• ")
			b.WriteString(rec)
		}
		parts = append(parts, "", b.String())
	}
	parts = append(parts, "", renderHelpLine([][2]string{{"↑/↓", "select"}, {"r", "results"}, {"f", "form"}}))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func signed(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-" + money.Format(d.Abs())
	}
	return "+" + money.Format(d)
}
