package scenes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/actuclaim/actuclaim/internal/config"
	"github.com/actuclaim/actuclaim/internal/domain"
	"github.com/actuclaim/actuclaim/internal/tui/components"
	"github.com/actuclaim/actuclaim/internal/tui/tuimsg"
	"github.com/actuclaim/actuclaim/internal/tui/tuistyles"
)

// formField binds one text input to a CaseInput field.
type formField struct {
	label       string
	placeholder string
	group       string
	field       func(in *domain.CaseInput) *string
}

var caseFields = []formField{
	{"Client Name", "Jane Doe", "Case", func(in *domain.CaseInput) *string { return &in.ClientName }},
	{"Province", "Nova Scotia", "Case", func(in *domain.CaseInput) *string { return &in.Province }},
	{"Employment Type", "salary or hourly", "Income", func(in *domain.CaseInput) *string { return &in.EmploymentType }},
	{"Annual Salary", "65000", "Income", func(in *domain.CaseInput) *string { return &in.Salary }},
	{"Hourly Rate", "28.50", "Income", func(in *domain.CaseInput) *string { return &in.HourlyRate }},
	{"Hours per Week", "40", "Income", func(in *domain.CaseInput) *string { return &in.HoursPerWeek }},
	{"Hours per Day", "8", "Income", func(in *domain.CaseInput) *string { return &in.HoursPerDay }},
	{"Working Days", "260", "Income", func(in *domain.CaseInput) *string { return &in.WorkingDays }},
	{"Include Vacation Pay", "yes or no", "Income", func(in *domain.CaseInput) *string { return &in.IncludeVacationPay }},
	{"Dependents", "0", "Income", func(in *domain.CaseInput) *string { return &in.Dependents }},
	{"EI Benefits to Date", "0", "Benefits Received", func(in *domain.CaseInput) *string { return &in.EIBenefitsToDate }},
	{"Section B to Date", "0", "Benefits Received", func(in *domain.CaseInput) *string { return &in.SectionBToDate }},
	{"LTD Benefits to Date", "0", "Benefits Received", func(in *domain.CaseInput) *string { return &in.LTDBenefitsToDate }},
	{"CPP-D Benefits to Date", "0", "Benefits Received", func(in *domain.CaseInput) *string { return &in.CPPDBenefitsToDate }},
	{"Other Benefits to Date", "0", "Benefits Received", func(in *domain.CaseInput) *string { return &in.OtherBenefitsToDate }},
	{"EI Benefits (annual)", "0", "Annual Benefits", func(in *domain.CaseInput) *string { return &in.EIBenefitsAnnual }},
	{"Section B (annual)", "0", "Annual Benefits", func(in *domain.CaseInput) *string { return &in.SectionBAnnual }},
	{"LTD Benefits (annual)", "0", "Annual Benefits", func(in *domain.CaseInput) *string { return &in.LTDBenefitsAnnual }},
	{"CPP-D Benefits (annual)", "0", "Annual Benefits", func(in *domain.CaseInput) *string { return &in.CPPDBenefitsAnnual }},
	{"Other Benefits (annual)", "0", "Annual Benefits", func(in *domain.CaseInput) *string { return &in.OtherBenefitsAnnual }},
	{"EI Start Date", "YYYY-MM-DD", "Annual Benefits", func(in *domain.CaseInput) *string { return &in.EIStartDate }},
	{"Loss Date", "YYYY-MM-DD", "Loss", func(in *domain.CaseInput) *string { return &in.LossDate }},
	{"Missed Time", "90", "Loss", func(in *domain.CaseInput) *string { return &in.MissedTime }},
	{"Missed Time Unit", "days, hours, weeks, months", "Loss", func(in *domain.CaseInput) *string { return &in.MissedTimeUnit }},
	{"PJI Rate (%)", "blank for T-bill average", "Loss", func(in *domain.CaseInput) *string { return &in.PJIRate }},
	{"Calculate Future Loss", "yes or no", "Future Loss", func(in *domain.CaseInput) *string { return &in.CalculateFuture }},
	{"Return Status", "returning to work or total disability", "Future Loss", func(in *domain.CaseInput) *string { return &in.ReturnStatus }},
	{"Future Start Date", "YYYY-MM-DD", "Future Loss", func(in *domain.CaseInput) *string { return &in.StartDate }},
	{"Return to Work Date", "YYYY-MM-DD", "Future Loss", func(in *domain.CaseInput) *string { return &in.EndDate }},
	{"Date of Birth", "YYYY-MM-DD", "Future Loss", func(in *domain.CaseInput) *string { return &in.BirthDate }},
	{"Retirement Age", "65", "Future Loss", func(in *domain.CaseInput) *string { return &in.RetirementAge }},
	{"Discount Rate (%)", "province default", "Future Loss", func(in *domain.CaseInput) *string { return &in.DiscountRate }},
}

// visibleFields is how many inputs are shown at once.
const visibleFields = 12

// FormModel is the case-entry scene
type FormModel struct {
	inputs   []textinput.Model
	focused  int
	offset   int
	parser   *config.InputParser
	err      error
	warnings []string
	width    int
	height   int
}

// NewFormModel creates an empty form with the first field focused
func NewFormModel() *FormModel {
	inputs := make([]textinput.Model, len(caseFields))
	for i, f := range caseFields {
		ti := textinput.New()
		ti.Placeholder = f.placeholder
		ti.CharLimit = 64
		ti.Width = 36
		ti.Prompt = ""
		inputs[i] = ti
	}
	inputs[0].Focus()

	return &FormModel{
		inputs: inputs,
		parser: config.NewInputParser(),
	}
}

// SetInput fills the form from a case
func (m *FormModel) SetInput(in domain.CaseInput) {
	for i, f := range caseFields {
		m.inputs[i].SetValue(*f.field(&in))
	}
	m.err = nil
	m.warnings = m.parser.CaseWarnings(&in)
}

// Input collects the form into a case
func (m *FormModel) Input() domain.CaseInput {
	var in domain.CaseInput
	for i, f := range caseFields {
		*f.field(&in) = strings.TrimSpace(m.inputs[i].Value())
	}
	return in
}

// Focused returns the index of the focused field
func (m *FormModel) Focused() int {
	return m.focused
}

// Err returns the last validation error
func (m *FormModel) Err() error {
	return m.err
}

// SetSize updates the scene dimensions
func (m *FormModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages for the form scene
func (m *FormModel) Update(msg tea.Msg) (*FormModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("tab", "down", "enter"))):
		return m, m.setFocus(m.focused + 1)

	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("shift+tab", "up"))):
		return m, m.setFocus(m.focused - 1)

	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("ctrl+s"))):
		return m, m.submit()
	}

	var cmd tea.Cmd
	m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
	return m, cmd
}

// submit validates the form and asks the root model to calculate it.
func (m *FormModel) submit() tea.Cmd {
	in := m.Input()
	if err := m.parser.ValidateCase(&in); err != nil {
		m.err = err
		return nil
	}
	m.err = nil
	m.warnings = m.parser.CaseWarnings(&in)
	return func() tea.Msg {
		return tuimsg.CalculationRequestedMsg{Input: in}
	}
}

// setFocus moves focus, wrapping at both ends, and scrolls the window.
func (m *FormModel) setFocus(i int) tea.Cmd {
	n := len(m.inputs)
	i = (i%n + n) % n

	m.inputs[m.focused].Blur()
	m.focused = i

	if m.focused < m.offset {
		m.offset = m.focused
	}
	if m.focused >= m.offset+visibleFields {
		m.offset = m.focused - visibleFields + 1
	}
	return m.inputs[m.focused].Focus()
}

// requiredProgress counts the fields a meaningful calculation needs.
func (m *FormModel) requiredProgress() (done, total int) {
	in := m.Input()
	income := in.Salary
	if strings.EqualFold(in.EmploymentType, "hourly") {
		income = in.HourlyRate
	}
	for _, v := range []string{in.Province, income, in.LossDate, in.MissedTime} {
		total++
		if v != "" {
			done++
		}
	}
	return done, total
}

// View renders the form scene
func (m *FormModel) View() string {
	var b strings.Builder

	b.WriteString(tuistyles.TitleStyle.Render("Case Details"))
	b.WriteString("\n")
	done, total := m.requiredProgress()
	b.WriteString(components.NewCompletionBar(done, total).WithLabel("Required").Render())
	b.WriteString("\n\n")

	end := m.offset + visibleFields
	if end > len(m.inputs) {
		end = len(m.inputs)
	}

	group := ""
	for i := m.offset; i < end; i++ {
		f := caseFields[i]
		if f.group != group {
			group = f.group
			b.WriteString(tuistyles.SubtitleStyle.Render(group))
			b.WriteString("\n")
		}

		labelStyle := tuistyles.UnselectedItemStyle
		prefix := "  "
		if i == m.focused {
			labelStyle = tuistyles.SelectedItemStyle
			prefix = "▸ "
		}
		label := lipgloss.NewStyle().Width(26).Render(labelStyle.Render(prefix + f.label))
		b.WriteString(label)
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n")
	}

	if m.offset > 0 || end < len(m.inputs) {
		b.WriteString(tuistyles.SubtitleStyle.Render(fmt.Sprintf("  field %d of %d", m.focused+1, len(m.inputs))))
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(tuistyles.ColorDanger).Render("✗ " + m.err.Error()))
	}
	for _, w := range m.warnings {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(tuistyles.ColorAccent).Render("! " + w))
	}

	b.WriteString("\n\n")
	b.WriteString(renderHelpLine([][2]string{
		{"tab/↓", "next"}, {"shift+tab/↑", "previous"}, {"ctrl+s", "calculate"}, {"esc", "results"},
	}))
	return b.String()
}
