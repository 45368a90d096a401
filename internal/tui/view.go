package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the current state of the application
func (m Model) View() string {
	if m.loading {
		return m.renderApp(BorderStyle.Render(m.spinner.Render() + " " + m.loadingMessage))
	}
	if m.err != nil {
		return m.renderApp(ErrorStyle.Render(
			fmt.Sprintf("Error: %s\n\nPress any key to continue...", m.err.Error())))
	}

	var content string
	switch m.currentScene {
	case SceneForm:
		content = m.formModel.View()
	case SceneResults:
		content = m.resultsModel.View()
	case SceneSensitivity:
		content = m.sensitivityModel.View()
	case SceneCompare:
		content = m.compareModel.View()
	case SceneHelp:
		content = renderHelp()
	default:
		content = "Unknown scene"
	}
	return m.renderApp(content)
}

// renderApp wraps content with title bar and status bar
func (m Model) renderApp(content string) string {
	contentHeight := m.height - 4
	if contentHeight < 1 {
		contentHeight = 1
	}
	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderTitleBar(),
		lipgloss.NewStyle().Height(contentHeight).Render(content),
		m.renderStatusBar(),
	)
}

func (m Model) renderTitleBar() string {
	title := TitleStyle.Render("ActuClaim - Economic Damages")

	crumb := m.currentScene.String()
	if m.current != nil {
		crumb += " / " + m.current.Jurisdiction.DisplayName()
		if m.currentScene == SceneSensitivity && m.current.FutureWages.Requested {
			crumb += fmt.Sprintf(" / %.2f%%", m.sensitivityRate)
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, SubtitleStyle.Render(crumb))
}

func (m Model) renderStatusBar() string {
	var shortcuts []string
	if m.currentScene == SceneForm {
		shortcuts = []string{formatShortcut("ctrl+s", "calculate")}
		if m.current != nil {
			shortcuts = append(shortcuts, formatShortcut("esc", "results"))
		}
		shortcuts = append(shortcuts, formatShortcut("ctrl+c", "quit"))
	} else {
		shortcuts = []string{
			formatShortcut("f", "form"),
			formatShortcut("r", "results"),
			formatShortcut("s", "sensitivity"),
			formatShortcut("c", "compare"),
			formatShortcut("?", "help"),
			formatShortcut("q", "quit"),
		}
	}

	status := strings.Join(shortcuts, " • ")
	if m.casePath != "" {
		name := SubtitleStyle.Render(m.casePath)
		gap := m.width - lipgloss.Width(status) - lipgloss.Width(name) - 2
		if gap > 0 {
			status += strings.Repeat(" ", gap) + name
		}
	}
	return StatusBarStyle.Width(m.width).Render(status)
}

func formatShortcut(key, desc string) string {
	return StatusKeyStyle.Render(key) + " " + desc
}

var helpKeys = [][2]string{
	{"ctrl+s", "Calculate the case on the form"},
	{"tab / ↓", "Next form field"},
	{"shift+tab / ↑", "Previous form field"},
	{"esc", "Leave the form, or go back"},
	{"f", "Case form"},
	{"r", "Results"},
	{"← / →", "Results: previous / next section; Sensitivity: adjust the discount rate"},
	{"p / x", "Results: save a PDF / HTML report"},
	{"s", "Discount-rate sensitivity"},
	{"c", "Compare jurisdictions"},
	{"?", "This help"},
	{"q / ctrl+c", "Quit"},
}

func renderHelp() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("Keyboard Shortcuts"))
	b.WriteString("\n\n")
	keyCol := lipgloss.NewStyle().Width(16)
	for _, k := range helpKeys {
		b.WriteString(keyCol.Render(HelpKeyStyle.Render(k[0])))
		b.WriteString(HelpDescStyle.Render(k[1]))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(InfoStyle.Render("Amounts accept $ and thousands separators. Dates accept YYYY-MM-DD or DD/MM/YYYY."))
	return BorderStyle.Render(b.String())
}
