package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/actuclaim/actuclaim/internal/config"
	"github.com/actuclaim/actuclaim/internal/domain"
	"github.com/actuclaim/actuclaim/internal/tui/tuimsg"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.formModel.SetSize(msg.Width, msg.Height)
		m.resultsModel.SetSize(msg.Width, msg.Height)
		m.sensitivityModel.SetSize(msg.Width, msg.Height)
		m.compareModel.SetSize(msg.Width, msg.Height)
		return m, nil

	case NavigateMsg:
		return m.navigate(msg.Scene)

	case QuitMsg:
		return m, tea.Quit

	case tuimsg.ErrorMsg:
		m.loading = false
		m.err = msg.Err
		return m, nil

	case tuimsg.CaseLoadedMsg:
		m.formModel.SetInput(*msg.Input)
		if err := config.NewInputParser().ValidateCase(msg.Input); err != nil {
			// Leave the partial case on the form for the user to complete.
			return m, nil
		}
		return m.startCalculation(*msg.Input)

	case tuimsg.CalculationRequestedMsg:
		return m.startCalculation(msg.Input)

	case tuimsg.CalculationCompleteMsg:
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.current = msg.Case
		m.comparisonStale = true
		m.resultsModel.SetCase(msg.Case)
		m.sensitivityModel.SetCase(msg.Case)
		m.sensitivityRate = msg.Case.FutureWages.DiscountRate.Mul(decimal.NewFromInt(100)).InexactFloat64()
		return m.navigate(SceneResults)

	case tuimsg.ComparisonCompleteMsg:
		m.compareModel.SetComparing(false)
		if msg.Err != nil {
			m.comparisonStale = true
			m.err = msg.Err
			return m, nil
		}
		m.comparisonStale = false
		m.compareModel.SetComparison(msg.Set)
		return m, nil

	case tuimsg.DiscountRateChangedMsg:
		m.sensitivityRate = msg.RatePercent
		return m, nil

	case tuimsg.ExportRequestedMsg:
		if m.current == nil {
			return m, nil
		}
		return m, exportCmd(m.current, msg.Format, m.reportDir)

	case tuimsg.ReportSavedMsg:
		m.resultsModel, _ = m.resultsModel.Update(msg)
		return m, nil

	case TickMsg:
		if !m.loading {
			return m, nil
		}
		m.spinner.Next()
		return m, tickCmd()
	}

	return m.updateCurrentScene(msg)
}

func (m Model) startCalculation(in domain.CaseInput) (tea.Model, tea.Cmd) {
	m.lastInput = &in
	m.loading = true
	m.loadingMessage = "Calculating damages..."
	m.err = nil
	return m, tea.Batch(calculateCmd(m.engine, in), tickCmd())
}

// navigate switches scenes, starting a comparison when the compare scene
// is opened for a case it has not seen.
func (m Model) navigate(scene Scene) (tea.Model, tea.Cmd) {
	if scene != m.currentScene {
		m.previousScene = m.currentScene
		m.currentScene = scene
	}
	if scene == SceneCompare && m.comparisonStale && m.lastInput != nil {
		m.comparisonStale = false
		m.compareModel.SetComparing(true)
		return m, compareCmd(m.comparer, *m.lastInput, m.casePath)
	}
	return m, nil
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// Any key dismisses an error.
	if m.err != nil {
		m.err = nil
		return m, nil
	}
	if m.loading {
		return m, nil
	}

	// The form takes every printable key, so only esc leaves it.
	if m.currentScene == SceneForm {
		if msg.String() == "esc" && m.current != nil {
			return m.navigate(SceneResults)
		}
		return m.updateCurrentScene(msg)
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "?":
		return m.navigate(SceneHelp)
	case "f":
		return m.navigate(SceneForm)
	case "r":
		return m.navigate(SceneResults)
	case "s":
		return m.navigate(SceneSensitivity)
	case "c":
		return m.navigate(SceneCompare)
	case "esc":
		back := m.previousScene
		if back == m.currentScene {
			back = SceneForm
		}
		return m.navigate(back)
	}

	return m.updateCurrentScene(msg)
}

// updateCurrentScene delegates updates to the current scene's model
func (m Model) updateCurrentScene(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.currentScene {
	case SceneForm:
		m.formModel, cmd = m.formModel.Update(msg)
	case SceneResults:
		m.resultsModel, cmd = m.resultsModel.Update(msg)
	case SceneSensitivity:
		m.sensitivityModel, cmd = m.sensitivityModel.Update(msg)
	case SceneCompare:
		m.compareModel, cmd = m.compareModel.Update(msg)
	}
	return m, cmd
}
