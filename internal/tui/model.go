package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/actuclaim/actuclaim/internal/calculation"
	"github.com/actuclaim/actuclaim/internal/compare"
	"github.com/actuclaim/actuclaim/internal/config"
	"github.com/actuclaim/actuclaim/internal/domain"
	"github.com/actuclaim/actuclaim/internal/output"
	"github.com/actuclaim/actuclaim/internal/tui/components"
	"github.com/actuclaim/actuclaim/internal/tui/scenes"
	"github.com/actuclaim/actuclaim/internal/tui/tuimsg"
)

// Model represents the entire application state
type Model struct {
	currentScene  Scene
	previousScene Scene

	width  int
	height int

	casePath  string
	reportDir string

	engine   *calculation.DamagesEngine
	comparer *compare.CompareEngine

	// lastInput is the input behind current; the comparison is stale when it changes.
	lastInput       *domain.CaseInput
	current         *domain.DamagesCase
	comparisonStale bool
	// sensitivityRate is the slider position as a percentage.
	sensitivityRate float64

	formModel        *scenes.FormModel
	resultsModel     *scenes.ResultsModel
	sensitivityModel *scenes.SensitivityModel
	compareModel     *scenes.CompareModel

	spinner        *components.Spinner
	loading        bool
	loadingMessage string

	err error
}

// NewModel creates the application model. casePath may be empty to start
// with a blank form; reports are written to reportDir.
func NewModel(engine *calculation.DamagesEngine, casePath, reportDir string) Model {
	return Model{
		currentScene:     SceneForm,
		casePath:         casePath,
		reportDir:        reportDir,
		engine:           engine,
		comparer:         compare.NewCompareEngine(engine),
		formModel:        scenes.NewFormModel(),
		resultsModel:     scenes.NewResultsModel(),
		sensitivityModel: scenes.NewSensitivityModel(),
		compareModel:     scenes.NewCompareModel(),
		spinner:          components.NewSpinner(""),
		width:            80,
		height:           24,
	}
}

// Init loads the case file when one was given
func (m Model) Init() tea.Cmd {
	if m.casePath == "" {
		return nil
	}
	return loadCaseCmd(m.casePath)
}

// CurrentScene returns the visible scene
func (m Model) CurrentScene() Scene {
	return m.currentScene
}

// Case returns the last computed case
func (m Model) Case() *domain.DamagesCase {
	return m.current
}

// Err returns the error being displayed
func (m Model) Err() error {
	return m.err
}

func loadCaseCmd(path string) tea.Cmd {
	return func() tea.Msg {
		in, err := config.NewInputParser().LoadCaseFile(path)
		if err != nil {
			return tuimsg.ErrorMsg{Err: err}
		}
		return tuimsg.CaseLoadedMsg{Path: path, Input: in}
	}
}

func calculateCmd(engine *calculation.DamagesEngine, in domain.CaseInput) tea.Cmd {
	return func() tea.Msg {
		c, err := engine.Calculate(in)
		return tuimsg.CalculationCompleteMsg{Case: c, Err: err}
	}
}

func compareCmd(ce *compare.CompareEngine, in domain.CaseInput, casePath string) tea.Cmd {
	return func() tea.Msg {
		set, err := ce.Compare(context.Background(), in, compare.CompareOptions{CasePath: casePath})
		return tuimsg.ComparisonCompleteMsg{Set: set, Err: err}
	}
}

func exportCmd(c *domain.DamagesCase, format, dir string) tea.Cmd {
	return func() tea.Msg {
		f, err := output.ResolveFormatter(format)
		if err != nil {
			return tuimsg.ReportSavedMsg{Err: err}
		}
		path, err := output.WriteFormatted(f, c, dir, output.Extension(f))
		if err != nil {
			return tuimsg.ReportSavedMsg{Err: fmt.Errorf("failed to write %s report: %w", format, err)}
		}
		return tuimsg.ReportSavedMsg{Path: path}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(time.Time) tea.Msg {
		return TickMsg{}
	})
}
