package tui

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/actuclaim/actuclaim/internal/calculation"
	"github.com/actuclaim/actuclaim/internal/domain"
	"github.com/actuclaim/actuclaim/internal/tui/tuimsg"
)

const caseYAML = `client_name: "Jane Doe"
province: "Nova Scotia"
employment_type: "salaried"
salary: "80000"
working_days: "252"
loss_date: "2023-06-16"
start_date: "2024-06-15"
missed_time: "30"
missed_time_unit: "days"
pji_rate: "2"
return_status: "Returning to work"
end_date: "2025-06-15"
`

func newTestModel(t *testing.T, casePath string) Model {
	t.Helper()
	engine := calculation.NewDamagesEngine(nil)
	engine.Now = func() time.Time { return time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC) }
	return NewModel(engine, casePath, t.TempDir())
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok)
	return nm, cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// calculatedModel drives a model through load and calculation of caseYAML.
func calculatedModel(t *testing.T) Model {
	t.Helper()
	path := filepath.Join(t.TempDir(), "case.yaml")
	require.NoError(t, os.WriteFile(path, []byte(caseYAML), 0644))

	m := newTestModel(t, path)
	loaded, ok := m.Init()().(tuimsg.CaseLoadedMsg)
	require.True(t, ok)

	m, cmd := update(t, m, loaded)
	require.NotNil(t, cmd)
	assert.True(t, m.loading)

	c, err := m.engine.Calculate(*loaded.Input)
	require.NoError(t, err)
	m, _ = update(t, m, tuimsg.CalculationCompleteMsg{Case: c})
	return m
}

func TestNewModel(t *testing.T) {
	m := newTestModel(t, "")
	assert.Equal(t, SceneForm, m.CurrentScene())
	assert.Nil(t, m.Init(), "no case file means nothing to load")
	assert.Contains(t, m.View(), "ActuClaim")
	assert.Contains(t, m.View(), "Case Details")
}

func TestModel_LoadMissingCase(t *testing.T) {
	m := newTestModel(t, filepath.Join(t.TempDir(), "missing.yaml"))
	msg := m.Init()()
	errMsg, ok := msg.(tuimsg.ErrorMsg)
	require.True(t, ok)

	m, _ = update(t, m, errMsg)
	require.Error(t, m.Err())
	assert.Contains(t, m.View(), "failed to read file")

	m, _ = update(t, m, runes("x"))
	assert.NoError(t, m.Err(), "any key dismisses the error")
}

func TestModel_CalculateFlow(t *testing.T) {
	m := calculatedModel(t)

	assert.False(t, m.loading)
	assert.Equal(t, SceneResults, m.CurrentScene())
	require.NotNil(t, m.Case())
	assert.Equal(t, domain.NovaScotia, m.Case().Jurisdiction)
	assert.InDelta(t, 3.5, m.sensitivityRate, 1e-9)
	assert.Contains(t, m.View(), "Total Economic Damages")
}

func TestModel_CalculationError(t *testing.T) {
	m := newTestModel(t, "")
	m, _ = update(t, m, tuimsg.CalculationCompleteMsg{Err: errors.New("boom")})
	assert.EqualError(t, m.Err(), "boom")
	assert.Nil(t, m.Case())
}

func TestModel_FormKeepsLetters(t *testing.T) {
	m := newTestModel(t, "")
	m, cmd := update(t, m, runes("q"))
	assert.Equal(t, SceneForm, m.CurrentScene())
	if cmd != nil {
		_, quit := cmd().(tea.QuitMsg)
		assert.False(t, quit, "typing q on the form must not quit")
	}
	assert.Equal(t, "q", m.formModel.Input().ClientName)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, SceneForm, m.CurrentScene(), "esc needs a computed case to leave the form")
}

func TestModel_Navigation(t *testing.T) {
	m := calculatedModel(t)

	m, _ = update(t, m, runes("s"))
	assert.Equal(t, SceneSensitivity, m.CurrentScene())

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	require.NotNil(t, cmd)
	m, _ = update(t, m, cmd())
	assert.InDelta(t, 3.75, m.sensitivityRate, 1e-9)
	assert.Contains(t, m.View(), "3.75%")

	m, _ = update(t, m, runes("?"))
	assert.Equal(t, SceneHelp, m.CurrentScene())
	assert.Contains(t, m.View(), "Keyboard Shortcuts")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, SceneSensitivity, m.CurrentScene())

	m, _ = update(t, m, runes("f"))
	assert.Equal(t, SceneForm, m.CurrentScene())
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, SceneResults, m.CurrentScene())

	_, cmd = update(t, m, runes("q"))
	require.NotNil(t, cmd)
	_, quit := cmd().(tea.QuitMsg)
	assert.True(t, quit)
}

func TestModel_Compare(t *testing.T) {
	m := calculatedModel(t)

	m, cmd := update(t, m, runes("c"))
	assert.Equal(t, SceneCompare, m.CurrentScene())
	require.NotNil(t, cmd, "opening compare starts a comparison")
	assert.Contains(t, m.View(), "Comparing jurisdictions")

	done, ok := cmd().(tuimsg.ComparisonCompleteMsg)
	require.True(t, ok)
	require.NoError(t, done.Err)
	m, _ = update(t, m, done)
	assert.Contains(t, m.View(), "Nova Scotia (base)")

	m, _ = update(t, m, runes("r"))
	_, cmd = update(t, m, runes("c"))
	assert.Nil(t, cmd, "an unchanged case is not compared twice")
}

func TestModel_Export(t *testing.T) {
	m := calculatedModel(t)

	_, cmd := update(t, m, runes("x"))
	require.NotNil(t, cmd)
	req, ok := cmd().(tuimsg.ExportRequestedMsg)
	require.True(t, ok)
	assert.Equal(t, "html", req.Format)

	m, cmd = update(t, m, req)
	require.NotNil(t, cmd)
	saved, ok := cmd().(tuimsg.ReportSavedMsg)
	require.True(t, ok)
	require.NoError(t, saved.Err)
	assert.FileExists(t, saved.Path)
	assert.Equal(t, ".html", filepath.Ext(saved.Path))

	m, _ = update(t, m, saved)
	assert.Contains(t, m.View(), "Saved ")
}

func TestModel_WindowSizeAndTick(t *testing.T) {
	m := newTestModel(t, "")
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Equal(t, 120, m.width)
	assert.Equal(t, 40, m.height)

	_, cmd := update(t, m, TickMsg{})
	assert.Nil(t, cmd, "ticks stop when nothing is loading")
}

func TestSceneString(t *testing.T) {
	assert.Equal(t, "Case", SceneForm.String())
	assert.Equal(t, "Sensitivity", SceneSensitivity.String())
	assert.Equal(t, "Unknown", Scene(99).String())
}
