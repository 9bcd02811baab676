package tui

import (
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/quotecalc/internal/calculation"
	"github.com/rgehrsitz/quotecalc/internal/config"
	"github.com/rgehrsitz/quotecalc/internal/domain"
	"github.com/rgehrsitz/quotecalc/internal/ratetable"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	data, err := os.ReadFile("../../testdata/quote_khoe_binh_an.yaml")
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "quote.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	tables, err := ratetable.Default()
	require.NoError(t, err)
	return NewModel(path, config.NewInputParser(tables), calculation.NewCalculationEngine(tables))
}

// step applies msg and runs the returned command once, feeding its message back
func step(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, cmd := m.Update(msg)
	m = next.(Model)
	if cmd != nil {
		if out := cmd(); out != nil {
			next, _ = m.Update(out)
			m = next.(Model)
		}
	}
	return m
}

// press applies msg without running its command; the text input returns cursor blink ticks
func press(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// loaded returns a model that has read and priced the example request
func loaded(t *testing.T) Model {
	t.Helper()
	m := newTestModel(t)
	msg := m.Init()()
	require.IsType(t, RequestLoadedMsg{}, msg)
	m = step(t, m, msg)
	require.NoError(t, m.err)
	require.NotNil(t, m.snapshot)
	return m
}

func TestModel_LoadAndCalculate(t *testing.T) {
	m := loaded(t)
	assert.False(t, m.loading)
	assert.Equal(t, domain.FrequencyAnnual, m.frequency)
	assert.Equal(t, 60, m.targetAge)

	view := m.View()
	assert.Contains(t, view, domain.ProductKhoeBinhAn.DisplayName())
	assert.Contains(t, view, "Total per year")
	assert.Contains(t, view, "target age 60")
}

func TestModel_MissingFile(t *testing.T) {
	tables, err := ratetable.Default()
	require.NoError(t, err)
	m := NewModel("missing.yaml", config.NewInputParser(tables), calculation.NewCalculationEngine(tables))

	m = step(t, m, m.Init()())
	require.Error(t, m.err)
	assert.Contains(t, m.View(), "Error:")
}

func TestModel_SceneNavigation(t *testing.T) {
	m := loaded(t)

	m = step(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, SceneProjection, m.currentScene)
	assert.Contains(t, m.View(), "Illustration: age 35 to 60")

	m = step(t, m, keyRunes("3"))
	assert.Equal(t, SceneFrequency, m.currentScene)
	assert.Contains(t, m.View(), "quarterly")

	m = step(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, SceneQuote, m.currentScene)

	m = step(t, m, NavigateMsg{Scene: SceneProjection})
	assert.Equal(t, SceneProjection, m.currentScene)
}

func TestModel_CycleFrequency(t *testing.T) {
	m := loaded(t)
	annualTotal := m.snapshot.TotalPremium

	m = step(t, m, keyRunes("f"))
	assert.Equal(t, domain.FrequencySemiAnnual, m.frequency)
	require.NotNil(t, m.snapshot.Frequency)
	assert.Equal(t, 2, m.snapshot.Frequency.Periods)
	assert.True(t, m.snapshot.TotalPremium.Equal(annualTotal), "the annual total does not depend on the frequency")

	m = step(t, m, keyRunes("f"))
	assert.Equal(t, domain.FrequencyQuarterly, m.frequency)
	m = step(t, m, keyRunes("f"))
	assert.Equal(t, domain.FrequencyAnnual, m.frequency)
	assert.Nil(t, m.snapshot.Frequency)
}

func TestModel_TargetAgeKeys(t *testing.T) {
	m := loaded(t)

	m = step(t, m, keyRunes("+"))
	assert.Equal(t, 61, m.targetAge)
	m = step(t, m, keyRunes("-"))
	m = step(t, m, keyRunes("-"))
	assert.Equal(t, 59, m.targetAge)
}

func TestModel_EditTargetAge(t *testing.T) {
	m := loaded(t)

	m = press(t, m, keyRunes("t"))
	require.True(t, m.editing)
	assert.Equal(t, "60", m.targetInput.Value())
	assert.Contains(t, m.View(), "Target age:")

	m.targetInput.SetValue("")
	m = press(t, m, keyRunes("5"))
	m = press(t, m, keyRunes("0"))
	require.Equal(t, "50", m.targetInput.Value())
	m = step(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.editing)
	assert.Equal(t, 50, m.targetAge)
	require.NoError(t, m.err)

	m = press(t, m, keyRunes("t"))
	m.targetInput.SetValue("abc")
	m = step(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Error(t, m.err)
	assert.Equal(t, 50, m.targetAge, "invalid input keeps the previous target")
}

func TestModel_RejectedTargetKeepsQuote(t *testing.T) {
	m := loaded(t)

	m = press(t, m, keyRunes("t"))
	m.targetInput.SetValue("36")
	m = step(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	require.NoError(t, m.err, "the snapshot still prices")
	assert.NotNil(t, m.snapshot)
	m = step(t, m, keyRunes("2"))
	assert.Contains(t, m.View(), "No illustration")
	assert.Equal(t, 36, m.targetAge)
}

func TestModel_EscapeCancelsEdit(t *testing.T) {
	m := loaded(t)
	m = press(t, m, keyRunes("t"))
	m.targetInput.SetValue("70")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.editing)
	assert.Equal(t, 60, m.targetAge)
}

func TestModel_SaveRequest(t *testing.T) {
	m := loaded(t)
	m = step(t, m, keyRunes("f"))
	m = step(t, m, keyRunes("s"))
	require.NoError(t, m.err)

	saved := editedPath(m.requestPath)
	assert.Contains(t, m.status, saved)

	req, err := m.parser.LoadFromFile(saved)
	require.NoError(t, err)
	assert.Equal(t, "semiannual", req.Frequency)
	assert.Equal(t, 60, req.TargetAge)
}

func TestModel_Quit(t *testing.T) {
	m := loaded(t)
	_, cmd := m.Update(keyRunes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModel_HelpToggle(t *testing.T) {
	m := loaded(t)
	assert.False(t, m.help.ShowAll)
	m = step(t, m, keyRunes("?"))
	assert.True(t, m.help.ShowAll)
	assert.Contains(t, m.View(), "save request")
}

func TestEditedPath(t *testing.T) {
	assert.Equal(t, "/tmp/quote.edited.yaml", editedPath("/tmp/quote.yaml"))
	assert.Equal(t, "quote.edited.yaml", editedPath("quote"))
}

func TestNextFrequency(t *testing.T) {
	assert.Equal(t, domain.FrequencySemiAnnual, nextFrequency(domain.FrequencyAnnual))
	assert.Equal(t, domain.FrequencyAnnual, nextFrequency(domain.FrequencyQuarterly))
	assert.Equal(t, domain.FrequencyAnnual, nextFrequency("weekly"))
}
