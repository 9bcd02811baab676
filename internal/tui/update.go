package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/quotecalc/internal/domain"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.quoteModel.SetSize(msg.Width, msg.Height-6)
		m.projectionModel.SetSize(msg.Width, msg.Height-6)
		m.frequencyModel.SetSize(msg.Width, msg.Height-6)
		return m, nil

	case NavigateMsg:
		m.currentScene = msg.Scene
		return m, nil

	case ErrorMsg:
		m.loading = false
		m.err = msg.Err
		return m, nil

	case RequestLoadedMsg:
		m.request = msg.Request
		freq, err := domain.ParseFrequency(msg.Request.Frequency)
		if err != nil {
			m.loading = false
			m.err = err
			return m, nil
		}
		m.frequency = freq
		m.targetAge = msg.Request.TargetAge
		return m.recalculate()

	case CalculationCompleteMsg:
		m.loading = false
		if msg.Err != nil {
			// keep showing the last good quote
			m.err = msg.Err
			return m, nil
		}
		m.err = nil
		m.snapshot = msg.Snapshot
		m.quoteModel.SetSnapshot(msg.Snapshot)
		m.projectionModel.SetProjection(msg.Projection, msg.ProjectionErr)
		m.frequencyModel.SetComparison(msg.Comparison, m.frequency)
		if msg.Projection != nil {
			m.targetAge = msg.Projection.TargetAge
		}
		return m, nil

	case SaveCompleteMsg:
		if msg.Err != nil {
			m.err = msg.Err
		} else {
			m.status = "Saved to " + msg.Filename
		}
		return m, nil
	}

	return m.updateCurrentScene(msg)
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.editing {
		return m.handleTargetInput(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.NextScene):
		m.currentScene = sceneOrder[(int(m.currentScene)+1)%len(sceneOrder)]
		return m, nil

	case key.Matches(msg, m.keys.Quote):
		m.currentScene = SceneQuote
		return m, nil

	case key.Matches(msg, m.keys.Projection):
		m.currentScene = SceneProjection
		return m, nil

	case key.Matches(msg, m.keys.Frequency):
		m.currentScene = SceneFrequency
		return m, nil

	case key.Matches(msg, m.keys.Cycle):
		m.frequency = nextFrequency(m.frequency)
		return m.recalculate()

	case key.Matches(msg, m.keys.TargetUp):
		m.targetAge++
		return m.recalculate()

	case key.Matches(msg, m.keys.TargetDown):
		if m.targetAge > 1 {
			m.targetAge--
		}
		return m.recalculate()

	case key.Matches(msg, m.keys.EditTarget):
		m.editing = true
		m.targetInput.SetValue(strconv.Itoa(m.targetAge))
		return m, m.targetInput.Focus()

	case key.Matches(msg, m.keys.Save):
		if m.request == nil {
			return m, nil
		}
		return m, saveCmd(editedPath(m.requestPath), m.editedRequest())
	}

	return m.updateCurrentScene(msg)
}

// handleTargetInput routes keys to the target-age field while it is focused
func (m Model) handleTargetInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.editing = false
		m.targetInput.Blur()
		raw := strings.TrimSpace(m.targetInput.Value())
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			m.err = fmt.Errorf("target age %q is not a whole number of years", raw)
			return m, nil
		}
		m.targetAge = v
		return m.recalculate()

	case tea.KeyEsc:
		m.editing = false
		m.targetInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.targetInput, cmd = m.targetInput.Update(msg)
	return m, cmd
}

// updateCurrentScene delegates updates to the current scene's model
func (m Model) updateCurrentScene(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.currentScene {
	case SceneQuote:
		m.quoteModel, cmd = m.quoteModel.Update(msg)
	case SceneProjection:
		m.projectionModel, cmd = m.projectionModel.Update(msg)
	case SceneFrequency:
		m.frequencyModel, cmd = m.frequencyModel.Update(msg)
	}
	return m, cmd
}
