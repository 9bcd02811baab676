package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the current state of the application
func (m Model) View() string {
	var content string
	switch m.currentScene {
	case SceneQuote:
		content = m.quoteModel.View()
	case SceneProjection:
		content = m.projectionModel.View()
	case SceneFrequency:
		content = m.frequencyModel.View()
	default:
		content = "Unknown scene"
	}
	return AppStyle.Render(m.renderApp(content))
}

// renderApp wraps content with title bar, tabs, messages and help
func (m Model) renderApp(content string) string {
	parts := []string{m.renderTitleBar(), m.renderTabs(), ""}
	if line := m.renderMessages(); line != "" {
		parts = append(parts, line, "")
	}
	parts = append(parts, content)
	if m.editing {
		parts = append(parts, "", ActiveBorderStyle.Render(m.targetInput.View()))
	}
	parts = append(parts, "", StatusBarStyle.Render(m.help.View(m.keys)))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// renderTitleBar renders the application title and the active settings
func (m Model) renderTitleBar() string {
	title := TitleStyle.Render("quotecalc")
	target := "default"
	if m.targetAge > 0 {
		target = fmt.Sprintf("%d", m.targetAge)
	}
	settings := SubtitleStyle.Render(fmt.Sprintf("%s  •  %s  •  target age %s", m.requestPath, m.frequency, target))
	return lipgloss.JoinHorizontal(lipgloss.Center, title, "  ", settings)
}

func (m Model) renderTabs() string {
	tabs := make([]string, 0, len(sceneOrder))
	for i, s := range sceneOrder {
		label := fmt.Sprintf("%d %s", i+1, s)
		if s == m.currentScene {
			tabs = append(tabs, SelectedItemStyle.Render("["+label+"]"))
		} else {
			tabs = append(tabs, SubtitleStyle.Render(" "+label+" "))
		}
	}
	return strings.Join(tabs, " ")
}

func (m Model) renderMessages() string {
	switch {
	case m.err != nil:
		return ErrorStyle.Render("Error: " + m.err.Error())
	case m.loading:
		return InfoStyle.Render("⠋ Calculating...")
	case m.status != "":
		return InfoStyle.Render(m.status)
	}
	return ""
}
