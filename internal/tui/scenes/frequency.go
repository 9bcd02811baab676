package scenes

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/quotecalc/internal/domain"
	"github.com/rgehrsitz/quotecalc/internal/output"
	"github.com/rgehrsitz/quotecalc/internal/tui/components"
	"github.com/rgehrsitz/quotecalc/internal/tui/tuistyles"
)

// FrequencyModel compares the installment plans side by side
type FrequencyModel struct {
	rows    []domain.FrequencyBreakdown
	current domain.Frequency
	width   int
}

// NewFrequencyModel creates a new frequency scene model
func NewFrequencyModel() *FrequencyModel {
	return &FrequencyModel{}
}

// SetComparison updates the plans; current is highlighted
func (m *FrequencyModel) SetComparison(rows []domain.FrequencyBreakdown, current domain.Frequency) {
	m.rows = rows
	m.current = current
}

// SetSize updates the scene dimensions
func (m *FrequencyModel) SetSize(width, height int) {
	m.width = width
}

// Update is a no-op; the frequency is cycled by the parent model
func (m *FrequencyModel) Update(msg tea.Msg) (*FrequencyModel, tea.Cmd) {
	return m, nil
}

// View renders the frequency scene
func (m *FrequencyModel) View() string {
	if len(m.rows) == 0 {
		return "No quote yet."
	}
	cards := make([]*components.MetricCard, 0, len(m.rows))
	for _, fb := range m.rows {
		label := fmt.Sprintf("%s (%d x)", fb.Frequency, fb.Periods)
		if fb.Frequency == m.current {
			label = tuistyles.SelectedItemStyle.Render("▸ " + label)
		}
		card := components.NewMetricCard(label, output.FormatVND(fb.PerPeriodTotal)).
			WithDetail(fmt.Sprintf("main %s, riders %s", output.FormatAmount(fb.PerPeriodMain), output.FormatAmount(fb.PerPeriodRider))).
			WithWidth(34)
		if fb.Frequency != domain.FrequencyAnnual {
			card.WithDiff(fb.Diff)
		}
		cards = append(cards, card)
	}
	columns := 3
	if m.width > 0 && m.width < 3*36 {
		columns = 1
	}
	note := tuistyles.SubtitleStyle.Render("Rider premiums carry a loading when paid in installments; the main premium does not.")
	return lipgloss.JoinVertical(lipgloss.Left, components.MetricRow(cards, columns), "", note)
}
