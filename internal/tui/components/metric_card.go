package components

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/quotecalc/internal/tui/tuistyles"
	"github.com/shopspring/decimal"
)

// MetricCard shows one amount with a label and an optional detail line
type MetricCard struct {
	Label  string
	Value  string
	Detail string
	Diff   *decimal.Decimal
	Width  int
}

// NewMetricCard creates a new metric card
func NewMetricCard(label, value string) *MetricCard {
	return &MetricCard{Label: label, Value: value, Width: 26}
}

// WithDetail adds a muted line under the value
func (m *MetricCard) WithDetail(detail string) *MetricCard {
	m.Detail = detail
	return m
}

// WithDiff adds a signed difference, e.g. the installment surcharge
func (m *MetricCard) WithDiff(diff decimal.Decimal) *MetricCard {
	m.Diff = &diff
	return m
}

// WithWidth sets the card width
func (m *MetricCard) WithWidth(width int) *MetricCard {
	m.Width = width
	return m
}

// Render returns the bordered card
func (m *MetricCard) Render() string {
	lines := []string{
		tuistyles.MetricLabelStyle.Render(m.Label),
		tuistyles.MetricValueStyle.Render(m.Value),
	}
	if m.Diff != nil {
		d := *m.Diff
		lines = append(lines, tuistyles.DiffStyle(d).Render(tuistyles.DiffIndicator(d)+" "+tuistyles.FormatCurrency(d)))
	}
	if m.Detail != "" {
		lines = append(lines, tuistyles.SubtitleStyle.Render(m.Detail))
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(tuistyles.ColorBorder).
		Padding(0, 1).
		Width(m.Width).
		Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// MetricRow lays cards out side by side, wrapping after columns cards
func MetricRow(cards []*MetricCard, columns int) string {
	if len(cards) == 0 {
		return ""
	}
	if columns <= 0 {
		columns = len(cards)
	}
	var rows, current []string
	for i, card := range cards {
		current = append(current, card.Render())
		if (i+1)%columns == 0 || i == len(cards)-1 {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, current...))
			current = nil
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
