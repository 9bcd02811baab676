// Package tuistyles holds the colors and lipgloss styles shared by the TUI
// and its components, kept apart to avoid import cycles.
package tuistyles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/quotecalc/internal/output"
	"github.com/shopspring/decimal"
)

var (
	ColorPrimary   = lipgloss.Color("#2E7D8C")
	ColorSecondary = lipgloss.Color("#5C6BC0")
	ColorAccent    = lipgloss.Color("#F2A541")
	ColorSuccess   = lipgloss.Color("#43A047")
	ColorDanger    = lipgloss.Color("#E53935")
	ColorInfo      = lipgloss.Color("#29B6F6")

	ColorForeground = lipgloss.Color("#ECEFF1")
	ColorMuted      = lipgloss.Color("#90A4AE")
	ColorBorder     = lipgloss.Color("#546E7A")

	// One color per insured in charts and tables
	ColorChartLine1 = lipgloss.Color("#26A69A")
	ColorChartLine2 = lipgloss.Color("#AB47BC")
	ColorChartLine3 = lipgloss.Color("#FFA726")
	ColorChartLine4 = lipgloss.Color("#42A5F5")
)

var (
	AppStyle = lipgloss.NewStyle().Padding(0, 1)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorForeground).
			Background(ColorPrimary).
			Padding(0, 1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Italic(true)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(0, 1)

	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	ActiveBorderStyle = BorderStyle.BorderForeground(ColorPrimary)

	SelectedItemStyle   = lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)
	UnselectedItemStyle = lipgloss.NewStyle().Foreground(ColorMuted)

	MetricLabelStyle    = lipgloss.NewStyle().Foreground(ColorMuted)
	MetricValueStyle    = lipgloss.NewStyle().Bold(true).Foreground(ColorForeground)
	MetricPositiveStyle = lipgloss.NewStyle().Foreground(ColorDanger)
	MetricNegativeStyle = lipgloss.NewStyle().Foreground(ColorSuccess)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorDanger).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().Foreground(ColorInfo)

	NoteStyle = lipgloss.NewStyle().Foreground(ColorAccent)

	TableHeaderStyle    = lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)
	TableCellStyle      = lipgloss.NewStyle().Foreground(ColorForeground)
	TableHighlightStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)
)

// DiffStyle colors an installment surcharge red and a saving green
func DiffStyle(diff decimal.Decimal) lipgloss.Style {
	if diff.IsPositive() {
		return MetricPositiveStyle
	}
	return MetricNegativeStyle
}

// DiffIndicator returns an arrow for the sign of a difference
func DiffIndicator(diff decimal.Decimal) string {
	switch {
	case diff.IsPositive():
		return "▲"
	case diff.IsNegative():
		return "▼"
	}
	return "="
}

// FormatCurrency renders a dong amount for the TUI
func FormatCurrency(amount decimal.Decimal) string {
	return output.FormatVND(amount)
}

// ChartColor cycles through the chart colors by index
func ChartColor(i int) lipgloss.Color {
	colors := []lipgloss.Color{ColorChartLine1, ColorChartLine2, ColorChartLine3, ColorChartLine4}
	return colors[i%len(colors)]
}
