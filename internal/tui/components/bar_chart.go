package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/quotecalc/internal/tui/tuistyles"
	"github.com/shopspring/decimal"
)

// BarChart draws one horizontal bar per label, scaled to the largest value
type BarChart struct {
	Title  string
	Labels []string
	Values []decimal.Decimal
	Width  int
}

// NewBarChart creates a new bar chart
func NewBarChart(title string) *BarChart {
	return &BarChart{Title: title, Width: 50}
}

// Add appends one bar
func (c *BarChart) Add(label string, value decimal.Decimal) *BarChart {
	c.Labels = append(c.Labels, label)
	c.Values = append(c.Values, value)
	return c
}

// WithWidth sets the width of the longest bar
func (c *BarChart) WithWidth(width int) *BarChart {
	c.Width = width
	return c
}

// Render returns the chart
func (c *BarChart) Render() string {
	if len(c.Values) == 0 {
		return tuistyles.InfoStyle.Render("No data to display")
	}

	peak := decimal.Zero
	labelWidth := 0
	for i, v := range c.Values {
		if v.GreaterThan(peak) {
			peak = v
		}
		labelWidth = max(labelWidth, lipgloss.Width(c.Labels[i]))
	}

	var b strings.Builder
	if c.Title != "" {
		b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorPrimary).Render(c.Title))
		b.WriteString("\n")
	}
	labelStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Width(labelWidth).Align(lipgloss.Right)
	barStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorChartLine1)
	for i, v := range c.Values {
		n := 0
		if peak.IsPositive() {
			n = int(v.Mul(decimal.NewFromInt(int64(c.Width))).Div(peak).IntPart())
		}
		fmt.Fprintf(&b, "%s │%s %s\n", labelStyle.Render(c.Labels[i]),
			barStyle.Render(strings.Repeat("█", n)), formatChartValue(v))
	}
	return b.String()
}

// formatChartValue abbreviates dong amounts to millions or billions
func formatChartValue(v decimal.Decimal) string {
	f := v.InexactFloat64()
	switch {
	case f >= 1e9:
		return fmt.Sprintf("%.2f tỷ", f/1e9)
	case f >= 1e6:
		return fmt.Sprintf("%.1f tr", f/1e6)
	}
	return fmt.Sprintf("%.0f", f)
}
