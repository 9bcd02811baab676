package scenes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/quotecalc/internal/domain"
	"github.com/rgehrsitz/quotecalc/internal/output"
	"github.com/rgehrsitz/quotecalc/internal/tui/components"
	"github.com/rgehrsitz/quotecalc/internal/tui/tuistyles"
)

// ProjectionModel shows the year-by-year illustration in a scrollable viewport
type ProjectionModel struct {
	projection *domain.Projection
	err        error
	viewport   viewport.Model
}

// NewProjectionModel creates a new projection scene model
func NewProjectionModel() *ProjectionModel {
	return &ProjectionModel{viewport: viewport.New(80, 20)}
}

// SetProjection replaces the illustration. A non-nil err explains why
// there is none.
func (m *ProjectionModel) SetProjection(proj *domain.Projection, err error) {
	m.projection = proj
	m.err = err
	m.viewport.SetContent(m.content())
	m.viewport.GotoTop()
}

// SetSize updates the scene dimensions
func (m *ProjectionModel) SetSize(width, height int) {
	m.viewport.Width = width
	m.viewport.Height = max(height-2, 3)
}

// Update scrolls the table
func (m *ProjectionModel) Update(msg tea.Msg) (*ProjectionModel, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the projection scene
func (m *ProjectionModel) View() string {
	if m.err != nil {
		return tuistyles.ErrorStyle.Render("No illustration: " + m.err.Error())
	}
	if m.projection == nil {
		return "No illustration yet."
	}
	p := m.projection
	header := lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorPrimary).
		Render(fmt.Sprintf("Illustration: age %d to %d, %d years, total %s", p.StartAge, p.TargetAge, p.Years(), output.FormatVND(p.Total)))
	scroll := tuistyles.SubtitleStyle.Render(fmt.Sprintf("%3.0f%%", m.viewport.ScrollPercent()*100))
	return lipgloss.JoinVertical(lipgloss.Left, header+"  "+scroll, m.viewport.View())
}

func (m *ProjectionModel) content() string {
	p := m.projection
	if p == nil {
		return ""
	}
	withFreq := p.Frequency != "" && p.Frequency != domain.FrequencyAnnual

	var b strings.Builder
	head := fmt.Sprintf("%4s %4s %14s %12s", "Year", "Age", "Main", "Extra")
	for _, id := range p.InsuredIDs {
		head += fmt.Sprintf(" %12s", truncate(id, 12))
	}
	head += fmt.Sprintf(" %10s %14s %16s", "Waiver", "Total", "Cumulative")
	if withFreq {
		head += fmt.Sprintf(" %14s", string(p.Frequency))
	}
	b.WriteString(tuistyles.TableHeaderStyle.Render(head) + "\n")

	chart := components.NewBarChart("Total premium per year").WithWidth(40)
	for _, row := range p.Rows {
		subtotals := make(map[string]string, len(row.Insureds))
		for _, iy := range row.Insureds {
			subtotals[iy.InsuredID] = output.FormatAmount(iy.Subtotal)
		}
		line := fmt.Sprintf("%4d %4d %14s %12s", row.Year, row.MainAge, output.FormatAmount(row.MainPremium), output.FormatAmount(row.ExtraPremium))
		for _, id := range p.InsuredIDs {
			line += fmt.Sprintf(" %12s", subtotals[id])
		}
		line += fmt.Sprintf(" %10s %14s %16s", output.FormatAmount(row.Waiver), output.FormatAmount(row.Total), output.FormatAmount(row.Cumulative))
		if withFreq {
			line += fmt.Sprintf(" %14s", output.FormatAmount(row.FrequencyTotal))
		}
		b.WriteString(line + "\n")
		chart.Add(fmt.Sprintf("%d", row.MainAge), row.Total)
	}

	if len(p.Lines) > 0 {
		b.WriteString("\n" + tuistyles.TableHeaderStyle.Render("Products") + "\n")
		for _, l := range p.Lines {
			fmt.Fprintf(&b, "  %-10s %-34s %14s %3d years\n", truncate(l.InsuredID, 10), l.Product, output.FormatAmount(l.Premium), l.Years)
		}
	}
	b.WriteString("\n" + chart.Render())
	return b.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
