package scenes

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/quotecalc/internal/domain"
	"github.com/rgehrsitz/quotecalc/internal/output"
	"github.com/rgehrsitz/quotecalc/internal/tui/components"
	"github.com/rgehrsitz/quotecalc/internal/tui/tuistyles"
)

// QuoteModel shows the priced snapshot
type QuoteModel struct {
	snapshot *domain.PolicySnapshot
	width    int
	height   int
}

// NewQuoteModel creates a new quote scene model
func NewQuoteModel() *QuoteModel {
	return &QuoteModel{}
}

// SetSnapshot updates the snapshot to display
func (m *QuoteModel) SetSnapshot(snap *domain.PolicySnapshot) {
	m.snapshot = snap
}

// SetSize updates the scene dimensions
func (m *QuoteModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update is a no-op; the quote scene is read-only
func (m *QuoteModel) Update(msg tea.Msg) (*QuoteModel, tea.Cmd) {
	return m, nil
}

// View renders the quote scene
func (m *QuoteModel) View() string {
	snap := m.snapshot
	if snap == nil {
		return "No quote yet."
	}

	sections := []string{renderMainProduct(snap.Main), "", renderTotals(snap), "", renderRiderTable(snap)}
	if len(snap.Advisories) > 0 {
		sections = append(sections, "", renderAdvisories(snap.Advisories))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func renderMainProduct(main domain.MainPremium) string {
	title := lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorPrimary)
	if main.Product == "" {
		return title.Render("No main product selected")
	}
	if !main.Eligible {
		return title.Render(main.Product.DisplayName()) + "  " +
			tuistyles.ErrorStyle.Render("not available for the main insured")
	}
	parts := []string{"sum insured " + output.FormatVND(main.SumInsured)}
	if main.PaymentTermYears > 0 {
		parts = append(parts, fmt.Sprintf("pays %d years", main.PaymentTermYears))
	}
	if main.TermYears > 0 {
		parts = append(parts, fmt.Sprintf("term %d years", main.TermYears))
	}
	return title.Render(main.Product.DisplayName()) + "  " + tuistyles.SubtitleStyle.Render(strings.Join(parts, ", "))
}

func renderTotals(snap *domain.PolicySnapshot) string {
	mainCard := components.NewMetricCard("Main premium", output.FormatVND(snap.MainTotal))
	if snap.Main.ExtraPremium.IsPositive() {
		mainCard.WithDetail("incl. extra " + output.FormatAmount(snap.Main.ExtraPremium))
	}
	cards := []*components.MetricCard{
		mainCard,
		components.NewMetricCard("Riders", output.FormatVND(snap.RiderTotal)).
			WithDetail(fmt.Sprintf("waiver %s", output.FormatAmount(snap.WaiverTotal()))),
		components.NewMetricCard("Total per year", output.FormatVND(snap.TotalPremium)),
		components.NewMetricCard("Hospital cash", output.FormatAmount(snap.HospitalCashCommitted)).
			WithDetail("of " + output.FormatAmount(snap.HospitalCashCap) + " per day"),
	}
	if fb := snap.Frequency; fb != nil {
		cards = append(cards, components.NewMetricCard(fmt.Sprintf("%s x%d", fb.Frequency, fb.Periods), output.FormatVND(fb.PerPeriodTotal)).
			WithDiff(fb.Diff))
	}
	return components.MetricRow(cards, 5)
}

func renderRiderTable(snap *domain.PolicySnapshot) string {
	var b strings.Builder
	b.WriteString(tuistyles.TableHeaderStyle.Render(fmt.Sprintf("%-28s %-34s %16s %12s", "Insured", "Rider", "Sum insured", "Premium")))
	b.WriteString("\n")
	for i, ip := range snap.Insureds {
		who := lipgloss.NewStyle().Foreground(tuistyles.ChartColor(i)).Render(fmt.Sprintf("%-28s", fmt.Sprintf("%s (%d)", displayName(ip.Name, ip.InsuredID), ip.Age)))
		if len(ip.Riders) == 0 {
			b.WriteString(who + " " + tuistyles.SubtitleStyle.Render("no riders") + "\n")
			continue
		}
		for j, rp := range ip.Riders {
			if j > 0 {
				who = strings.Repeat(" ", 28)
			}
			label := rp.Kind.DisplayName()
			if rp.Program != "" {
				label += " (" + string(rp.Program) + ")"
			}
			fmt.Fprintf(&b, "%s %-34s %16s %12s\n", who, label, output.FormatAmount(rp.SumInsured), output.FormatAmount(rp.Premium))
		}
	}
	if wp := snap.Waiver; wp != nil {
		fmt.Fprintf(&b, "%-28s %-34s %16s %12s\n", fmt.Sprintf("%s (%d)", displayName(wp.Name, wp.Beneficiary), wp.Age),
			domain.RiderWaiver.DisplayName(), output.FormatAmount(wp.Base), output.FormatAmount(wp.Premium))
	}
	return tuistyles.BorderStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func renderAdvisories(advisories []domain.Advisory) string {
	lines := make([]string, 0, len(advisories))
	for _, a := range advisories {
		lines = append(lines, tuistyles.NoteStyle.Render("• "+a.String()))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func displayName(name, id string) string {
	if name != "" {
		return name
	}
	return id
}
