package compare

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/rgehrsitz/quotecalc/internal/output"
	"github.com/shopspring/decimal"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a formatted table comparing the base with its alternatives
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString("WHAT-IF QUOTE COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 96) + "\n")
	fmt.Fprintf(&sb, "Base: %s\n", compSet.BaseScenarioName)
	if compSet.RequestPath != "" {
		fmt.Fprintf(&sb, "Request: %s\n", compSet.RequestPath)
	}
	sb.WriteString("\n")

	nameWidth := 22
	numWidth := 17

	fmt.Fprintf(&sb, "%-*s %-10s %*s %*s %*s %*s\n",
		nameWidth, "Scenario",
		"Frequency",
		numWidth, "Annual premium",
		numWidth, "Per installment",
		numWidth, "Paid per year",
		numWidth, "Illustrated")
	sb.WriteString(strings.Repeat("-", 96) + "\n")

	base := compSet.BaseResult
	sb.WriteString(tf.formatRow(base, nameWidth, numWidth, true))

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString(strings.Repeat("-", 96) + "\n")
		for i := range compSet.AlternativeResults {
			sb.WriteString(tf.formatRow(&compSet.AlternativeResults[i], nameWidth, numWidth, false))
		}
	}
	sb.WriteString(strings.Repeat("=", 96) + "\n")

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString("\nCOMPARISON TO BASE\n")
		sb.WriteString(strings.Repeat("-", 96) + "\n")

		for _, alt := range compSet.AlternativeResults {
			fmt.Fprintf(&sb, "\n%s: %s\n", alt.ScenarioName, alt.Description)
			if alt.Rejected != "" {
				fmt.Fprintf(&sb, "  Rejected:         %s\n", alt.Rejected)
				continue
			}
			fmt.Fprintf(&sb, "  Paid per year:    %s (%s%%)\n",
				output.FormatSigned(alt.PaidDiffFromBase),
				tf.signedPct(alt.PaidPctFromBase))
			if alt.Illustrated() && base.Illustrated() {
				fmt.Fprintf(&sb, "  Illustrated:      %s\n", output.FormatSigned(alt.IllustratedDiffFromBase))
			} else if alt.IllustrationNote != "" {
				fmt.Fprintf(&sb, "  Illustration:     %s\n", alt.IllustrationNote)
			}
		}
		sb.WriteString("\n")
	}

	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 96) + "\n")
		for _, rec := range compSet.Recommendations {
			fmt.Fprintf(&sb, "• %s\n", rec)
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// formatRow formats a single scenario row
func (tf *TableFormatter) formatRow(result *ComparisonResult, nameWidth, numWidth int, isBase bool) string {
	name := result.ScenarioName
	if isBase {
		name += " (base)"
	}
	name = tf.truncate(name, nameWidth)

	if result.Rejected != "" {
		return fmt.Sprintf("%-*s %-10s %*s\n", nameWidth, name, result.Frequency, numWidth, "rejected")
	}

	illustrated := "n/a"
	if result.Illustrated() {
		illustrated = tf.formatDecimal(result.IllustratedTotal)
	}

	return fmt.Sprintf("%-*s %-10s %*s %*s %*s %*s\n",
		nameWidth, name,
		result.Frequency,
		numWidth, output.FormatAmount(result.AnnualPremium),
		numWidth, output.FormatAmount(result.PerPeriod),
		numWidth, output.FormatAmount(result.PaidPerYear),
		numWidth, illustrated)
}

// formatDecimal abbreviates large amounts in millions (tr) or billions (tỷ)
func (tf *TableFormatter) formatDecimal(d decimal.Decimal) string {
	billion := decimal.NewFromInt(1_000_000_000)
	million := decimal.NewFromInt(1_000_000)
	switch {
	case d.Abs().GreaterThanOrEqual(billion):
		return d.Div(billion).StringFixed(2) + " tỷ"
	case d.Abs().GreaterThanOrEqual(million):
		return d.Div(million).StringFixed(1) + " tr"
	}
	return output.FormatAmount(d)
}

func (tf *TableFormatter) signedPct(d decimal.Decimal) string {
	if d.IsPositive() {
		return "+" + d.StringFixed(1)
	}
	return d.StringFixed(1)
}

// truncate shortens s to maxLen runes
func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	return string([]rune(s)[:maxLen-3]) + "..."
}

// FormatCompact creates a compact single-line summary of the alternatives
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Base: %s | ", compSet.BaseScenarioName)
	for i, alt := range compSet.AlternativeResults {
		if i > 0 {
			sb.WriteString(" | ")
		}
		change := "="
		switch {
		case alt.Rejected != "":
			change = "rejected"
		case !alt.PaidDiffFromBase.IsZero():
			change = output.FormatSigned(alt.PaidDiffFromBase)
		}
		fmt.Fprintf(&sb, "%s: %s", alt.ScenarioName, change)
	}

	return sb.String()
}
