package output

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/rgehrsitz/quotecalc/internal/domain"
)

const rule = "================================================================================="

// ConsoleFormatter renders the full quote: every insured's riders, the
// waiver, advisories and, when present, the illustration.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(report *Report) ([]byte, error) {
	if report == nil || report.Snapshot == nil {
		return nil, fmt.Errorf("report has no snapshot")
	}
	snap := report.Snapshot
	var buf bytes.Buffer

	fmt.Fprintln(&buf, rule)
	fmt.Fprintln(&buf, "PREMIUM QUOTE")
	fmt.Fprintln(&buf, rule)
	fmt.Fprintf(&buf, "Quote ID:       %s\n", snap.ID)
	fmt.Fprintf(&buf, "Reference date: %s\n", snap.ReferenceDate.Format(domain.DOBLayout))
	fmt.Fprintln(&buf)

	writeMain(&buf, snap.Main)
	writeRiders(&buf, snap)
	writeTotals(&buf, snap)
	if snap.Frequency != nil {
		writeFrequency(&buf, *snap.Frequency)
	}
	if len(report.Comparison) > 0 {
		writeComparison(&buf, report.Comparison)
	}
	writeAdvisories(&buf, snap.Advisories)
	if report.Projection != nil {
		writeProjection(&buf, report.Projection)
	}
	return buf.Bytes(), nil
}

func writeMain(w io.Writer, m domain.MainPremium) {
	fmt.Fprintln(w, "MAIN PRODUCT")
	fmt.Fprintln(w, "------------")
	if m.Product == "" {
		fmt.Fprintln(w, "  (none selected)")
		fmt.Fprintln(w)
		return
	}
	fmt.Fprintf(w, "  Product:        %s\n", m.Product.DisplayName())
	if !m.Eligible {
		fmt.Fprintln(w, "  Not available for the main insured")
		fmt.Fprintln(w)
		return
	}
	fmt.Fprintf(w, "  Sum insured:    %s\n", FormatVND(m.SumInsured))
	fmt.Fprintf(w, "  Base premium:   %s\n", FormatVND(m.BasePremium))
	if m.MaxPremium.IsPositive() {
		fmt.Fprintf(w, "  Premium range:  %s to %s\n", FormatAmount(m.MinPremium.Ceil()), FormatAmount(m.MaxPremium.Floor()))
	}
	if m.ExtraPremium.IsPositive() {
		fmt.Fprintf(w, "  Extra premium:  %s\n", FormatVND(m.ExtraPremium))
	}
	if m.TermYears > 0 {
		fmt.Fprintf(w, "  Term:           %d years\n", m.TermYears)
	}
	if m.PaymentTermYears > 0 {
		fmt.Fprintf(w, "  Payment term:   %d years\n", m.PaymentTermYears)
	}
	fmt.Fprintln(w)
}

func riderLabel(rp domain.RiderPremium) string {
	if rp.Program != "" {
		return fmt.Sprintf("%s (%s)", rp.Kind.DisplayName(), rp.Program)
	}
	return rp.Kind.DisplayName()
}

func writeRiders(w io.Writer, snap *domain.PolicySnapshot) {
	fmt.Fprintln(w, "RIDERS")
	fmt.Fprintln(w, "------")
	for _, ip := range snap.Insureds {
		fmt.Fprintf(w, "  %s  %s (age %d)\n", ip.InsuredID, ip.Name, ip.Age)
		if len(ip.Riders) == 0 {
			fmt.Fprintln(w, "    no riders")
			continue
		}
		for _, rp := range ip.Riders {
			fmt.Fprintf(w, "    %-38s %18s %14s\n", riderLabel(rp), FormatAmount(rp.SumInsured), FormatAmount(rp.Premium))
		}
		fmt.Fprintf(w, "    %-38s %18s %14s\n", "Subtotal", "", FormatAmount(ip.Subtotal))
	}
	if wp := snap.Waiver; wp != nil {
		name := wp.Name
		if name == "" {
			name = wp.Beneficiary
		}
		fmt.Fprintf(w, "  %s: %s (age %d)\n", domain.RiderWaiver.DisplayName(), name, wp.Age)
		fmt.Fprintf(w, "    %-38s %18s %14s\n", "Waiver base / premium", FormatAmount(wp.Base), FormatAmount(wp.Premium))
	}
	fmt.Fprintln(w)
}

func writeTotals(w io.Writer, snap *domain.PolicySnapshot) {
	fmt.Fprintln(w, "ANNUAL PREMIUM")
	fmt.Fprintln(w, "--------------")
	fmt.Fprintf(w, "  Main product:          %s\n", FormatVND(snap.MainTotal))
	fmt.Fprintf(w, "  Riders:                %s\n", FormatVND(snap.RiderTotal))
	fmt.Fprintf(w, "  TOTAL:                 %s\n", FormatVND(snap.TotalPremium))
	fmt.Fprintf(w, "  Hospital cash in use:  %s of %s per day\n",
		FormatAmount(snap.HospitalCashCommitted), FormatAmount(snap.HospitalCashCap))
	fmt.Fprintln(w)
}

func writeFrequency(w io.Writer, fb domain.FrequencyBreakdown) {
	fmt.Fprintf(w, "PAYMENT: %s (%d installments)\n", strings.ToUpper(string(fb.Frequency)), fb.Periods)
	fmt.Fprintf(w, "  Per installment:       %s (main %s, riders %s)\n",
		FormatVND(fb.PerPeriodTotal), FormatAmount(fb.PerPeriodMain), FormatAmount(fb.PerPeriodRider))
	fmt.Fprintf(w, "  Paid over a year:      %s\n", FormatVND(fb.DerivedAnnual))
	fmt.Fprintf(w, "  Difference to annual:  %s\n", FormatSigned(fb.Diff))
	fmt.Fprintln(w)
}

func writeComparison(w io.Writer, rows []domain.FrequencyBreakdown) {
	fmt.Fprintln(w, "PAYMENT FREQUENCY COMPARISON")
	fmt.Fprintln(w, "----------------------------")
	fmt.Fprintf(w, "  %-12s %14s %14s %14s %14s %12s\n", "Frequency", "Main/period", "Riders/period", "Per period", "Per year", "Difference")
	for _, fb := range rows {
		fmt.Fprintf(w, "  %-12s %14s %14s %14s %14s %12s\n", fb.Frequency,
			FormatAmount(fb.PerPeriodMain), FormatAmount(fb.PerPeriodRider), FormatAmount(fb.PerPeriodTotal),
			FormatAmount(fb.DerivedAnnual), FormatSigned(fb.Diff))
	}
	fmt.Fprintln(w)
}

func writeAdvisories(w io.Writer, advisories []domain.Advisory) {
	if len(advisories) == 0 {
		return
	}
	fmt.Fprintln(w, "NOTES")
	fmt.Fprintln(w, "-----")
	for _, a := range advisories {
		fmt.Fprintf(w, "• %s\n", a)
	}
	fmt.Fprintln(w)
}

func writeProjection(w io.Writer, proj *domain.Projection) {
	fmt.Fprintf(w, "ILLUSTRATION: age %d to %d (%d years)\n", proj.StartAge, proj.TargetAge, proj.Years())
	fmt.Fprintln(w, strings.Repeat("-", 50))
	withFreq := proj.Frequency != "" && proj.Frequency != domain.FrequencyAnnual

	fmt.Fprintf(w, "%4s %4s %14s %12s %12s %14s %16s", "Year", "Age", "Main", "Extra", "Riders", "Total", "Cumulative")
	if withFreq {
		fmt.Fprintf(w, " %14s %10s", string(proj.Frequency), "Diff")
	}
	fmt.Fprintln(w)
	for _, row := range proj.Rows {
		fmt.Fprintf(w, "%4d %4d %14s %12s %12s %14s %16s", row.Year, row.MainAge,
			FormatAmount(row.MainPremium), FormatAmount(row.ExtraPremium), FormatAmount(row.RiderTotal),
			FormatAmount(row.Total), FormatAmount(row.Cumulative))
		if withFreq {
			fmt.Fprintf(w, " %14s %10s", FormatAmount(row.FrequencyTotal), FormatSigned(row.FrequencyDiff))
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "Total premium over the illustration: %s\n", FormatVND(proj.Total))
	fmt.Fprintln(w)

	if len(proj.Lines) == 0 {
		return
	}
	fmt.Fprintln(w, "PRODUCT SUMMARY")
	fmt.Fprintln(w, "---------------")
	for _, l := range proj.Lines {
		fmt.Fprintf(w, "  %-10s %-32s %16s %14s %3d years\n", l.InsuredID, l.Product,
			FormatAmount(l.SumInsured), FormatAmount(l.Premium), l.Years)
	}
	fmt.Fprintln(w)
}

// ConsoleLiteFormatter prints the totals only
type ConsoleLiteFormatter struct{}

func (c ConsoleLiteFormatter) Name() string { return "console-lite" }

func (c ConsoleLiteFormatter) Format(report *Report) ([]byte, error) {
	if report == nil || report.Snapshot == nil {
		return nil, fmt.Errorf("report has no snapshot")
	}
	snap := report.Snapshot
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "QUOTE SUMMARY")
	fmt.Fprintln(&buf, "=============")
	if snap.Main.Product != "" {
		fmt.Fprintf(&buf, "%s: %s\n", snap.Main.Product.DisplayName(), FormatVND(snap.MainTotal))
	}
	for _, ip := range snap.Insureds {
		if ip.Subtotal.IsPositive() {
			fmt.Fprintf(&buf, "Riders %s: %s\n", ip.InsuredID, FormatVND(ip.Subtotal))
		}
	}
	if snap.WaiverTotal().IsPositive() {
		fmt.Fprintf(&buf, "Waiver: %s\n", FormatVND(snap.WaiverTotal()))
	}
	fmt.Fprintf(&buf, "Total annual premium: %s\n", FormatVND(snap.TotalPremium))
	if fb := snap.Frequency; fb != nil {
		fmt.Fprintf(&buf, "%s installment: %s\n", fb.Frequency, FormatVND(fb.PerPeriodTotal))
	}
	if p := report.Projection; p != nil {
		fmt.Fprintf(&buf, "Illustration to age %d: %s over %d years\n", p.TargetAge, FormatVND(p.Total), p.Years())
	}
	if n := len(snap.Advisories); n > 0 {
		fmt.Fprintf(&buf, "%d note(s); use the console format for details\n", n)
	}
	return buf.Bytes(), nil
}
