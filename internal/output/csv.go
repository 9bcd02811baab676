package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/rgehrsitz/quotecalc/internal/domain"
)

// CSVFormatter writes one row per priced item, or one row per contract
// year when the report carries an illustration.
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(report *Report) ([]byte, error) {
	if report == nil || report.Snapshot == nil {
		return nil, fmt.Errorf("report has no snapshot")
	}
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	var err error
	if report.Projection != nil {
		err = writeProjectionCSV(w, report.Projection)
	} else {
		err = writeSnapshotCSV(w, report.Snapshot)
	}
	if err != nil {
		return nil, err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeSnapshotCSV(w *csv.Writer, snap *domain.PolicySnapshot) error {
	if err := w.Write([]string{"InsuredID", "Name", "Age", "Item", "Program", "SumInsured", "Premium"}); err != nil {
		return err
	}
	m := snap.Main
	if m.Product != "" {
		main, _ := snap.Insured(domain.MainInsuredID)
		rows := [][]string{{domain.MainInsuredID, main.Name, strconv.Itoa(main.Age), string(m.Product), "", m.SumInsured.String(), m.BasePremium.String()}}
		if m.ExtraPremium.IsPositive() {
			rows = append(rows, []string{domain.MainInsuredID, main.Name, strconv.Itoa(main.Age), "extra_premium", "", "", m.ExtraPremium.String()})
		}
		if err := w.WriteAll(rows); err != nil {
			return err
		}
	}
	for _, ip := range snap.Insureds {
		for _, rp := range ip.Riders {
			row := []string{ip.InsuredID, ip.Name, strconv.Itoa(ip.Age), string(rp.Kind), string(rp.Program), rp.SumInsured.String(), rp.Premium.String()}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}
	if wp := snap.Waiver; wp != nil {
		row := []string{wp.Beneficiary, wp.Name, strconv.Itoa(wp.Age), string(domain.RiderWaiver), "", wp.Base.String(), wp.Premium.String()}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Write([]string{"", "", "", "total", "", "", snap.TotalPremium.String()})
}

func writeProjectionCSV(w *csv.Writer, proj *domain.Projection) error {
	header := []string{"Year", "MainAge", "MainPremium", "ExtraPremium"}
	header = append(header, proj.InsuredIDs...)
	header = append(header, "Waiver", "RiderTotal", "Total", "Cumulative", "FrequencyTotal", "FrequencyDiff")
	if err := w.Write(header); err != nil {
		return err
	}
	for _, row := range proj.Rows {
		subtotals := make(map[string]string, len(row.Insureds))
		for _, iy := range row.Insureds {
			subtotals[iy.InsuredID] = iy.Subtotal.String()
		}
		record := []string{strconv.Itoa(row.Year), strconv.Itoa(row.MainAge), row.MainPremium.String(), row.ExtraPremium.String()}
		for _, id := range proj.InsuredIDs {
			record = append(record, subtotals[id])
		}
		record = append(record, row.Waiver.String(), row.RiderTotal.String(), row.Total.String(),
			row.Cumulative.String(), row.FrequencyTotal.String(), row.FrequencyDiff.String())
		if err := w.Write(record); err != nil {
			return err
		}
	}
	return nil
}
