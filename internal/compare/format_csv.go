package compare

import (
	"encoding/csv"
	"strconv"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Scenario",
		"Type",
		"Description",
		"Frequency",
		"Main Total",
		"Rider Total",
		"Annual Premium",
		"Per Installment",
		"Paid Per Year",
		"Target Age",
		"Illustrated Total",
		"Paid Diff from Base",
		"Paid % Change",
		"Illustrated Diff from Base",
		"Note",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
		return "", err
	}
	for i := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&compSet.AlternativeResults[i], "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// formatRow formats a comparison result as a CSV row
func (cf *CSVFormatter) formatRow(result *ComparisonResult, scenarioType string) []string {
	note := result.Rejected
	if note == "" {
		note = result.IllustrationNote
	}
	targetAge := ""
	if result.TargetAge > 0 {
		targetAge = strconv.Itoa(result.TargetAge)
	}
	return []string{
		result.ScenarioName,
		scenarioType,
		result.Description,
		string(result.Frequency),
		result.MainTotal.StringFixed(0),
		result.RiderTotal.StringFixed(0),
		result.AnnualPremium.StringFixed(0),
		result.PerPeriod.StringFixed(0),
		result.PaidPerYear.StringFixed(0),
		targetAge,
		result.IllustratedTotal.StringFixed(0),
		result.PaidDiffFromBase.StringFixed(0),
		result.PaidPctFromBase.StringFixed(2),
		result.IllustratedDiffFromBase.StringFixed(0),
		note,
	}
}
