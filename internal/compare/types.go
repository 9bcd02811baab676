package compare

import (
	"fmt"

	"github.com/rgehrsitz/quotecalc/internal/domain"
	"github.com/rgehrsitz/quotecalc/internal/output"
	"github.com/shopspring/decimal"
)

// ComparisonResult is one priced request with its comparison metrics
type ComparisonResult struct {
	ScenarioName string                 `json:"scenarioName"`
	Description  string                 `json:"description"`
	Snapshot     *domain.PolicySnapshot `json:"-"`
	Rejected     string                 `json:"rejected,omitempty"`

	// Key Metrics
	Frequency        domain.Frequency `json:"frequency"`
	MainTotal        decimal.Decimal  `json:"mainTotal"`
	RiderTotal       decimal.Decimal  `json:"riderTotal"`
	AnnualPremium    decimal.Decimal  `json:"annualPremium"`
	PerPeriod        decimal.Decimal  `json:"perPeriod"`
	PaidPerYear      decimal.Decimal  `json:"paidPerYear"` // Installments summed over a year
	TargetAge        int              `json:"targetAge,omitempty"`
	IllustratedTotal decimal.Decimal  `json:"illustratedTotal"`
	IllustrationNote string           `json:"illustrationNote,omitempty"`

	// Comparison to Base
	PaidDiffFromBase        decimal.Decimal `json:"paidDiffFromBase"`
	PaidPctFromBase         decimal.Decimal `json:"paidPctFromBase"`
	IllustratedDiffFromBase decimal.Decimal `json:"illustratedDiffFromBase"`
}

// Illustrated reports whether the result carries a projection
func (r ComparisonResult) Illustrated() bool {
	return r.Rejected == "" && r.IllustrationNote == ""
}

// ComparisonSet represents a collection of request comparisons
type ComparisonSet struct {
	BaseScenarioName   string             `json:"baseScenarioName"`
	BaseResult         *ComparisonResult  `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	Recommendations    []string           `json:"recommendations"`
	RequestPath        string             `json:"requestPath"`
}

// MetricsCalculator extracts key metrics from priced quotes
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics computes the metrics of one snapshot and its projection.
// projErr explains a missing projection.
func (mc *MetricsCalculator) CalculateMetrics(snap *domain.PolicySnapshot, proj *domain.Projection, projErr error) ComparisonResult {
	result := ComparisonResult{
		Snapshot:      snap,
		Frequency:     domain.FrequencyAnnual,
		MainTotal:     snap.MainTotal,
		RiderTotal:    snap.RiderTotal,
		AnnualPremium: snap.TotalPremium,
		PerPeriod:     snap.TotalPremium,
		PaidPerYear:   snap.TotalPremium,
	}
	if fb := snap.Frequency; fb != nil {
		result.Frequency = fb.Frequency
		result.PerPeriod = fb.PerPeriodTotal
		result.PaidPerYear = fb.DerivedAnnual
	}

	switch {
	case proj != nil:
		result.TargetAge = proj.TargetAge
		result.IllustratedTotal = proj.Total
	case projErr != nil:
		result.IllustrationNote = projErr.Error()
	}
	return result
}

// CalculateComparison computes comparison metrics between a result and a base
func (mc *MetricsCalculator) CalculateComparison(scenario, base ComparisonResult) ComparisonResult {
	scenario.PaidDiffFromBase = scenario.PaidPerYear.Sub(base.PaidPerYear)
	if !base.PaidPerYear.IsZero() {
		scenario.PaidPctFromBase = scenario.PaidDiffFromBase.
			Div(base.PaidPerYear).
			Mul(decimal.NewFromInt(100))
	}
	if scenario.Illustrated() && base.Illustrated() {
		scenario.IllustratedDiffFromBase = scenario.IllustratedTotal.Sub(base.IllustratedTotal)
	}
	return scenario
}

// GenerateRecommendations names the cheapest priced alternatives
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}
	base := compSet.BaseResult
	if base == nil || len(compSet.AlternativeResults) == 0 {
		return recommendations
	}

	cheapest := base
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.Rejected == "" && alt.PaidPerYear.LessThan(cheapest.PaidPerYear) {
			cheapest = alt
		}
	}
	if cheapest != base {
		recommendations = append(recommendations,
			fmt.Sprintf("Lowest yearly outlay: %s pays %s less per year than %s",
				cheapest.ScenarioName, output.FormatVND(base.PaidPerYear.Sub(cheapest.PaidPerYear)), base.ScenarioName))
	}

	if base.Illustrated() {
		lowest := base
		for i := range compSet.AlternativeResults {
			alt := &compSet.AlternativeResults[i]
			if alt.Illustrated() && alt.TargetAge == base.TargetAge && alt.IllustratedTotal.LessThan(lowest.IllustratedTotal) {
				lowest = alt
			}
		}
		if lowest != base {
			recommendations = append(recommendations,
				fmt.Sprintf("Lowest illustrated cost to age %d: %s saves %s",
					base.TargetAge, lowest.ScenarioName, output.FormatVND(base.IllustratedTotal.Sub(lowest.IllustratedTotal))))
		}
	}

	for _, alt := range compSet.AlternativeResults {
		if alt.Rejected != "" {
			recommendations = append(recommendations,
				fmt.Sprintf("%s cannot be issued: %s", alt.ScenarioName, alt.Rejected))
		}
	}
	return recommendations
}
