package compare

import (
	"encoding/csv"
	"errors"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rgehrsitz/quotecalc/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTestComparisonSet() *ComparisonSet {
	mc := NewMetricsCalculator()
	base := ComparisonResult{
		ScenarioName:     "family",
		Description:      "As requested",
		Frequency:        domain.FrequencyAnnual,
		MainTotal:        domain.Money(25_000_000),
		RiderTotal:       domain.Money(12_000_000),
		AnnualPremium:    domain.Money(37_000_000),
		PerPeriod:        domain.Money(37_000_000),
		PaidPerYear:      domain.Money(37_000_000),
		TargetAge:        60,
		IllustratedTotal: domain.Money(700_000_000),
	}
	quarterly := mc.CalculateComparison(ComparisonResult{
		ScenarioName:     "quarterly",
		Description:      "Pay four times a year",
		Frequency:        domain.FrequencyQuarterly,
		MainTotal:        domain.Money(25_000_000),
		RiderTotal:       domain.Money(12_000_000),
		AnnualPremium:    domain.Money(37_000_000),
		PerPeriod:        domain.Money(9_370_000),
		PaidPerYear:      domain.Money(37_480_000),
		TargetAge:        60,
		IllustratedTotal: domain.Money(712_000_000),
	}, base)
	noExtra := mc.CalculateComparison(ComparisonResult{
		ScenarioName:     "no_extra",
		Description:      "Drop the extra premium",
		Frequency:        domain.FrequencyAnnual,
		MainTotal:        domain.Money(20_000_000),
		RiderTotal:       domain.Money(12_000_000),
		AnnualPremium:    domain.Money(32_000_000),
		PerPeriod:        domain.Money(32_000_000),
		PaidPerYear:      domain.Money(32_000_000),
		TargetAge:        60,
		IllustratedTotal: domain.Money(650_000_000),
	}, base)
	rejected := ComparisonResult{
		ScenarioName: "custom",
		Description:  "Set main premium to 1.000.000 ₫",
		Frequency:    domain.FrequencyAnnual,
		Rejected:     "main premium below minimum",
	}

	set := &ComparisonSet{
		BaseScenarioName:   "family",
		BaseResult:         &base,
		AlternativeResults: []ComparisonResult{quarterly, noExtra, rejected},
		RequestPath:        "quote.yaml",
	}
	set.Recommendations = GenerateRecommendations(set)
	return set
}

func TestCalculateComparison(t *testing.T) {
	set := buildTestComparisonSet()
	quarterly := set.AlternativeResults[0]
	assert.True(t, quarterly.PaidDiffFromBase.Equal(domain.Money(480_000)))
	assert.Equal(t, "1.30", quarterly.PaidPctFromBase.StringFixed(2))
	assert.True(t, quarterly.IllustratedDiffFromBase.Equal(domain.Money(12_000_000)))
}

func TestCalculateMetrics(t *testing.T) {
	mc := NewMetricsCalculator()
	snap := &domain.PolicySnapshot{
		MainTotal:    domain.Money(25_000_000),
		RiderTotal:   domain.Money(12_000_000),
		TotalPremium: domain.Money(37_000_000),
		Frequency: &domain.FrequencyBreakdown{
			Frequency:      domain.FrequencySemiAnnual,
			PerPeriodTotal: domain.Money(18_620_000),
			DerivedAnnual:  domain.Money(37_240_000),
		},
	}
	proj := &domain.Projection{TargetAge: 60, Total: domain.Money(700_000_000)}

	r := mc.CalculateMetrics(snap, proj, nil)
	assert.Equal(t, domain.FrequencySemiAnnual, r.Frequency)
	assert.True(t, r.PerPeriod.Equal(domain.Money(18_620_000)))
	assert.True(t, r.PaidPerYear.Equal(domain.Money(37_240_000)))
	assert.True(t, r.Illustrated())
	assert.Same(t, snap, r.Snapshot)

	r = mc.CalculateMetrics(&domain.PolicySnapshot{TotalPremium: domain.Money(10)}, nil, errors.New("target too early"))
	assert.Equal(t, domain.FrequencyAnnual, r.Frequency)
	assert.True(t, r.PaidPerYear.Equal(domain.Money(10)))
	assert.Equal(t, "target too early", r.IllustrationNote)
	assert.False(t, r.Illustrated())
}

func TestGenerateRecommendations(t *testing.T) {
	set := buildTestComparisonSet()
	require.Len(t, set.Recommendations, 3)
	assert.Equal(t, "Lowest yearly outlay: no_extra pays 5.000.000 ₫ less per year than family", set.Recommendations[0])
	assert.Equal(t, "Lowest illustrated cost to age 60: no_extra saves 50.000.000 ₫", set.Recommendations[1])
	assert.Equal(t, "custom cannot be issued: main premium below minimum", set.Recommendations[2])

	assert.Empty(t, GenerateRecommendations(&ComparisonSet{BaseResult: set.BaseResult}))
}

func TestTableFormatter(t *testing.T) {
	out := (&TableFormatter{}).Format(buildTestComparisonSet())

	assert.Contains(t, out, "WHAT-IF QUOTE COMPARISON")
	assert.Contains(t, out, "Request: quote.yaml")
	assert.Contains(t, out, "family (base)")
	assert.Contains(t, out, "37.000.000")
	assert.Contains(t, out, "700.0 tr")
	assert.Contains(t, out, "Paid per year:    +480.000 (+1.3%)")
	assert.Contains(t, out, "Paid per year:    -5.000.000 (-13.5%)")
	assert.Contains(t, out, "Illustrated:      -50.000.000")
	assert.Contains(t, out, "Rejected:         main premium below minimum")
	assert.Contains(t, out, "RECOMMENDATIONS")
	assert.Contains(t, out, "• Lowest yearly outlay")
}

func TestTableFormatter_Helpers(t *testing.T) {
	tf := &TableFormatter{}
	assert.Equal(t, "1.25 tỷ", tf.formatDecimal(domain.Money(1_250_000_000)))
	assert.Equal(t, "2.5 tr", tf.formatDecimal(domain.Money(2_500_000)))
	assert.Equal(t, "900.000", tf.formatDecimal(domain.Money(900_000)))
	assert.Equal(t, "Binh...", tf.truncate("Binh An Family", 7))
	assert.Equal(t, "short", tf.truncate("short", 7))
}

func TestTableFormatter_Compact(t *testing.T) {
	out := (&TableFormatter{}).FormatCompact(buildTestComparisonSet())
	assert.Equal(t, "Base: family | quarterly: +480.000 | no_extra: -5.000.000 | custom: rejected", out)
}

func TestCSVFormatter(t *testing.T) {
	out, err := (&CSVFormatter{}).Format(buildTestComparisonSet())
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 5)
	assert.Equal(t, "Scenario", records[0][0])
	assert.Equal(t, []string{"family", "base"}, records[1][:2])
	assert.Equal(t, "60", records[1][9])
	assert.Equal(t, "480000", records[2][11])
	assert.Equal(t, "-13.51", records[3][12])
	assert.Equal(t, "", records[4][9], "rejected rows have no target age")
	assert.Equal(t, "main premium below minimum", records[4][14])
}

func TestJSONFormatter(t *testing.T) {
	set := buildTestComparisonSet()
	for _, pretty := range []bool{true, false} {
		out, err := (&JSONFormatter{Pretty: pretty}).Format(set)
		require.NoError(t, err)
		assert.Equal(t, pretty, strings.Contains(out, "\n  "))

		var decoded struct {
			BaseScenarioName   string `json:"baseScenarioName"`
			AlternativeResults []struct {
				ScenarioName string `json:"scenarioName"`
				Rejected     string `json:"rejected"`
			} `json:"alternativeResults"`
			Recommendations []string `json:"recommendations"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &decoded))
		assert.Equal(t, "family", decoded.BaseScenarioName)
		require.Len(t, decoded.AlternativeResults, 3)
		assert.Equal(t, "main premium below minimum", decoded.AlternativeResults[2].Rejected)
		assert.Len(t, decoded.Recommendations, 3)
	}
}
