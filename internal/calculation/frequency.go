package calculation

import (
	"github.com/rgehrsitz/quotecalc/internal/domain"
	"github.com/shopspring/decimal"
)

// ConvertFrequency splits annual premiums into installments. The main part
// is divided evenly and floored to 1,000; the rider part is loaded by the
// frequency factor, divided and rounded to 1,000. Diff is the signed gap
// between the installments paid over a year and the annual premium.
func ConvertFrequency(mainAndExtra, riderTotal decimal.Decimal, freq domain.Frequency) domain.FrequencyBreakdown {
	periods := freq.Periods()
	factor := freq.LoadingFactor()
	n := decimal.NewFromInt(int64(periods))

	perMain := domain.FloorThousand(mainAndExtra.Div(n))
	perRider := domain.RoundThousand(riderTotal.Mul(factor).Div(n))
	if freq == domain.FrequencyAnnual || periods == 1 {
		perMain = mainAndExtra
		perRider = riderTotal
	}
	perPeriod := perMain.Add(perRider)
	derived := perPeriod.Mul(n)
	annual := mainAndExtra.Add(riderTotal)

	if freq == "" {
		freq = domain.FrequencyAnnual
	}
	return domain.FrequencyBreakdown{
		Frequency:      freq,
		Periods:        periods,
		LoadingFactor:  factor,
		AnnualMain:     mainAndExtra,
		AnnualRiders:   riderTotal,
		PerPeriodMain:  perMain,
		PerPeriodRider: perRider,
		PerPeriodTotal: perPeriod,
		DerivedAnnual:  derived,
		AnnualTotal:    annual,
		Diff:           derived.Sub(annual),
	}
}

// CompareFrequencies returns the breakdown for every payment mode
func CompareFrequencies(mainAndExtra, riderTotal decimal.Decimal) []domain.FrequencyBreakdown {
	out := make([]domain.FrequencyBreakdown, 0, len(domain.Frequencies))
	for _, f := range domain.Frequencies {
		out = append(out, ConvertFrequency(mainAndExtra, riderTotal, f))
	}
	return out
}
