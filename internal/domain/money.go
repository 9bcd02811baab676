package domain

import "github.com/shopspring/decimal"

// Thousand is the rounding unit for every premium and sum insured
var Thousand = decimal.NewFromInt(1000)

// FloorThousand floors x to a multiple of 1,000. Non-positive values yield zero.
func FloorThousand(x decimal.Decimal) decimal.Decimal {
	if !x.IsPositive() {
		return decimal.Zero
	}
	return x.Div(Thousand).Floor().Mul(Thousand)
}

// RoundThousand rounds x to the nearest multiple of 1,000, halves away from zero
func RoundThousand(x decimal.Decimal) decimal.Decimal {
	return x.Div(Thousand).Round(0).Mul(Thousand)
}

// Money builds a decimal from a whole-dong amount
func Money(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}
