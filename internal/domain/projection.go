package domain

import (
	"github.com/shopspring/decimal"
)

// InsuredYear holds one insured's rider premiums for a projected year
type InsuredYear struct {
	InsuredID string          `json:"insuredId"`
	Age       int             `json:"age"`
	Riders    []RiderPremium  `json:"riders"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// ProjectionRow is one contract year of the illustration
type ProjectionRow struct {
	Year         int             `json:"year"`
	MainAge      int             `json:"mainAge"`
	MainPremium  decimal.Decimal `json:"mainPremium"`
	ExtraPremium decimal.Decimal `json:"extraPremium"`
	Insureds     []InsuredYear   `json:"insureds"`
	Waiver       decimal.Decimal `json:"waiver"`
	RiderTotal   decimal.Decimal `json:"riderTotal"`
	Total        decimal.Decimal `json:"total"`
	Cumulative   decimal.Decimal `json:"cumulative"`

	// Set only for semiannual and quarterly payment
	FrequencyTotal decimal.Decimal `json:"frequencyTotal"`
	FrequencyDiff  decimal.Decimal `json:"frequencyDiff"`
}

// ProductLine summarises one product over the illustration
type ProductLine struct {
	InsuredID  string          `json:"insuredId"`
	Name       string          `json:"name,omitempty"`
	Product    string          `json:"product"`
	SumInsured decimal.Decimal `json:"sumInsured"`
	Years      int             `json:"years"`
	Premium    decimal.Decimal `json:"premium"`
}

// Projection is the multi-year premium illustration
type Projection struct {
	ID         string          `json:"id"`
	StartAge   int             `json:"startAge"`
	TargetAge  int             `json:"targetAge"`
	Frequency  Frequency       `json:"frequency"`
	InsuredIDs []string        `json:"insuredIds"`
	Rows       []ProjectionRow `json:"rows"`
	Lines      []ProductLine   `json:"lines"`
	Total      decimal.Decimal `json:"total"`
}

// Years returns the number of projected contract years
func (p *Projection) Years() int {
	return len(p.Rows)
}
