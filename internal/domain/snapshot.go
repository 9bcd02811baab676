package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MainPremium is the priced main product. MinPremium and MaxPremium are
// only set for the flexible-premium family.
type MainPremium struct {
	Product          ProductKey      `json:"product"`
	SumInsured       decimal.Decimal `json:"sumInsured"`
	BasePremium      decimal.Decimal `json:"basePremium"`
	ExtraPremium     decimal.Decimal `json:"extraPremium"`
	MinPremium       decimal.Decimal `json:"minPremium"`
	MaxPremium       decimal.Decimal `json:"maxPremium"`
	PaymentTermYears int             `json:"paymentTermYears"`
	TermYears        int             `json:"termYears,omitempty"`
	Eligible         bool            `json:"eligible"`
}

// Total is base plus extra premium
func (m MainPremium) Total() decimal.Decimal {
	return m.BasePremium.Add(m.ExtraPremium)
}

// RiderPremium is one priced rider for one insured
type RiderPremium struct {
	Kind       RiderKind       `json:"kind"`
	SumInsured decimal.Decimal `json:"sumInsured"`
	Program    HealthProgram   `json:"program,omitempty"`
	Premium    decimal.Decimal `json:"premium"`
}

// InsuredPremiums groups the rider premiums of one insured
type InsuredPremiums struct {
	InsuredID string          `json:"insuredId"`
	Name      string          `json:"name,omitempty"`
	Age       int             `json:"age"`
	Riders    []RiderPremium  `json:"riders"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// Premium returns the premium of one rider kind, zero when absent
func (ip InsuredPremiums) Premium(kind RiderKind) decimal.Decimal {
	for _, r := range ip.Riders {
		if r.Kind == kind {
			return r.Premium
		}
	}
	return decimal.Zero
}

// WaiverPremium is the priced premium-waiver rider
type WaiverPremium struct {
	Beneficiary string          `json:"beneficiary"`
	Name        string          `json:"name,omitempty"`
	Age         int             `json:"age"`
	Gender      Gender          `json:"gender"`
	Base        decimal.Decimal `json:"base"`
	Premium     decimal.Decimal `json:"premium"`
}

// FrequencyBreakdown splits the annual premium into installments
type FrequencyBreakdown struct {
	Frequency      Frequency       `json:"frequency"`
	Periods        int             `json:"periods"`
	LoadingFactor  decimal.Decimal `json:"loadingFactor"`
	AnnualMain     decimal.Decimal `json:"annualMain"`
	AnnualRiders   decimal.Decimal `json:"annualRiders"`
	PerPeriodMain  decimal.Decimal `json:"perPeriodMain"`
	PerPeriodRider decimal.Decimal `json:"perPeriodRider"`
	PerPeriodTotal decimal.Decimal `json:"perPeriodTotal"`
	DerivedAnnual  decimal.Decimal `json:"derivedAnnual"`
	AnnualTotal    decimal.Decimal `json:"annualTotal"`
	Diff           decimal.Decimal `json:"diff"`
}

// PolicySnapshot is the result of one all-or-nothing pricing pass
type PolicySnapshot struct {
	ID                    string              `json:"id"`
	ReferenceDate         time.Time           `json:"referenceDate"`
	Main                  MainPremium         `json:"main"`
	Insureds              []InsuredPremiums   `json:"insureds"`
	Waiver                *WaiverPremium      `json:"waiver,omitempty"`
	MainTotal             decimal.Decimal     `json:"mainTotal"`
	RiderTotal            decimal.Decimal     `json:"riderTotal"`
	TotalPremium          decimal.Decimal     `json:"totalPremium"`
	HospitalCashCap       decimal.Decimal     `json:"hospitalCashCap"`
	HospitalCashCommitted decimal.Decimal     `json:"hospitalCashCommitted"`
	Frequency             *FrequencyBreakdown `json:"frequency,omitempty"`
	Advisories            []Advisory          `json:"advisories,omitempty"`
}

// Insured returns the premiums of one insured
func (s *PolicySnapshot) Insured(id string) (InsuredPremiums, bool) {
	for _, ip := range s.Insureds {
		if ip.InsuredID == id {
			return ip, true
		}
	}
	return InsuredPremiums{}, false
}

// WaiverTotal returns the waiver premium or zero
func (s *PolicySnapshot) WaiverTotal() decimal.Decimal {
	if s.Waiver == nil {
		return decimal.Zero
	}
	return s.Waiver.Premium
}
