package domain

import "github.com/shopspring/decimal"

const (
	// MainInsuredID is the fixed identifier of the policy owner's insured
	MainInsuredID = "main"
	// BeneficiaryOther nominates a waiver beneficiary who is not an insured
	BeneficiaryOther = "other"
	// MaxSupplementaryInsureds caps the people added next to the main insured
	MaxSupplementaryInsureds = 10
)

// MainProductSelection is the main product configured for the main insured
type MainProductSelection struct {
	Product          ProductKey      `json:"product"`
	SumInsured       decimal.Decimal `json:"sumInsured"`
	EnteredPremium   decimal.Decimal `json:"enteredPremium"`
	PaymentTermYears int             `json:"paymentTermYears,omitempty"`
	TermYears        int             `json:"termYears,omitempty"`
	ExtraPremium     decimal.Decimal `json:"extraPremium"`
}

// HealthSelection configures the health rider
type HealthSelection struct {
	Enabled    bool          `json:"enabled"`
	Program    HealthProgram `json:"program,omitempty"`
	Scope      HealthScope   `json:"scope,omitempty"`
	Outpatient bool          `json:"outpatient"`
	Dental     bool          `json:"dental"`
}

// SumInsuredSelection configures a rider priced on a sum insured
type SumInsuredSelection struct {
	Enabled    bool            `json:"enabled"`
	SumInsured decimal.Decimal `json:"sumInsured"`
}

// HospitalCashSelection configures the hospital-cash rider
type HospitalCashSelection struct {
	Enabled     bool            `json:"enabled"`
	DailyAmount decimal.Decimal `json:"dailyAmount"`
}

// RiderSelection holds the four per-insured riders
type RiderSelection struct {
	Health          HealthSelection       `json:"health"`
	CriticalIllness SumInsuredSelection   `json:"criticalIllness"`
	Accident        SumInsuredSelection   `json:"accident"`
	HospitalCash    HospitalCashSelection `json:"hospitalCash"`
}

// Enabled reports whether the rider of the given kind is switched on
func (r RiderSelection) Enabled(kind RiderKind) bool {
	switch kind {
	case RiderHealth:
		return r.Health.Enabled
	case RiderCriticalIllness:
		return r.CriticalIllness.Enabled
	case RiderAccident:
		return r.Accident.Enabled
	case RiderHospitalCash:
		return r.HospitalCash.Enabled
	}
	return false
}

// Any reports whether at least one rider is switched on
func (r RiderSelection) Any() bool {
	for _, kind := range RiderKinds {
		if r.Enabled(kind) {
			return true
		}
	}
	return false
}

// Insured is one person covered by the policy
type Insured struct {
	ID      string          `json:"id"`
	Profile CustomerProfile `json:"profile"`
	Riders  RiderSelection  `json:"riders"`
}

// WaiverSelection configures the premium-waiver rider. Beneficiary holds
// an insured ID or BeneficiaryOther, in which case Other describes the person.
type WaiverSelection struct {
	Enabled     bool             `json:"enabled"`
	Beneficiary string           `json:"beneficiary,omitempty"`
	Other       *CustomerProfile `json:"other,omitempty"`
}

// Policy is the full set of selections priced in one pass
type Policy struct {
	Main          Insured              `json:"main"`
	Supplementary []Insured            `json:"supplementary,omitempty"`
	Product       MainProductSelection `json:"product"`
	Waiver        WaiverSelection      `json:"waiver"`
}

// Insureds returns the main insured followed by supplementary insureds in creation order
func (p *Policy) Insureds() []*Insured {
	out := make([]*Insured, 0, len(p.Supplementary)+1)
	out = append(out, &p.Main)
	for i := range p.Supplementary {
		out = append(out, &p.Supplementary[i])
	}
	return out
}

// FindInsured looks up an insured by ID
func (p *Policy) FindInsured(id string) (*Insured, bool) {
	for _, ins := range p.Insureds() {
		if ins.ID == id {
			return ins, true
		}
	}
	return nil, false
}
