package calculation

import (
	"github.com/rgehrsitz/quotecalc/internal/domain"
	"github.com/shopspring/decimal"
)

// waiverBeneficiary resolves the nominated person. The main insured cannot
// be nominated; a listed insured or an outside person with a valid date of
// birth aged 18 to 60 at selection can.
func (p *pass) waiverBeneficiary() (id string, profile domain.CustomerProfile, listed bool, err error) {
	w := p.policy.Waiver
	switch w.Beneficiary {
	case "":
		return "", profile, false, domain.NewValidationError(domain.KindWaiverBeneficiary, "waiver.beneficiary", "",
			"select a beneficiary for the premium-waiver rider")
	case domain.MainInsuredID:
		return "", profile, false, domain.NewValidationError(domain.KindWaiverBeneficiary, "waiver.beneficiary", domain.MainInsuredID,
			"the main insured cannot be the premium-waiver beneficiary")
	case domain.BeneficiaryOther:
		if w.Other == nil || !w.Other.Valid() || !w.Other.Gender.Valid() {
			return "", profile, false, domain.NewValidationError(domain.KindWaiverBeneficiary, "waiver.other", "",
				"a valid date of birth and gender are required for the premium-waiver beneficiary")
		}
		profile = *w.Other
	default:
		ins, ok := p.policy.FindInsured(w.Beneficiary)
		if !ok {
			return "", profile, false, domain.NewValidationError(domain.KindWaiverBeneficiary, "waiver.beneficiary", w.Beneficiary,
				"premium-waiver beneficiary %q is not an insured on this policy", w.Beneficiary)
		}
		profile = ins.Profile
		listed = true
	}
	if !p.ce.Eligibility.IsWaiverBeneficiaryEligible(profile) {
		return "", profile, false, domain.NewValidationError(domain.KindWaiverBeneficiary, "waiver.beneficiary", w.Beneficiary,
			"premium-waiver beneficiary must be aged 18 to 60, got %d", profile.Age())
	}
	return w.Beneficiary, profile, listed, nil
}

// waiverPremium prices the waiver rider on the aggregate base: the main
// base premium due this year plus every insured's rider premiums, less the
// beneficiary's own riders when the beneficiary is a listed insured.
func (p *pass) waiverPremium(mainBase decimal.Decimal, subtotals map[string]decimal.Decimal) (*domain.WaiverPremium, error) {
	if !p.policy.Waiver.Enabled {
		return nil, nil
	}
	id, profile, listed, err := p.waiverBeneficiary()
	if err != nil {
		return nil, err
	}

	wp := &domain.WaiverPremium{
		Beneficiary: id,
		Name:        profile.Name,
		Age:         profile.Age() + p.offset,
		Gender:      profile.Gender,
	}
	if !p.ce.Eligibility.IsRenewable(domain.RiderWaiver, wp.Age) {
		return wp, nil
	}

	base := mainBase
	for insuredID, sub := range subtotals {
		if listed && insuredID == id {
			continue
		}
		base = base.Add(sub)
	}
	wp.Base = base
	if rate, ok := p.ce.Rates.WaiverRate(wp.Age, profile.Gender); ok {
		wp.Premium = perThousand(base, rate)
	}
	return wp, nil
}
