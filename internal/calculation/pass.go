package calculation

import (
	"fmt"

	"github.com/rgehrsitz/quotecalc/internal/domain"
	"github.com/shopspring/decimal"
)

// pass is the explicit context of one pricing evaluation. offset is the
// number of years after the reference date; the current-year pass uses 0.
type pass struct {
	ce         *CalculationEngine
	policy     *domain.Policy
	offset     int
	projecting bool
	mainBase   decimal.Decimal
	cap        *capTracker
	advisories []domain.Advisory
}

func (ce *CalculationEngine) newPass(policy *domain.Policy, offset int, mainBase decimal.Decimal, projecting bool) *pass {
	return &pass{
		ce:         ce,
		policy:     policy,
		offset:     offset,
		projecting: projecting,
		mainBase:   mainBase,
		cap:        newCapTracker(mainBase),
	}
}

// advise records a soft hint. Projected years stay silent.
func (p *pass) advise(field, insuredID, format string, args ...any) {
	if p.projecting {
		return
	}
	a := domain.Advisory{Field: field, InsuredID: insuredID, Message: fmt.Sprintf(format, args...)}
	p.ce.Logger.Debugf("advisory %s", a)
	p.advisories = append(p.advisories, a)
}

// normalizePolicy copies the policy, filling in missing insured IDs, so
// callers never see their input mutated.
func normalizePolicy(in *domain.Policy) *domain.Policy {
	out := *in
	out.Main.ID = domain.MainInsuredID
	out.Supplementary = make([]domain.Insured, len(in.Supplementary))
	copy(out.Supplementary, in.Supplementary)
	for i := range out.Supplementary {
		if out.Supplementary[i].ID == "" {
			out.Supplementary[i].ID = fmt.Sprintf("supp-%d", i+1)
		}
	}
	return &out
}

// validateStructure enforces the policy-shape rules checked before pricing
func (ce *CalculationEngine) validateStructure(policy *domain.Policy) error {
	product := policy.Product.Product
	if n := len(policy.Supplementary); n > domain.MaxSupplementaryInsureds {
		return domain.NewValidationError(domain.KindTooManyInsureds, "supplementary", "",
			"at most %d supplementary insureds are allowed, got %d", domain.MaxSupplementaryInsureds, n)
	}
	if len(policy.Supplementary) > 0 && !ce.Eligibility.SupplementaryAllowed(product) {
		return domain.NewValidationError(domain.KindSupplementaryNotAllowed, "supplementary", "",
			"%s does not allow supplementary insureds", product.DisplayName())
	}
	if policy.Waiver.Enabled && !ce.Eligibility.WaiverAllowed(product) {
		return domain.NewValidationError(domain.KindWaiverNotAllowed, "waiver", "",
			"%s does not allow the premium-waiver rider", product.DisplayName())
	}
	seen := map[string]bool{domain.MainInsuredID: true, domain.BeneficiaryOther: true}
	for _, ins := range policy.Supplementary {
		if seen[ins.ID] {
			return domain.NewValidationError(domain.KindDuplicateInsured, "supplementary.id", ins.ID,
				"insured id %q is reserved or already used", ins.ID)
		}
		seen[ins.ID] = true
	}
	return nil
}
