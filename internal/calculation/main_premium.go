package calculation

import (
	"github.com/rgehrsitz/quotecalc/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	minRecommendedSumInsured = decimal.NewFromInt(domain.MinRecommendedSumInsured)
	minRecommendedPremium    = decimal.NewFromInt(domain.MinRecommendedPremium)
	maxExtraMultiple         = decimal.NewFromInt(5)
)

// perThousand prices a sum insured at a per-1,000 rate and floors the result
func perThousand(sumInsured, rate decimal.Decimal) decimal.Decimal {
	return domain.FloorThousand(sumInsured.Div(domain.Thousand).Mul(rate))
}

// mainPremium prices the main product for the current year. The only hard
// failure is an out-of-range flexible premium.
func (p *pass) mainPremium() (domain.MainPremium, error) {
	sel := p.policy.Product
	main := p.policy.Main
	profile := main.Profile
	age := profile.Age()
	resolver := p.ce.Eligibility

	result := domain.MainPremium{
		Product:          sel.Product,
		SumInsured:       domain.FloorThousand(sel.SumInsured),
		PaymentTermYears: resolver.EffectivePaymentTerm(sel),
		TermYears:        sel.TermYears,
	}

	if profile.RiskGroup <= 0 {
		p.advise("main.occupation", main.ID, "occupation %q is not in the directory; choose one with a risk group", profile.Occupation)
	}
	if sel.Product == "" {
		p.advise("main.product", main.ID, "no main product selected")
		return result, nil
	}
	if sel.Product.Family() == domain.FamilyUnknown {
		p.advise("main.product", main.ID, "unknown main product %q", sel.Product)
		return result, nil
	}
	if !resolver.IsProductEligible(sel.Product, profile) {
		p.advise("main.product", main.ID, "%s is not available at age %d", sel.Product.DisplayName(), age)
		return result, nil
	}
	result.Eligible = true

	switch sel.Product.Family() {
	case domain.FamilyPUL:
		if rate, ok := p.ce.Rates.PULRate(sel.Product, age, profile.Gender); ok {
			result.BasePremium = perThousand(result.SumInsured, rate)
		}
		p.adviseMinimums(result)
		p.checkPaymentTerm(sel, age)

	case domain.FamilyMUL:
		if err := p.flexiblePremium(sel, age, &result); err != nil {
			return domain.MainPremium{}, err
		}
		p.checkPaymentTerm(sel, age)

	case domain.FamilyFixedTerm:
		result.SumInsured = decimal.NewFromInt(domain.TronTamAnSumInsured)
		result.TermYears = domain.TronTamAnTermYears
		if rate, ok := p.ce.Rates.TermRate(domain.TronTamAnTermYears, age, profile.Gender); ok {
			result.BasePremium = perThousand(result.SumInsured, rate)
		}

	case domain.FamilyFlexibleTerm:
		if !resolver.IsTermAllowed(sel.Product, age, sel.TermYears) {
			p.advise("main.term_years", main.ID, "term of %d years is not available at age %d (allowed: %v)",
				sel.TermYears, age, resolver.AllowedTerms(sel.Product, age))
			return result, nil
		}
		if rate, ok := p.ce.Rates.TermRate(sel.TermYears, age, profile.Gender); ok {
			result.BasePremium = perThousand(result.SumInsured, rate)
		}
		p.adviseMinimums(result)
	}

	return result, nil
}

func (p *pass) adviseMinimums(m domain.MainPremium) {
	if m.SumInsured.IsPositive() && m.SumInsured.LessThan(minRecommendedSumInsured) {
		p.advise("main.sum_insured", domain.MainInsuredID, "sum insured should be at least %s", minRecommendedSumInsured)
	}
	if m.BasePremium.IsPositive() && m.BasePremium.LessThan(minRecommendedPremium) {
		p.advise("main.premium", domain.MainInsuredID, "premium should be at least %s", minRecommendedPremium)
	}
}

// flexiblePremium validates a user-entered premium against the bounds
// derived from the age band's factors.
func (p *pass) flexiblePremium(sel domain.MainProductSelection, age int, result *domain.MainPremium) error {
	entered := domain.FloorThousand(sel.EnteredPremium)
	band, ok := p.ce.Rates.MULFactor(age)
	if !ok {
		p.advise("main.premium", domain.MainInsuredID, "no premium factors for age %d", age)
		return nil
	}
	result.BasePremium = entered
	if !result.SumInsured.IsPositive() {
		return nil
	}
	result.MinPremium = result.SumInsured.Div(band.MaxFactor)
	result.MaxPremium = result.SumInsured.Div(band.MinFactor)
	if !entered.IsPositive() {
		return nil
	}
	if entered.LessThan(result.MinPremium) || entered.GreaterThan(result.MaxPremium) || entered.LessThan(minRecommendedPremium) {
		return domain.NewValidationError(domain.KindMainPremium, "main.premium", domain.MainInsuredID,
			"premium %s must be between %s and %s and at least %s",
			entered, result.MinPremium.Ceil(), result.MaxPremium.Floor(), minRecommendedPremium)
	}
	return nil
}

func (p *pass) checkPaymentTerm(sel domain.MainProductSelection, age int) {
	lo, hi := p.ce.Eligibility.PaymentTermBounds(sel.Product, age)
	if sel.PaymentTermYears < lo || sel.PaymentTermYears > hi {
		p.advise("main.payment_term", domain.MainInsuredID, "payment term must be between %d and %d years", lo, hi)
	}
}

// extraPremium applies the top-up rules against the base premium
func (p *pass) extraPremium(main domain.MainPremium) (decimal.Decimal, error) {
	extra := domain.FloorThousand(p.policy.Product.ExtraPremium)
	if !extra.IsPositive() || !main.Eligible {
		return decimal.Zero, nil
	}
	if !main.Product.AllowsExtraPremium() {
		p.advise("main.extra_premium", domain.MainInsuredID, "%s does not accept an extra premium", main.Product.DisplayName())
		return decimal.Zero, nil
	}
	if main.BasePremium.IsPositive() && extra.GreaterThan(main.BasePremium.Mul(maxExtraMultiple)) {
		return decimal.Zero, domain.NewValidationError(domain.KindExtraPremium, "main.extra_premium", domain.MainInsuredID,
			"extra premium %s exceeds 5 times the base premium %s", extra, main.BasePremium)
	}
	return extra, nil
}
