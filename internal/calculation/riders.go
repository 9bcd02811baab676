package calculation

import (
	"github.com/rgehrsitz/quotecalc/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	criticalIllnessMin = decimal.NewFromInt(200_000_000)
	criticalIllnessMax = decimal.NewFromInt(5_000_000_000)
	accidentMin        = decimal.NewFromInt(10_000_000)
	accidentMax        = decimal.NewFromInt(8_000_000_000)
	hundred            = decimal.NewFromInt(100)
)

// insuredRiders prices every selected rider of one insured in the fixed
// order health, critical illness, accident, hospital cash.
func (p *pass) insuredRiders(ins *domain.Insured) ([]domain.RiderPremium, decimal.Decimal, error) {
	var (
		riders   []domain.RiderPremium
		subtotal decimal.Decimal
	)
	resolver := p.ce.Eligibility
	product := p.policy.Product.Product
	age := ins.Profile.Age() + p.offset

	for _, kind := range domain.RiderKinds {
		if !p.selected(ins, kind) {
			continue
		}
		if !resolver.IsRiderCompatible(product, kind) {
			p.advise(string(kind), ins.ID, "%s cannot be combined with %s", kind.DisplayName(), product.DisplayName())
			continue
		}
		if !resolver.IsRiderEligible(kind, ins.Profile) {
			p.advise(string(kind), ins.ID, "%s is not available for this insured at age %d", kind.DisplayName(), ins.Profile.Age())
			continue
		}
		if !resolver.IsRenewable(kind, age) {
			continue
		}

		var (
			rp  domain.RiderPremium
			err error
		)
		switch kind {
		case domain.RiderHealth:
			rp = p.healthPremium(ins, age)
		case domain.RiderCriticalIllness:
			rp, err = p.criticalIllnessPremium(ins, age)
		case domain.RiderAccident:
			rp, err = p.accidentPremium(ins)
		case domain.RiderHospitalCash:
			rp, err = p.hospitalCashPremium(ins, age)
		}
		if err != nil {
			return nil, decimal.Zero, err
		}
		riders = append(riders, rp)
		subtotal = subtotal.Add(rp.Premium)
	}
	return riders, subtotal, nil
}

// selected reports whether a rider is on. The fixed-term product forces
// health on for the main insured.
func (p *pass) selected(ins *domain.Insured, kind domain.RiderKind) bool {
	if kind == domain.RiderHealth && ins.ID == domain.MainInsuredID &&
		p.ce.Eligibility.HealthRequired(p.policy.Product.Product) {
		return true
	}
	return ins.Riders.Enabled(kind)
}

func (p *pass) healthPremium(ins *domain.Insured, age int) domain.RiderPremium {
	sel := ins.Riders.Health
	requested := sel.Program
	if requested == "" {
		requested = domain.ProgramEnhanced
	}
	scope := sel.Scope
	if scope == "" {
		scope = domain.ScopeDomestic
	}

	allowed := p.ce.Eligibility.AllowedPrograms(p.policy.Product.Product, p.mainBase)
	program, ok := p.ce.Eligibility.ResolveProgram(requested, allowed)
	if !ok {
		if program == "" {
			p.advise("health.program", ins.ID, "main premium %s does not unlock any health program", p.mainBase)
		} else {
			p.advise("health.program", ins.ID, "program %s is not unlocked by main premium %s; using %s",
				requested, p.mainBase, program)
		}
	}

	rp := domain.RiderPremium{Kind: domain.RiderHealth, Program: program}
	if program == "" {
		return rp
	}
	rp.SumInsured = program.SumInsured()

	band, ok := p.ce.Rates.HealthBand(age)
	if !ok {
		return rp
	}
	total, _ := p.ce.Rates.HealthCoreRate(band, scope, program)
	if sel.Outpatient {
		if rate, ok := p.ce.Rates.HealthOutpatientRate(band, program); ok {
			total = total.Add(rate)
		}
	}
	if sel.Dental {
		if rate, ok := p.ce.Rates.HealthDentalRate(band, program); ok {
			total = total.Add(rate)
		}
	}
	rp.Premium = domain.FloorThousand(total)
	return rp
}

func (p *pass) criticalIllnessPremium(ins *domain.Insured, age int) (domain.RiderPremium, error) {
	raw := ins.Riders.CriticalIllness.SumInsured
	rp := domain.RiderPremium{Kind: domain.RiderCriticalIllness, SumInsured: domain.FloorThousand(raw)}
	if rp.SumInsured.IsZero() {
		return rp, nil
	}
	if raw.LessThan(criticalIllnessMin) || raw.GreaterThan(criticalIllnessMax) {
		return rp, domain.NewValidationError(domain.KindCriticalIllnessSum, "critical_illness.sum_insured", ins.ID,
			"critical-illness sum insured %s must be between %s and %s", raw, criticalIllnessMin, criticalIllnessMax)
	}
	if rate, ok := p.ce.Rates.CriticalIllnessRate(age, ins.Profile.Gender); ok {
		rp.Premium = perThousand(rp.SumInsured, rate)
	}
	return rp, nil
}

func (p *pass) accidentPremium(ins *domain.Insured) (domain.RiderPremium, error) {
	raw := ins.Riders.Accident.SumInsured
	rp := domain.RiderPremium{Kind: domain.RiderAccident, SumInsured: domain.FloorThousand(raw)}
	group := ins.Profile.RiskGroup
	if group <= 0 {
		p.advise("accident", ins.ID, "occupation risk group is unresolved; accident premium not priced")
		return rp, nil
	}
	if rp.SumInsured.IsZero() {
		return rp, nil
	}
	if raw.LessThan(accidentMin) || raw.GreaterThan(accidentMax) {
		return rp, domain.NewValidationError(domain.KindAccidentSum, "accident.sum_insured", ins.ID,
			"accident sum insured %s must be between %s and %s", raw, accidentMin, accidentMax)
	}
	if rate, ok := p.ce.Rates.AccidentRate(group); ok {
		rp.Premium = perThousand(rp.SumInsured, rate)
	}
	return rp, nil
}

func (p *pass) hospitalCashPremium(ins *domain.Insured, age int) (domain.RiderPremium, error) {
	daily := ins.Riders.HospitalCash.DailyAmount
	rp := domain.RiderPremium{Kind: domain.RiderHospitalCash, SumInsured: daily}
	if !daily.IsPositive() {
		rp.SumInsured = decimal.Zero
		return rp, nil
	}
	if err := p.cap.reserve(daily, age, ins.ID); err != nil {
		return rp, err
	}
	if rate, ok := p.ce.Rates.HospitalCashRate(age); ok {
		rp.Premium = domain.FloorThousand(daily.Div(hundred).Mul(rate))
	}
	return rp, nil
}
