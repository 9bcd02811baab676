package calculation

import (
	"errors"

	"github.com/rgehrsitz/quotecalc/internal/domain"
	"github.com/shopspring/decimal"
)

// Calculate runs one all-or-nothing pricing pass over the policy. On a hard
// validation failure it returns a nil snapshot and a *domain.ValidationError.
func (ce *CalculationEngine) Calculate(policy *domain.Policy) (*domain.PolicySnapshot, error) {
	return ce.CalculateWithFrequency(policy, domain.FrequencyAnnual)
}

// CalculateWithFrequency is Calculate plus an installment breakdown
func (ce *CalculationEngine) CalculateWithFrequency(policy *domain.Policy, freq domain.Frequency) (*domain.PolicySnapshot, error) {
	if policy == nil {
		return nil, errors.New("policy is required")
	}
	pol := normalizePolicy(policy)
	if err := ce.validateStructure(pol); err != nil {
		ce.Logger.Warnf("policy rejected: %v", err)
		return nil, err
	}

	// Tiers and the shared cap depend on the base premium, so the main
	// product is priced before any rider.
	p := ce.newPass(pol, 0, decimal.Zero, false)
	main, err := p.mainPremium()
	if err != nil {
		ce.Logger.Warnf("main premium rejected: %v", err)
		return nil, err
	}
	extra, err := p.extraPremium(main)
	if err != nil {
		ce.Logger.Warnf("extra premium rejected: %v", err)
		return nil, err
	}
	main.ExtraPremium = extra
	p.mainBase = main.BasePremium
	p.cap = newCapTracker(main.BasePremium)

	snap := &domain.PolicySnapshot{
		ID:              ce.newID(),
		ReferenceDate:   pol.Main.Profile.ReferenceDate,
		Main:            main,
		MainTotal:       main.Total(),
		HospitalCashCap: p.cap.limit,
	}
	if snap.ReferenceDate.IsZero() {
		snap.ReferenceDate = domain.DefaultReferenceDate
	}

	subtotals := make(map[string]decimal.Decimal)
	for _, ins := range pol.Insureds() {
		riders, subtotal, err := p.insuredRiders(ins)
		if err != nil {
			ce.Logger.Warnf("rider rejected for %s: %v", ins.ID, err)
			return nil, err
		}
		snap.Insureds = append(snap.Insureds, domain.InsuredPremiums{
			InsuredID: ins.ID,
			Name:      ins.Profile.Name,
			Age:       ins.Profile.Age(),
			Riders:    riders,
			Subtotal:  subtotal,
		})
		subtotals[ins.ID] = subtotal
		snap.RiderTotal = snap.RiderTotal.Add(subtotal)
	}

	waiver, err := p.waiverPremium(main.BasePremium, subtotals)
	if err != nil {
		ce.Logger.Warnf("waiver rejected: %v", err)
		return nil, err
	}
	snap.Waiver = waiver
	snap.RiderTotal = snap.RiderTotal.Add(snap.WaiverTotal())
	snap.TotalPremium = snap.MainTotal.Add(snap.RiderTotal)
	snap.HospitalCashCommitted = p.cap.committed
	snap.Advisories = p.advisories

	if freq != "" && freq != domain.FrequencyAnnual {
		fb := ConvertFrequency(snap.MainTotal, snap.RiderTotal, freq)
		snap.Frequency = &fb
	}

	ce.Logger.Debugf("snapshot %s: main=%s riders=%s total=%s advisories=%d",
		snap.ID, snap.MainTotal, snap.RiderTotal, snap.TotalPremium, len(snap.Advisories))
	return snap, nil
}
