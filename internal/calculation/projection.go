package calculation

import (
	"errors"
	"fmt"

	"github.com/rgehrsitz/quotecalc/internal/domain"
	"github.com/rgehrsitz/quotecalc/internal/eligibility"
	"github.com/shopspring/decimal"
)

// ProjectionOptions controls the illustration. A zero TargetAge uses the
// product's default end age.
type ProjectionOptions struct {
	TargetAge int
	Frequency domain.Frequency
}

// Project simulates premiums year by year from the main insured's current
// age to the target age. Any hard validation failure in any simulated year
// aborts the whole illustration.
func (ce *CalculationEngine) Project(policy *domain.Policy, opts ProjectionOptions) (*domain.Projection, error) {
	snap, err := ce.Calculate(policy)
	if err != nil {
		return nil, err
	}
	pol := normalizePolicy(policy)
	resolver := ce.Eligibility
	sel := pol.Product
	age := pol.Main.Profile.Age()

	target := opts.TargetAge
	if target == 0 {
		target = resolver.DefaultTargetAge(sel, age)
	}
	if err := ce.checkProjectionInputs(pol, snap, age, target); err != nil {
		ce.Logger.Warnf("projection rejected: %v", err)
		return nil, err
	}

	freq := opts.Frequency
	if freq == "" {
		freq = domain.FrequencyAnnual
	}
	term := resolver.EffectivePaymentTerm(sel)
	mainBase := snap.Main.BasePremium
	extra := snap.Main.ExtraPremium

	proj := &domain.Projection{
		ID:        ce.newID(),
		StartAge:  age,
		TargetAge: target,
		Frequency: freq,
	}
	insureds := pol.Insureds()
	for _, ins := range insureds {
		proj.InsuredIDs = append(proj.InsuredIDs, ins.ID)
	}

	var cumulative decimal.Decimal
	for i := 0; age+i <= target; i++ {
		if oldestAge(insureds)+i > eligibility.MaxSimulatedAge {
			break
		}
		row, waiverTo, err := ce.projectYear(pol, i, term, mainBase, extra)
		if err != nil {
			ce.Logger.Warnf("projection aborted in contract year %d: %v", i+1, err)
			return nil, fmt.Errorf("contract year %d (age %d): %w", i+1, age+i, err)
		}
		if freq != domain.FrequencyAnnual {
			row.FrequencyTotal = frequencyAdjustedTotal(row, waiverTo, freq)
			row.FrequencyDiff = row.FrequencyTotal.Sub(row.Total)
		}
		cumulative = cumulative.Add(row.Total)
		row.Cumulative = cumulative
		proj.Rows = append(proj.Rows, row)
	}
	proj.Total = cumulative
	proj.Lines = productLines(pol, snap, proj)

	ce.Logger.Debugf("projection %s: %d years to age %d, total %s", proj.ID, proj.Years(), target, proj.Total)
	return proj, nil
}

func (ce *CalculationEngine) checkProjectionInputs(pol *domain.Policy, snap *domain.PolicySnapshot, age, target int) error {
	sel := pol.Product
	if !snap.Main.Eligible {
		return domain.NewValidationError(domain.KindTargetAge, "main.product", domain.MainInsuredID,
			"a main product the main insured is eligible for is required to illustrate")
	}
	if target <= age {
		return domain.NewValidationError(domain.KindTargetAge, "target_age", domain.MainInsuredID,
			"target age %d must be greater than the current age %d", target, age)
	}
	if sel.Product.HasPaymentTerm() {
		if sel.PaymentTermYears <= 0 {
			return domain.NewValidationError(domain.KindPaymentTerm, "main.payment_term", domain.MainInsuredID,
				"a payment term is required to illustrate %s", sel.Product.DisplayName())
		}
		if lowest := ce.Eligibility.MinTargetAge(sel, age); target < lowest {
			return domain.NewValidationError(domain.KindTargetAge, "target_age", domain.MainInsuredID,
				"target age must be at least %d for %s", lowest, sel.Product.DisplayName())
		}
	}
	if ce.Eligibility.HealthRequired(sel.Product) {
		main, _ := snap.Insured(domain.MainInsuredID)
		if !main.Premium(domain.RiderHealth).IsPositive() {
			return domain.NewValidationError(domain.KindHealthRequired, "health", domain.MainInsuredID,
				"%s requires a priced health rider before illustrating", sel.Product.DisplayName())
		}
	}
	return nil
}

// projectYear prices contract year i with a fresh hospital-cash tracker. It
// also returns the insured whose column carries the waiver premium.
func (ce *CalculationEngine) projectYear(pol *domain.Policy, i, term int, mainBase, extra decimal.Decimal) (domain.ProjectionRow, string, error) {
	p := ce.newPass(pol, i, mainBase, true)
	row := domain.ProjectionRow{
		Year:    i + 1,
		MainAge: pol.Main.Profile.Age() + i,
	}
	if i+1 <= term {
		row.MainPremium = mainBase
		row.ExtraPremium = extra
	}

	subtotals := make(map[string]decimal.Decimal)
	for _, ins := range pol.Insureds() {
		riders, subtotal, err := p.insuredRiders(ins)
		if err != nil {
			return row, "", err
		}
		row.Insureds = append(row.Insureds, domain.InsuredYear{
			InsuredID: ins.ID,
			Age:       ins.Profile.Age() + i,
			Riders:    riders,
			Subtotal:  subtotal,
		})
		subtotals[ins.ID] = subtotal
		row.RiderTotal = row.RiderTotal.Add(subtotal)
	}

	waiver, err := p.waiverPremium(row.MainPremium, subtotals)
	if err != nil {
		return row, "", err
	}
	waiverTo := ""
	if waiver != nil {
		row.Waiver = waiver.Premium
		waiverTo = waiver.Beneficiary
	}
	row.RiderTotal = row.RiderTotal.Add(row.Waiver)
	row.Total = row.MainPremium.Add(row.ExtraPremium).Add(row.RiderTotal)
	return row, waiverTo, nil
}

// frequencyAdjustedTotal is the yearly amount paid by installments in an
// illustration row. Main and extra premiums are carried whole. Each insured's
// rider column is loaded, divided and floored to 1,000 per installment. The
// waiver joins its beneficiary's column, or the main insured's column when the
// beneficiary is not a listed insured.
func frequencyAdjustedTotal(row domain.ProjectionRow, waiverTo string, freq domain.Frequency) decimal.Decimal {
	n := decimal.NewFromInt(int64(freq.Periods()))
	factor := freq.LoadingFactor()

	columns := make([]decimal.Decimal, len(row.Insureds))
	waiverCol := 0
	for i, iy := range row.Insureds {
		columns[i] = iy.Subtotal
		if iy.InsuredID == waiverTo {
			waiverCol = i
		}
	}
	if len(columns) == 0 {
		columns = append(columns, decimal.Zero)
	}
	columns[waiverCol] = columns[waiverCol].Add(row.Waiver)

	total := row.MainPremium.Add(row.ExtraPremium)
	for _, col := range columns {
		total = total.Add(domain.FloorThousand(col.Mul(factor).Div(n)).Mul(n))
	}
	return total
}


func oldestAge(insureds []*domain.Insured) int {
	oldest := 0
	for _, ins := range insureds {
		oldest = max(oldest, ins.Profile.Age())
	}
	return oldest
}

// productLines summarises each priced product with the number of years it
// carries a premium in the illustration.
func productLines(pol *domain.Policy, snap *domain.PolicySnapshot, proj *domain.Projection) []domain.ProductLine {
	var lines []domain.ProductLine
	main := snap.Main
	mainYears, extraYears := 0, 0
	for _, row := range proj.Rows {
		if row.MainPremium.IsPositive() {
			mainYears++
		}
		if row.ExtraPremium.IsPositive() {
			extraYears++
		}
	}
	if main.BasePremium.IsPositive() {
		lines = append(lines, domain.ProductLine{
			InsuredID:  domain.MainInsuredID,
			Name:       pol.Main.Profile.Name,
			Product:    main.Product.DisplayName(),
			SumInsured: main.SumInsured,
			Years:      mainYears,
			Premium:    main.BasePremium,
		})
	}
	if main.ExtraPremium.IsPositive() {
		lines = append(lines, domain.ProductLine{
			InsuredID: domain.MainInsuredID,
			Name:      pol.Main.Profile.Name,
			Product:   "Extra premium",
			Years:     extraYears,
			Premium:   main.ExtraPremium,
		})
	}

	for _, ip := range snap.Insureds {
		for _, rp := range ip.Riders {
			if !rp.Premium.IsPositive() {
				continue
			}
			lines = append(lines, domain.ProductLine{
				InsuredID:  ip.InsuredID,
				Name:       ip.Name,
				Product:    rp.Kind.DisplayName(),
				SumInsured: rp.SumInsured,
				Years:      riderYears(proj, ip.InsuredID, rp.Kind),
				Premium:    rp.Premium,
			})
		}
	}

	if w := snap.Waiver; w != nil && w.Premium.IsPositive() {
		years := 0
		for _, row := range proj.Rows {
			if row.Waiver.IsPositive() {
				years++
			}
		}
		lines = append(lines, domain.ProductLine{
			InsuredID:  w.Beneficiary,
			Name:       w.Name,
			Product:    domain.RiderWaiver.DisplayName(),
			SumInsured: w.Base,
			Years:      years,
			Premium:    w.Premium,
		})
	}
	return lines
}

func riderYears(proj *domain.Projection, insuredID string, kind domain.RiderKind) int {
	years := 0
	for _, row := range proj.Rows {
		for _, iy := range row.Insureds {
			if iy.InsuredID != insuredID {
				continue
			}
			for _, rp := range iy.Riders {
				if rp.Kind == kind && rp.Premium.IsPositive() {
					years++
				}
			}
		}
	}
	return years
}

// IsValidationError reports whether err carries a hard validation failure
func IsValidationError(err error) bool {
	var ve *domain.ValidationError
	return errors.As(err, &ve)
}
