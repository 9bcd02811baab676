package transform

import (
	"fmt"

	"github.com/rgehrsitz/quotecalc/internal/config"
	"github.com/rgehrsitz/quotecalc/internal/domain"
	"github.com/rgehrsitz/quotecalc/internal/output"
	"github.com/shopspring/decimal"
)

func isPerInsuredRider(kind domain.RiderKind) bool {
	for _, k := range domain.RiderKinds {
		if k == kind {
			return true
		}
	}
	return false
}

// DropRider removes one rider from one insured
type DropRider struct {
	Insured string
	Rider   domain.RiderKind
}

func (dr *DropRider) Name() string {
	return "drop_rider"
}

func (dr *DropRider) Description() string {
	return fmt.Sprintf("Drop %s for %s", dr.Rider.DisplayName(), insuredLabel(dr.Insured))
}

func (dr *DropRider) Validate(base *config.QuoteRequest) error {
	if !isPerInsuredRider(dr.Rider) {
		return NewTransformError(dr.Name(), "validate", fmt.Sprintf("unknown rider %q", dr.Rider), nil)
	}
	_, err := person(dr.Name(), dr.Insured, base)
	return err
}

func (dr *DropRider) Apply(base *config.QuoteRequest) (*config.QuoteRequest, error) {
	modified := base.DeepCopy()
	p := modified.Person(dr.Insured)
	switch dr.Rider {
	case domain.RiderHealth:
		p.Riders.Health = nil
	case domain.RiderCriticalIllness:
		p.Riders.CriticalIllness = nil
	case domain.RiderAccident:
		p.Riders.Accident = nil
	case domain.RiderHospitalCash:
		p.Riders.HospitalCash = nil
	}
	return modified, nil
}

// SetRiderAmount selects a sum-insured rider with the given amount.
// For hospital cash the amount is the daily benefit.
type SetRiderAmount struct {
	Insured string
	Rider   domain.RiderKind
	Amount  decimal.Decimal
}

func (sr *SetRiderAmount) Name() string {
	return "set_rider_amount"
}

func (sr *SetRiderAmount) Description() string {
	return fmt.Sprintf("Set %s for %s to %s", sr.Rider.DisplayName(), insuredLabel(sr.Insured), output.FormatVND(sr.Amount))
}

func (sr *SetRiderAmount) Validate(base *config.QuoteRequest) error {
	switch sr.Rider {
	case domain.RiderCriticalIllness, domain.RiderAccident, domain.RiderHospitalCash:
	default:
		return NewTransformError(sr.Name(), "validate", fmt.Sprintf("rider %q has no amount", sr.Rider), nil)
	}
	if !sr.Amount.IsPositive() {
		return NewTransformError(sr.Name(), "validate", "amount must be positive", nil)
	}
	_, err := person(sr.Name(), sr.Insured, base)
	return err
}

func (sr *SetRiderAmount) Apply(base *config.QuoteRequest) (*config.QuoteRequest, error) {
	modified := base.DeepCopy()
	p := modified.Person(sr.Insured)
	amount := sr.Amount
	switch sr.Rider {
	case domain.RiderCriticalIllness:
		p.Riders.CriticalIllness = &amount
	case domain.RiderAccident:
		p.Riders.Accident = &amount
	case domain.RiderHospitalCash:
		p.Riders.HospitalCash = &amount
	}
	return modified, nil
}

// SetHealthProgram selects the health rider at the given tier, keeping the
// other health options of an existing selection.
type SetHealthProgram struct {
	Insured string
	Program domain.HealthProgram
}

func (sh *SetHealthProgram) Name() string {
	return "set_health_program"
}

func (sh *SetHealthProgram) Description() string {
	return fmt.Sprintf("Set the health program for %s to %s", insuredLabel(sh.Insured), sh.Program)
}

func (sh *SetHealthProgram) Validate(base *config.QuoteRequest) error {
	if sh.Program.Tier() == 0 {
		return NewTransformError(sh.Name(), "validate", fmt.Sprintf("unknown health program %q", sh.Program), nil)
	}
	_, err := person(sh.Name(), sh.Insured, base)
	return err
}

func (sh *SetHealthProgram) Apply(base *config.QuoteRequest) (*config.QuoteRequest, error) {
	modified := base.DeepCopy()
	p := modified.Person(sh.Insured)
	if p.Riders.Health == nil {
		p.Riders.Health = &config.HealthInput{}
	}
	p.Riders.Health.Program = string(sh.Program)
	return modified, nil
}

func insuredLabel(id string) string {
	if id == "" {
		return domain.MainInsuredID
	}
	return id
}
