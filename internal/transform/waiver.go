package transform

import (
	"fmt"

	"github.com/rgehrsitz/quotecalc/internal/config"
	"github.com/rgehrsitz/quotecalc/internal/domain"
)

// RemoveWaiver drops the premium waiver rider. A request without one is left as is.
type RemoveWaiver struct{}

func (rw *RemoveWaiver) Name() string {
	return "remove_waiver"
}

func (rw *RemoveWaiver) Description() string {
	return "Drop " + domain.RiderWaiver.DisplayName()
}

func (rw *RemoveWaiver) Validate(base *config.QuoteRequest) error {
	if base == nil {
		return NewTransformError(rw.Name(), "validate", "base request cannot be nil", nil)
	}
	return nil
}

func (rw *RemoveWaiver) Apply(base *config.QuoteRequest) (*config.QuoteRequest, error) {
	modified := base.DeepCopy()
	modified.Waiver = nil
	return modified, nil
}

// SetWaiverBeneficiary moves the premium waiver to another supplementary insured
type SetWaiverBeneficiary struct {
	Beneficiary string
}

func (sw *SetWaiverBeneficiary) Name() string {
	return "set_waiver_beneficiary"
}

func (sw *SetWaiverBeneficiary) Description() string {
	return fmt.Sprintf("Waive premiums on the life of %s", sw.Beneficiary)
}

func (sw *SetWaiverBeneficiary) Validate(base *config.QuoteRequest) error {
	if base == nil {
		return NewTransformError(sw.Name(), "validate", "base request cannot be nil", nil)
	}
	if sw.Beneficiary == "" || sw.Beneficiary == domain.MainInsuredID {
		return NewTransformError(sw.Name(), "validate", "beneficiary must be a supplementary insured", nil)
	}
	if base.Person(sw.Beneficiary) == nil {
		return NewTransformError(sw.Name(), "validate", fmt.Sprintf("insured %s not found in request", sw.Beneficiary), nil)
	}
	return nil
}

func (sw *SetWaiverBeneficiary) Apply(base *config.QuoteRequest) (*config.QuoteRequest, error) {
	modified := base.DeepCopy()
	modified.Waiver = &config.WaiverInput{Beneficiary: sw.Beneficiary}
	return modified, nil
}
