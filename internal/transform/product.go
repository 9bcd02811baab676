package transform

import (
	"fmt"

	"github.com/rgehrsitz/quotecalc/internal/config"
	"github.com/rgehrsitz/quotecalc/internal/domain"
	"github.com/rgehrsitz/quotecalc/internal/output"
	"github.com/shopspring/decimal"
)

// SetPremium replaces the entered main-product premium.
// Only products with a user-entered premium use it.
type SetPremium struct {
	Premium decimal.Decimal
}

func (sp *SetPremium) Name() string {
	return "set_premium"
}

func (sp *SetPremium) Description() string {
	return "Set main premium to " + output.FormatVND(sp.Premium)
}

func (sp *SetPremium) Validate(base *config.QuoteRequest) error {
	if base == nil {
		return NewTransformError(sp.Name(), "validate", "base request cannot be nil", nil)
	}
	if sp.Premium.IsNegative() {
		return NewTransformError(sp.Name(), "validate", "premium cannot be negative", nil)
	}
	return nil
}

func (sp *SetPremium) Apply(base *config.QuoteRequest) (*config.QuoteRequest, error) {
	modified := base.DeepCopy()
	modified.Product.Premium = sp.Premium
	return modified, nil
}

// SetExtraPremium replaces the voluntary top-up premium
type SetExtraPremium struct {
	Amount decimal.Decimal
}

func (se *SetExtraPremium) Name() string {
	return "set_extra_premium"
}

func (se *SetExtraPremium) Description() string {
	if se.Amount.IsZero() {
		return "Drop the extra premium"
	}
	return "Set extra premium to " + output.FormatVND(se.Amount)
}

func (se *SetExtraPremium) Validate(base *config.QuoteRequest) error {
	if base == nil {
		return NewTransformError(se.Name(), "validate", "base request cannot be nil", nil)
	}
	if se.Amount.IsNegative() {
		return NewTransformError(se.Name(), "validate", "extra premium cannot be negative", nil)
	}
	if se.Amount.IsZero() {
		return nil
	}
	key, err := domain.ParseProductKey(base.Product.Key)
	if err != nil {
		return NewTransformError(se.Name(), "validate", "request has no main product", err)
	}
	if !key.AllowsExtraPremium() {
		return NewTransformError(se.Name(), "validate", fmt.Sprintf("%s does not take an extra premium", key.DisplayName()), nil)
	}
	return nil
}

func (se *SetExtraPremium) Apply(base *config.QuoteRequest) (*config.QuoteRequest, error) {
	modified := base.DeepCopy()
	modified.Product.ExtraPremium = se.Amount
	return modified, nil
}

// SetSumInsured replaces the main-product sum insured
type SetSumInsured struct {
	Amount decimal.Decimal
}

func (ss *SetSumInsured) Name() string {
	return "set_sum_insured"
}

func (ss *SetSumInsured) Description() string {
	return "Set sum insured to " + output.FormatVND(ss.Amount)
}

func (ss *SetSumInsured) Validate(base *config.QuoteRequest) error {
	if base == nil {
		return NewTransformError(ss.Name(), "validate", "base request cannot be nil", nil)
	}
	if !ss.Amount.IsPositive() {
		return NewTransformError(ss.Name(), "validate", "sum insured must be positive", nil)
	}
	return nil
}

func (ss *SetSumInsured) Apply(base *config.QuoteRequest) (*config.QuoteRequest, error) {
	modified := base.DeepCopy()
	modified.Product.SumInsured = ss.Amount
	return modified, nil
}

// SetPaymentTerm changes how many years the main premium is paid
type SetPaymentTerm struct {
	Years int
}

func (pt *SetPaymentTerm) Name() string {
	return "set_payment_term"
}

func (pt *SetPaymentTerm) Description() string {
	return fmt.Sprintf("Pay the main premium for %d years", pt.Years)
}

func (pt *SetPaymentTerm) Validate(base *config.QuoteRequest) error {
	if base == nil {
		return NewTransformError(pt.Name(), "validate", "base request cannot be nil", nil)
	}
	if pt.Years <= 0 {
		return NewTransformError(pt.Name(), "validate", fmt.Sprintf("years must be positive, got %d", pt.Years), nil)
	}
	key, err := domain.ParseProductKey(base.Product.Key)
	if err != nil {
		return NewTransformError(pt.Name(), "validate", "request has no main product", err)
	}
	if !key.HasPaymentTerm() {
		return NewTransformError(pt.Name(), "validate", fmt.Sprintf("%s has a fixed payment term", key.DisplayName()), nil)
	}
	return nil
}

func (pt *SetPaymentTerm) Apply(base *config.QuoteRequest) (*config.QuoteRequest, error) {
	modified := base.DeepCopy()
	modified.Product.PaymentTerm = pt.Years
	return modified, nil
}
