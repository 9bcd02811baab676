package transform

import (
	"fmt"

	"github.com/rgehrsitz/quotecalc/internal/config"
	"github.com/rgehrsitz/quotecalc/internal/domain"
)

// SetFrequency changes the premium payment mode
type SetFrequency struct {
	Frequency domain.Frequency
}

func (sf *SetFrequency) Name() string {
	return "set_frequency"
}

func (sf *SetFrequency) Description() string {
	return fmt.Sprintf("Pay %s", sf.Frequency)
}

func (sf *SetFrequency) Validate(base *config.QuoteRequest) error {
	if base == nil {
		return NewTransformError(sf.Name(), "validate", "base request cannot be nil", nil)
	}
	if _, err := domain.ParseFrequency(string(sf.Frequency)); err != nil {
		return NewTransformError(sf.Name(), "validate", "unsupported frequency", err)
	}
	return nil
}

func (sf *SetFrequency) Apply(base *config.QuoteRequest) (*config.QuoteRequest, error) {
	modified := base.DeepCopy()
	modified.Frequency = string(sf.Frequency)
	return modified, nil
}

// SetTargetAge changes the age the illustration runs to
type SetTargetAge struct {
	Age int
}

func (st *SetTargetAge) Name() string {
	return "set_target_age"
}

func (st *SetTargetAge) Description() string {
	return fmt.Sprintf("Illustrate to age %d", st.Age)
}

func (st *SetTargetAge) Validate(base *config.QuoteRequest) error {
	if base == nil {
		return NewTransformError(st.Name(), "validate", "base request cannot be nil", nil)
	}
	if st.Age <= 0 {
		return NewTransformError(st.Name(), "validate", fmt.Sprintf("age must be positive, got %d", st.Age), nil)
	}
	return nil
}

func (st *SetTargetAge) Apply(base *config.QuoteRequest) (*config.QuoteRequest, error) {
	modified := base.DeepCopy()
	modified.TargetAge = st.Age
	return modified, nil
}
