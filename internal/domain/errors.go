package domain

import (
	"errors"
	"fmt"
)

// ErrValidation is matched by every hard validation failure
var ErrValidation = errors.New("validation failed")

// ErrorKind classifies a hard validation failure
type ErrorKind string

const (
	KindTooManyInsureds         ErrorKind = "too_many_insureds"
	KindSupplementaryNotAllowed ErrorKind = "supplementary_not_allowed"
	KindWaiverNotAllowed        ErrorKind = "waiver_not_allowed"
	KindDuplicateInsured        ErrorKind = "duplicate_insured"
	KindMainPremium             ErrorKind = "main_premium"
	KindExtraPremium            ErrorKind = "extra_premium"
	KindCriticalIllnessSum      ErrorKind = "critical_illness_sum"
	KindAccidentSum             ErrorKind = "accident_sum"
	KindHospitalCashMultiple    ErrorKind = "hospital_cash_multiple"
	KindHospitalCashLimit       ErrorKind = "hospital_cash_limit"
	KindWaiverBeneficiary       ErrorKind = "waiver_beneficiary"
	KindTargetAge               ErrorKind = "target_age"
	KindPaymentTerm             ErrorKind = "payment_term"
	KindHealthRequired          ErrorKind = "health_required"
)

// ValidationError aborts a whole pricing or projection pass
type ValidationError struct {
	Kind      ErrorKind `json:"kind"`
	Field     string    `json:"field"`
	InsuredID string    `json:"insuredId,omitempty"`
	Message   string    `json:"message"`
}

// NewValidationError builds a ValidationError with a formatted message
func NewValidationError(kind ErrorKind, field, insuredID, format string, args ...any) *ValidationError {
	return &ValidationError{
		Kind:      kind,
		Field:     field,
		InsuredID: insuredID,
		Message:   fmt.Sprintf(format, args...),
	}
}

func (e *ValidationError) Error() string {
	if e.InsuredID != "" {
		return fmt.Sprintf("%s (%s, insured %s)", e.Message, e.Field, e.InsuredID)
	}
	return fmt.Sprintf("%s (%s)", e.Message, e.Field)
}

// Unwrap lets errors.Is match ErrValidation
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// Advisory is a field hint that does not block the calculation
type Advisory struct {
	Field     string `json:"field"`
	InsuredID string `json:"insuredId,omitempty"`
	Message   string `json:"message"`
}

func (a Advisory) String() string {
	if a.InsuredID != "" {
		return fmt.Sprintf("[%s/%s] %s", a.InsuredID, a.Field, a.Message)
	}
	return fmt.Sprintf("[%s] %s", a.Field, a.Message)
}
