package calculation

import (
	"github.com/rgehrsitz/quotecalc/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	hospitalCashUnit        = decimal.NewFromInt(100_000)
	hospitalCashPremiumStep = decimal.NewFromInt(4_000_000)
	hospitalCashAdultCap    = decimal.NewFromInt(1_000_000)
	hospitalCashMinorCap    = decimal.NewFromInt(300_000)
)

const hospitalCashAdultAge = 18

// HospitalCashCap is the policy-wide daily allowance unlocked by the main
// base premium: 100,000 per full 4,000,000 of premium.
func HospitalCashCap(mainBasePremium decimal.Decimal) decimal.Decimal {
	if !mainBasePremium.IsPositive() {
		return decimal.Zero
	}
	return mainBasePremium.Div(hospitalCashPremiumStep).Floor().Mul(hospitalCashUnit)
}

// HospitalCashAgeCap is the per-insured daily limit at age
func HospitalCashAgeCap(age int) decimal.Decimal {
	if age >= hospitalCashAdultAge {
		return hospitalCashAdultCap
	}
	return hospitalCashMinorCap
}

// capTracker threads the shared hospital-cash allowance through the
// insureds of one pass. A new tracker is created for every pass and
// every projected year.
type capTracker struct {
	limit     decimal.Decimal
	committed decimal.Decimal
}

func newCapTracker(mainBasePremium decimal.Decimal) *capTracker {
	return &capTracker{limit: HospitalCashCap(mainBasePremium)}
}

func (c *capTracker) remaining() decimal.Decimal {
	r := c.limit.Sub(c.committed)
	if r.IsNegative() {
		return decimal.Zero
	}
	return r
}

// reserve checks a daily amount against both caps and commits it
func (c *capTracker) reserve(daily decimal.Decimal, age int, insuredID string) error {
	if !daily.Mod(hospitalCashUnit).IsZero() {
		return domain.NewValidationError(domain.KindHospitalCashMultiple, "hospital_cash.daily_amount", insuredID,
			"hospital-cash daily amount %s must be a multiple of 100,000", daily.String())
	}
	if ageCap := HospitalCashAgeCap(age); daily.GreaterThan(ageCap) {
		return domain.NewValidationError(domain.KindHospitalCashLimit, "hospital_cash.daily_amount", insuredID,
			"hospital-cash daily amount %s exceeds the %s limit for age %d", daily.String(), ageCap.String(), age)
	}
	if remaining := c.remaining(); daily.GreaterThan(remaining) {
		return domain.NewValidationError(domain.KindHospitalCashLimit, "hospital_cash.daily_amount", insuredID,
			"hospital-cash daily amount %s exceeds the remaining policy allowance %s", daily.String(), remaining.String())
	}
	c.committed = c.committed.Add(daily)
	return nil
}
