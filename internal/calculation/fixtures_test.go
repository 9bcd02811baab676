package calculation

import (
	"testing"

	"github.com/rgehrsitz/quotecalc/internal/domain"
	"github.com/rgehrsitz/quotecalc/internal/ratetable"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// Pinned rates so every expected premium can be worked out by hand
const fixtureRates = `
pul_rates:
  PUL_TRON_DOI:
    - {age: 35, male: 12.5, female: 11.0}
term_rates:
  10:
    - {age: 40, male: 110, female: 100}
  15:
    - {age: 40, male: 70, female: 65}
mul_factors:
  - {age_min: 0, age_max: 29, min_factor: 40, max_factor: 160}
  - {age_min: 30, age_max: 39, min_factor: 30, max_factor: 100}
  - {age_min: 40, age_max: 49, min_factor: 20, max_factor: 70}
  - {age_min: 50, age_max: 70, min_factor: 8, max_factor: 25}
health:
  bands:
    - {age_min: 0, age_max: 17}
    - {age_min: 18, age_max: 40}
    - {age_min: 41, age_max: 60}
    - {age_min: 61, age_max: 74}
  core:
    domestic:
      - {basic: 800000, enhanced: 1500000, comprehensive: 2500000, premium: 4000000}
      - {basic: 1000000, enhanced: 2000000, comprehensive: 3000000, premium: 4500000}
      - {basic: 1500000, enhanced: 3000000, comprehensive: 4500000, premium: 6500000}
      - {basic: 2500000, enhanced: 5000000, comprehensive: 7500000, premium: 10000000}
    international:
      - {basic: 1200000, enhanced: 2250000, comprehensive: 3750000, premium: 6000000}
      - {basic: 1500000, enhanced: 3000000, comprehensive: 4500000, premium: 6750000}
      - {basic: 2250000, enhanced: 4500000, comprehensive: 6750000, premium: 9750000}
      - {basic: 3750000, enhanced: 7500000, comprehensive: 11250000, premium: 15000000}
  outpatient:
    - {basic: 300000, enhanced: 400000, comprehensive: 600000, premium: 900000}
    - {basic: 350000, enhanced: 500500, comprehensive: 700000, premium: 1000000}
    - {basic: 450000, enhanced: 650000, comprehensive: 900000, premium: 1300000}
    - {basic: 600000, enhanced: 900000, comprehensive: 1200000, premium: 1700000}
  dental:
    - {basic: 200000, enhanced: 300000, comprehensive: 400000, premium: 500000}
    - {basic: 200000, enhanced: 300000, comprehensive: 400000, premium: 500000}
    - {basic: 250000, enhanced: 350000, comprehensive: 450000, premium: 550000}
    - {basic: 300000, enhanced: 400000, comprehensive: 500000, premium: 600000}
critical_illness:
  - {age_min: 0, age_max: 30, male: 1.2, female: 1.3}
  - {age_min: 31, age_max: 35, male: 1.85, female: 2.0}
  - {age_min: 36, age_max: 50, male: 2.5, female: 2.6}
  - {age_min: 51, age_max: 85, male: 6.0, female: 5.5}
accident:
  1: 0.8
  2: 1.2
  3: 1.75
  4: 2.6
hospital_cash:
  - {age_min: 0, age_max: 17, rate: 410}
  - {age_min: 18, age_max: 59, rate: 240}
waiver:
  - {age_min: 18, age_max: 40, male: 3.2, female: 2.8}
  - {age_min: 41, age_max: 65, male: 6.0, female: 5.0}
occupations:
  - {name: "Giáo viên", group: 1}
`

func newTestEngine(t *testing.T) *CalculationEngine {
	t.Helper()
	tables, err := ratetable.Parse([]byte(fixtureRates))
	require.NoError(t, err)
	engine := NewCalculationEngine(tables)
	engine.NewID = func() string { return "test-id" }
	return engine
}

func money(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func person(t *testing.T, name, dob string, gender domain.Gender, riskGroup int) domain.CustomerProfile {
	t.Helper()
	p, err := domain.NewCustomerProfile(name, dob, gender, domain.DefaultReferenceDate)
	require.NoError(t, err)
	p.RiskGroup = riskGroup
	return p
}

// flexiblePolicy is a 35-year-old man on Khoe Binh An with STBH 1B and a
// 20M entered premium: bounds are 10M to 33.33M.
func flexiblePolicy(t *testing.T) *domain.Policy {
	return &domain.Policy{
		Main: domain.Insured{
			ID:      domain.MainInsuredID,
			Profile: person(t, "An", "09/08/1990", domain.GenderMale, 1),
		},
		Product: domain.MainProductSelection{
			Product:          domain.ProductKhoeBinhAn,
			SumInsured:       money(1_000_000_000),
			EnteredPremium:   money(20_000_000),
			PaymentTermYears: 10,
		},
	}
}

func assertMoney(t *testing.T, expected int64, actual decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	require.Truef(t, actual.Equal(money(expected)), "expected %d, got %s %v", expected, actual, msgAndArgs)
}
