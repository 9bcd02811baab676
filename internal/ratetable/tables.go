package ratetable

import (
	"strings"

	"github.com/rgehrsitz/quotecalc/internal/domain"
	"github.com/shopspring/decimal"
)

// Provider is the read-only rate source the engine prices against.
// Every lookup reports false when no row matches.
type Provider interface {
	PULRate(product domain.ProductKey, age int, gender domain.Gender) (decimal.Decimal, bool)
	TermRate(termYears, age int, gender domain.Gender) (decimal.Decimal, bool)
	MULFactor(age int) (FactorBand, bool)
	HealthBand(age int) (int, bool)
	HealthCoreRate(band int, scope domain.HealthScope, program domain.HealthProgram) (decimal.Decimal, bool)
	HealthOutpatientRate(band int, program domain.HealthProgram) (decimal.Decimal, bool)
	HealthDentalRate(band int, program domain.HealthProgram) (decimal.Decimal, bool)
	CriticalIllnessRate(age int, gender domain.Gender) (decimal.Decimal, bool)
	AccidentRate(riskGroup int) (decimal.Decimal, bool)
	HospitalCashRate(age int) (decimal.Decimal, bool)
	WaiverRate(age int, gender domain.Gender) (decimal.Decimal, bool)
	RiskGroup(occupation string) int
}

// GenderRates holds a male and a female rate
type GenderRates struct {
	Male   decimal.Decimal `yaml:"male" json:"male"`
	Female decimal.Decimal `yaml:"female" json:"female"`
}

func (g GenderRates) pick(gender domain.Gender) decimal.Decimal {
	if gender == domain.GenderFemale {
		return g.Female
	}
	return g.Male
}

// AgeRate is a rate row keyed by exact age
type AgeRate struct {
	Age         int `yaml:"age" json:"age"`
	GenderRates `yaml:",inline"`
}

// AgeBand is an inclusive age range
type AgeBand struct {
	AgeMin int `yaml:"age_min" json:"ageMin"`
	AgeMax int `yaml:"age_max" json:"ageMax"`
}

// Contains reports whether age falls inside the band
func (b AgeBand) Contains(age int) bool {
	return age >= b.AgeMin && age <= b.AgeMax
}

// RangeRate is a gendered rate row keyed by age range
type RangeRate struct {
	AgeBand     `yaml:",inline"`
	GenderRates `yaml:",inline"`
}

// FlatRangeRate is an ungendered rate row keyed by age range
type FlatRangeRate struct {
	AgeBand `yaml:",inline"`
	Rate    decimal.Decimal `yaml:"rate" json:"rate"`
}

// FactorBand bounds the flexible premium: STBH/MaxFactor is the minimum
// premium and STBH/MinFactor the maximum.
type FactorBand struct {
	AgeBand   `yaml:",inline"`
	MinFactor decimal.Decimal `yaml:"min_factor" json:"minFactor"`
	MaxFactor decimal.Decimal `yaml:"max_factor" json:"maxFactor"`
}

// ProgramRates maps a health program to its annual premium
type ProgramRates map[domain.HealthProgram]decimal.Decimal

// HealthTables is the health rider grid: one ProgramRates row per band
type HealthTables struct {
	Bands      []AgeBand                             `yaml:"bands" json:"bands"`
	Core       map[domain.HealthScope][]ProgramRates `yaml:"core" json:"core"`
	Outpatient []ProgramRates                        `yaml:"outpatient" json:"outpatient"`
	Dental     []ProgramRates                        `yaml:"dental" json:"dental"`
}

// Occupation is one entry of the occupation directory
type Occupation struct {
	Name  string `yaml:"name" json:"name"`
	Group int    `yaml:"group" json:"group"`
}

// Tables is the YAML-backed Provider. It is never mutated after loading.
type Tables struct {
	PUL             map[domain.ProductKey][]AgeRate `yaml:"pul_rates" json:"pulRates"`
	TermRates       map[int][]AgeRate               `yaml:"term_rates" json:"termRates"`
	MULFactors      []FactorBand                    `yaml:"mul_factors" json:"mulFactors"`
	Health          HealthTables                    `yaml:"health" json:"health"`
	CriticalIllness []RangeRate                     `yaml:"critical_illness" json:"criticalIllness"`
	Accident        map[int]decimal.Decimal         `yaml:"accident" json:"accident"`
	HospitalCash    []FlatRangeRate                 `yaml:"hospital_cash" json:"hospitalCash"`
	Waiver          []RangeRate                     `yaml:"waiver" json:"waiver"`
	Occupations     []Occupation                    `yaml:"occupations" json:"occupations"`
}

var _ Provider = (*Tables)(nil)

func exactAge(rows []AgeRate, age int, gender domain.Gender) (decimal.Decimal, bool) {
	for _, r := range rows {
		if r.Age == age {
			return r.pick(gender), true
		}
	}
	return decimal.Zero, false
}

func rangeRate(rows []RangeRate, age int, gender domain.Gender) (decimal.Decimal, bool) {
	for _, r := range rows {
		if r.Contains(age) {
			return r.pick(gender), true
		}
	}
	return decimal.Zero, false
}

// PULRate looks up the exact-age rate of an endowment product
func (t *Tables) PULRate(product domain.ProductKey, age int, gender domain.Gender) (decimal.Decimal, bool) {
	return exactAge(t.PUL[product], age, gender)
}

// TermRate looks up the exact-age rate of a term-length table
func (t *Tables) TermRate(termYears, age int, gender domain.Gender) (decimal.Decimal, bool) {
	return exactAge(t.TermRates[termYears], age, gender)
}

// MULFactor finds the factor band covering age
func (t *Tables) MULFactor(age int) (FactorBand, bool) {
	for _, f := range t.MULFactors {
		if f.Contains(age) {
			return f, true
		}
	}
	return FactorBand{}, false
}

// HealthBand returns the index of the health band covering age
func (t *Tables) HealthBand(age int) (int, bool) {
	for i, b := range t.Health.Bands {
		if b.Contains(age) {
			return i, true
		}
	}
	return -1, false
}

func programRate(rows []ProgramRates, band int, program domain.HealthProgram) (decimal.Decimal, bool) {
	if band < 0 || band >= len(rows) {
		return decimal.Zero, false
	}
	rate, ok := rows[band][program]
	return rate, ok
}

// HealthCoreRate returns the core health premium for a band, scope and program
func (t *Tables) HealthCoreRate(band int, scope domain.HealthScope, program domain.HealthProgram) (decimal.Decimal, bool) {
	return programRate(t.Health.Core[scope], band, program)
}

// HealthOutpatientRate returns the outpatient add-on premium
func (t *Tables) HealthOutpatientRate(band int, program domain.HealthProgram) (decimal.Decimal, bool) {
	return programRate(t.Health.Outpatient, band, program)
}

// HealthDentalRate returns the dental add-on premium
func (t *Tables) HealthDentalRate(band int, program domain.HealthProgram) (decimal.Decimal, bool) {
	return programRate(t.Health.Dental, band, program)
}

// CriticalIllnessRate returns the per-1,000 rate by age range and gender
func (t *Tables) CriticalIllnessRate(age int, gender domain.Gender) (decimal.Decimal, bool) {
	return rangeRate(t.CriticalIllness, age, gender)
}

// AccidentRate returns the per-1,000 rate of a risk group
func (t *Tables) AccidentRate(riskGroup int) (decimal.Decimal, bool) {
	rate, ok := t.Accident[riskGroup]
	return rate, ok
}

// HospitalCashRate returns the per-100 daily-amount rate by age range
func (t *Tables) HospitalCashRate(age int) (decimal.Decimal, bool) {
	for _, r := range t.HospitalCash {
		if r.Contains(age) {
			return r.Rate, true
		}
	}
	return decimal.Zero, false
}

// WaiverRate returns the per-1,000 waiver rate by age range and gender
func (t *Tables) WaiverRate(age int, gender domain.Gender) (decimal.Decimal, bool) {
	return rangeRate(t.Waiver, age, gender)
}

// RiskGroup resolves an occupation by exact case-insensitive name.
// Unknown occupations and entries without a group resolve to 0.
func (t *Tables) RiskGroup(occupation string) int {
	name := strings.TrimSpace(occupation)
	if name == "" {
		return 0
	}
	for _, o := range t.Occupations {
		if o.Group > 0 && strings.EqualFold(o.Name, name) {
			return o.Group
		}
	}
	return 0
}

// SearchOccupations returns directory entries whose name contains query,
// case-insensitively, up to limit results (0 means no limit).
func (t *Tables) SearchOccupations(query string, limit int) []Occupation {
	q := strings.ToLower(strings.TrimSpace(query))
	var out []Occupation
	for _, o := range t.Occupations {
		if o.Group <= 0 {
			continue
		}
		if q == "" || strings.Contains(strings.ToLower(o.Name), q) {
			out = append(out, o)
			if limit > 0 && len(out) == limit {
				break
			}
		}
	}
	return out
}
