package ratetable

import (
	_ "embed"
	"fmt"
	"os"
	"sync"

	"github.com/rgehrsitz/quotecalc/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed sample_rates.yaml
var sampleRates []byte

var (
	defaultOnce   sync.Once
	defaultTables *Tables
	defaultErr    error
)

// Default returns the embedded illustrative rate tables
func Default() (*Tables, error) {
	defaultOnce.Do(func() {
		defaultTables, defaultErr = Parse(sampleRates)
		if defaultErr != nil {
			defaultErr = fmt.Errorf("embedded sample rates: %w", defaultErr)
		}
	})
	return defaultTables, defaultErr
}

// LoadFromFile reads and validates rate tables from a YAML file
func LoadFromFile(filename string) (*Tables, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read rate tables %s: %w", filename, err)
	}
	t, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("rate tables %s: %w", filename, err)
	}
	return t, nil
}

// Parse decodes and validates YAML rate tables
func Parse(data []byte) (*Tables, error) {
	var t Tables
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("rate table validation failed: %w", err)
	}
	return &t, nil
}

// Validate checks the shape of the tables: bands are ordered, program
// keys are known and every health grid has one row per band.
func (t *Tables) Validate() error {
	for product := range t.PUL {
		if product.Family() != domain.FamilyPUL {
			return fmt.Errorf("pul_rates: %q is not an endowment product", product)
		}
	}
	for term := range t.TermRates {
		if term != 5 && term != 10 && term != 15 {
			return fmt.Errorf("term_rates: unsupported term %d", term)
		}
	}
	for i, f := range t.MULFactors {
		if err := validateBand("mul_factors", i, f.AgeBand); err != nil {
			return err
		}
		if !f.MinFactor.IsPositive() || f.MaxFactor.LessThan(f.MinFactor) {
			return fmt.Errorf("mul_factors[%d]: factors must satisfy 0 < min_factor <= max_factor", i)
		}
	}
	if err := t.validateHealth(); err != nil {
		return err
	}
	for i, r := range t.CriticalIllness {
		if err := validateBand("critical_illness", i, r.AgeBand); err != nil {
			return err
		}
	}
	for group := range t.Accident {
		if group < 1 || group > 4 {
			return fmt.Errorf("accident: risk group %d outside 1..4", group)
		}
	}
	for i, r := range t.HospitalCash {
		if err := validateBand("hospital_cash", i, r.AgeBand); err != nil {
			return err
		}
	}
	for i, r := range t.Waiver {
		if err := validateBand("waiver", i, r.AgeBand); err != nil {
			return err
		}
	}
	for i, o := range t.Occupations {
		if o.Name == "" {
			return fmt.Errorf("occupations[%d]: name is required", i)
		}
		if o.Group < 0 || o.Group > 4 {
			return fmt.Errorf("occupations[%d] (%s): group %d outside 0..4", i, o.Name, o.Group)
		}
	}
	return nil
}

func (t *Tables) validateHealth() error {
	h := t.Health
	for i, b := range h.Bands {
		if err := validateBand("health.bands", i, b); err != nil {
			return err
		}
	}
	check := func(name string, rows []ProgramRates) error {
		if len(rows) != len(h.Bands) {
			return fmt.Errorf("%s: %d rows for %d bands", name, len(rows), len(h.Bands))
		}
		for i, row := range rows {
			for program := range row {
				if program.Tier() == 0 {
					return fmt.Errorf("%s[%d]: unknown program %q", name, i, program)
				}
			}
		}
		return nil
	}
	for scope, rows := range h.Core {
		if scope != domain.ScopeDomestic && scope != domain.ScopeInternational {
			return fmt.Errorf("health.core: unknown scope %q", scope)
		}
		if err := check("health.core."+string(scope), rows); err != nil {
			return err
		}
	}
	if len(h.Outpatient) > 0 {
		if err := check("health.outpatient", h.Outpatient); err != nil {
			return err
		}
	}
	if len(h.Dental) > 0 {
		if err := check("health.dental", h.Dental); err != nil {
			return err
		}
	}
	return nil
}

func validateBand(table string, i int, b AgeBand) error {
	if b.AgeMin < 0 || b.AgeMax < b.AgeMin {
		return fmt.Errorf("%s[%d]: invalid age band %d-%d", table, i, b.AgeMin, b.AgeMax)
	}
	return nil
}
