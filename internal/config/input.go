package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rgehrsitz/quotecalc/internal/domain"
	"github.com/rgehrsitz/quotecalc/internal/ratetable"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// QuoteRequest is the YAML form of a quote: people, the main product,
// per-insured riders and the illustration options.
type QuoteRequest struct {
	ReferenceDate string        `yaml:"reference_date"`
	Frequency     string        `yaml:"frequency"`
	TargetAge     int           `yaml:"target_age"`
	Main          PersonInput   `yaml:"main"`
	Product       ProductInput  `yaml:"product"`
	Supplementary []PersonInput `yaml:"supplementary"`
	Waiver        *WaiverInput  `yaml:"waiver"`
}

// PersonInput describes one insured. RiskGroup overrides the occupation lookup.
type PersonInput struct {
	ID         string      `yaml:"id"`
	Name       string      `yaml:"name"`
	DOB        string      `yaml:"dob"`
	Gender     string      `yaml:"gender"`
	Occupation string      `yaml:"occupation"`
	RiskGroup  int         `yaml:"risk_group"`
	Riders     RidersInput `yaml:"riders"`
}

// RidersInput turns a rider on by its presence
type RidersInput struct {
	Health          *HealthInput     `yaml:"health"`
	CriticalIllness *decimal.Decimal `yaml:"critical_illness"`
	Accident        *decimal.Decimal `yaml:"accident"`
	HospitalCash    *decimal.Decimal `yaml:"hospital_cash"`
}

type HealthInput struct {
	Program    string `yaml:"program"`
	Scope      string `yaml:"scope"`
	Outpatient bool   `yaml:"outpatient"`
	Dental     bool   `yaml:"dental"`
}

type ProductInput struct {
	Key          string          `yaml:"key"`
	SumInsured   decimal.Decimal `yaml:"sum_insured"`
	Premium      decimal.Decimal `yaml:"premium"`
	PaymentTerm  int             `yaml:"payment_term"`
	Term         int             `yaml:"term"`
	ExtraPremium decimal.Decimal `yaml:"extra_premium"`
}

// WaiverInput names the beneficiary: an insured id or "other" with Other set
type WaiverInput struct {
	Beneficiary string       `yaml:"beneficiary"`
	Other       *PersonInput `yaml:"other"`
}

// Quote is a validated request ready for the engine
type Quote struct {
	Policy    *domain.Policy
	Frequency domain.Frequency
	TargetAge int
	Reference time.Time
}

// InputParser handles parsing of quote request files
type InputParser struct {
	rates ratetable.Provider
}

// NewInputParser creates a new input parser. rates resolves occupations
// to risk groups.
func NewInputParser(rates ratetable.Provider) *InputParser {
	return &InputParser{rates: rates}
}

// LoadFromFile loads a quote request from a YAML file
func (ip *InputParser) LoadFromFile(filename string) (*QuoteRequest, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// SaveRequest writes a quote request back to YAML
func SaveRequest(req *QuoteRequest, filename string) error {
	data, err := yaml.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}
	return os.WriteFile(filename, data, 0o644)
}

// Parse decodes and validates a quote request
func (ip *InputParser) Parse(data []byte) (*QuoteRequest, error) {
	var req QuoteRequest
	if err := yaml.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := ip.ValidateConfiguration(&req); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &req, nil
}

// ValidateConfiguration checks the request shape. Pricing rules such as
// premium bounds and the hospital-cash allowance are left to the engine.
func (ip *InputParser) ValidateConfiguration(req *QuoteRequest) error {
	reference, err := ParseReferenceDate(req.ReferenceDate)
	if err != nil {
		return err
	}
	if _, err := domain.ParseFrequency(req.Frequency); err != nil {
		return err
	}
	if req.TargetAge < 0 {
		return fmt.Errorf("target age cannot be negative")
	}
	if req.Product.Key != "" {
		if _, err := domain.ParseProductKey(req.Product.Key); err != nil {
			return err
		}
	}
	if req.Product.SumInsured.IsNegative() || req.Product.Premium.IsNegative() || req.Product.ExtraPremium.IsNegative() {
		return fmt.Errorf("product amounts cannot be negative")
	}
	if req.Product.PaymentTerm < 0 || req.Product.Term < 0 {
		return fmt.Errorf("product terms cannot be negative")
	}

	if err := validatePerson(&req.Main, reference); err != nil {
		return fmt.Errorf("main insured validation failed: %w", err)
	}
	if n := len(req.Supplementary); n > domain.MaxSupplementaryInsureds {
		return fmt.Errorf("at most %d supplementary insureds are allowed, got %d", domain.MaxSupplementaryInsureds, n)
	}
	for i := range req.Supplementary {
		p := &req.Supplementary[i]
		if err := validatePerson(p, reference); err != nil {
			return fmt.Errorf("supplementary insured %d (%s) validation failed: %w", i+1, p.Name, err)
		}
	}

	if w := req.Waiver; w != nil {
		if strings.TrimSpace(w.Beneficiary) == "" {
			return fmt.Errorf("waiver beneficiary is required")
		}
		if w.Beneficiary == domain.BeneficiaryOther {
			if w.Other == nil {
				return fmt.Errorf("waiver beneficiary %q needs an other section", domain.BeneficiaryOther)
			}
			if err := validatePerson(w.Other, reference); err != nil {
				return fmt.Errorf("waiver beneficiary validation failed: %w", err)
			}
		}
	}
	return nil
}

func validatePerson(p *PersonInput, reference time.Time) error {
	if _, err := domain.ParseDOB(p.DOB, reference); err != nil {
		return err
	}
	if _, err := domain.ParseGender(p.Gender); err != nil {
		return err
	}
	if p.RiskGroup < 0 || p.RiskGroup > 4 {
		return fmt.Errorf("risk group must be between 0 and 4")
	}

	r := p.Riders
	if r.Health != nil {
		if r.Health.Program != "" {
			if _, err := domain.ParseHealthProgram(r.Health.Program); err != nil {
				return err
			}
		}
		if r.Health.Scope != "" {
			if _, err := domain.ParseHealthScope(r.Health.Scope); err != nil {
				return err
			}
		}
	}
	amounts := []struct {
		name   string
		amount *decimal.Decimal
	}{
		{"critical illness", r.CriticalIllness},
		{"accident", r.Accident},
		{"hospital cash", r.HospitalCash},
	}
	for _, a := range amounts {
		if a.amount != nil && a.amount.IsNegative() {
			return fmt.Errorf("%s amount cannot be negative", a.name)
		}
	}
	return nil
}

// ParseReferenceDate accepts YYYY-MM-DD or DD/MM/YYYY; empty means the default
func ParseReferenceDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return domain.DefaultReferenceDate, nil
	}
	for _, layout := range []string{time.DateOnly, domain.DOBLayout} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid reference date %q: expected YYYY-MM-DD or DD/MM/YYYY", s)
}

// BuildQuote converts a validated request into engine inputs
func (ip *InputParser) BuildQuote(req *QuoteRequest) (*Quote, error) {
	reference, err := ParseReferenceDate(req.ReferenceDate)
	if err != nil {
		return nil, err
	}
	freq, err := domain.ParseFrequency(req.Frequency)
	if err != nil {
		return nil, err
	}

	main, err := ip.buildInsured(req.Main, reference)
	if err != nil {
		return nil, fmt.Errorf("main insured: %w", err)
	}
	main.ID = domain.MainInsuredID

	policy := &domain.Policy{Main: main}
	for i, p := range req.Supplementary {
		ins, err := ip.buildInsured(p, reference)
		if err != nil {
			return nil, fmt.Errorf("supplementary insured %d: %w", i+1, err)
		}
		policy.Supplementary = append(policy.Supplementary, ins)
	}

	if req.Product.Key != "" {
		policy.Product.Product, _ = domain.ParseProductKey(req.Product.Key)
	}
	policy.Product.SumInsured = req.Product.SumInsured
	policy.Product.EnteredPremium = req.Product.Premium
	policy.Product.PaymentTermYears = req.Product.PaymentTerm
	policy.Product.TermYears = req.Product.Term
	policy.Product.ExtraPremium = req.Product.ExtraPremium

	if w := req.Waiver; w != nil {
		policy.Waiver = domain.WaiverSelection{Enabled: true, Beneficiary: w.Beneficiary}
		if w.Other != nil {
			other, err := ip.buildProfile(*w.Other, reference)
			if err != nil {
				return nil, fmt.Errorf("waiver beneficiary: %w", err)
			}
			policy.Waiver.Other = &other
		}
	}

	return &Quote{
		Policy:    policy,
		Frequency: freq,
		TargetAge: req.TargetAge,
		Reference: reference,
	}, nil
}

func (ip *InputParser) buildProfile(p PersonInput, reference time.Time) (domain.CustomerProfile, error) {
	gender, err := domain.ParseGender(p.Gender)
	if err != nil {
		return domain.CustomerProfile{}, err
	}
	profile, err := domain.NewCustomerProfile(p.Name, p.DOB, gender, reference)
	if err != nil {
		return domain.CustomerProfile{}, err
	}
	profile.Occupation = p.Occupation
	profile.RiskGroup = p.RiskGroup
	if profile.RiskGroup == 0 && p.Occupation != "" && ip.rates != nil {
		profile.RiskGroup = ip.rates.RiskGroup(p.Occupation)
	}
	return profile, nil
}

func (ip *InputParser) buildInsured(p PersonInput, reference time.Time) (domain.Insured, error) {
	profile, err := ip.buildProfile(p, reference)
	if err != nil {
		return domain.Insured{}, err
	}
	ins := domain.Insured{ID: p.ID, Profile: profile}

	r := p.Riders
	if h := r.Health; h != nil {
		ins.Riders.Health.Enabled = true
		ins.Riders.Health.Outpatient = h.Outpatient
		ins.Riders.Health.Dental = h.Dental
		if h.Program != "" {
			ins.Riders.Health.Program, _ = domain.ParseHealthProgram(h.Program)
		}
		if h.Scope != "" {
			ins.Riders.Health.Scope, _ = domain.ParseHealthScope(h.Scope)
		}
	}
	if r.CriticalIllness != nil {
		ins.Riders.CriticalIllness = domain.SumInsuredSelection{Enabled: true, SumInsured: *r.CriticalIllness}
	}
	if r.Accident != nil {
		ins.Riders.Accident = domain.SumInsuredSelection{Enabled: true, SumInsured: *r.Accident}
	}
	if r.HospitalCash != nil {
		ins.Riders.HospitalCash = domain.HospitalCashSelection{Enabled: true, DailyAmount: *r.HospitalCash}
	}
	return ins, nil
}
