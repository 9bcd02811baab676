package eligibility

import (
	"github.com/rgehrsitz/quotecalc/internal/domain"
	"github.com/shopspring/decimal"
)

const (
	// MinDaysFromBirth is the youngest insurable age in days
	MinDaysFromBirth = 30
	// MaxSimulatedAge stops a projection once any insured would pass it
	MaxSimulatedAge = 100
	// ExcludedRiskGroup blocks the fixed-term product and the health rider
	ExcludedRiskGroup = 4

	endowmentMaxEntryAge    = 70
	fixedTermMaxEntryAge    = 60
	flexibleTermMaxEntryAge = 65
	minEntryAgeMale         = 12
	minEntryAgeFemale       = 28

	waiverBeneficiaryMinAge = 18
	waiverBeneficiaryMaxAge = 60
)

// AgeWindow is an inclusive entry window and the last renewable age
type AgeWindow struct {
	EntryMin   int
	EntryMax   int
	RenewalMax int
}

var riderWindows = map[domain.RiderKind]AgeWindow{
	domain.RiderHealth:          {EntryMin: 0, EntryMax: 65, RenewalMax: 74},
	domain.RiderCriticalIllness: {EntryMin: 0, EntryMax: 70, RenewalMax: 85},
	domain.RiderAccident:        {EntryMin: 0, EntryMax: 64, RenewalMax: 65},
	domain.RiderHospitalCash:    {EntryMin: 0, EntryMax: 55, RenewalMax: 59},
	domain.RiderWaiver:          {EntryMin: waiverBeneficiaryMinAge, EntryMax: waiverBeneficiaryMaxAge, RenewalMax: 65},
}

// ProgramThreshold unlocks health programs up to MaxTier once the main
// base premium reaches MinBasePremium.
type ProgramThreshold struct {
	MinBasePremium decimal.Decimal
	MaxTier        int
}

// Thresholds are checked from the highest premium down
var programThresholds = []ProgramThreshold{
	{MinBasePremium: decimal.NewFromInt(15_000_000), MaxTier: 4},
	{MinBasePremium: decimal.NewFromInt(10_000_000), MaxTier: 3},
	{MinBasePremium: decimal.NewFromInt(5_000_000), MaxTier: 2},
}

// flexible-term options and the oldest entry age for each
var termOptions = []struct {
	Years  int
	MaxAge int
}{
	{Years: 15, MaxAge: 55},
	{Years: 10, MaxAge: 60},
	{Years: 5, MaxAge: 65},
}

// Resolver answers product and rider eligibility questions. It holds no
// state; the rules are fixed per product.
type Resolver struct{}

// NewResolver creates a new eligibility resolver
func NewResolver() *Resolver {
	return &Resolver{}
}

// Window returns the age window of a rider
func (r *Resolver) Window(rider domain.RiderKind) (AgeWindow, bool) {
	w, ok := riderWindows[rider]
	return w, ok
}

// IsProductEligible reports whether the main product can be sold to the profile
func (r *Resolver) IsProductEligible(product domain.ProductKey, p domain.CustomerProfile) bool {
	if !p.Valid() {
		return false
	}
	age := p.Age()
	switch product.Family() {
	case domain.FamilyPUL, domain.FamilyMUL:
		return p.DaysFromBirth() >= MinDaysFromBirth && age <= endowmentMaxEntryAge
	case domain.FamilyFixedTerm:
		if p.RiskGroup == ExcludedRiskGroup || age > fixedTermMaxEntryAge {
			return false
		}
		return age >= minEntryAge(p.Gender)
	case domain.FamilyFlexibleTerm:
		return age >= minEntryAge(p.Gender) && age <= flexibleTermMaxEntryAge
	}
	return false
}

func minEntryAge(g domain.Gender) int {
	if g == domain.GenderFemale {
		return minEntryAgeFemale
	}
	return minEntryAgeMale
}

// IsRiderEligible applies the entry window of a per-insured rider
func (r *Resolver) IsRiderEligible(rider domain.RiderKind, p domain.CustomerProfile) bool {
	w, ok := riderWindows[rider]
	if !ok || rider == domain.RiderWaiver || !p.Valid() {
		return false
	}
	if p.DaysFromBirth() < MinDaysFromBirth {
		return false
	}
	age := p.Age()
	if age < w.EntryMin || age > w.EntryMax {
		return false
	}
	if rider == domain.RiderHealth && p.RiskGroup == ExcludedRiskGroup {
		return false
	}
	return true
}

// IsWaiverBeneficiaryEligible checks the beneficiary's age at selection
func (r *Resolver) IsWaiverBeneficiaryEligible(p domain.CustomerProfile) bool {
	if !p.Valid() {
		return false
	}
	age := p.Age()
	return age >= waiverBeneficiaryMinAge && age <= waiverBeneficiaryMaxAge
}

// RenewalCeiling is the last age a rider can be renewed at
func (r *Resolver) RenewalCeiling(rider domain.RiderKind) int {
	return riderWindows[rider].RenewalMax
}

// IsRenewable reports whether the rider is still priced at age
func (r *Resolver) IsRenewable(rider domain.RiderKind, age int) bool {
	w, ok := riderWindows[rider]
	return ok && age <= w.RenewalMax
}

// CompatibleRiders lists the per-insured riders a main product allows
func (r *Resolver) CompatibleRiders(product domain.ProductKey) []domain.RiderKind {
	switch product.Family() {
	case domain.FamilyUnknown:
		return nil
	case domain.FamilyFixedTerm:
		return []domain.RiderKind{domain.RiderHealth}
	}
	out := make([]domain.RiderKind, len(domain.RiderKinds))
	copy(out, domain.RiderKinds)
	return out
}

// IsRiderCompatible reports whether the product allows the rider
func (r *Resolver) IsRiderCompatible(product domain.ProductKey, rider domain.RiderKind) bool {
	for _, k := range r.CompatibleRiders(product) {
		if k == rider {
			return true
		}
	}
	return false
}

// SupplementaryAllowed reports whether insureds besides the main one may be added
func (r *Resolver) SupplementaryAllowed(product domain.ProductKey) bool {
	return product.Family() != domain.FamilyFixedTerm
}

// WaiverAllowed reports whether the premium-waiver rider may be added
func (r *Resolver) WaiverAllowed(product domain.ProductKey) bool {
	f := product.Family()
	return f != domain.FamilyFixedTerm && f != domain.FamilyUnknown
}

// HealthRequired reports whether the main insured must carry the health rider
func (r *Resolver) HealthRequired(product domain.ProductKey) bool {
	return product.Family() == domain.FamilyFixedTerm
}

// AllowedPrograms lists the health programs unlocked by the main base premium
func (r *Resolver) AllowedPrograms(product domain.ProductKey, mainBasePremium decimal.Decimal) []domain.HealthProgram {
	maxTier := 0
	if product.Family() == domain.FamilyFixedTerm {
		maxTier = len(domain.HealthPrograms)
	} else {
		for _, th := range programThresholds {
			if mainBasePremium.GreaterThanOrEqual(th.MinBasePremium) {
				maxTier = th.MaxTier
				break
			}
		}
	}
	return domain.HealthPrograms[:maxTier]
}

// ResolveProgram returns the requested program when unlocked, otherwise
// enhanced when unlocked, otherwise the first unlocked program. The second
// result is false when the requested program had to be replaced.
func (r *Resolver) ResolveProgram(requested domain.HealthProgram, allowed []domain.HealthProgram) (domain.HealthProgram, bool) {
	if len(allowed) == 0 {
		return "", requested == ""
	}
	for _, p := range allowed {
		if p == requested {
			return p, true
		}
	}
	for _, p := range allowed {
		if p == domain.ProgramEnhanced {
			return p, false
		}
	}
	return allowed[0], false
}

// AllowedTerms lists the term lengths open to the flexible-term product at age
func (r *Resolver) AllowedTerms(product domain.ProductKey, age int) []int {
	switch product.Family() {
	case domain.FamilyFixedTerm:
		if age <= fixedTermMaxEntryAge {
			return []int{domain.TronTamAnTermYears}
		}
		return nil
	case domain.FamilyFlexibleTerm:
		var out []int
		for _, opt := range termOptions {
			if age <= opt.MaxAge {
				out = append(out, opt.Years)
			}
		}
		return out
	}
	return nil
}

// IsTermAllowed reports whether termYears is one of AllowedTerms
func (r *Resolver) IsTermAllowed(product domain.ProductKey, age, termYears int) bool {
	for _, t := range r.AllowedTerms(product, age) {
		if t == termYears {
			return true
		}
	}
	return false
}

// PaymentTermBounds returns the selectable payment-term range for the
// endowment family. The upper bound is clamped at zero for very old applicants.
func (r *Resolver) PaymentTermBounds(product domain.ProductKey, age int) (int, int) {
	lo := 4
	switch product {
	case domain.ProductPUL5Year:
		lo = 5
	case domain.ProductPUL15Year:
		lo = 15
	}
	return lo, max(0, 100-age-1)
}

// EffectivePaymentTerm is the number of years the main premium is due
func (r *Resolver) EffectivePaymentTerm(sel domain.MainProductSelection) int {
	switch sel.Product.Family() {
	case domain.FamilyFixedTerm:
		return domain.TronTamAnTermYears
	case domain.FamilyFlexibleTerm:
		return sel.TermYears
	}
	return sel.PaymentTermYears
}

// DefaultTargetAge is the illustration end age when none is requested
func (r *Resolver) DefaultTargetAge(sel domain.MainProductSelection, age int) int {
	return max(age+r.EffectivePaymentTerm(sel)-1, age+1)
}

// MinTargetAge is the earliest acceptable illustration end age
func (r *Resolver) MinTargetAge(sel domain.MainProductSelection, age int) int {
	lowest := age + 1
	if sel.Product.HasPaymentTerm() {
		lowest = max(lowest, age+sel.PaymentTermYears-1)
	}
	return lowest
}
