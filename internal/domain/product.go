package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ProductKey identifies a main product. Values match the rate-table keys.
type ProductKey string

const (
	ProductPULWholeLife ProductKey = "PUL_TRON_DOI"
	ProductPUL15Year    ProductKey = "PUL_15_NAM"
	ProductPUL5Year     ProductKey = "PUL_5_NAM"
	ProductKhoeBinhAn   ProductKey = "KHOE_BINH_AN"
	ProductVungTuongLai ProductKey = "VUNG_TUONG_LAI"
	ProductTronTamAn    ProductKey = "TRON_TAM_AN"
	ProductAnBinhUuViet ProductKey = "AN_BINH_UU_VIET"
)

const (
	TronTamAnTermYears             = 10
	TronTamAnSumInsured      int64 = 100_000_000
	MinRecommendedSumInsured int64 = 100_000_000
	MinRecommendedPremium    int64 = 5_000_000
)

// ProductFamily groups products that share a pricing rule
type ProductFamily int

const (
	FamilyUnknown ProductFamily = iota
	// FamilyPUL prices as sum insured times an exact-age rate
	FamilyPUL
	// FamilyMUL takes a user-entered premium bounded by age-band factors
	FamilyMUL
	// FamilyFixedTerm is the 10-year product with a fixed sum insured
	FamilyFixedTerm
	// FamilyFlexibleTerm picks a 5, 10 or 15 year term
	FamilyFlexibleTerm
)

// Products lists every known main product in display order
var Products = []ProductKey{
	ProductPULWholeLife,
	ProductPUL15Year,
	ProductPUL5Year,
	ProductKhoeBinhAn,
	ProductVungTuongLai,
	ProductTronTamAn,
	ProductAnBinhUuViet,
}

var productNames = map[ProductKey]string{
	ProductPULWholeLife: "PUL Trọn Đời",
	ProductPUL15Year:    "PUL 15 Năm",
	ProductPUL5Year:     "PUL 5 Năm",
	ProductKhoeBinhAn:   "Khoẻ Bình An",
	ProductVungTuongLai: "Vững Tương Lai",
	ProductTronTamAn:    "Trọn Tâm An",
	ProductAnBinhUuViet: "An Bình Ưu Việt",
}

// ParseProductKey matches a product key case-insensitively
func ParseProductKey(s string) (ProductKey, error) {
	key := ProductKey(strings.ToUpper(strings.TrimSpace(s)))
	if key.Family() == FamilyUnknown {
		return "", fmt.Errorf("unknown product %q", s)
	}
	return key, nil
}

// Family returns the pricing family of the product
func (k ProductKey) Family() ProductFamily {
	switch k {
	case ProductPULWholeLife, ProductPUL15Year, ProductPUL5Year:
		return FamilyPUL
	case ProductKhoeBinhAn, ProductVungTuongLai:
		return FamilyMUL
	case ProductTronTamAn:
		return FamilyFixedTerm
	case ProductAnBinhUuViet:
		return FamilyFlexibleTerm
	}
	return FamilyUnknown
}

// DisplayName returns the marketing name of the product
func (k ProductKey) DisplayName() string {
	if name, ok := productNames[k]; ok {
		return name
	}
	return string(k)
}

// AllowsExtraPremium reports whether a voluntary top-up can be added
func (k ProductKey) AllowsExtraPremium() bool {
	f := k.Family()
	return f == FamilyPUL || f == FamilyMUL
}

// HasPaymentTerm reports whether the user chooses the payment term
func (k ProductKey) HasPaymentTerm() bool {
	return k.AllowsExtraPremium()
}

// RiderKind identifies a supplementary product
type RiderKind string

const (
	RiderHealth          RiderKind = "health"
	RiderCriticalIllness RiderKind = "critical_illness"
	RiderAccident        RiderKind = "accident"
	RiderHospitalCash    RiderKind = "hospital_cash"
	RiderWaiver          RiderKind = "waiver"
)

// RiderKinds is the per-insured processing order
var RiderKinds = []RiderKind{RiderHealth, RiderCriticalIllness, RiderAccident, RiderHospitalCash}

var riderNames = map[RiderKind]string{
	RiderHealth:          "Sức khoẻ Bùng Gia Lực",
	RiderCriticalIllness: "Bệnh hiểm nghèo 2.0",
	RiderAccident:        "Tai nạn",
	RiderHospitalCash:    "Hỗ trợ chi phí nằm viện",
	RiderWaiver:          "Miễn đóng phí 3.0",
}

// DisplayName returns the marketing name of the rider
func (r RiderKind) DisplayName() string {
	if name, ok := riderNames[r]; ok {
		return name
	}
	return string(r)
}

// HealthProgram is a benefit tier of the health rider, lowest first
type HealthProgram string

const (
	ProgramBasic         HealthProgram = "basic"
	ProgramEnhanced      HealthProgram = "enhanced"
	ProgramComprehensive HealthProgram = "comprehensive"
	ProgramPremium       HealthProgram = "premium"
)

// HealthPrograms lists the tiers in ascending order
var HealthPrograms = []HealthProgram{ProgramBasic, ProgramEnhanced, ProgramComprehensive, ProgramPremium}

var programSumInsured = map[HealthProgram]int64{
	ProgramBasic:         100_000_000,
	ProgramEnhanced:      250_000_000,
	ProgramComprehensive: 500_000_000,
	ProgramPremium:       1_000_000_000,
}

// ParseHealthProgram accepts the English tier names and the rate-table keys
func ParseHealthProgram(s string) (HealthProgram, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "basic", "co_ban":
		return ProgramBasic, nil
	case "enhanced", "nang_cao":
		return ProgramEnhanced, nil
	case "comprehensive", "toan_dien":
		return ProgramComprehensive, nil
	case "premium", "hoan_hao":
		return ProgramPremium, nil
	}
	return "", fmt.Errorf("unknown health program %q", s)
}

// Tier returns 1..4, or 0 for an unknown program
func (p HealthProgram) Tier() int {
	for i, hp := range HealthPrograms {
		if hp == p {
			return i + 1
		}
	}
	return 0
}

// SumInsured is the benefit limit implied by the program
func (p HealthProgram) SumInsured() decimal.Decimal {
	return decimal.NewFromInt(programSumInsured[p])
}

// HealthScope is the territorial scope of the health rider core benefit
type HealthScope string

const (
	ScopeDomestic      HealthScope = "domestic"
	ScopeInternational HealthScope = "international"
)

// ParseHealthScope accepts the English names and the rate-table keys
func ParseHealthScope(s string) (HealthScope, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "domestic", "main_vn":
		return ScopeDomestic, nil
	case "international", "main_global":
		return ScopeInternational, nil
	}
	return "", fmt.Errorf("unknown health scope %q", s)
}

// Frequency is the premium payment mode
type Frequency string

const (
	FrequencyAnnual     Frequency = "annual"
	FrequencySemiAnnual Frequency = "semiannual"
	FrequencyQuarterly  Frequency = "quarterly"
)

// Frequencies lists payment modes in display order
var Frequencies = []Frequency{FrequencyAnnual, FrequencySemiAnnual, FrequencyQuarterly}

// ParseFrequency accepts the canonical names plus year/half/quarter
func ParseFrequency(s string) (Frequency, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "annual", "year", "yearly":
		return FrequencyAnnual, nil
	case "semiannual", "semi-annual", "half":
		return FrequencySemiAnnual, nil
	case "quarterly", "quarter":
		return FrequencyQuarterly, nil
	}
	return "", fmt.Errorf("unknown payment frequency %q", s)
}

// Periods returns installments per year
func (f Frequency) Periods() int {
	switch f {
	case FrequencySemiAnnual:
		return 2
	case FrequencyQuarterly:
		return 4
	}
	return 1
}

// LoadingFactor is applied to rider premiums paid in installments
func (f Frequency) LoadingFactor() decimal.Decimal {
	switch f {
	case FrequencySemiAnnual:
		return decimal.RequireFromString("1.02")
	case FrequencyQuarterly:
		return decimal.RequireFromString("1.04")
	}
	return decimal.NewFromInt(1)
}
