package transform

import (
	"testing"

	"github.com/rgehrsitz/quotecalc/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransformRegistry_List(t *testing.T) {
	names := NewTransformRegistry().List()
	assert.Len(t, names, 11)
	assert.IsIncreasing(t, names)
	assert.Contains(t, names, "drop_rider")
}

func TestParseTransformSpec(t *testing.T) {
	registry := NewTransformRegistry()

	tests := []struct {
		spec  string
		check func(t *testing.T, tr RequestTransform)
	}{
		{"set_frequency:frequency=quarter", func(t *testing.T, tr RequestTransform) {
			assert.Equal(t, &SetFrequency{Frequency: domain.FrequencyQuarterly}, tr)
		}},
		{"set_target_age:age=75", func(t *testing.T, tr RequestTransform) {
			assert.Equal(t, &SetTargetAge{Age: 75}, tr)
		}},
		{"set_premium: amount = 30_000_000", func(t *testing.T, tr RequestTransform) {
			require.IsType(t, &SetPremium{}, tr)
			assert.True(t, tr.(*SetPremium).Premium.Equal(domain.Money(30_000_000)))
		}},
		{"set_extra_premium:amount=0", func(t *testing.T, tr RequestTransform) {
			require.IsType(t, &SetExtraPremium{}, tr)
			assert.True(t, tr.(*SetExtraPremium).Amount.IsZero())
		}},
		{"set_sum_insured:amount=500000000", func(t *testing.T, tr RequestTransform) {
			assert.IsType(t, &SetSumInsured{}, tr)
		}},
		{"set_payment_term:years=15", func(t *testing.T, tr RequestTransform) {
			assert.Equal(t, &SetPaymentTerm{Years: 15}, tr)
		}},
		{"drop_rider:insured=binh,rider=Hospital_Cash", func(t *testing.T, tr RequestTransform) {
			assert.Equal(t, &DropRider{Insured: "binh", Rider: domain.RiderHospitalCash}, tr)
		}},
		{"drop_rider:rider=health", func(t *testing.T, tr RequestTransform) {
			assert.Equal(t, &DropRider{Rider: domain.RiderHealth}, tr, "insured defaults to the main insured")
		}},
		{"set_rider_amount:insured=main,rider=accident,amount=100000000", func(t *testing.T, tr RequestTransform) {
			require.IsType(t, &SetRiderAmount{}, tr)
			assert.Equal(t, domain.RiderAccident, tr.(*SetRiderAmount).Rider)
		}},
		{"set_health_program:insured=binh,program=toan_dien", func(t *testing.T, tr RequestTransform) {
			assert.Equal(t, &SetHealthProgram{Insured: "binh", Program: domain.ProgramComprehensive}, tr)
		}},
		{"remove_waiver", func(t *testing.T, tr RequestTransform) {
			assert.Equal(t, &RemoveWaiver{}, tr)
		}},
		{"remove_waiver:", func(t *testing.T, tr RequestTransform) {
			assert.Equal(t, &RemoveWaiver{}, tr)
		}},
		{"set_waiver_beneficiary:beneficiary=be-an", func(t *testing.T, tr RequestTransform) {
			assert.Equal(t, &SetWaiverBeneficiary{Beneficiary: "be-an"}, tr)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			tr, err := registry.ParseTransformSpec(tt.spec)
			require.NoError(t, err)
			tt.check(t, tr)
		})
	}
}

func TestParseTransformSpec_Errors(t *testing.T) {
	registry := NewTransformRegistry()
	specs := []string{
		"",
		":age=1",
		"unknown_transform:x=1",
		"set_target_age",
		"set_target_age:age",
		"set_target_age:age=old",
		"set_premium:amount=lots",
		"set_frequency:frequency=monthly",
		"set_health_program:program=gold",
		"drop_rider:insured=main",
		"set_waiver_beneficiary:",
	}
	for _, spec := range specs {
		t.Run(spec, func(t *testing.T) {
			_, err := registry.ParseTransformSpec(spec)
			assert.Error(t, err)
		})
	}
}
