package transform

import (
	"errors"
	"testing"

	"github.com/rgehrsitz/quotecalc/internal/config"
	"github.com/rgehrsitz/quotecalc/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func amount(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func createTestRequest() *config.QuoteRequest {
	return &config.QuoteRequest{
		Frequency: "annual",
		TargetAge: 60,
		Main: config.PersonInput{
			Name:   "An",
			DOB:    "09/08/1990",
			Gender: "male",
			Riders: config.RidersInput{
				Health:       &config.HealthInput{Program: "enhanced", Outpatient: true},
				HospitalCash: amount(200_000),
			},
		},
		Product: config.ProductInput{
			Key:          "KHOE_BINH_AN",
			SumInsured:   domain.Money(1_000_000_000),
			Premium:      domain.Money(20_000_000),
			PaymentTerm:  10,
			ExtraPremium: domain.Money(5_000_000),
		},
		Supplementary: []config.PersonInput{{
			ID:     "binh",
			Name:   "Bình",
			DOB:    "15/03/1995",
			Gender: "female",
			Riders: config.RidersInput{CriticalIllness: amount(200_000_000)},
		}},
		Waiver: &config.WaiverInput{Beneficiary: "binh"},
	}
}

func TestApplyTransforms_NilRequest(t *testing.T) {
	_, err := ApplyTransforms(nil, []RequestTransform{&RemoveWaiver{}})
	assert.Error(t, err)
}

func TestApplyTransforms_EmptyTransforms(t *testing.T) {
	base := createTestRequest()
	result, err := ApplyTransforms(base, nil)
	require.NoError(t, err)
	assert.Equal(t, base, result)
	assert.NotSame(t, base, result, "an empty chain still returns a copy")
}

func TestApplyTransforms_NilTransform(t *testing.T) {
	_, err := ApplyTransforms(createTestRequest(), []RequestTransform{&RemoveWaiver{}, nil})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "index 1")
}

func TestApplyTransforms_Chain(t *testing.T) {
	base := createTestRequest()
	result, err := ApplyTransforms(base, []RequestTransform{
		&SetFrequency{Frequency: domain.FrequencyQuarterly},
		&SetExtraPremium{Amount: decimal.Zero},
		&DropRider{Insured: "main", Rider: domain.RiderHospitalCash},
		&SetRiderAmount{Insured: "binh", Rider: domain.RiderHospitalCash, Amount: domain.Money(100_000)},
	})
	require.NoError(t, err)

	assert.Equal(t, "quarterly", result.Frequency)
	assert.True(t, result.Product.ExtraPremium.IsZero())
	assert.Nil(t, result.Main.Riders.HospitalCash)
	require.NotNil(t, result.Supplementary[0].Riders.HospitalCash)
	assert.True(t, result.Supplementary[0].Riders.HospitalCash.Equal(domain.Money(100_000)))

	// base is untouched
	assert.Equal(t, "annual", base.Frequency)
	assert.True(t, base.Product.ExtraPremium.Equal(domain.Money(5_000_000)))
	assert.NotNil(t, base.Main.Riders.HospitalCash)
	assert.Nil(t, base.Supplementary[0].Riders.HospitalCash)
}

func TestApplyTransforms_ValidationFailureStopsChain(t *testing.T) {
	_, err := ApplyTransforms(createTestRequest(), []RequestTransform{
		&SetFrequency{Frequency: domain.FrequencyQuarterly},
		&DropRider{Insured: "nobody", Rider: domain.RiderHealth},
	})
	require.Error(t, err)

	var te *TransformError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, "drop_rider", te.TransformName)
	assert.Equal(t, "validate", te.Operation)
	assert.Contains(t, err.Error(), "insured nobody not found")
}

func TestTransforms_Validate(t *testing.T) {
	base := createTestRequest()
	tests := []struct {
		name      string
		transform RequestTransform
		wantErr   bool
	}{
		{"frequency", &SetFrequency{Frequency: domain.FrequencySemiAnnual}, false},
		{"unknown frequency", &SetFrequency{Frequency: "monthly"}, true},
		{"target age", &SetTargetAge{Age: 70}, false},
		{"zero target age", &SetTargetAge{Age: 0}, true},
		{"premium", &SetPremium{Premium: domain.Money(30_000_000)}, false},
		{"negative premium", &SetPremium{Premium: domain.Money(-1)}, true},
		{"extra premium", &SetExtraPremium{Amount: domain.Money(1_000_000)}, false},
		{"negative extra", &SetExtraPremium{Amount: domain.Money(-1)}, true},
		{"sum insured", &SetSumInsured{Amount: domain.Money(500_000_000)}, false},
		{"zero sum insured", &SetSumInsured{Amount: decimal.Zero}, true},
		{"payment term", &SetPaymentTerm{Years: 15}, false},
		{"zero payment term", &SetPaymentTerm{Years: 0}, true},
		{"drop rider", &DropRider{Insured: "binh", Rider: domain.RiderCriticalIllness}, false},
		{"drop waiver as rider", &DropRider{Insured: "binh", Rider: domain.RiderWaiver}, true},
		{"rider amount", &SetRiderAmount{Insured: "main", Rider: domain.RiderAccident, Amount: domain.Money(100_000_000)}, false},
		{"health has no amount", &SetRiderAmount{Insured: "main", Rider: domain.RiderHealth, Amount: domain.Money(1)}, true},
		{"zero rider amount", &SetRiderAmount{Insured: "main", Rider: domain.RiderAccident, Amount: decimal.Zero}, true},
		{"health program", &SetHealthProgram{Insured: "binh", Program: domain.ProgramPremium}, false},
		{"unknown program", &SetHealthProgram{Insured: "binh", Program: "gold"}, true},
		{"remove waiver", &RemoveWaiver{}, false},
		{"waiver beneficiary", &SetWaiverBeneficiary{Beneficiary: "binh"}, false},
		{"waiver on main", &SetWaiverBeneficiary{Beneficiary: "main"}, true},
		{"waiver on unknown", &SetWaiverBeneficiary{Beneficiary: "ghost"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.transform.Validate(base)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Error(t, tt.transform.Validate(nil), "nil base is always rejected")
			assert.NotEmpty(t, tt.transform.Description())
		})
	}
}

func TestProductTransforms_ProductRules(t *testing.T) {
	base := createTestRequest()
	base.Product = config.ProductInput{Key: "TRON_TAM_AN"}

	assert.Error(t, (&SetExtraPremium{Amount: domain.Money(1_000_000)}).Validate(base))
	assert.NoError(t, (&SetExtraPremium{Amount: decimal.Zero}).Validate(base), "dropping an absent extra is harmless")
	assert.Error(t, (&SetPaymentTerm{Years: 10}).Validate(base))

	base.Product.Key = ""
	assert.Error(t, (&SetPaymentTerm{Years: 10}).Validate(base))
}

func TestSetHealthProgram_Apply(t *testing.T) {
	base := createTestRequest()

	result, err := ApplyTransforms(base, []RequestTransform{
		&SetHealthProgram{Insured: "", Program: domain.ProgramBasic},
		&SetHealthProgram{Insured: "binh", Program: domain.ProgramComprehensive},
	})
	require.NoError(t, err)

	assert.Equal(t, "basic", result.Main.Riders.Health.Program)
	assert.True(t, result.Main.Riders.Health.Outpatient, "other health options are kept")
	require.NotNil(t, result.Supplementary[0].Riders.Health)
	assert.Equal(t, "comprehensive", result.Supplementary[0].Riders.Health.Program)
	assert.Equal(t, "enhanced", base.Main.Riders.Health.Program)
}

func TestWaiverTransforms_Apply(t *testing.T) {
	base := createTestRequest()

	removed, err := (&RemoveWaiver{}).Apply(base)
	require.NoError(t, err)
	assert.Nil(t, removed.Waiver)
	assert.NotNil(t, base.Waiver)

	again, err := ApplyTransforms(removed, []RequestTransform{&RemoveWaiver{}})
	require.NoError(t, err)
	assert.Nil(t, again.Waiver)

	moved, err := ApplyTransforms(removed, []RequestTransform{&SetWaiverBeneficiary{Beneficiary: "binh"}})
	require.NoError(t, err)
	require.NotNil(t, moved.Waiver)
	assert.Equal(t, "binh", moved.Waiver.Beneficiary)
}

func TestDropRider_AllKinds(t *testing.T) {
	base := createTestRequest()
	base.Main.Riders.CriticalIllness = amount(300_000_000)
	base.Main.Riders.Accident = amount(500_000_000)

	var transforms []RequestTransform
	for _, kind := range domain.RiderKinds {
		transforms = append(transforms, &DropRider{Insured: "main", Rider: kind})
	}
	result, err := ApplyTransforms(base, transforms)
	require.NoError(t, err)
	assert.Equal(t, config.RidersInput{}, result.Main.Riders)
}

func TestTransformError(t *testing.T) {
	inner := errors.New("boom")
	err := NewTransformError("set_premium", "apply", "failed", inner)
	assert.Equal(t, "transform set_premium (apply): failed: boom", err.Error())
	assert.ErrorIs(t, err, inner)

	assert.Equal(t, "transform x (validate): bad", NewTransformError("x", "validate", "bad", nil).Error())
}
