package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFloorThousand(t *testing.T) {
	testCases := []struct {
		in       string
		expected int64
	}{
		{"0", 0},
		{"-5000", 0},
		{"999.99", 0},
		{"1000", 1000},
		{"1999.5", 1000},
		{"20000000", 20000000},
		{"1234567.89", 1234000},
	}

	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			x := decimal.RequireFromString(tc.in)
			once := FloorThousand(x)
			assert.True(t, once.Equal(decimal.NewFromInt(tc.expected)), "got %s", once)
			assert.True(t, FloorThousand(once).Equal(once), "floor must be idempotent")
		})
	}
}

func TestRoundThousand(t *testing.T) {
	assert.True(t, RoundThousand(decimal.NewFromInt(1499)).Equal(decimal.NewFromInt(1000)))
	assert.True(t, RoundThousand(decimal.NewFromInt(1500)).Equal(decimal.NewFromInt(2000)))
	assert.True(t, RoundThousand(decimal.RequireFromString("255000.5")).Equal(decimal.NewFromInt(255000)))
}

func TestFrequency(t *testing.T) {
	f, err := ParseFrequency("half")
	require.NoError(t, err)
	assert.Equal(t, FrequencySemiAnnual, f)
	assert.Equal(t, 2, f.Periods())
	assert.Equal(t, "1.02", f.LoadingFactor().String())

	assert.Equal(t, 4, FrequencyQuarterly.Periods())
	assert.Equal(t, 1, FrequencyAnnual.Periods())

	_, err = ParseFrequency("monthly")
	assert.Error(t, err)
}

func TestHealthProgramTier(t *testing.T) {
	assert.Equal(t, 1, ProgramBasic.Tier())
	assert.Equal(t, 4, ProgramPremium.Tier())
	assert.Equal(t, 0, HealthProgram("gold").Tier())

	p, err := ParseHealthProgram("nang_cao")
	require.NoError(t, err)
	assert.Equal(t, ProgramEnhanced, p)
	assert.True(t, p.SumInsured().Equal(decimal.NewFromInt(250_000_000)))
}

func TestProductFamily(t *testing.T) {
	assert.Equal(t, FamilyPUL, ProductPUL5Year.Family())
	assert.Equal(t, FamilyMUL, ProductKhoeBinhAn.Family())
	assert.Equal(t, FamilyFixedTerm, ProductTronTamAn.Family())
	assert.Equal(t, FamilyFlexibleTerm, ProductAnBinhUuViet.Family())
	assert.False(t, ProductTronTamAn.AllowsExtraPremium())

	k, err := ParseProductKey("khoe_binh_an")
	require.NoError(t, err)
	assert.Equal(t, ProductKhoeBinhAn, k)

	_, err = ParseProductKey("NOPE")
	assert.Error(t, err)
}

func TestValidationError(t *testing.T) {
	var err error = NewValidationError(KindAccidentSum, "accident.sumInsured", "main", "sum insured %s out of range", "5")
	assert.True(t, errors.Is(err, ErrValidation))

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, KindAccidentSum, ve.Kind)
	assert.Contains(t, err.Error(), "insured main")
}
