package calculation

import (
	"testing"

	"github.com/rgehrsitz/quotecalc/internal/domain"
	"github.com/rgehrsitz/quotecalc/internal/ratetable"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findLine(lines []domain.ProductLine, insuredID, product string) (domain.ProductLine, bool) {
	for _, l := range lines {
		if l.InsuredID == insuredID && l.Product == product {
			return l, true
		}
	}
	return domain.ProductLine{}, false
}

func TestProject_RidersAndPaymentTerm(t *testing.T) {
	engine := newTestEngine(t)
	policy := flexiblePolicy(t)
	policy.Product.SumInsured = money(400_000_000)
	policy.Product.EnteredPremium = money(8_000_000)
	policy.Main.Riders.CriticalIllness = domain.SumInsuredSelection{Enabled: true, SumInsured: money(300_000_000)}
	policy.Main.Riders.HospitalCash = domain.HospitalCashSelection{Enabled: true, DailyAmount: money(200_000)}

	proj, err := engine.Project(policy, ProjectionOptions{TargetAge: 60})
	require.NoError(t, err)

	assert.Equal(t, "test-id", proj.ID)
	assert.Equal(t, 35, proj.StartAge)
	assert.Equal(t, 60, proj.TargetAge)
	assert.Equal(t, domain.FrequencyAnnual, proj.Frequency)
	require.Equal(t, 26, proj.Years())

	testCases := []struct {
		desc  string
		index int
		age   int
		main  int64
		total int64
	}{
		// 8M + CI 555,000 + hospital 480,000
		{desc: "first year", index: 0, age: 35, main: 8_000_000, total: 9_035_000},
		// CI 750,000 at 2.5
		{desc: "last paying year", index: 9, age: 44, main: 8_000_000, total: 9_230_000},
		{desc: "first paid-up year", index: 10, age: 45, main: 0, total: 1_230_000},
		// CI 1,800,000 at 6.0 and hospital cash past its renewal age
		{desc: "target year", index: 25, age: 60, main: 0, total: 1_800_000},
	}
	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			row := proj.Rows[tc.index]
			assert.Equal(t, tc.index+1, row.Year)
			assert.Equal(t, tc.age, row.MainAge)
			assertMoney(t, tc.main, row.MainPremium)
			assertMoney(t, tc.total, row.Total)
		})
	}

	var sum decimal.Decimal
	for _, row := range proj.Rows {
		sum = sum.Add(row.Total)
		assert.True(t, row.Cumulative.Equal(sum), "cumulative at year %d", row.Year)
	}
	assert.True(t, proj.Total.Equal(sum))

	mainLine, ok := findLine(proj.Lines, domain.MainInsuredID, domain.ProductKhoeBinhAn.DisplayName())
	require.True(t, ok)
	assert.Equal(t, 10, mainLine.Years)
	ci, ok := findLine(proj.Lines, domain.MainInsuredID, domain.RiderCriticalIllness.DisplayName())
	require.True(t, ok)
	assert.Equal(t, 26, ci.Years)
	hc, ok := findLine(proj.Lines, domain.MainInsuredID, domain.RiderHospitalCash.DisplayName())
	require.True(t, ok)
	assert.Equal(t, 25, hc.Years, "hospital cash renews to 59")
}

func TestProject_DefaultTargetAge(t *testing.T) {
	engine := newTestEngine(t)
	policy := flexiblePolicy(t)

	proj, err := engine.Project(policy, ProjectionOptions{})
	require.NoError(t, err)
	assert.Equal(t, 44, proj.TargetAge)
	assert.Equal(t, 10, proj.Years())
	assertMoney(t, 200_000_000, proj.Total)
}

func TestProject_HospitalCapResetsEachYear(t *testing.T) {
	engine := newTestEngine(t)
	policy := flexiblePolicy(t)
	policy.Product.SumInsured = money(400_000_000)
	policy.Product.EnteredPremium = money(8_000_000)
	policy.Main.Riders.HospitalCash = domain.HospitalCashSelection{Enabled: true, DailyAmount: money(100_000)}
	policy.Supplementary = []domain.Insured{{
		ID:      "binh",
		Profile: person(t, "Binh", "09/08/1995", domain.GenderFemale, 1),
		Riders: domain.RiderSelection{
			HospitalCash: domain.HospitalCashSelection{Enabled: true, DailyAmount: money(100_000)},
		},
	}}

	proj, err := engine.Project(policy, ProjectionOptions{TargetAge: 60})
	require.NoError(t, err)
	require.Equal(t, 26, proj.Years())

	last := proj.Rows[25]
	require.Len(t, last.Insureds, 2)
	assert.True(t, last.Insureds[0].Subtotal.IsZero(), "main insured is past the renewal age")
	assert.Equal(t, 55, last.Insureds[1].Age)
	// 1,000 hundreds at 240
	assertMoney(t, 240_000, last.Insureds[1].Subtotal)

	binh, ok := findLine(proj.Lines, "binh", domain.RiderHospitalCash.DisplayName())
	require.True(t, ok)
	assert.Equal(t, 26, binh.Years)
}

func TestProject_StopsAtMaximumSimulatedAge(t *testing.T) {
	engine := newTestEngine(t)
	policy := flexiblePolicy(t)
	policy.Supplementary = []domain.Insured{{ID: "cu", Profile: person(t, "Cu", "09/08/1935", domain.GenderMale, 1)}}

	proj, err := engine.Project(policy, ProjectionOptions{TargetAge: 60})
	require.NoError(t, err)
	// the 90-year-old reaches 100 in year 11
	assert.Equal(t, 11, proj.Years())
	assert.Equal(t, 45, proj.Rows[len(proj.Rows)-1].MainAge)
}

func TestProject_Waiver(t *testing.T) {
	t.Run("base follows the year's main premium", func(t *testing.T) {
		engine := newTestEngine(t)
		policy := waiverPolicy(t)
		policy.Waiver = domain.WaiverSelection{Enabled: true, Beneficiary: "binh"}

		proj, err := engine.Project(policy, ProjectionOptions{TargetAge: 60})
		require.NoError(t, err)

		assertMoney(t, 57_000, proj.Rows[0].Waiver)
		// paid up: 750,000 main riders at 2.8
		assertMoney(t, 2_000, proj.Rows[10].Waiver)
	})

	t.Run("stops after the renewal age", func(t *testing.T) {
		engine := newTestEngine(t)
		policy := waiverPolicy(t)
		other := person(t, "Em", "09/08/1965", domain.GenderMale, 0)
		policy.Waiver = domain.WaiverSelection{Enabled: true, Beneficiary: domain.BeneficiaryOther, Other: &other}

		proj, err := engine.Project(policy, ProjectionOptions{TargetAge: 60})
		require.NoError(t, err)

		line, ok := findLine(proj.Lines, domain.BeneficiaryOther, domain.RiderWaiver.DisplayName())
		require.True(t, ok)
		assert.Equal(t, 6, line.Years, "ages 60 to 65")
		assert.True(t, proj.Rows[6].Waiver.IsZero())
	})
}

func TestProject_Frequency(t *testing.T) {
	engine := newTestEngine(t)
	policy := flexiblePolicy(t)
	policy.Main.Riders.CriticalIllness = domain.SumInsuredSelection{Enabled: true, SumInsured: money(300_000_000)}

	proj, err := engine.Project(policy, ProjectionOptions{TargetAge: 50, Frequency: domain.FrequencySemiAnnual})
	require.NoError(t, err)

	first := proj.Rows[0]
	// 10,000,000 + 283,000 per half-year
	assertMoney(t, 20_566_000, first.FrequencyTotal)
	assertMoney(t, 11_000, first.FrequencyDiff)
	assertMoney(t, 20_555_000, first.Total, "annual totals are not loaded")

	annual, err := engine.Project(policy, ProjectionOptions{TargetAge: 50})
	require.NoError(t, err)
	assert.True(t, annual.Rows[0].FrequencyTotal.IsZero())
}

func TestFrequencyAdjustedTotal(t *testing.T) {
	row := domain.ProjectionRow{
		MainPremium: money(10_001_000),
		Insureds: []domain.InsuredYear{
			{InsuredID: domain.MainInsuredID, Subtotal: money(3_000)},
			{InsuredID: "binh", Subtotal: money(555_000)},
		},
		Waiver: money(1_000),
	}
	row.Total = money(10_560_000)

	testCases := []struct {
		desc     string
		waiverTo string
		freq     domain.Frequency
		expected int64
	}{
		// 3,120/4 floors to 0; 556,000 x 1.04 / 4 = 144,560 floors to 144,000
		{desc: "waiver in beneficiary column", waiverTo: "binh", freq: domain.FrequencyQuarterly, expected: 10_577_000},
		// 4,000 x 1.04 / 4 = 1,040 floors to 1,000; 555,000 x 1.04 / 4 = 144,300 floors to 144,000
		{desc: "other beneficiary joins main column", waiverTo: domain.BeneficiaryOther, freq: domain.FrequencyQuarterly, expected: 10_581_000},
		// 4,000 x 1.02 / 2 = 2,040 floors to 2,000; 555,000 x 1.02 / 2 = 283,050 floors to 283,000
		{desc: "semiannual", waiverTo: domain.MainInsuredID, freq: domain.FrequencySemiAnnual, expected: 10_571_000},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			got := frequencyAdjustedTotal(row, tc.waiverTo, tc.freq)
			assertMoney(t, tc.expected, got, "main and extra are carried whole")
		})
	}
}

func TestProject_Rejections(t *testing.T) {
	testCases := []struct {
		desc   string
		mutate func(p *domain.Policy)
		opts   ProjectionOptions
		kind   domain.ErrorKind
	}{
		{desc: "target equals current age", opts: ProjectionOptions{TargetAge: 35}, kind: domain.KindTargetAge},
		{desc: "target inside payment term", opts: ProjectionOptions{TargetAge: 40}, kind: domain.KindTargetAge},
		{
			desc:   "missing payment term",
			mutate: func(p *domain.Policy) { p.Product.PaymentTermYears = 0 },
			opts:   ProjectionOptions{TargetAge: 60},
			kind:   domain.KindPaymentTerm,
		},
		{
			desc:   "ineligible main product",
			mutate: func(p *domain.Policy) { p.Product.Product = "" },
			opts:   ProjectionOptions{TargetAge: 60},
			kind:   domain.KindTargetAge,
		},
		{
			desc:   "current year hard error",
			mutate: func(p *domain.Policy) { p.Product.EnteredPremium = money(1_000_000) },
			opts:   ProjectionOptions{TargetAge: 60},
			kind:   domain.KindMainPremium,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			engine := newTestEngine(t)
			policy := flexiblePolicy(t)
			if tc.mutate != nil {
				tc.mutate(policy)
			}
			proj, err := engine.Project(policy, tc.opts)
			requireKind(t, err, tc.kind)
			assert.True(t, IsValidationError(err))
			assert.Nil(t, proj)
		})
	}
}

// noHealthRates hides the health tables to exercise the fixed-term guard
type noHealthRates struct {
	*ratetable.Tables
}

func (noHealthRates) HealthBand(int) (int, bool) { return 0, false }

func TestProject_FixedTerm(t *testing.T) {
	fixedTerm := func(t *testing.T) *domain.Policy {
		return &domain.Policy{
			Main:    domain.Insured{Profile: person(t, "Cuong", "09/08/1985", domain.GenderMale, 1)},
			Product: domain.MainProductSelection{Product: domain.ProductTronTamAn},
		}
	}

	t.Run("ten paying years", func(t *testing.T) {
		engine := newTestEngine(t)
		proj, err := engine.Project(fixedTerm(t), ProjectionOptions{})
		require.NoError(t, err)
		assert.Equal(t, 49, proj.TargetAge)
		require.Equal(t, 10, proj.Years())
		for _, row := range proj.Rows {
			assertMoney(t, 11_000_000, row.MainPremium)
		}
		// health moves to the 41-60 band from the second year
		assertMoney(t, 2_000_000, proj.Rows[0].RiderTotal)
		assertMoney(t, 3_000_000, proj.Rows[1].RiderTotal)
	})

	t.Run("requires a priced health rider", func(t *testing.T) {
		tables, err := ratetable.Parse([]byte(fixtureRates))
		require.NoError(t, err)
		engine := NewCalculationEngine(noHealthRates{tables})

		_, err = engine.Project(fixedTerm(t), ProjectionOptions{})
		requireKind(t, err, domain.KindHealthRequired)
	})
}
