package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomerProfile_Age(t *testing.T) {
	testCases := []struct {
		dob      string
		expected int
		desc     string
	}{
		{dob: "09/08/1990", expected: 35, desc: "birthday on reference date"},
		{dob: "10/08/1990", expected: 34, desc: "birthday tomorrow"},
		{dob: "08/08/1990", expected: 35, desc: "birthday yesterday"},
		{dob: "01/12/1990", expected: 34, desc: "birthday later in year"},
		{dob: "09/08/2025", expected: 0, desc: "born on reference date"},
		{dob: "29/02/2000", expected: 25, desc: "leap day"},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			p, err := NewCustomerProfile("", tc.dob, GenderMale, DefaultReferenceDate)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, p.Age())
		})
	}
}

func TestCustomerProfile_DaysFromBirth(t *testing.T) {
	p, err := NewCustomerProfile("baby", "10/07/2025", GenderFemale, DefaultReferenceDate)
	require.NoError(t, err)
	assert.Equal(t, 30, p.DaysFromBirth())
	assert.Equal(t, 0, p.Age())

	p, err = NewCustomerProfile("baby", "11/07/2025", GenderFemale, DefaultReferenceDate)
	require.NoError(t, err)
	assert.Equal(t, 29, p.DaysFromBirth())
}

func TestCustomerProfile_InvalidIsZero(t *testing.T) {
	future := CustomerProfile{
		DateOfBirth:   time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
		ReferenceDate: DefaultReferenceDate,
	}
	assert.False(t, future.Valid())
	assert.Equal(t, 0, future.Age())
	assert.Equal(t, 0, future.DaysFromBirth())

	var empty CustomerProfile
	assert.False(t, empty.Valid())
	assert.Equal(t, 0, empty.Age())
}

func TestParseDOB(t *testing.T) {
	_, err := ParseDOB("31/02/2000", DefaultReferenceDate)
	assert.Error(t, err, "non-existent date")

	_, err = ParseDOB("2000-01-01", DefaultReferenceDate)
	assert.Error(t, err, "wrong layout")

	_, err = ParseDOB("10/08/2025", DefaultReferenceDate)
	assert.Error(t, err, "after reference date")

	_, err = ParseDOB("", DefaultReferenceDate)
	assert.Error(t, err)

	dob, err := ParseDOB(" 15/06/1985 ", time.Time{})
	require.NoError(t, err)
	assert.Equal(t, time.Date(1985, 6, 15, 0, 0, 0, 0, time.UTC), dob)
}

func TestParseGender(t *testing.T) {
	g, err := ParseGender("F")
	require.NoError(t, err)
	assert.Equal(t, GenderFemale, g)

	g, err = ParseGender("male")
	require.NoError(t, err)
	assert.Equal(t, GenderMale, g)

	_, err = ParseGender("x")
	assert.Error(t, err)
}
