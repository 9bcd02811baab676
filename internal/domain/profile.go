package domain

import (
	"fmt"
	"strings"
	"time"
)

// DOBLayout is the day/month/year layout accepted for dates of birth
const DOBLayout = "02/01/2006"

// DefaultReferenceDate is the quoting date ages are computed against
var DefaultReferenceDate = time.Date(2025, time.August, 9, 0, 0, 0, 0, time.UTC)

// Gender of an insured person
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// ParseGender accepts male/female and the short forms m/f
func ParseGender(s string) (Gender, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "male", "m", "nam":
		return GenderMale, nil
	case "female", "f", "nu", "nữ":
		return GenderFemale, nil
	}
	return "", fmt.Errorf("invalid gender %q: must be male or female", s)
}

// Valid reports whether g is one of the known genders
func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale
}

// CustomerProfile is the per-person input the engine prices against.
// RiskGroup 0 means the occupation could not be resolved.
type CustomerProfile struct {
	Name          string    `json:"name,omitempty"`
	DateOfBirth   time.Time `json:"dateOfBirth"`
	ReferenceDate time.Time `json:"referenceDate"`
	Gender        Gender    `json:"gender"`
	Occupation    string    `json:"occupation,omitempty"`
	RiskGroup     int       `json:"riskGroup"`
}

// NewCustomerProfile parses a DD/MM/YYYY date of birth against the reference date
func NewCustomerProfile(name, dob string, gender Gender, reference time.Time) (CustomerProfile, error) {
	if reference.IsZero() {
		reference = DefaultReferenceDate
	}
	birth, err := ParseDOB(dob, reference)
	if err != nil {
		return CustomerProfile{}, err
	}
	if !gender.Valid() {
		return CustomerProfile{}, fmt.Errorf("invalid gender %q", gender)
	}
	return CustomerProfile{
		Name:          name,
		DateOfBirth:   birth,
		ReferenceDate: reference,
		Gender:        gender,
	}, nil
}

// ParseDOB parses a DD/MM/YYYY string. Dates that do not exist on the
// calendar and dates after the reference date are rejected.
func ParseDOB(s string, reference time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("date of birth is required")
	}
	dob, err := time.Parse(DOBLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date of birth %q: expected DD/MM/YYYY: %w", s, err)
	}
	if reference.IsZero() {
		reference = DefaultReferenceDate
	}
	if dob.After(reference) {
		return time.Time{}, fmt.Errorf("date of birth %s is after reference date %s", s, reference.Format(DOBLayout))
	}
	return dob, nil
}

func (p CustomerProfile) reference() time.Time {
	if p.ReferenceDate.IsZero() {
		return DefaultReferenceDate
	}
	return p.ReferenceDate
}

// Valid reports whether the profile has a usable date of birth
func (p CustomerProfile) Valid() bool {
	return !p.DateOfBirth.IsZero() && !p.DateOfBirth.After(p.reference())
}

// Age returns completed years at the reference date, or 0 for an invalid profile
func (p CustomerProfile) Age() int {
	if !p.Valid() {
		return 0
	}
	ref := p.reference()
	age := ref.Year() - p.DateOfBirth.Year()
	if ref.Month() < p.DateOfBirth.Month() ||
		(ref.Month() == p.DateOfBirth.Month() && ref.Day() < p.DateOfBirth.Day()) {
		age--
	}
	return age
}

// DaysFromBirth returns whole days lived at the reference date
func (p CustomerProfile) DaysFromBirth() int {
	if !p.Valid() {
		return 0
	}
	return int(p.reference().Sub(p.DateOfBirth).Hours() / 24)
}
