package config

import (
	"github.com/rgehrsitz/quotecalc/internal/domain"
	"github.com/shopspring/decimal"
)

// DeepCopy returns a request that shares no pointers or slices with r
func (r *QuoteRequest) DeepCopy() *QuoteRequest {
	if r == nil {
		return nil
	}
	cp := *r
	cp.Main = r.Main.deepCopy()
	if r.Supplementary != nil {
		cp.Supplementary = make([]PersonInput, len(r.Supplementary))
		for i, p := range r.Supplementary {
			cp.Supplementary[i] = p.deepCopy()
		}
	}
	if r.Waiver != nil {
		w := *r.Waiver
		if w.Other != nil {
			other := w.Other.deepCopy()
			w.Other = &other
		}
		cp.Waiver = &w
	}
	return &cp
}

func (p PersonInput) deepCopy() PersonInput {
	cp := p
	if p.Riders.Health != nil {
		h := *p.Riders.Health
		cp.Riders.Health = &h
	}
	cp.Riders.CriticalIllness = copyAmount(p.Riders.CriticalIllness)
	cp.Riders.Accident = copyAmount(p.Riders.Accident)
	cp.Riders.HospitalCash = copyAmount(p.Riders.HospitalCash)
	return cp
}

func copyAmount(d *decimal.Decimal) *decimal.Decimal {
	if d == nil {
		return nil
	}
	v := *d
	return &v
}

// Person returns the insured with the given id; "main" or an empty id is the
// main insured.
func (r *QuoteRequest) Person(id string) *PersonInput {
	if id == "" || id == domain.MainInsuredID {
		return &r.Main
	}
	for i := range r.Supplementary {
		if r.Supplementary[i].ID == id {
			return &r.Supplementary[i]
		}
	}
	return nil
}
