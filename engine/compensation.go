package engine

import "github.com/shopspring/decimal"

type Allowance struct {
	Name   string `json:"name"`
	Amount Money  `json:"amount"`
}

// Deductions are the employee-side monthly deductions.
type Deductions struct {
	PF    Money `json:"pf"`
	ESI   Money `json:"esi"`
	Tax   Money `json:"tax"`
	Other Money `json:"other"`
}

func (d Deductions) Total() Money { return d.PF + d.ESI + d.Tax + d.Other }

// SalaryStructure is a monthly breakdown. Gross, Net and AnnualCTC are
// derived.
type SalaryStructure struct {
	Basic      Money       `json:"basic"`
	HRA        Money       `json:"hra"`
	Allowances []Allowance `json:"allowances"`
	Incentives Money       `json:"incentives"`
	Deductions Deductions  `json:"deductions"`

	Gross     Money `json:"gross"`
	Net       Money `json:"net"`
	AnnualCTC Money `json:"annual_ctc"`
}

// ComputeSalary derives gross, net and annual cost. Negative inputs are
// clamped to 0; net may still go negative when deductions exceed gross.
//
// AnnualCTC adds the PF and ESI figures back onto gross before annualising.
// Those are the employee deductions, not separate employer contributions.
// The formula is kept for compatibility with existing offer letters until the
// payroll owners confirm the intended employer-cost base.
func ComputeSalary(s SalaryStructure) SalaryStructure {
	s.Basic = s.Basic.NonNegative()
	s.HRA = s.HRA.NonNegative()
	s.Incentives = s.Incentives.NonNegative()
	s.Deductions = Deductions{
		PF:    s.Deductions.PF.NonNegative(),
		ESI:   s.Deductions.ESI.NonNegative(),
		Tax:   s.Deductions.Tax.NonNegative(),
		Other: s.Deductions.Other.NonNegative(),
	}

	allowances := make([]Allowance, len(s.Allowances))
	var allowanceTotal Money
	for i, a := range s.Allowances {
		a.Amount = a.Amount.NonNegative()
		allowances[i] = a
		allowanceTotal = allowanceTotal.Add(a.Amount)
	}
	if s.Allowances == nil {
		allowances = nil
	}
	s.Allowances = allowances

	s.Gross = s.Basic.Add(s.HRA).Add(allowanceTotal).Add(s.Incentives)
	s.Net = s.Gross - s.Deductions.Total()
	s.AnnualCTC = (s.Gross + s.Deductions.PF + s.Deductions.ESI) * 12
	return s
}

// SimplePackage is the structure-free offer: one monthly figure and its
// annual equivalent.
type SimplePackage struct {
	Monthly   Money `json:"monthly"`
	AnnualCTC Money `json:"annual_ctc"`
}

// PackageFromMonthly is the result of editing the monthly figure.
func PackageFromMonthly(monthly Money) SimplePackage {
	monthly = monthly.NonNegative()
	return SimplePackage{Monthly: monthly, AnnualCTC: monthly * 12}
}

// PackageFromAnnual is the result of editing the annual figure. Monthly is
// rounded to whole currency units, half up, so monthly x 12 may differ from
// the annual figure by a few units.
func PackageFromAnnual(annual Money) SimplePackage {
	annual = annual.NonNegative()
	major := decimal.New(int64(annual), -2).Div(twelve).Round(0)
	return SimplePackage{Monthly: FromMajor(major.IntPart()), AnnualCTC: annual}
}
